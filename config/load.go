package config

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/mattsolo1/fzd/errors"
	"github.com/mattsolo1/fzd/logging"
	"github.com/mattsolo1/fzd/util/pathutil"
)

var log *logrus.Entry

func init() {
	log = logging.NewLogger("config")
}

var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

// DefaultPath returns where the config file is looked for: $FZD_CONFIG,
// else $XDG_CONFIG_HOME/fzd/config.yml, else ~/.config/fzd/config.yml.
func DefaultPath() string {
	if p := os.Getenv("FZD_CONFIG"); p != "" {
		return p
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "fzd", "config.yml")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".config", "fzd", "config.yml")
	}
	return ""
}

// LoadDefault loads the configuration from the default location. A missing
// file is not an error: the browser runs fine on defaults alone.
func LoadDefault() (*Config, error) {
	return Load(DefaultPath())
}

// Load reads the YAML config at path, overlays conf.d/*.toml fragments from
// the same directory, applies FZD_* environment overrides, fills defaults
// and validates the result.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			log.WithField("path", path).Debug("Loading configuration")
			expanded := expandEnvVars(string(data))
			if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
				return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to parse config file").
					WithDetail("path", path)
			}
			if err := validateSchema(cfg); err != nil {
				return nil, err
			}
		case os.IsNotExist(err):
			log.WithField("path", path).Debug("No config file, using defaults")
		default:
			return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to read config file").
				WithDetail("path", path)
		}

		var fragErr error
		cfg, fragErr = applyFragments(cfg, filepath.Join(filepath.Dir(path), "conf.d"))
		if fragErr != nil {
			return nil, fragErr
		}
	}

	applyEnv(cfg)
	cfg.SetDefaults()
	cfg.Search.Roots = expandRoots(cfg.Search.Roots)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validateSchema checks the parsed file against the embedded JSON schema.
func validateSchema(cfg *Config) error {
	validator, err := NewSchemaValidator()
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to create schema validator")
	}
	if err := validator.Validate(cfg); err != nil {
		return errors.Wrap(err, errors.ErrCodeConfigValidation, "config file failed schema validation")
	}
	return nil
}

// applyFragments merges conf.d/*.toml files, sorted by name, over cfg.
// Unreadable or malformed fragments are skipped with a warning so a broken
// drop-in never bricks the browser.
func applyFragments(cfg *Config, dir string) (*Config, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return cfg, nil
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".toml") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	for _, name := range names {
		fragPath := filepath.Join(dir, name)
		data, err := os.ReadFile(fragPath)
		if err != nil {
			log.WithError(err).WithField("path", fragPath).Warn("Skipping unreadable config fragment")
			continue
		}

		var fragment Config
		if err := toml.Unmarshal([]byte(expandEnvVars(string(data))), &fragment); err != nil {
			log.WithError(err).WithField("path", fragPath).Warn("Skipping malformed config fragment")
			continue
		}
		log.WithField("path", fragPath).Debug("Merging config fragment")
		cfg = mergeConfigs(cfg, &fragment)
	}
	return cfg, nil
}

// applyEnv overlays FZD_* environment variables, the highest-precedence layer.
func applyEnv(cfg *Config) {
	setString := func(key string, dst *string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	setInt := func(key string, dst *int) {
		if v := os.Getenv(key); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				*dst = n
			} else {
				log.WithField("var", key).Warn("Ignoring non-numeric environment override")
			}
		}
	}

	setString("FZD_PICKER", &cfg.Picker.Binary)
	setString("FZD_GLOBAL_BACKEND", &cfg.Search.Backend)
	setInt("FZD_GLOBAL_MINLEN", &cfg.Search.MinQueryLen)
	setInt("FZD_GLOBAL_MAXRESULTS", &cfg.Search.MaxResults)
	if v := os.Getenv("FZD_GLOBAL_ROOTS"); v != "" {
		cfg.Search.Roots = strings.Fields(v)
	}
	if v := os.Getenv("FZD_GLOBAL_EXCLUDE"); v != "" {
		parts := strings.Split(v, ",")
		exclude := parts[:0]
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				exclude = append(exclude, p)
			}
		}
		cfg.Search.Exclude = exclude
	}
	setInt("FZD_PREVIEW_DEPTH", &cfg.Preview.Depth)
	setInt("FZD_PREVIEW_MAXLINES", &cfg.Preview.MaxLines)
	setInt("FZD_PREVIEW_TIMEOUT_MS", &cfg.Preview.TimeoutMS)
	setString("FZD_COLOR_DIR", &cfg.Colors.Dir)
	setString("FZD_COLOR_FILE", &cfg.Colors.File)
	setString("FZD_EDITOR", &cfg.Editor)
	setString("FZD_LOG_LEVEL", &cfg.LogLevel)
}

// expandRoots resolves ~ and $VARs in each root and normalizes the result.
// Roots that cannot be resolved are dropped with a warning.
func expandRoots(roots []string) []string {
	out := make([]string, 0, len(roots))
	for _, r := range roots {
		expanded, err := pathutil.Expand(r)
		if err != nil {
			log.WithError(err).WithField("root", r).Warn("Dropping unresolvable search root")
			continue
		}
		normalized, err := pathutil.Normalize(expanded)
		if err != nil {
			log.WithError(err).WithField("root", r).Warn("Dropping unresolvable search root")
			continue
		}
		out = append(out, normalized)
	}
	return out
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} in raw file content.
func expandEnvVars(content string) string {
	return envVarRegex.ReplaceAllStringFunc(content, func(match string) string {
		varName := envVarRegex.FindStringSubmatch(match)[1]

		parts := strings.SplitN(varName, ":-", 2)
		varName = parts[0]
		defaultValue := ""
		if len(parts) > 1 {
			defaultValue = parts[1]
		}

		if value := os.Getenv(varName); value != "" {
			return value
		}
		return defaultValue
	})
}
