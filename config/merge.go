package config

// mergeConfigs overlays non-zero fields of overlay onto base and returns
// base. Slices replace wholesale rather than appending, so a fragment can
// narrow a list as well as widen it.
func mergeConfigs(base, overlay *Config) *Config {
	if overlay == nil {
		return base
	}

	if overlay.Picker.Binary != "" {
		base.Picker.Binary = overlay.Picker.Binary
	}
	if overlay.Picker.PollIntervalMS > 0 {
		base.Picker.PollIntervalMS = overlay.Picker.PollIntervalMS
	}
	if overlay.Picker.PollBudget > 0 {
		base.Picker.PollBudget = overlay.Picker.PollBudget
	}

	if overlay.Search.Backend != "" {
		base.Search.Backend = overlay.Search.Backend
	}
	if overlay.Search.MinQueryLen > 0 {
		base.Search.MinQueryLen = overlay.Search.MinQueryLen
	}
	if overlay.Search.MaxResults > 0 {
		base.Search.MaxResults = overlay.Search.MaxResults
	}
	if len(overlay.Search.Roots) > 0 {
		base.Search.Roots = overlay.Search.Roots
	}
	if len(overlay.Search.Exclude) > 0 {
		base.Search.Exclude = overlay.Search.Exclude
	}

	if overlay.Preview.Depth > 0 {
		base.Preview.Depth = overlay.Preview.Depth
	}
	if overlay.Preview.MaxLines > 0 {
		base.Preview.MaxLines = overlay.Preview.MaxLines
	}
	if overlay.Preview.TimeoutMS > 0 {
		base.Preview.TimeoutMS = overlay.Preview.TimeoutMS
	}

	if overlay.Colors.Dir != "" {
		base.Colors.Dir = overlay.Colors.Dir
	}
	if overlay.Colors.File != "" {
		base.Colors.File = overlay.Colors.File
	}

	if overlay.Editor != "" {
		base.Editor = overlay.Editor
	}
	if overlay.LogLevel != "" {
		base.LogLevel = overlay.LogLevel
	}

	if len(overlay.Extensions) > 0 {
		if base.Extensions == nil {
			base.Extensions = make(map[string]interface{}, len(overlay.Extensions))
		}
		for k, v := range overlay.Extensions {
			base.Extensions[k] = v
		}
	}

	return base
}
