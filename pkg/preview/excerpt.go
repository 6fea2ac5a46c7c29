package preview

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// Excerpt writes a syntax-highlighted, line-bounded excerpt of a text file.
// head holds the already-sniffed leading bytes; rest continues from there.
// When the deadline expires mid-read, whatever was collected is highlighted
// and flushed, followed by the truncation marker.
func Excerpt(ctx context.Context, w io.Writer, path string, rest io.Reader, head []byte, cfg Config) error {
	cfg = cfg.withDefaults()

	content, truncated, err := readLines(ctx, head, rest, cfg.MaxLines)
	if err != nil {
		_, werr := fmt.Fprintf(w, "unreadable: %v\n", err)
		return werr
	}

	// Lexer by filename, then by content, then plain text.
	lexer := lexers.Match(filepath.Base(path))
	if lexer == nil {
		lexer = lexers.Analyse(content)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get("monokai")
	if style == nil {
		style = styles.Fallback
	}
	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, content)
	if err != nil {
		if _, werr := io.WriteString(w, content); werr != nil {
			return werr
		}
	} else if err := formatter.Format(w, style, iterator); err != nil {
		if _, werr := io.WriteString(w, content); werr != nil {
			return werr
		}
	}

	if truncated {
		_, werr := io.WriteString(w, truncationMarker)
		return werr
	}
	return nil
}

// ctxReader fails each Read once its context is done, so a stalled source
// cannot hold an excerpt past the deadline.
type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (c ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}

// readLines collects up to maxLines lines from the sniffed head plus the
// remainder of the file, without ever loading the whole file. A deadline
// expiring mid-read keeps the partial content and reports truncation.
func readLines(ctx context.Context, head []byte, rest io.Reader, maxLines int) (string, bool, error) {
	var b strings.Builder
	b.Write(head)

	// Read only as much more as the line budget could possibly need; a
	// generous per-line estimate keeps huge single-line files bounded too.
	limit := int64(maxLines * 512)
	truncated := false
	if _, err := io.Copy(&b, io.LimitReader(ctxReader{ctx: ctx, r: rest}, limit)); err != nil {
		if ctx.Err() == nil {
			return "", false, err
		}
		truncated = true
	}

	lines := strings.SplitN(b.String(), "\n", maxLines+1)
	if len(lines) > maxLines {
		lines = lines[:maxLines]
	}
	return strings.Join(lines, "\n"), truncated, nil
}
