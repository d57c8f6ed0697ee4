// Package output handles file naming and writing for rendered documents.
// Filenames are derived from the source: a URL gives host_path
// (example_com_docs_intro), a file gives its base name without the markdown
// extension, stdin gives "stdin".
package output

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// Writer writes rendered output to disk.
type Writer struct {
	OutputDir string
}

// New creates a Writer targeting the given output directory.
// If outputDir is empty, it defaults to the current working directory.
func New(outputDir string) (*Writer, error) {
	if outputDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting working directory: %w", err)
		}
		outputDir = wd
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	return &Writer{OutputDir: outputDir}, nil
}

// Write stores data under a name derived from source and returns the path.
func (w *Writer) Write(source string, data []byte, ext string) (string, error) {
	path := filepath.Join(w.OutputDir, Filename(source)+ext)

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing file %s: %w", path, err)
	}
	return path, nil
}

// Filename converts a source name into a flat filename without extension.
func Filename(source string) string {
	if source == "" || source == "-" {
		return "stdin"
	}

	if parsed, err := url.Parse(source); err == nil && parsed.Host != "" {
		parts := []string{sanitize(parsed.Host)}
		path := strings.Trim(parsed.Path, "/")
		if path != "" {
			path = trimMarkdownExt(path)
			for _, seg := range strings.Split(path, "/") {
				parts = append(parts, sanitize(seg))
			}
		}
		return strings.Join(parts, "_")
	}

	name := trimMarkdownExt(filepath.Base(source))
	if name == "" || name == "." {
		return "document"
	}
	return sanitize(name)
}

func trimMarkdownExt(name string) string {
	for _, ext := range []string{".markdown", ".md", ".txt"} {
		if strings.HasSuffix(strings.ToLower(name), ext) {
			return name[:len(name)-len(ext)]
		}
	}
	return name
}

// sanitize replaces characters other than letters, digits, '-' and '_' with underscores.
func sanitize(s string) string {
	var b strings.Builder
	for _, ch := range s {
		if (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9') || ch == '-' || ch == '_' {
			b.WriteRune(ch)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}
