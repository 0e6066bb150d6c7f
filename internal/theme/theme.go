package theme

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// importRegex matches @import "file.css"; or @import 'file.css'; or @import url("file.css");
var importRegex = regexp.MustCompile(`@import\s+(?:url\s*\(\s*)?["']([^"']+)["']\s*\)?;?`)

// Theme is a resolved stylesheet.
type Theme struct {
	Name      string // Stylesheet name (without .css extension)
	Path      string // Source file, empty for the bundled stylesheet
	CSS       string // Content with imports inlined
	IsDefault bool   // True for the bundled stylesheet
}

// StylePath returns the user stylesheet path.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config.
func StylePath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "osd", "style.css")
}

// NewTheme loads a stylesheet file and inlines its @import statements.
func NewTheme(name, path string) (*Theme, error) {
	css, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return &Theme{
		Name: name,
		Path: path,
		CSS:  ProcessImports(string(css), filepath.Dir(path), nil),
	}, nil
}

// NewDefaultTheme returns the bundled stylesheet.
func NewDefaultTheme() *Theme {
	css, _ := GetEmbeddedTheme(DefaultThemeName)
	return &Theme{
		Name:      DefaultThemeName,
		CSS:       css,
		IsDefault: true,
	}
}

// Resolve returns the user stylesheet at path when it exists, otherwise the
// bundled one. An unreadable user stylesheet is an error; a missing one is not.
func Resolve(path string) (*Theme, error) {
	if path == "" {
		return NewDefaultTheme(), nil
	}

	t, err := NewTheme(strings.TrimSuffix(filepath.Base(path), ".css"), path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return NewDefaultTheme(), nil
		}
		return nil, fmt.Errorf("failed to read stylesheet: %w", err)
	}
	return t, nil
}

// ProcessImports resolves and inlines @import statements in CSS.
// Imports are resolved relative to baseDir, falling back to bundled
// stylesheets by name. The seen map prevents circular imports.
func ProcessImports(css string, baseDir string, seen map[string]bool) string {
	if seen == nil {
		seen = make(map[string]bool)
	}

	return importRegex.ReplaceAllStringFunc(css, func(match string) string {
		submatch := importRegex.FindStringSubmatch(match)
		if len(submatch) < 2 {
			return match
		}

		importPath := submatch[1]

		fullPath := importPath
		if !filepath.IsAbs(importPath) {
			fullPath = filepath.Join(baseDir, importPath)
		}

		if seen[fullPath] {
			return "/* circular import prevented: " + importPath + " */"
		}
		seen[fullPath] = true

		importedCSS, err := os.ReadFile(fullPath)
		if err != nil {
			name := strings.TrimSuffix(filepath.Base(importPath), ".css")
			if embeddedCSS, found := GetEmbeddedTheme(name); found {
				return "/* imported (embedded): " + importPath + " */\n" + embeddedCSS
			}
			return "/* import failed: " + importPath + " - " + err.Error() + " */"
		}

		processed := ProcessImports(string(importedCSS), filepath.Dir(fullPath), seen)
		return "/* imported: " + importPath + " */\n" + processed
	})
}
