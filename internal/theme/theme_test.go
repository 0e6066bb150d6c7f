package theme

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessImports_NoImports(t *testing.T) {
	css := `window.osd { color: red; }`
	result := ProcessImports(css, "", nil)
	assert.Equal(t, css, result)
}

func TestProcessImports_FileImport(t *testing.T) {
	// Create a temporary directory with test CSS files
	tmpDir := t.TempDir()

	// Create a partial file
	partialContent := `:root { --custom: #ff0000; }`
	partialPath := filepath.Join(tmpDir, "_custom.css")
	err := os.WriteFile(partialPath, []byte(partialContent), 0644)
	require.NoError(t, err)

	// Create main CSS that imports the partial
	mainCSS := `@import "_custom.css";
window.osd { color: var(--custom); }`

	result := ProcessImports(mainCSS, tmpDir, nil)

	assert.Contains(t, result, "/* imported: _custom.css */")
	assert.Contains(t, result, "--custom: #ff0000")
	assert.Contains(t, result, "window.osd")
}

func TestProcessImports_NestedImports(t *testing.T) {
	tmpDir := t.TempDir()

	// Create nested structure: main imports child, child imports grandchild
	grandchildContent := `.grandchild { color: blue; }`
	grandchildPath := filepath.Join(tmpDir, "_grandchild.css")
	err := os.WriteFile(grandchildPath, []byte(grandchildContent), 0644)
	require.NoError(t, err)

	childContent := `@import "_grandchild.css";
.child { color: green; }`
	childPath := filepath.Join(tmpDir, "_child.css")
	err = os.WriteFile(childPath, []byte(childContent), 0644)
	require.NoError(t, err)

	mainCSS := `@import "_child.css";
.main { color: red; }`

	result := ProcessImports(mainCSS, tmpDir, nil)

	assert.Contains(t, result, "/* imported: _child.css */")
	assert.Contains(t, result, "/* imported: _grandchild.css */")
	assert.Contains(t, result, ".grandchild")
	assert.Contains(t, result, ".child")
	assert.Contains(t, result, ".main")
}

func TestProcessImports_CircularPrevention(t *testing.T) {
	tmpDir := t.TempDir()

	// Create circular imports: a imports b, b imports a
	aContent := `@import "_b.css";
.a { color: red; }`
	aPath := filepath.Join(tmpDir, "_a.css")
	err := os.WriteFile(aPath, []byte(aContent), 0644)
	require.NoError(t, err)

	bContent := `@import "_a.css";
.b { color: blue; }`
	bPath := filepath.Join(tmpDir, "_b.css")
	err = os.WriteFile(bPath, []byte(bContent), 0644)
	require.NoError(t, err)

	// Start with a
	result := ProcessImports(`@import "_a.css";`, tmpDir, nil)

	// Should have both imports but one marked as circular
	assert.Contains(t, result, "/* imported: _a.css */")
	assert.Contains(t, result, "/* imported: _b.css */")
	assert.Contains(t, result, "/* circular import prevented: _a.css */")
}

func TestProcessImports_MissingFile(t *testing.T) {
	css := `@import "nonexistent.css";`

	result := ProcessImports(css, "/tmp", nil)

	assert.Contains(t, result, "/* import failed: nonexistent.css")
}

func TestProcessImports_FallbackToEmbeddedTheme(t *testing.T) {
	css := `@import "osd.css";`

	result := ProcessImports(css, "/nonexistent/path", nil)

	assert.Contains(t, result, "/* imported (embedded): osd.css */")
	assert.Contains(t, result, "window.osd.translucent")
}

func TestImportRegex(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{`@import "file.css";`, "file.css"},
		{`@import 'file.css';`, "file.css"},
		{`@import url("file.css");`, "file.css"},
		{`@import url('file.css');`, "file.css"},
		{`@import url( "file.css" );`, "file.css"},
		{`@import "_partial.css"`, "_partial.css"}, // Without semicolon
		{`@import   "spaced.css"  ;`, "spaced.css"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			matches := importRegex.FindStringSubmatch(tt.input)
			require.Len(t, matches, 2, "should match import statement")
			assert.Equal(t, tt.expected, matches[1])
		})
	}
}

func TestNewTheme_ProcessesImports(t *testing.T) {
	tmpDir := t.TempDir()

	// Create a partial
	partialContent := `:root { --custom: #ff0000; }`
	partialPath := filepath.Join(tmpDir, "_colors.css")
	err := os.WriteFile(partialPath, []byte(partialContent), 0644)
	require.NoError(t, err)

	// Create main theme that imports the partial
	themeContent := `@import "_colors.css";
window.osd { color: var(--custom); }`
	themePath := filepath.Join(tmpDir, "custom.css")
	err = os.WriteFile(themePath, []byte(themeContent), 0644)
	require.NoError(t, err)

	theme, err := NewTheme("custom", themePath)
	require.NoError(t, err)

	// CSS should have processed imports
	assert.Contains(t, theme.CSS, "/* imported: _colors.css */")
	assert.Contains(t, theme.CSS, "--custom: #ff0000")
	assert.Contains(t, theme.CSS, "window.osd")
}

func TestGetEmbeddedTheme(t *testing.T) {
	css, found := GetEmbeddedTheme(DefaultThemeName)
	require.True(t, found)
	assert.Contains(t, css, "window."+ClassWindow)
	assert.Contains(t, css, "."+ClassTranslucent)
	assert.Contains(t, css, "transparent")

	_, found = GetEmbeddedTheme("nonexistent")
	assert.False(t, found)
}

func TestResolve(t *testing.T) {
	t.Run("empty path", func(t *testing.T) {
		theme, err := Resolve("")
		require.NoError(t, err)
		assert.True(t, theme.IsDefault)
	})

	t.Run("missing file", func(t *testing.T) {
		theme, err := Resolve(filepath.Join(t.TempDir(), "style.css"))
		require.NoError(t, err)
		assert.True(t, theme.IsDefault)
		assert.Equal(t, DefaultThemeName, theme.Name)
	})

	t.Run("user stylesheet", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "style.css")
		require.NoError(t, os.WriteFile(path, []byte(`@import "osd.css";
window.osd { background-color: #202040; }`), 0644))

		theme, err := Resolve(path)
		require.NoError(t, err)
		assert.False(t, theme.IsDefault)
		assert.Equal(t, "style", theme.Name)
		assert.Equal(t, path, theme.Path)
		assert.Contains(t, theme.CSS, "/* imported (embedded): osd.css */")
		assert.Contains(t, theme.CSS, "#202040")
	})

	t.Run("unreadable", func(t *testing.T) {
		_, err := Resolve(t.TempDir())
		assert.Error(t, err)
	})
}

func TestStylePath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	assert.Equal(t, "/custom/config/osd/style.css", StylePath())
}
