package printing

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

func latinConfig(useOTL bool) FontConfig {
	return FontConfig{Family: "gofont", UseOTL: useOTL, Probe: "Rice 500"}
}

func TestNewFontRegistry(t *testing.T) {
	t.Run("latin faces shape a latin probe", func(t *testing.T) {
		reg, err := NewFontRegistry(latinConfig(true),
			FontFace{Weight: 400, Data: goregular.TTF},
			FontFace{Weight: 700, Data: gobold.TTF},
		)
		require.NoError(t, err)
		assert.Equal(t, "gofont", reg.Family())

		css := reg.Stylesheet()
		assert.Equal(t, 2, strings.Count(css, "@font-face"))
		assert.Contains(t, css, "font-family: 'gofont'")
		assert.Contains(t, css, "url(data:font/ttf;base64,")
		assert.Contains(t, css, "format('truetype')")
		assert.Contains(t, css, "font-weight: 400")
		assert.Contains(t, css, "font-weight: 700")
		assert.Contains(t, css, "text-rendering: optimizeLegibility")
	})

	t.Run("layout rules only with OTL", func(t *testing.T) {
		reg, err := NewFontRegistry(latinConfig(false), FontFace{Weight: 400, Data: goregular.TTF})
		require.NoError(t, err)
		assert.NotContains(t, reg.Stylesheet(), "font-feature-settings")
	})

	t.Run("latin font cannot shape bengali", func(t *testing.T) {
		_, err := NewFontRegistry(FontConfig{Family: "gofont"}, FontFace{Weight: 400, Data: goregular.TTF})

		var renderErr *RenderError
		require.ErrorAs(t, err, &renderErr)
		assert.Equal(t, ErrCodeFontInvalid, renderErr.Code)
		assert.Contains(t, err.Error(), "missing glyph")
	})

	t.Run("garbage bytes", func(t *testing.T) {
		_, err := NewFontRegistry(latinConfig(false), FontFace{Weight: 400, Data: []byte("not a font")})
		assert.Error(t, err)
	})

	t.Run("family required", func(t *testing.T) {
		_, err := NewFontRegistry(FontConfig{}, FontFace{Weight: 400, Data: goregular.TTF})
		assert.Error(t, err)
	})

	t.Run("no faces", func(t *testing.T) {
		_, err := NewFontRegistry(latinConfig(false))
		assert.Error(t, err)
	})
}

func TestLoadFontRegistry(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "regular.ttf"), goregular.TTF, 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bold.ttf"), gobold.TTF, 0o600))

	cfg := latinConfig(true)
	cfg.Dir = dir
	cfg.Regular = "regular.ttf"
	cfg.Bold = "bold.ttf"

	reg, err := LoadFontRegistry(cfg)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(reg.Stylesheet(), "@font-face"))

	cfg.Bold = "missing.ttf"
	_, err = LoadFontRegistry(cfg)
	assert.Error(t, err)
}

func TestFontFormat(t *testing.T) {
	mime, format := fontFormat([]byte("OTTO...."))
	assert.Equal(t, "font/otf", mime)
	assert.Equal(t, "opentype", format)

	mime, format = fontFormat(goregular.TTF)
	assert.Equal(t, "font/ttf", mime)
	assert.Equal(t, "truetype", format)
}
