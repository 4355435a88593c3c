package printing

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/go-text/typesetting/di"
	gofont "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"
)

// DefaultFontProbe exercises a ya-phala conjunct and vowel signs. A font that
// cannot shape it cannot print the label text.
const DefaultFontProbe = "প্যাকেজিংয়ের তারিখ ১৮ মাস"

// FontConfig describes the label font family
type FontConfig struct {
	Family  string // CSS font-family name used by the label template
	Dir     string
	Regular string // file name inside Dir
	Bold    string // file name inside Dir
	UseOTL  bool   // enable every OpenType layout feature
	Probe   string // text every face must shape without missing glyphs
}

// FontFace is one validated font file
type FontFace struct {
	Weight int
	Data   []byte
}

// FontRegistry holds the validated label font and the @font-face stylesheet
// that embeds it. It is immutable after construction.
type FontRegistry struct {
	family     string
	useOTL     bool
	faces      []FontFace
	stylesheet string
}

// LoadFontRegistry reads the regular and bold faces from disk and validates them
func LoadFontRegistry(cfg FontConfig) (*FontRegistry, error) {
	regular, err := os.ReadFile(filepath.Join(cfg.Dir, cfg.Regular))
	if err != nil {
		return nil, fmt.Errorf("failed to read regular font: %w", err)
	}
	bold, err := os.ReadFile(filepath.Join(cfg.Dir, cfg.Bold))
	if err != nil {
		return nil, fmt.Errorf("failed to read bold font: %w", err)
	}
	return NewFontRegistry(cfg, FontFace{Weight: 400, Data: regular}, FontFace{Weight: 700, Data: bold})
}

// NewFontRegistry validates the given faces and builds the stylesheet
func NewFontRegistry(cfg FontConfig, faces ...FontFace) (*FontRegistry, error) {
	if cfg.Family == "" {
		return nil, NewRenderError(ErrCodeFontInvalid, "font family is required", nil)
	}
	if len(faces) == 0 {
		return nil, NewRenderError(ErrCodeFontInvalid, "at least one font face is required", nil)
	}
	probe := cfg.Probe
	if probe == "" {
		probe = DefaultFontProbe
	}

	for _, face := range faces {
		if err := validateFace(face.Data, probe); err != nil {
			return nil, NewRenderError(ErrCodeFontInvalid,
				fmt.Sprintf("font %q weight %d cannot render label text", cfg.Family, face.Weight), err)
		}
	}

	r := &FontRegistry{family: cfg.Family, useOTL: cfg.UseOTL, faces: faces}
	r.stylesheet = r.buildStylesheet()
	return r, nil
}

// validateFace parses the font and shapes probe, failing on any missing glyph
func validateFace(data []byte, probe string) error {
	face, err := gofont.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("parse font: %w", err)
	}

	runes := []rune(probe)
	output := (&shaping.HarfbuzzShaper{}).Shape(shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      face,
		Size:      fixed.I(16),
		Script:    dominantScript(runes),
		Language:  language.DefaultLanguage(),
	})

	for _, g := range output.Glyphs {
		if g.GlyphID == 0 {
			return fmt.Errorf("missing glyph for %q", string(runes[g.ClusterIndex]))
		}
	}
	return nil
}

// dominantScript returns the most frequent script in runes
func dominantScript(runes []rune) language.Script {
	counts := make(map[language.Script]int)
	best, bestCount := language.Latin, 0
	for _, r := range runes {
		var script language.Script
		switch {
		case unicode.Is(unicode.Bengali, r):
			script = language.Bengali
		case unicode.Is(unicode.Latin, r):
			script = language.Latin
		default:
			continue
		}
		counts[script]++
		if counts[script] > bestCount {
			best, bestCount = script, counts[script]
		}
	}
	return best
}

// Family returns the CSS font-family name
func (r *FontRegistry) Family() string {
	return r.family
}

// Stylesheet returns the CSS that registers the font faces
func (r *FontRegistry) Stylesheet() string {
	return r.stylesheet
}

func (r *FontRegistry) buildStylesheet() string {
	var b strings.Builder
	for _, face := range r.faces {
		mime, format := fontFormat(face.Data)
		fmt.Fprintf(&b, "@font-face { font-family: '%s'; src: url(data:%s;base64,%s) format('%s'); font-weight: %d; font-style: normal; }\n",
			r.family, mime, base64.StdEncoding.EncodeToString(face.Data), format, face.Weight)
	}
	if r.useOTL {
		b.WriteString("body { text-rendering: optimizeLegibility; font-kerning: normal; font-feature-settings: \"kern\" 1, \"liga\" 1, \"clig\" 1, \"calt\" 1; }\n")
	}
	return b.String()
}

// fontFormat sniffs the sfnt version tag
func fontFormat(data []byte) (mime, format string) {
	if bytes.HasPrefix(data, []byte("OTTO")) {
		return "font/otf", "opentype"
	}
	return "font/ttf", "truetype"
}
