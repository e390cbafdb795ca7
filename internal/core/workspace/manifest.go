package workspace

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/yndnr/fontsession/internal/core/domain"
)

// Manifest declares the fonts a workspace offers and its initial settings.
//
//	settings:
//	  font_name: myicons
//	  font_size: 16
//	fonts:
//	  - name: fontawesome
//	    glyphs:
//	      - {code: 0xf000, css: glass}
//	  - name: custom_icons
//	    custom: true
//	    glyphs:
//	      - {code: 0xe800, css: logo, svg: {path: "M0 0h10v10z", width: 1000}}
type Manifest struct {
	Settings ManifestSettings `yaml:"settings"`
	Fonts    []ManifestFont   `yaml:"fonts"`
}

// ManifestSettings are the font-generation settings before any restore.
// Unset values take the legacy defaults.
type ManifestSettings struct {
	FontName      string  `yaml:"font_name"`
	FontSize      float64 `yaml:"font_size"`
	CSSPrefixText *string `yaml:"css_prefix_text"`
	CSSUseSuffix  bool    `yaml:"css_use_suffix"`
	Hinting       *bool   `yaml:"hinting"`
	Encoding      *string `yaml:"encoding"`
}

// ManifestFont is one font of the manifest.
type ManifestFont struct {
	Name      string          `yaml:"name"`
	Custom    bool            `yaml:"custom"`
	Collapsed bool            `yaml:"collapsed"`
	Glyphs    []ManifestGlyph `yaml:"glyphs"`
}

// ManifestGlyph is one glyph of a manifest font. UID is optional.
type ManifestGlyph struct {
	UID      string      `yaml:"uid"`
	Code     int         `yaml:"code"`
	CSS      string      `yaml:"css"`
	Selected bool        `yaml:"selected"`
	SVG      *domain.SVG `yaml:"svg"`
}

// DefaultFontSize is used when the manifest does not set one.
const DefaultFontSize = 14

// LoadManifest reads a manifest file.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, domain.ErrWorkspaceManifest.WithDetails(path).WithCause(err)
	}
	m, err := ParseManifest(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// ParseManifest decodes manifest YAML. Unknown fields are rejected.
// Empty input is an empty manifest.
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := decodeStrict(data, &m); err != nil {
		return nil, domain.ErrWorkspaceManifest.WithCause(err)
	}

	if err := m.validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

func (m *Manifest) validate() error {
	seenFonts := make(map[string]bool, len(m.Fonts))
	custom := 0

	for i, f := range m.Fonts {
		if f.Name == "" {
			return manifestErr("fonts[%d]: name is required", i)
		}
		if seenFonts[f.Name] {
			return manifestErr("fonts[%d]: duplicate font %q", i, f.Name)
		}
		seenFonts[f.Name] = true
		if f.Custom {
			custom++
		}

		seenUIDs := make(map[string]bool, len(f.Glyphs))
		for j, g := range f.Glyphs {
			if g.UID != "" {
				if seenUIDs[g.UID] {
					return manifestErr("%s.glyphs[%d]: duplicate uid %q", f.Name, j, g.UID)
				}
				seenUIDs[g.UID] = true
			}
			if g.Code <= 0 {
				return manifestErr("%s.glyphs[%d]: code must be positive", f.Name, j)
			}
			if g.CSS == "" {
				return manifestErr("%s.glyphs[%d]: css is required", f.Name, j)
			}
			if f.Custom && (g.SVG == nil || !g.SVG.Valid()) {
				return manifestErr("%s.glyphs[%d]: custom glyphs need an svg path and width", f.Name, j)
			}
			if !f.Custom && g.SVG != nil {
				return manifestErr("%s.glyphs[%d]: svg is only allowed in the custom font", f.Name, j)
			}
		}
	}

	if custom > 1 {
		return manifestErr("at most one custom font is allowed, got %d", custom)
	}
	return nil
}

func manifestErr(format string, args ...any) error {
	return domain.ErrWorkspaceManifest.WithDetails(fmt.Sprintf(format, args...))
}

// decodeStrict decodes YAML, rejecting unknown fields. Empty input leaves
// v untouched.
func decodeStrict(data []byte, v any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
