package workspace

import "testing"

const testManifest = `
settings:
  font_name: myicons
  font_size: 16
fonts:
  - name: fontawesome
    glyphs:
      - {uid: fa-glass, code: 0xf000, css: glass}
      - {uid: fa-music, code: 0xf001, css: music}
      - {code: 0xf002, css: search}
  - name: entypo
    collapsed: true
    glyphs:
      - {uid: en-note, code: 0xe800, css: note}
  - name: custom_icons
    custom: true
    glyphs:
      - {uid: c-logo, code: 0xe800, css: logo, svg: {path: "M0 0h10v10z", width: 1000}}
`

func newTestWorkspace(t *testing.T) *Workspace {
	t.Helper()

	m, err := ParseManifest([]byte(testManifest))
	if err != nil {
		t.Fatalf("ParseManifest() error = %v", err)
	}
	w, err := New(m, "custom_icons")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return w
}

func intPtr(v int) *int           { return &v }
func strPtr(v string) *string     { return &v }
func boolPtr(v bool) *bool        { return &v }
func floatPtr(v float64) *float64 { return &v }
