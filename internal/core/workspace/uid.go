package workspace

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/oklog/ulid/v2"
	"github.com/spaolacci/murmur3"
)

// NewUID returns a fresh uid for a user-authored glyph.
func NewUID() string {
	return strings.ToLower(ulid.Make().String())
}

// DeriveUID returns the uid of a font-file glyph that the manifest does not
// name explicitly. The same font, css name and code always give the same
// uid, so saved sessions keep matching across runs.
func DeriveUID(font, css string, code int) string {
	h1, h2 := murmur3.Sum128([]byte(font + "/" + css + "/" + strconv.Itoa(code)))
	return fmt.Sprintf("%016x%016x", h1, h2)
}
