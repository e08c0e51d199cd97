package archive

import (
	"testing"

	"github.com/sebdah/goldie/v2"
)

// TestFormatHeaderGolden pins the exact on-disk bytes of a fresh archive's
// format header, catching accidental drift in the magic string, field
// order, or endianness.
//
// Regenerate with: go test ./internal/archive -update
func TestFormatHeaderGolden(t *testing.T) {
	hdr := marshalHeader()

	g := goldie.New(t, goldie.WithFixtureDir("testdata/golden"))
	g.Assert(t, "format_header", hdr[:])
}
