// Package testdiff is a small golden-file diff helper built on
// github.com/hexops/gotextdiff rather than a hand-rolled string compare,
// so a mismatch reports a readable unified diff instead of two opaque
// blobs. Only its own tests call it; the bundled grammar tests compare
// parsed values with assert.
package testdiff

import (
	"fmt"

	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"
)

// Unified returns a unified diff between want and got, empty if they are
// identical.
func Unified(name, want, got string) string {
	if want == got {
		return ""
	}
	edits := myers.ComputeEdits(span.URIFromPath(name), want, got)
	return fmt.Sprint(gotextdiff.ToUnified(name+".want", name+".got", want, edits))
}

// Require fails t with a unified diff if want != got.
func Require(t interface{ Fatalf(string, ...any) }, name, want, got string) {
	if d := Unified(name, want, got); d != "" {
		t.Fatalf("%s mismatch:\n%s", name, d)
	}
}
