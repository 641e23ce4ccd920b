package testdiff

import (
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestUnifiedEmptyWhenEqual(t *testing.T) {
	assert.Equal(t, "", Unified("case", "same\n", "same\n"))
}

func TestUnifiedReportsDifference(t *testing.T) {
	d := Unified("case", "line one\nline two\n", "line one\nline CHANGED\n")
	assert.Contains(t, d, "line CHANGED")
	assert.Contains(t, d, "case.want")
	assert.Contains(t, d, "case.got")
}
