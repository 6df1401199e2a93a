package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiffReportsNoChangeWhenIdentical(t *testing.T) {
	d := Diff("a.smk", "same\n", "same\n")
	assert.False(t, d.Changed)
	assert.Empty(t, d.Compact())
	assert.Empty(t, d.Unified())
}

func TestDiffCompactHighlightsChangedLines(t *testing.T) {
	d := Diff("a.smk", "rule a:\n    output: 'a'\n", "rule a:\n    output: \"a\"\n")
	assert.True(t, d.Changed)
	assert.Contains(t, d.Compact(), "a.smk")
}

func TestDiffUnifiedHasHunkHeader(t *testing.T) {
	d := Diff("a.smk", "x\n", "y\n")
	out := d.Unified()
	assert.Contains(t, out, "--- a.smk")
	assert.Contains(t, out, "+++ a.smk")
	assert.Contains(t, out, "@@")
}

func TestExitCodeValues(t *testing.T) {
	assert.Equal(t, ExitCode(0), NoChange)
	assert.Equal(t, ExitCode(1), WouldChange)
	assert.Equal(t, ExitCode(123), Error)
}
