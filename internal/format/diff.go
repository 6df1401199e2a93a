package format

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// ExitCode is the process exit status the CLI reports, mirroring the
// reference implementation's `ExitCode` enum in `diff.py` (spec §6
// already names these three codes in prose; this gives them a type, per
// SPEC_FULL.md's supplemented-features list).
type ExitCode int

const (
	NoChange    ExitCode = 0
	WouldChange ExitCode = 1
	Error       ExitCode = 123
)

// DiffResult is the outcome of comparing a file's original and formatted
// text, grounded on the teacher's internal/format/diff.go DiffResult shape.
type DiffResult struct {
	Path      string
	Original  string
	Formatted string
	Changed   bool
}

// Diff compares original against formatted for path.
func Diff(path, original, formatted string) DiffResult {
	return DiffResult{Path: path, Original: original, Formatted: formatted, Changed: original != formatted}
}

// Compact renders a minimal changed-lines-only view, colorized the way the
// teacher's diff.go highlights additions/removals. The CLI does not print
// it; --diff prints Unified.
func (d DiffResult) Compact() string {
	if !d.Changed {
		return ""
	}
	origLines := strings.Split(d.Original, "\n")
	fmtLines := strings.Split(d.Formatted, "\n")

	var b strings.Builder
	fmt.Fprintf(&b, "--- %s\n", d.Path)
	for i := 0; i < max(len(origLines), len(fmtLines)); i++ {
		var o, f string
		if i < len(origLines) {
			o = origLines[i]
		}
		if i < len(fmtLines) {
			f = fmtLines[i]
		}
		if o == f {
			continue
		}
		if o != "" {
			b.WriteString(color.RedString("- %s\n", o))
		}
		if f != "" {
			b.WriteString(color.GreenString("+ %s\n", f))
		}
	}
	return b.String()
}

// Unified renders a standard unified diff (reference `diff.py`'s
// `difflib.unified_diff`, selected by the CLI's --diff flag per
// SPEC_FULL.md).
func (d DiffResult) Unified() string {
	if !d.Changed {
		return ""
	}
	origLines := strings.Split(d.Original, "\n")
	fmtLines := strings.Split(d.Formatted, "\n")

	var b strings.Builder
	fmt.Fprintf(&b, "--- %s (original)\n", d.Path)
	fmt.Fprintf(&b, "+++ %s (formatted)\n", d.Path)
	fmt.Fprintf(&b, "@@ -1,%d +1,%d @@\n", len(origLines), len(fmtLines))
	for _, l := range origLines {
		b.WriteString(color.RedString("-%s\n", l))
	}
	for _, l := range fmtLines {
		b.WriteString(color.GreenString("+%s\n", l))
	}
	return b.String()
}
