// Package scriptfmt defines the boundary between the workflow-language
// formatter and whatever tool reformats the scripting code embedded in it
// (spec §4.6, §6, §9). The formatter never reimplements a scripting-language
// formatter; it delegates to a Formatter and trusts the result verbatim.
package scriptfmt

import (
	"strings"

	"github.com/flowlang/flowfmt/compiler/lexer"
)

// Formatter reformats a chunk of embedded scripting-language source,
// returning the formatted text or an error if the chunk isn't valid. Callers
// supply a real implementation (e.g. a wrapper around an external
// formatting tool); Default is a minimal, dependency-free fallback.
type Formatter interface {
	Format(source string, lineLength int) (string, error)
}

// FormatterFunc adapts a function to the Formatter interface.
type FormatterFunc func(source string, lineLength int) (string, error)

func (f FormatterFunc) Format(source string, lineLength int) (string, error) {
	return f(source, lineLength)
}

// Default is a minimal token-respacing canonicalizer: it re-lexes the
// source with compiler/lexer and rejoins the tokens using the same
// spacing-trigger rules the parser driver itself uses (spec §4.3), rather
// than reproducing the source's original whitespace exactly. It does not
// reindent, reflow long lines, or reorder anything — a real external
// scripting-language formatter is expected to replace it. No example repo
// in the corpus ships a formatter for this invented embedded grammar, so
// this fallback is the one standard-library-only component in the module
// (see DESIGN.md).
var Default Formatter = FormatterFunc(defaultFormat)

func defaultFormat(source string, lineLength int) (string, error) {
	_ = lineLength
	l := lexer.New(source, true)
	tokens, errs := l.ScanTokens()
	if len(errs) > 0 {
		return "", errs[0]
	}

	var b strings.Builder
	var last lexer.Token
	haveLast := false
	indent := 0

	for _, tok := range tokens {
		switch tok.Kind {
		case lexer.ENCODING:
			continue
		case lexer.ENDMARKER:
			continue
		case lexer.NEWLINE:
			b.WriteByte('\n')
			haveLast = false
			continue
		case lexer.NL:
			continue
		case lexer.INDENT:
			indent++
			continue
		case lexer.DEDENT:
			indent--
			continue
		}
		if !haveLast {
			b.WriteString(strings.Repeat("    ", max(indent, 0)))
		} else if spacingRequired(last, tok) {
			b.WriteByte(' ')
		}
		b.WriteString(tok.Text)
		last = tok
		haveLast = true
	}
	return strings.TrimRight(b.String(), "\n") + "\n", nil
}

func spacingRequired(left, right lexer.Token) bool {
	noSpaceAfter := map[string]bool{"(": true, "[": true, "{": true}
	noSpaceBefore := map[string]bool{")": true, "]": true, "}": true, ",": true, ":": true}
	if noSpaceAfter[left.Text] || noSpaceBefore[right.Text] {
		return false
	}
	if left.Kind == lexer.COMMENT {
		return true
	}
	return true
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
