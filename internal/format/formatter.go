// Package format implements the workflow-language formatter (spec §4.6):
// it consumes the parser's event stream directly rather than building and
// walking an AST, per spec §9's "Polymorphic formatter" redesign note.
package format

import (
	"errors"
	"fmt"
	"strings"

	"github.com/flowlang/flowfmt/compiler/lexer"
	"github.com/flowlang/flowfmt/compiler/parser"
	"github.com/flowlang/flowfmt/internal/scriptfmt"
	"go.uber.org/zap"
)

// DefaultLineLength mirrors the reference implementation's
// `DEFAULT_LINE_LENGTH = 88` (itself inherited from Black's default).
const DefaultLineLength = 88

// Config controls formatting behavior.
type Config struct {
	LineLength int
	// Script reformats embedded scripting-language source found between
	// block headers. Defaults to scriptfmt.Default when nil.
	Script scriptfmt.Formatter
	// Logger receives structured warnings (spec §6's emit_log). Defaults to
	// a no-op logger when nil, matching the teacher's LSP server's
	// zap.NewNop() fallback for library embedding.
	Logger *zap.Logger
}

func (c Config) withDefaults() Config {
	if c.LineLength <= 0 {
		c.LineLength = DefaultLineLength
	}
	if c.Script == nil {
		c.Script = scriptfmt.Default
	}
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
	return c
}

// Formatter renders a token/event stream back into formatted source text.
type Formatter struct {
	cfg Config

	buf         strings.Builder
	indentLevel int

	// blank-line state machine, after the reference's add_newlines
	// (from_rule / first; there is no from_comment state here).
	firstEvent bool
	fromRule   bool
}

// New creates a Formatter. A zero Config is valid and fills in defaults.
func New(cfg Config) *Formatter {
	return &Formatter{cfg: cfg.withDefaults(), firstEvent: true}
}

// Format tokenizes, parses, and reformats source in one pass, returning the
// formatted text. Parser errors are returned joined via errors.Join; when
// non-nil, the returned text reflects best-effort recovery (the parser
// resynchronizes after each error) and should not be treated as
// authoritative.
func (f *Formatter) Format(source string) (string, error) {
	f.buf.Reset()
	f.indentLevel = 0
	f.firstEvent = true
	f.fromRule = false

	l := lexer.New(source, true)
	tokens, lexErrs := l.ScanTokens()

	p := parser.New(tokens)
	events, parseErrs := p.Parse()

	for _, e := range events {
		f.renderEvent(e)
	}

	var all []error
	for _, e := range lexErrs {
		all = append(all, e)
	}
	all = append(all, parseErrs...)

	out := f.buf.String()
	if !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	if len(all) == 0 {
		return out, nil
	}
	return out, errors.Join(all...)
}

func (f *Formatter) renderEvent(e parser.Event) {
	switch e.Kind {
	case parser.FlushScript:
		f.renderScript(e.Script)
	case parser.OpenBlock:
		f.renderOpenBlock(e)
	case parser.CloseBlock:
		if e.Inline {
			f.fromRule = true
			return
		}
		f.indentLevel--
		f.fromRule = true
	case parser.Parameters:
		f.renderParameters(e)
	case parser.Eof:
		// nothing to render; presence of the event just terminates the loop.
	}
}

func (f *Formatter) renderScript(script string) {
	script = strings.TrimSpace(script)
	if script == "" {
		return
	}
	f.blankLineBefore(false)
	formatted, err := f.cfg.Script.Format(script, f.cfg.LineLength)
	if err != nil {
		f.cfg.Logger.Warn("embedded script formatting failed, keeping source as-is",
			zap.String("error", err.Error()))
		formatted = script + "\n"
	}
	for _, line := range strings.Split(strings.TrimRight(formatted, "\n"), "\n") {
		f.writeIndented(line)
	}
	f.fromRule = false
}

func (f *Formatter) renderOpenBlock(e parser.Event) {
	f.blankLineBefore(true)
	header := e.Keyword
	if e.Name != "" {
		header += " " + e.Name
	}
	if !e.Inline {
		header += ":"
	}
	f.writeIndented(header)
	f.fromRule = false
	if !e.Inline {
		f.indentLevel++
	}
}

func (f *Formatter) renderParameters(e parser.Event) {
	rendered := make([]string, 0, len(e.Params))
	for _, p := range e.Params {
		rendered = append(rendered, renderOneParam(p))
	}

	inline := e.Keyword + ": " + strings.Join(rendered, ", ")
	if len(rendered) <= 1 && f.fits(inline) {
		f.writeIndented(inline)
		f.fromRule = false
		return
	}

	f.writeIndented(e.Keyword + ":")
	f.indentLevel++
	for i, r := range rendered {
		line := r
		if i < len(rendered)-1 || len(rendered) > 1 {
			line += ","
		}
		f.writeParamLine(line, e.Params[i])
	}
	f.indentLevel--
	f.fromRule = false
}

func renderOneParam(p *parser.Parameter) string {
	if p.HasKey() {
		return fmt.Sprintf("%s=%s", p.Key, p.Value)
	}
	return p.Value
}

func (f *Formatter) writeParamLine(line string, p *parser.Parameter) {
	for _, c := range p.PreComments {
		f.writeIndented("# " + strings.TrimPrefix(strings.TrimSpace(c.Text), "#"))
	}
	for _, c := range p.PostComments {
		line += "  # " + strings.TrimPrefix(strings.TrimSpace(c.Text), "#")
	}
	f.writeIndented(line)
}

func (f *Formatter) fits(line string) bool {
	return len(line)+4*f.indentLevel <= f.cfg.LineLength
}

// blankLineBefore enforces spec §8's blank-line policy ahead of a new block
// header or scripting run that follows a previous rule-like block, mirroring
// the reference's add_newlines state machine: a block header
// (rule/checkpoint/module/…) following a rule-like block is separated by
// exactly two blank lines, free-form scripting following one is separated by
// exactly one, and nothing is ever emitted at the very top of the file.
func (f *Formatter) blankLineBefore(isBlockHeader bool) {
	if f.firstEvent {
		f.firstEvent = false
		return
	}
	if !f.fromRule {
		return
	}
	if isBlockHeader {
		f.buf.WriteString("\n\n")
	} else {
		f.buf.WriteByte('\n')
	}
}

func (f *Formatter) writeIndented(line string) {
	if line == "" {
		f.buf.WriteByte('\n')
		return
	}
	f.buf.WriteString(strings.Repeat("    ", f.indentLevel))
	f.buf.WriteString(line)
	f.buf.WriteByte('\n')
}
