package parser

import (
	"fmt"

	"github.com/flowlang/flowfmt/compiler/lexer"
	"github.com/flowlang/flowfmt/internal/ferrors"
)

// Parser drives the token stream through a stack of KeywordSyntax contexts,
// dispatching to ParameterSyntax whenever a keyword opens a parameter list,
// and emitting the Event stream the formatter consumes. It mirrors the
// reference implementation's Parser(ABC) context_stack / process_keyword /
// context_exit machinery, generalized from the teacher's single-pass
// recursive-descent parser into a stack-of-contexts driver (see
// SPEC_FULL.md's compiler/parser entry).
type Parser struct {
	tokens []lexer.Token
	pos    int

	indentLevel int
	atLineStart bool

	contextStack []*KeywordSyntax
	globalSeen   map[string]bool

	events []Event
	errors []error

	scriptBuf      []lexer.Token
	scriptBufStart int
}

// New creates a Parser over an already-tokenized source.
func New(tokens []lexer.Token) *Parser {
	return &Parser{
		tokens:      tokens,
		atLineStart: true,
		globalSeen:  make(map[string]bool),
	}
}

// Parse runs the driver to completion, returning the event stream and any
// errors accumulated along the way. Parsing does not stop at the first
// error: it records the error, attempts to resynchronize at the next
// keyword-shaped line, and continues, so a single file reports every
// problem it can find in one pass.
func (p *Parser) Parse() ([]Event, []error) {
	for {
		tok, ok := p.peek()
		if !ok {
			p.flushScript(p.currentLine())
			p.closeRemainingContexts()
			p.events = append(p.events, Event{Kind: Eof, Line: p.currentLine()})
			return p.events, p.errors
		}

		switch tok.Kind {
		case lexer.INDENT:
			p.indentLevel++
			p.advance()
			continue
		case lexer.DEDENT:
			p.indentLevel--
			p.advance()
			p.closeContextsPast(p.indentLevel)
			continue
		case lexer.NEWLINE:
			p.atLineStart = true
			p.bufferScriptToken(tok)
			p.advance()
			continue
		case lexer.NL, lexer.ENCODING:
			p.advance()
			continue
		case lexer.ENDMARKER:
			p.advance()
			continue
		}

		if p.atLineStart && tok.Kind == lexer.NAME {
			if entry, grammar, ok := p.lookupKeyword(tok.Text); ok {
				p.atLineStart = false
				p.handleKeyword(tok, entry, grammar)
				continue
			}
		}

		p.atLineStart = false
		p.bufferScriptToken(tok)
		p.advance()
	}
}

func (p *Parser) currentGrammar() Grammar {
	if len(p.contextStack) == 0 {
		return GlobalGrammar
	}
	return p.contextStack[len(p.contextStack)-1].Grammar
}

func (p *Parser) lookupKeyword(text string) (VocabEntry, Grammar, bool) {
	grammar := p.currentGrammar()
	vocab := VocabularyFor(grammar)
	if entry, ok := vocab.Get(text); ok {
		return entry, grammar, true
	}
	if grammar != GlobalGrammar {
		if entry, ok := GlobalVocabulary.Get(text); ok {
			return entry, GlobalGrammar, true
		}
	}
	return VocabEntry{}, grammar, false
}

func (p *Parser) handleKeyword(tok lexer.Token, entry VocabEntry, grammar Grammar) {
	p.flushScript(tok.Start.Line)
	keyword := tok.Text

	if keyword == "use" {
		p.advance()
		p.handleUseRule(tok)
		return
	}
	p.advance()

	// A block keyword nested inside another block (e.g. "run:" in a rule)
	// counts as one of that block's children; top-level blocks are not
	// recorded here.
	if !entry.OpensBlock || len(p.contextStack) > 0 {
		p.recordKeywordSeen(keyword, tok.Start.Line)
	}

	name := ""
	if entry.Named {
		if n, ok := p.peek(); ok {
			if n.Kind == lexer.NAME {
				name = n.Text
				p.advance()
			} else if !(n.Kind == lexer.OP && n.Text == ":") {
				p.errors = append(p.errors, ferrors.NewNamedKeywordError(tok.Start.Line, keyword, n.Text))
				// Resync to the colon (or end of line) so the generic
				// colon check below doesn't immediately refire for the
				// same malformed name.
				for {
					t, ok := p.peek()
					if !ok || t.Kind == lexer.NEWLINE || (t.Kind == lexer.OP && t.Text == ":") {
						break
					}
					p.advance()
				}
			}
		}
	}

	if n, ok := p.peek(); !ok || n.Kind != lexer.OP || n.Text != ":" {
		got := "end of input"
		if ok {
			got = n.Text
		}
		p.errors = append(p.errors, ferrors.NewSyntaxError(tok.Start.Line,
			fmt.Sprintf("Colon (not %q) expected after %q", got, keyword)))
		return
	}
	p.advance() // consume ':'

	if entry.OpensBlock {
		if !p.expectNewlineAfterColon(tok.Start.Line) {
			return
		}
		ctx := NewKeywordSyntax(keyword, name, tok.Start.Line, p.blockGrammarFor(keyword, grammar), p.indentLevel)
		p.contextStack = append(p.contextStack, ctx)
		p.events = append(p.events, Event{Kind: OpenBlock, Keyword: keyword, Name: name, Line: tok.Start.Line})
		return
	}

	params, err := p.collectParams(keyword, entry)
	if err != nil {
		p.errors = append(p.errors, err)
	}
	// collectParams always stops at a line boundary (inline NEWLINE, a
	// DEDENT closing an indented list, or EOF), so the driver is back at
	// the start of a logical line regardless of which one it was.
	p.atLineStart = true
	p.events = append(p.events, Event{Kind: Parameters, Keyword: keyword, Line: tok.Start.Line, Params: params})
}

// handleUseRule parses the compound "use rule <names> from <module> [as
// <prefix>] [exclude <names>] [with:]" directive (grounded on the reference
// test suite's test_use_rule_with_block), a shape no other keyword has: its
// clause is free-form text terminated either by a bare NEWLINE (no overrides
// — a legitimately bodyless directive) or by a trailing "with:" that opens
// an indented UseRuleGrammar block of override parameters.
func (p *Parser) handleUseRule(useTok lexer.Token) {
	var clause []lexer.Token
	hasBlock := false
	for {
		t, ok := p.peek()
		if !ok || t.Kind == lexer.NEWLINE {
			break
		}
		if t.Kind == lexer.OP && t.Text == ":" {
			hasBlock = true
			p.advance()
			break
		}
		clause = append(clause, t)
		p.advance()
	}

	name := reconstructScript(clause)

	if !hasBlock {
		p.events = append(p.events, Event{Kind: OpenBlock, Keyword: "use", Name: name, Line: useTok.Start.Line, Inline: true})
		p.events = append(p.events, Event{Kind: CloseBlock, Keyword: "use", Name: name, Line: useTok.Start.Line, Inline: true})
		return
	}

	p.events = append(p.events, Event{Kind: OpenBlock, Keyword: "use", Name: name, Line: useTok.Start.Line})

	ctx := NewKeywordSyntax("use", name, useTok.Start.Line, UseRuleGrammar, p.indentLevel)
	p.contextStack = append(p.contextStack, ctx)
}

// expectNewlineAfterColon enforces spec §4.3's rule that a block header's
// colon must be followed by a NEWLINE (an inline trailing COMMENT is
// allowed in between) — "rule a: input: \"f\"" is not a legal way to write
// a one-line rule body, unlike an InlineSingleParamShape keyword.
func (p *Parser) expectNewlineAfterColon(line int) bool {
	t, ok := p.peek()
	if !ok || t.Kind == lexer.NEWLINE {
		return true
	}
	if t.Kind == lexer.COMMENT {
		if next, ok := p.peekAt(1); !ok || next.Kind == lexer.NEWLINE {
			return true
		}
	}
	p.errors = append(p.errors, ferrors.NewSyntaxError(line, "Newline expected"))
	return false
}

// blockGrammarFor maps a block-opening keyword to the grammar that governs
// its own body.
func (p *Parser) blockGrammarFor(keyword string, outer Grammar) Grammar {
	switch keyword {
	case "rule", "checkpoint":
		return RuleGrammar
	case "subworkflow":
		return SubworkflowGrammar
	case "module":
		return ModuleGrammar
	case "use":
		return UseRuleGrammar
	default:
		return outer
	}
}

func (p *Parser) recordKeywordSeen(keyword string, line int) {
	if len(p.contextStack) == 0 {
		if p.globalSeen[keyword] && !DuplicatesAllowed(keyword) {
			p.errors = append(p.errors, ferrors.NewDuplicateKeywordError(line, keyword))
		}
		p.globalSeen[keyword] = true
		return
	}
	top := p.contextStack[len(p.contextStack)-1]
	if top.CheckDuplicate(keyword) {
		p.errors = append(p.errors, ferrors.NewDuplicateKeywordError(line, keyword))
	}
}

// collectParams dispatches to ParameterSyntax for a non-block-opening
// keyword and validates the result against its ParamShape. Indentation and
// line-termination are handled here rather than inside ParameterSyntax,
// since only the driver knows the surrounding indent level: a parameter
// list may be written inline on the keyword's own line ("threads: 4") or as
// an indented block below it ("input:\n    \"a.txt\",\n    \"b.txt\"\n"),
// and a bracket left open carries the list across newlines in either form.
func (p *Parser) collectParams(keyword string, entry VocabEntry) ([]*Parameter, error) {
	line := p.currentLine()
	ps := NewParameterSyntax(keyword, entry.Shape, line)
	sawIndent := false
	atParamLineStart := false

	// siblingVocab/enclosingIndent ground spec §4.4's over-indented
	// recognised keyword check: a keyword's param list is only ever
	// mistaken for a nested block by a reader when one of its own list
	// elements is, syntactically, a legal sibling keyword of the
	// enclosing block (e.g. "output" inside "input"'s list) sitting one
	// indent level deeper than siblings actually belong.
	siblingVocab := VocabularyFor(p.currentGrammar())
	enclosingIndent := 0
	if len(p.contextStack) > 0 {
		enclosingIndent = p.contextStack[len(p.contextStack)-1].EffectiveIndent
	}

	for {
		tok, ok := p.peek()
		if !ok {
			ps.FlushParam()
			break
		}
		switch tok.Kind {
		case lexer.INDENT:
			sawIndent = true
			p.indentLevel++
			p.advance()
			atParamLineStart = true
			continue
		case lexer.DEDENT:
			p.indentLevel--
			p.advance()
			ps.FlushParam()
			return validateShape(keyword, line, entry.Shape, ps.Params())
		case lexer.ENDMARKER:
			ps.FlushParam()
			return validateShape(keyword, line, entry.Shape, ps.Params())
		case lexer.NEWLINE:
			if len(ps.bracketStack) > 0 {
				p.advance()
				continue
			}
			p.advance()
			if sawIndent {
				// Each newline-separated line within an indented list is
				// its own parameter, the same as a comma would be.
				ps.FlushParam()
				atParamLineStart = true
				continue
			}
			// Still on the keyword's own header line: a following INDENT
			// means the list is written as an indented block below it
			// (nothing flushed yet); anything else means this newline
			// ended an inline, single-line list.
			if next, ok := p.peek(); ok && next.Kind == lexer.INDENT {
				sawIndent = true
				p.indentLevel++
				p.advance()
				atParamLineStart = true
				continue
			}
			ps.FlushParam()
			return validateShape(keyword, line, entry.Shape, ps.Params())
		}

		// Only a NAME immediately followed by ':' reads as a nested keyword
		// header; a bare name or a "name=value" list entry (e.g. a
		// legitimately keyed param that happens to share its key with a
		// keyword, like "threads=4" inside a "params:" list) is not this
		// mistake and must not be flagged.
		if atParamLineStart && sawIndent && tok.Kind == lexer.NAME && p.indentLevel > enclosingIndent {
			if next, ok := p.peekAt(1); ok && next.Kind == lexer.OP && next.Text == ":" {
				if _, recognised := siblingVocab.Get(tok.Text); recognised {
					ps.FlushParam()
					p.errors = append(p.errors, ferrors.NewInvalidParameterSyntax(tok.Start.Line,
						"Over-indented recognised keyword \""+tok.Text+"\""))
					return validateShape(keyword, line, entry.Shape, ps.Params())
				}
			}
		}
		atParamLineStart = false

		done := ps.ProcessToken(tok)
		p.advance()
		if done {
			break
		}
	}
	return validateShape(keyword, line, entry.Shape, ps.Params())
}

func (p *Parser) flushScript(untilLine int) {
	if len(p.scriptBuf) == 0 {
		return
	}
	p.events = append(p.events, Event{
		Kind:   FlushScript,
		Line:   p.scriptBuf[0].Start.Line,
		Script: reconstructScript(p.scriptBuf),
	})
	p.scriptBuf = nil
}

func (p *Parser) bufferScriptToken(tok lexer.Token) {
	if tok.Kind == lexer.NEWLINE && len(p.scriptBuf) == 0 {
		// A bare newline terminating a keyword's own header line (or a
		// blank line between blocks) carries no script content worth
		// flushing on its own.
		return
	}
	if tok.Kind == lexer.COMMENT || tok.Kind == lexer.NEWLINE || tok.NotEmpty() {
		p.scriptBuf = append(p.scriptBuf, tok)
	}
}

func (p *Parser) closeContextsPast(indentLevel int) {
	for len(p.contextStack) > 0 {
		top := p.contextStack[len(p.contextStack)-1]
		if top.EffectiveIndent <= indentLevel {
			break
		}
		p.closeContext(top)
	}
}

func (p *Parser) closeRemainingContexts() {
	for len(p.contextStack) > 0 {
		p.closeContext(p.contextStack[len(p.contextStack)-1])
	}
}

func (p *Parser) closeContext(ctx *KeywordSyntax) {
	// Script buffered since the last keyword belongs to the block being
	// closed. Blocks other than rule/checkpoint/subworkflow/module/use
	// (run, onstart, ...) hold scripting code, so they need no keyword.
	p.flushScript(p.currentLine())
	acceptsScript := !IsPossiblyNamed(ctx.Keyword) && ctx.Keyword != "use"
	if !acceptsScript && ctx.CheckEmpty() {
		p.errors = append(p.errors, ferrors.NewEmptyContextError(ctx.Line, ctx.Keyword))
	}
	p.contextStack = p.contextStack[:len(p.contextStack)-1]
	p.events = append(p.events, Event{Kind: CloseBlock, Keyword: ctx.Keyword, Name: ctx.Name, Line: ctx.Line})
}

func (p *Parser) currentLine() int {
	if tok, ok := p.peek(); ok {
		return tok.Start.Line
	}
	if len(p.tokens) > 0 {
		return p.tokens[len(p.tokens)-1].Start.Line
	}
	return 0
}

func (p *Parser) peek() (lexer.Token, bool) {
	if p.pos >= len(p.tokens) {
		return lexer.Token{}, false
	}
	return p.tokens[p.pos], true
}

// peekAt looks offset tokens ahead of the cursor without consuming anything.
func (p *Parser) peekAt(offset int) (lexer.Token, bool) {
	idx := p.pos + offset
	if idx < 0 || idx >= len(p.tokens) {
		return lexer.Token{}, false
	}
	return p.tokens[idx], true
}

func (p *Parser) advance() {
	if p.pos < len(p.tokens) {
		p.pos++
	}
}

// reconstructScript rejoins a run of raw tokens into embedded-scripting-
// language source text: each NEWLINE token becomes a line break, and
// adjacent fragments on a line are separated as needsSpaceBetween decides
// (the rule shared with Parameter.AddElem).
func reconstructScript(tokens []lexer.Token) string {
	var out string
	for _, tok := range tokens {
		if tok.Kind == lexer.NEWLINE {
			out += "\n"
			continue
		}
		if out == "" {
			out = tok.Text
			continue
		}
		if needsSpaceBetween(out, tok.Text) && out[len(out)-1] != '\n' {
			out += " " + tok.Text
		} else {
			out += tok.Text
		}
	}
	return out
}
