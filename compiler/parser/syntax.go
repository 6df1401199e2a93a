package parser

import (
	"github.com/flowlang/flowfmt/compiler/lexer"
)

// Status is a snapshot handed back from a syntax's token-consuming loop,
// mirroring the reference implementation's `Status` NamedTuple
// (token, indent, buffer, eof, pythonable).
type Status struct {
	Token      lexer.Token
	Indent     int
	Buffer     string
	EOF        bool
	Pythonable bool
}

// KeywordSyntax tracks one open block-header context: the keyword that
// opened it (e.g. "rule"), its optional name, the grammar it governs, and
// which of its child keywords have already been seen (for duplicate
// detection) — mirrors the reference's KeywordSyntax class.
type KeywordSyntax struct {
	Keyword string
	Name    string
	Line    int
	Grammar Grammar

	// EffectiveIndent is the column depth a child keyword must sit at to
	// belong to this context, i.e. one indent level deeper than the keyword
	// itself.
	EffectiveIndent int

	processedKeywords map[string]bool
}

// NewKeywordSyntax opens a context for keyword at line, governed by grammar,
// nested one level below parentIndent.
func NewKeywordSyntax(keyword, name string, line int, grammar Grammar, parentIndent int) *KeywordSyntax {
	return &KeywordSyntax{
		Keyword:           keyword,
		Name:              name,
		Line:              line,
		Grammar:           grammar,
		EffectiveIndent:   parentIndent + 1,
		processedKeywords: make(map[string]bool),
	}
}

// CheckDuplicate records keyword as seen in this context and reports whether
// it had already been seen before (and is not in the duplicates-allowed
// set).
func (k *KeywordSyntax) CheckDuplicate(keyword string) bool {
	if DuplicatesAllowed(keyword) {
		return false
	}
	if k.processedKeywords[keyword] {
		return true
	}
	k.processedKeywords[keyword] = true
	return false
}

// CheckEmpty reports whether no child keyword was ever recorded — used to
// raise EmptyContextError for a block whose body turned out empty.
func (k *KeywordSyntax) CheckEmpty() bool {
	return len(k.processedKeywords) == 0
}

// spacingTriggers lists the operators the reference's `spacing_triggers`
// dict treats as forcing a single space on both sides, restricted to the
// operators this grammar recognises at the block-header level. Token
// rejoining in this package (needsSpaceBetween) does not consult it.
var spacingTriggers = map[string]bool{
	"=": true, "==": true, "!=": true, "<=": true, ">=": true,
	"+": true, "-": true, "*": true, "/": true, "//": true, "**": true,
	"and": true, "or": true, "not": true, "in": true, "if": true, "else": true,
}

// OperatorSkipSpacing reports whether op is exempt from the spacing-trigger
// rule above, e.g. unary "-" and "*"/"**" used for argument unpacking rather
// than arithmetic — mirrors the reference's `operator_skip_spacing`.
func OperatorSkipSpacing(op string, precededByOperator bool) bool {
	if (op == "-" || op == "+" || op == "*" || op == "**") && precededByOperator {
		return true
	}
	return false
}

// ParamShapeValidator validates and/or reshapes a finished parameter list
// according to its keyword's ParamShape.
type ParamShapeValidator func(keyword string, line int, params []*Parameter) ([]*Parameter, error)

// ParameterSyntax accumulates tokens into a slice of Parameters according to
// a keyword's ParamShape, tracking a bracket stack so that commas and
// newlines inside "()"/"[]"/"{}" don't split parameters, mirroring the
// reference's ParameterSyntax.parse_params / process_token / flush_param.
type ParameterSyntax struct {
	Keyword string
	Shape   ParamShape
	Line    int

	bracketStack []rune
	lambdaDepth  int

	current *Parameter
	params  []*Parameter

	pendingComments []Comment
}

// NewParameterSyntax begins collecting a parameter list for keyword.
func NewParameterSyntax(keyword string, shape ParamShape, line int) *ParameterSyntax {
	return &ParameterSyntax{Keyword: keyword, Shape: shape, Line: line}
}

// NumParams reports how many parameters have been flushed so far.
func (p *ParameterSyntax) NumParams() int { return len(p.params) }

// ProcessToken folds one token into the in-progress parameter list. It
// always returns false: Parser.collectParams finds the end of the list
// itself from the NEWLINE, DEDENT and ENDMARKER tokens it never passes here.
func (p *ParameterSyntax) ProcessToken(tok lexer.Token) (done bool) {
	switch tok.Kind {
	case lexer.OP:
		switch tok.Text {
		case "(", "[", "{":
			p.bracketStack = append(p.bracketStack, []rune(tok.Text)[0])
			p.ensureCurrent(tok)
			p.current.AddElem(tok.Text)
			return false
		case ")", "]", "}":
			if len(p.bracketStack) > 0 {
				p.bracketStack = p.bracketStack[:len(p.bracketStack)-1]
			}
			p.ensureCurrent(tok)
			p.current.AddElem(tok.Text)
			return false
		case ",":
			if len(p.bracketStack) == 0 {
				p.FlushParam()
				return false
			}
			p.ensureCurrent(tok)
			p.current.AddElem(tok.Text)
			return false
		case "=":
			if len(p.bracketStack) == 0 && p.current != nil && !p.current.HasKey() {
				p.current.ToKeyValMode(p.current.Value)
				p.current.Value = ""
				return false
			}
			p.ensureCurrent(tok)
			p.current.AddElem(tok.Text)
			return false
		}
		p.ensureCurrent(tok)
		p.current.AddElem(tok.Text)
		return false
	case lexer.NAME:
		if tok.Text == "lambda" {
			p.lambdaDepth++
		}
		p.ensureCurrent(tok)
		p.current.AddElem(tok.Text)
		return false
	case lexer.COMMENT:
		c := Comment{Text: tok.Text, Line: tok.Start.Line}
		if p.current == nil || !p.current.HasValue() {
			p.pendingComments = append(p.pendingComments, c)
		} else {
			p.current.AddComment(c, true)
		}
		return false
	case lexer.NL:
		return false
	default:
		p.ensureCurrent(tok)
		p.current.AddElem(tok.Text)
		return false
	}
}

func (p *ParameterSyntax) ensureCurrent(tok lexer.Token) {
	if p.current == nil {
		p.current = &Parameter{Line: tok.Start.Line, Column: tok.Start.Column}
		if len(p.pendingComments) > 0 {
			p.current.PreComments = append(p.current.PreComments, p.pendingComments...)
			p.pendingComments = nil
		}
	}
}

// FlushParam closes out the in-progress parameter, appending it to the
// result slice if it carries any content — mirrors the reference's
// `flush_param`.
func (p *ParameterSyntax) FlushParam() {
	if p.current != nil && (p.current.HasValue() || p.current.HasKey() || len(p.current.PreComments) > 0) {
		p.params = append(p.params, p.current)
	}
	p.current = nil
}

// Params returns the parameters collected so far. Comments still pending
// (comment lines after the last parameter) are attached to the last
// parameter as post-comments.
func (p *ParameterSyntax) Params() []*Parameter {
	if len(p.pendingComments) > 0 && len(p.params) > 0 {
		last := p.params[len(p.params)-1]
		last.PostComments = append(last.PostComments, p.pendingComments...)
		p.pendingComments = nil
	}
	return p.params
}
