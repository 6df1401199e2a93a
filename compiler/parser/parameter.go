package parser

import "strings"

// Comment is a single comment line attached to a Parameter, either above it
// (PreComments) or trailing it on the same source line (PostComments) —
// mirrors the reference's Parameter.pre_comments / post_comments lists.
type Comment struct {
	Text string
	Line int
}

// Parameter is one entry of a parameter list (spec §4.2): either bare
// ("a.txt") or key=value ("threads=4"), with any comments attached to it and
// its exact source position for diagnostics.
type Parameter struct {
	Line   int
	Column int

	Key   string
	Value string

	PreComments  []Comment
	PostComments []Comment

	// Inline records whether the parameter list as a whole was written on
	// the keyword's own line rather than an indented block below it.
	Inline bool
}

// HasKey reports whether the parameter was written "key=value".
func (p *Parameter) HasKey() bool { return p.Key != "" }

// HasValue reports whether the parameter carries any value text at all.
func (p *Parameter) HasValue() bool { return strings.TrimSpace(p.Value) != "" }

// AddComment appends a pre- or post-comment to the parameter.
func (p *Parameter) AddComment(c Comment, post bool) {
	if post {
		p.PostComments = append(p.PostComments, c)
	} else {
		p.PreComments = append(p.PreComments, c)
	}
}

// AddElem appends text to the parameter's value, inserting a single space
// separator where needsSpaceBetween asks for one — mirrors the reference's
// `add_elem`, used while tokens accumulate into a parameter's value before
// it is flushed.
func (p *Parameter) AddElem(text string) {
	if text == "" {
		return
	}
	if p.Value == "" {
		p.Value = text
		return
	}
	if needsSpaceBetween(p.Value, text) {
		p.Value += " " + text
	} else {
		p.Value += text
	}
}

// needsSpaceBetween decides whether a space goes between two adjacent raw
// token fragments when they are re-joined: any two fragments are separated
// except after an opening bracket or before a closing bracket, a comma or a
// colon. A call's "(", a "[" subscript and "." are therefore spaced too
// ("f (x)", "a . b").
func needsSpaceBetween(left, right string) bool {
	if left == "" || right == "" {
		return false
	}
	l := rune(left[len(left)-1])
	r := rune(right[0])
	identLike := func(r rune) bool {
		return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
	}
	if identLike(l) && identLike(r) {
		return true
	}
	noSpaceBefore := map[rune]bool{',': true, ')': true, ']': true, '}': true, ':': true}
	noSpaceAfter := map[rune]bool{'(': true, '[': true, '{': true}
	if noSpaceBefore[r] || noSpaceAfter[l] {
		return false
	}
	return true
}

// ToKeyValMode splits a bare "name = value"-shaped param into Key/Value once
// the parser determines it is in fact a keyword argument, mirroring the
// reference's Parameter.to_key_val_mode (which additionally probes the key
// with `exec` to confirm it is a legal identifier — that check lives in the
// parameter-list syntax, since it needs the embedded-language validator).
func (p *Parameter) ToKeyValMode(key string) {
	p.Key = strings.TrimSpace(key)
}
