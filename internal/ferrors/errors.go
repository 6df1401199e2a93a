// Package ferrors defines the typed error taxonomy the formatting engine
// raises when it cannot make sense of, or safely reformat, its input. Every
// parse/format type here carries the source line it applies to, so a caller
// can render "L<n>: <message>" (spec's error-locality property); the
// configuration errors (MalformattedToml, InvalidBlackConfiguration) and the
// StopParsing sentinel carry no line.
package ferrors

import "fmt"

// located is embedded by every parse/format error in this package to provide
// Line().
type located struct {
	line int
}

// Line returns the 1-based source line the error applies to.
func (l located) Line() int { return l.line }

// SyntaxError is a generic grammar violation: a token appeared where the
// current context's vocabulary does not allow it.
type SyntaxError struct {
	located
	Message string
}

func NewSyntaxError(line int, message string) *SyntaxError {
	return &SyntaxError{located{line}, message}
}

func (e *SyntaxError) Error() string { return fmt.Sprintf("L%d: %s", e.line, e.Message) }

// NamedKeywordError reports a possibly-named keyword (rule/checkpoint/
// subworkflow/module) given an identifier that is not a valid name.
type NamedKeywordError struct {
	located
	Keyword string
	Got     string
}

func NewNamedKeywordError(line int, keyword, got string) *NamedKeywordError {
	return &NamedKeywordError{located{line}, keyword, got}
}

func (e *NamedKeywordError) Error() string {
	return fmt.Sprintf("L%d: %q is not a valid identifier for %q", e.line, e.Got, e.Keyword)
}

// DuplicateKeywordError reports a keyword reused within a context where
// duplicates are not allowed (see parser.DuplicatesAllowed).
type DuplicateKeywordError struct {
	located
	Keyword string
}

func NewDuplicateKeywordError(line int, keyword string) *DuplicateKeywordError {
	return &DuplicateKeywordError{located{line}, keyword}
}

func (e *DuplicateKeywordError) Error() string {
	return fmt.Sprintf("L%d: keyword %q used twice in the same context", e.line, e.Keyword)
}

// EmptyContextError reports a block-opening keyword (rule:, onstart:, …)
// whose body contained nothing at all.
type EmptyContextError struct {
	located
	Keyword string
}

func NewEmptyContextError(line int, keyword string) *EmptyContextError {
	return &EmptyContextError{located{line}, keyword}
}

func (e *EmptyContextError) Error() string {
	return fmt.Sprintf("L%d: %q has an empty body", e.line, e.Keyword)
}

// NoParametersError reports a keyword requiring at least one parameter that
// received none.
type NoParametersError struct {
	located
	Keyword string
}

func NewNoParametersError(line int, keyword string) *NoParametersError {
	return &NoParametersError{located{line}, keyword}
}

func (e *NoParametersError) Error() string {
	return fmt.Sprintf("L%d: %q requires at least one parameter", e.line, e.Keyword)
}

// TooManyParameters reports a single-parameter keyword (e.g. "threads",
// "workdir") that received more than one.
type TooManyParameters struct {
	located
	Keyword string
	Count   int
}

func NewTooManyParameters(line int, keyword string, count int) *TooManyParameters {
	return &TooManyParameters{located{line}, keyword, count}
}

func (e *TooManyParameters) Error() string {
	return fmt.Sprintf("L%d: %q accepts a single parameter, got %d", e.line, e.Keyword, e.Count)
}

// InvalidParameter reports a parameter whose value failed the keyword's own
// validation (e.g. a NoKeywordParamList parameter written as "key=value").
type InvalidParameter struct {
	located
	Keyword string
	Value   string
	Reason  string
}

func NewInvalidParameter(line int, keyword, value, reason string) *InvalidParameter {
	return &InvalidParameter{located{line}, keyword, value, reason}
}

func (e *InvalidParameter) Error() string {
	return fmt.Sprintf("L%d: invalid parameter %q for %q: %s", e.line, e.Value, e.Keyword, e.Reason)
}

// InvalidParameterSyntax reports a malformed parameter list. The parser
// raises it for a recognised keyword of the enclosing block written, with
// its colon, on an over-indented line inside a parameter list.
type InvalidParameterSyntax struct {
	located
	Message string
}

func NewInvalidParameterSyntax(line int, message string) *InvalidParameterSyntax {
	return &InvalidParameterSyntax{located{line}, message}
}

func (e *InvalidParameterSyntax) Error() string { return fmt.Sprintf("L%d: %s", e.line, e.Message) }

// InvalidPython reports that a parameter value (or an embedded scripting
// block) is not syntactically valid in the embedded scripting language.
// Nothing in this module raises it: when the scripting-language formatter
// rejects a block, internal/format keeps the block as written and logs a
// warning, and parameter values are not validated.
type InvalidPython struct {
	located
	Snippet string
	Cause   string
}

func NewInvalidPython(line int, snippet, cause string) *InvalidPython {
	return &InvalidPython{located{line}, snippet, cause}
}

func (e *InvalidPython) Error() string {
	return fmt.Sprintf("L%d: invalid embedded script %q: %s", e.line, e.Snippet, e.Cause)
}

// MalformattedToml reports a configuration file that could not be parsed as
// TOML.
type MalformattedToml struct {
	Path  string
	Cause error
}

func (e *MalformattedToml) Error() string {
	return fmt.Sprintf("malformed TOML in %s: %v", e.Path, e.Cause)
}

func (e *MalformattedToml) Unwrap() error { return e.Cause }

// StopParsing is a sentinel signaling the parser reached end-of-input
// cleanly; it is not a user-facing failure. Callers compare with errors.Is.
type StopParsing struct{}

func (StopParsing) Error() string { return "end of input" }

// InvalidBlackConfiguration reports a "[tool.flowscript]" table that parsed
// as valid TOML but carried a key the embedded scripting-language formatter
// does not recognise, or a recognised key whose value has the wrong type —
// distinct from MalformattedToml, which covers a document that isn't even
// valid TOML.
type InvalidBlackConfiguration struct {
	Key    string
	Reason string
}

func NewInvalidBlackConfiguration(key, reason string) *InvalidBlackConfiguration {
	return &InvalidBlackConfiguration{key, reason}
}

func (e *InvalidBlackConfiguration) Error() string {
	return fmt.Sprintf("invalid [tool.flowscript] configuration for %q: %s", e.Key, e.Reason)
}
