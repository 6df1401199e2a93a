package parser

// ParamShape describes how a keyword's parameter list must be parsed and
// validated, mirroring the reference implementation's distinct Syntax
// subclasses (SingleParam, NoKeywordParamList, ParamListWithoutComma, …).
type ParamShape int

const (
	// NoParams means the keyword takes no parameter list at all (e.g. "rule",
	// "else"); what follows is either a colon-delimited block or nothing.
	NoParams ParamShape = iota
	// SingleParamShape accepts exactly one parameter, key-value or bare.
	SingleParamShape
	// InlineSingleParamShape is SingleParamShape written on the same line as
	// the keyword, without an indented block (e.g. "configfile: \"x.yaml\"").
	InlineSingleParamShape
	// ParamListShape accepts zero or more comma-separated parameters, any of
	// which may carry a "key=value" form.
	ParamListShape
	// NoKeywordParamListShape is ParamListShape restricted to bare
	// (non key=value) parameters, e.g. "localrules".
	NoKeywordParamListShape
	// ParamListWithoutCommaShape accepts a parameter list with no separating
	// commas. Only "run" carries it, and "run" opens a block, so its body is
	// parsed as a nested context rather than with this shape.
	ParamListWithoutCommaShape
)

// Grammar names which context a keyword is legal in and whether it opens a
// nested block of its own.
type Grammar int

const (
	// GlobalGrammar is legal at module top level.
	GlobalGrammar Grammar = iota
	// RuleGrammar is legal inside a "rule"/"checkpoint" block.
	RuleGrammar
	// SubworkflowGrammar is legal inside a "subworkflow" block.
	SubworkflowGrammar
	// ModuleGrammar is legal inside a "module" block.
	ModuleGrammar
	// UseRuleGrammar is legal inside a "use rule" block.
	UseRuleGrammar
)

// VocabEntry is one keyword's grammar-table row.
type VocabEntry struct {
	// Shape is how the keyword's parameter list parses.
	Shape ParamShape
	// OpensBlock indicates the keyword introduces a colon-terminated,
	// indented sub-block (e.g. "rule NAME:") rather than a flat parameter.
	OpensBlock bool
	// Named indicates the keyword takes an optional bare identifier before
	// its colon (spec's "possibly-named" keywords: rule/checkpoint/
	// subworkflow/module).
	Named bool
}

// Vocabulary maps keyword text to its grammar entry for one parsing context.
// It mirrors the reference implementation's Vocabulary class (recognises/get)
// but as a plain Go map, since spec's second open question (§9) wants
// grammar-as-data, not hardcoded control flow.
type Vocabulary map[string]VocabEntry

// Recognises reports whether keyword belongs to this vocabulary.
func (v Vocabulary) Recognises(keyword string) bool {
	_, ok := v[keyword]
	return ok
}

// Get returns the entry for keyword and whether it was found.
func (v Vocabulary) Get(keyword string) (VocabEntry, bool) {
	e, ok := v[keyword]
	return e, ok
}

// possiblyNamedKeywords mirrors the reference's
// `possibly_named_keywords = {"rule", "checkpoint", "subworkflow"}` (and
// "module" from the grammar's later additions).
var possiblyNamedKeywords = map[string]bool{
	"rule":        true,
	"checkpoint":  true,
	"subworkflow": true,
	"module":      true,
}

// IsPossiblyNamed reports whether keyword optionally takes a bare identifier
// between itself and its colon.
func IsPossiblyNamed(keyword string) bool {
	return possiblyNamedKeywords[keyword]
}

// duplicatesAllowed is the decision recorded in SPEC_FULL.md's Open Question
// #1: these keywords may legally recur at any nesting depth, in any branch,
// because the reference implementation never checks them for duplication
// (add_processed_keyword is always called with check_dup=False for them).
var duplicatesAllowed = map[string]bool{
	"include":    true,
	"configfile": true,
}

// DuplicatesAllowed reports whether keyword is exempt from duplicate-keyword
// detection within a single context.
func DuplicatesAllowed(keyword string) bool {
	return duplicatesAllowed[keyword]
}

// GlobalVocabulary is the set of keywords legal at module top level.
var GlobalVocabulary = Vocabulary{
	"rule":                 {Shape: NoParams, OpensBlock: true, Named: true},
	"checkpoint":           {Shape: NoParams, OpensBlock: true, Named: true},
	"subworkflow":          {Shape: NoParams, OpensBlock: true, Named: true},
	"module":               {Shape: NoParams, OpensBlock: true, Named: true},
	"use":                  {Shape: NoParams, OpensBlock: true, Named: false},
	"include":              {Shape: InlineSingleParamShape},
	"configfile":           {Shape: InlineSingleParamShape},
	"workdir":              {Shape: InlineSingleParamShape},
	"localrules":           {Shape: NoKeywordParamListShape},
	"ruleorder":            {Shape: NoKeywordParamListShape},
	"onstart":              {Shape: NoParams, OpensBlock: true},
	"onsuccess":            {Shape: NoParams, OpensBlock: true},
	"onerror":              {Shape: NoParams, OpensBlock: true},
	"wildcard_constraints": {Shape: ParamListShape},
	"envvars":              {Shape: NoKeywordParamListShape},
	"report":               {Shape: InlineSingleParamShape},
	"container":            {Shape: InlineSingleParamShape},
	"containerized":        {Shape: InlineSingleParamShape},
	"conda":                {Shape: InlineSingleParamShape},
	"storage":              {Shape: ParamListShape},
	"resource_scopes":      {Shape: ParamListShape},
	"pathvars":             {Shape: ParamListShape},
	"inputflags":           {Shape: NoKeywordParamListShape},
	"outputflags":          {Shape: NoKeywordParamListShape},
}

// RuleVocabulary is the set of keywords legal inside a rule/checkpoint block.
var RuleVocabulary = Vocabulary{
	"input":                {Shape: ParamListShape},
	"output":               {Shape: ParamListShape},
	"params":               {Shape: ParamListShape},
	"log":                  {Shape: ParamListShape},
	"benchmark":            {Shape: InlineSingleParamShape},
	"threads":              {Shape: InlineSingleParamShape},
	"resources":            {Shape: ParamListShape},
	"priority":             {Shape: InlineSingleParamShape},
	"version":              {Shape: InlineSingleParamShape},
	"message":              {Shape: InlineSingleParamShape},
	"wildcard_constraints": {Shape: ParamListShape},
	"shadow":               {Shape: InlineSingleParamShape},
	"group":                {Shape: InlineSingleParamShape},
	"conda":                {Shape: InlineSingleParamShape},
	"container":            {Shape: InlineSingleParamShape},
	"containerized":        {Shape: InlineSingleParamShape},
	"envmodules":           {Shape: NoKeywordParamListShape},
	"shell":                {Shape: InlineSingleParamShape},
	"script":               {Shape: InlineSingleParamShape},
	"notebook":             {Shape: InlineSingleParamShape},
	"wrapper":              {Shape: InlineSingleParamShape},
	"cwl":                  {Shape: InlineSingleParamShape},
	"run":                  {Shape: ParamListWithoutCommaShape, OpensBlock: true},
	"cache":                {Shape: InlineSingleParamShape},
	"retries":              {Shape: InlineSingleParamShape},
	"handover":             {Shape: InlineSingleParamShape},
	"default_target":       {Shape: InlineSingleParamShape},
}

// SubworkflowVocabulary is the set of keywords legal inside a subworkflow
// block.
var SubworkflowVocabulary = Vocabulary{
	"workdir":    {Shape: InlineSingleParamShape},
	"snakefile":  {Shape: InlineSingleParamShape},
	"configfile": {Shape: InlineSingleParamShape},
}

// ModuleVocabulary is the set of keywords legal inside a module block.
var ModuleVocabulary = Vocabulary{
	"snakefile":       {Shape: InlineSingleParamShape},
	"config":          {Shape: InlineSingleParamShape},
	"skip_validation": {Shape: InlineSingleParamShape},
	"replace_prefix":  {Shape: InlineSingleParamShape},
	"meta_wrapper":    {Shape: InlineSingleParamShape},
}

// UseRuleVocabulary is the set of keywords legal inside a "use rule" block
// (the small set of overridable rule attributes).
var UseRuleVocabulary = Vocabulary{
	"input":     {Shape: ParamListShape},
	"output":    {Shape: ParamListShape},
	"params":    {Shape: ParamListShape},
	"log":       {Shape: ParamListShape},
	"resources": {Shape: ParamListShape},
	"threads":   {Shape: InlineSingleParamShape},
}

// VocabularyFor returns the table governing grammar g.
func VocabularyFor(g Grammar) Vocabulary {
	switch g {
	case RuleGrammar:
		return RuleVocabulary
	case SubworkflowGrammar:
		return SubworkflowVocabulary
	case ModuleGrammar:
		return ModuleVocabulary
	case UseRuleGrammar:
		return UseRuleVocabulary
	default:
		return GlobalVocabulary
	}
}
