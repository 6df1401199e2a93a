package parser

import "github.com/flowlang/flowfmt/internal/ferrors"

// validateShape checks a keyword's collected parameter list against the
// arity and keying rules its ParamShape prescribes, mirroring the
// reference's per-shape Syntax subclasses (SingleParam, NoKeywordParamList,
// RuleInlineSingleParam, …).
func validateShape(keyword string, line int, shape ParamShape, params []*Parameter) ([]*Parameter, error) {
	switch shape {
	case SingleParamShape, InlineSingleParamShape:
		if len(params) == 0 {
			return params, ferrors.NewNoParametersError(line, keyword)
		}
		if len(params) > 1 {
			return params, ferrors.NewTooManyParameters(line, keyword, len(params))
		}
		return params, nil
	case NoKeywordParamListShape:
		for _, p := range params {
			if p.HasKey() {
				return params, ferrors.NewInvalidParameter(line, keyword, p.Key+"="+p.Value,
					"this keyword does not accept key=value parameters")
			}
		}
		return params, nil
	case ParamListShape, ParamListWithoutCommaShape, NoParams:
		return params, nil
	default:
		return params, nil
	}
}
