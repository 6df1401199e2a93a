package ferrors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type lineCarrier interface {
	Line() int
}

func TestErrorsCarryLineAndFormatWithLPrefix(t *testing.T) {
	cases := []error{
		NewSyntaxError(3, "unexpected token"),
		NewNamedKeywordError(4, "rule", "1abc"),
		NewDuplicateKeywordError(5, "input"),
		NewEmptyContextError(6, "rule"),
		NewNoParametersError(7, "input"),
		NewTooManyParameters(8, "threads", 2),
		NewInvalidParameter(9, "threads", "'x'", "not an int"),
		NewInvalidParameterSyntax(10, "dangling comma"),
		NewInvalidPython(11, "x =", "unexpected EOF"),
	}
	for _, err := range cases {
		le, ok := err.(lineCarrier)
		if assert.True(t, ok, "%T must implement Line() int", err) {
			assert.Greater(t, le.Line(), 0)
		}
		assert.Contains(t, err.Error(), "L")
	}
}

func TestMalformattedTomlUnwraps(t *testing.T) {
	cause := errors.New("unexpected character")
	err := &MalformattedToml{Path: "pyproject.toml", Cause: cause}
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "pyproject.toml")
}

func TestStopParsingIsNotAFailureMessage(t *testing.T) {
	var err error = StopParsing{}
	assert.Equal(t, "end of input", err.Error())
}

func TestInvalidBlackConfigurationMentionsKeyAndReason(t *testing.T) {
	err := NewInvalidBlackConfiguration("line-length", "must be an integer")
	assert.Contains(t, err.Error(), "line-length")
	assert.Contains(t, err.Error(), "must be an integer")
}
