package parser

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{&PathParamError{Kind: EmptyParam}, "empty path param: // or ends with /"},
		{&PathParamError{Kind: IllFormedParam, Param: "{x"}, "ill formed path param: {x"},
		{&PathsError{Kind: EmptyPath}, "path is empty"},
		{&PathsError{Kind: StartSlash, Path: "a/b"}, "path does not start with /: a/b"},
		{
			&PathsError{Kind: BadPath, Err: &PathParamError{Kind: IllFormedParam, Param: "{x"}},
			"invalid path from path parameter: ill formed path param: {x",
		},
		{&QueryParamError{Kind: EmptyParam}, "empty query param: && or ends with &"},
		{&QueriesError{Kind: EmptyQueries}, "empty queries"},
		{
			&QueriesError{Kind: BadQuery, Err: &QueryParamError{Kind: IllFormedParam, Param: "lo"}},
			"invalid query from query parameters: ill formed query param: lo",
		},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.err.Error())
	}
}

func TestErrorChain(t *testing.T) {
	_, err := Parse("http://spotify.com|v1/hello/{world")
	require.Error(t, err)

	var pathsErr *PathsError
	require.ErrorAs(t, err, &pathsErr)
	assert.Equal(t, BadPath, pathsErr.Kind)

	var paramErr *PathParamError
	require.ErrorAs(t, err, &paramErr)
	assert.Equal(t, &PathParamError{Kind: IllFormedParam, Param: "{world"}, paramErr)

	_, err = ParseQueries("a=b&&c=d")
	var queryErr *QueryParamError
	require.ErrorAs(t, err, &queryErr)
	assert.Equal(t, EmptyParam, queryErr.Kind)
}

func TestUnwrapWithoutCause(t *testing.T) {
	assert.Nil(t, errors.Unwrap(&PathsError{Kind: EmptyPath}))
	assert.Nil(t, errors.Unwrap(&QueriesError{Kind: EmptyQueries}))
}

func TestIsInvalidInput(t *testing.T) {
	assert.True(t, IsInvalidInput(&LineError{Line: "x"}))
	assert.True(t, IsInvalidInput(fmt.Errorf("endpoint: %w", &QueriesError{Kind: EmptyQueries})))
	assert.False(t, IsInvalidInput(errors.New("connection refused")))
	assert.False(t, IsInvalidInput(nil))
}
