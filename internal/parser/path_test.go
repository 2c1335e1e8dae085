package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCorrectPaths(t *testing.T) {
	tests := []struct {
		path string
		want []PathParam
	}{
		{
			path: "/hello/world/how",
			want: []PathParam{
				{Name: "hello", DataType: ConstType},
				{Name: "world", DataType: ConstType},
				{Name: "how", DataType: ConstType},
			},
		},
		{
			path: "/hello/{artist,spotify_artist_id}/tbd",
			want: []PathParam{
				{Name: "hello", DataType: ConstType},
				{Name: "artist", DataType: "spotify_artist_id"},
				{Name: "tbd", DataType: ConstType},
			},
		},
		{
			path: "/{a,b}",
			want: []PathParam{{Name: "a", DataType: "b"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := ParsePath(tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseIncorrectPaths(t *testing.T) {
	tests := []struct {
		path    string
		wantErr *PathsError
	}{
		{"/hello/world/", &PathsError{Kind: BadPath, Err: &PathParamError{Kind: EmptyParam}}},
		{"/hello//world", &PathsError{Kind: BadPath, Err: &PathParamError{Kind: EmptyParam}}},
		{"/hello/world,hi", &PathsError{Kind: BadPath, Err: &PathParamError{Kind: IllFormedParam, Param: "world,hi"}}},
		{"/hello/{world", &PathsError{Kind: BadPath, Err: &PathParamError{Kind: IllFormedParam, Param: "{world"}}},
		{"/hello/world}", &PathsError{Kind: BadPath, Err: &PathParamError{Kind: IllFormedParam, Param: "world}"}}},
		{"/{a,b,c}", &PathsError{Kind: BadPath, Err: &PathParamError{Kind: IllFormedParam, Param: "{a,b,c}"}}},
		{"/{,b}", &PathsError{Kind: BadPath, Err: &PathParamError{Kind: IllFormedParam, Param: "{,b}"}}},
		{"/{a,}", &PathsError{Kind: BadPath, Err: &PathParamError{Kind: IllFormedParam, Param: "{a,}"}}},
		{"", &PathsError{Kind: EmptyPath}},
		{"hello/world", &PathsError{Kind: StartSlash, Path: "hello/world"}},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := ParsePath(tt.path)
			assert.Nil(t, got)
			assert.Equal(t, tt.wantErr, err)
		})
	}
}

func TestParsePathFailsOnFirstBadSegment(t *testing.T) {
	_, err := ParsePath("/{a/b,}//c")
	var pathErr *PathParamError
	require.ErrorAs(t, err, &pathErr)
	assert.Equal(t, IllFormedParam, pathErr.Kind)
	assert.Equal(t, "{a", pathErr.Param)
}
