package parser

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCorrectLines(t *testing.T) {
	tests := []struct {
		name string
		line string
		want *EndpointDescriptor
	}{
		{
			name: "literal segments only",
			line: "http://spotify.com|v1/helloworld/myman/mwhahahah",
			want: &EndpointDescriptor{
				BaseURL: "http://spotify.com",
				Version: "v1",
				Paths: []PathParam{
					{Name: "helloworld", DataType: ConstType},
					{Name: "myman", DataType: ConstType},
					{Name: "mwhahahah", DataType: ConstType},
				},
			},
		},
		{
			name: "typed segment and queries",
			line: "https://spotify.com|v4/hello-world/{artist,world}?bonvoyage=3&john=3",
			want: &EndpointDescriptor{
				BaseURL: "https://spotify.com",
				Version: "v4",
				Paths: []PathParam{
					{Name: "hello-world", DataType: ConstType},
					{Name: "artist", DataType: "world"},
				},
				Queries: []QueryParam{
					{Name: "bonvoyage", DataType: "3"},
					{Name: "john", DataType: "3"},
				},
			},
		},
		{
			name: "base url with path",
			line: "https://www.googleapis.com/youtube|v3/channels",
			want: &EndpointDescriptor{
				BaseURL: "https://www.googleapis.com/youtube",
				Version: "v3",
				Paths:   []PathParam{{Name: "channels", DataType: ConstType}},
			},
		},
		{
			name: "dotted version",
			line: "https://graph.microsoft.com|v1.0/me/messages?filter=emailAddress",
			want: &EndpointDescriptor{
				BaseURL: "https://graph.microsoft.com",
				Version: "v1.0",
				Paths: []PathParam{
					{Name: "me", DataType: ConstType},
					{Name: "messages", DataType: ConstType},
				},
				Queries: []QueryParam{{Name: "filter", DataType: "emailAddress"}},
			},
		},
		{
			name: "several typed segments",
			line: "https://api.ticktick.com/open|v1/project/{projectId,string}/task/{taskId,string}",
			want: &EndpointDescriptor{
				BaseURL: "https://api.ticktick.com/open",
				Version: "v1",
				Paths: []PathParam{
					{Name: "project", DataType: ConstType},
					{Name: "projectId", DataType: "string"},
					{Name: "task", DataType: ConstType},
					{Name: "taskId", DataType: "string"},
				},
			},
		},
		{
			name: "surrounding whitespace is trimmed",
			line: "  \thttp://example.com|v2/users/{id,int}\n",
			want: &EndpointDescriptor{
				BaseURL: "http://example.com",
				Version: "v2",
				Paths: []PathParam{
					{Name: "users", DataType: ConstType},
					{Name: "id", DataType: "int"},
				},
			},
		},
		{
			name: "base url stops at first pipe",
			line: "http://example.com|beta|2/items",
			want: &EndpointDescriptor{
				BaseURL: "http://example.com",
				Version: "beta|2",
				Paths:   []PathParam{{Name: "items", DataType: ConstType}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseWithoutQueriesLeavesQueriesNil(t *testing.T) {
	got, err := Parse("http://spotify.com|v1/helloworld")
	require.NoError(t, err)
	assert.Nil(t, got.Queries)
	assert.False(t, got.HasQueries())
}

func TestParseIncorrectLines(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		wantErr error
	}{
		{
			name:    "empty line",
			line:    "",
			wantErr: &LineError{Line: ""},
		},
		{
			name:    "missing scheme",
			line:    "spotify.com|v1/hello",
			wantErr: &LineError{Line: "spotify.com|v1/hello"},
		},
		{
			name:    "missing version delimiter",
			line:    "http://spotify.com/v1/hello",
			wantErr: &LineError{Line: "http://spotify.com/v1/hello"},
		},
		{
			name:    "missing path",
			line:    "http://spotify.com|v1",
			wantErr: &LineError{Line: "http://spotify.com|v1"},
		},
		{
			name:    "bare slash path",
			line:    "http://spotify.com|v1/",
			wantErr: &LineError{Line: "http://spotify.com|v1/"},
		},
		{
			name:    "dangling question mark",
			line:    "http://spotify.com|v1/hello?",
			wantErr: &LineError{Line: "http://spotify.com|v1/hello?"},
		},
		{
			name:    "leading garbage",
			line:    "go to http://spotify.com|v1/hello",
			wantErr: &LineError{Line: "go to http://spotify.com|v1/hello"},
		},
		{
			name:    "double slash in path",
			line:    "http://spotify.com|v1/hello//world",
			wantErr: &PathsError{Kind: BadPath, Err: &PathParamError{Kind: EmptyParam}},
		},
		{
			name:    "trailing slash in path",
			line:    "http://spotify.com|v1/hello/world/",
			wantErr: &PathsError{Kind: BadPath, Err: &PathParamError{Kind: EmptyParam}},
		},
		{
			name:    "unclosed brace",
			line:    "http://spotify.com|v1/hello/{world",
			wantErr: &PathsError{Kind: BadPath, Err: &PathParamError{Kind: IllFormedParam, Param: "{world"}},
		},
		{
			name:    "query without value",
			line:    "http://spotify.com|v1/hello?lo&hello=hi",
			wantErr: &QueriesError{Kind: BadQuery, Err: &QueryParamError{Kind: IllFormedParam, Param: "lo"}},
		},
		{
			name:    "trailing ampersand",
			line:    "http://spotify.com|v1/hello?a=b&",
			wantErr: &QueriesError{Kind: BadQuery, Err: &QueryParamError{Kind: EmptyParam}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.line)
			require.Error(t, err)
			assert.Nil(t, got)
			assert.Equal(t, tt.wantErr, err)
			assert.True(t, IsInvalidInput(err))
		})
	}
}

func TestParseRoundTrip(t *testing.T) {
	lines := []string{
		"http://spotify.com|v1/helloworld/myman/mwhahahah",
		"https://spotify.com|v4/hello-world/{artist,world}?bonvoyage=3&john=3",
		"https://www.googleapis.com/youtube|v3/channels",
		"https://graph.microsoft.com|v1.0/me/messages?filter=emailAddress",
		"https://api.ticktick.com/open|v1/project/{projectId,string}/task/{taskId,string}",
		"http://localhost:8080|beta/{a,b}/c?x=int",
	}

	for _, line := range lines {
		t.Run(line, func(t *testing.T) {
			first, err := Parse(line)
			require.NoError(t, err)
			assert.Equal(t, line, first.String())

			second, err := Parse(first.String())
			require.NoError(t, err)
			assert.Equal(t, first, second)
		})
	}
}

func TestParseConcurrent(t *testing.T) {
	const line = "https://spotify.com|v4/hello-world/{artist,world}?bonvoyage=3&john=3"
	want := MustParse(line)

	var wg sync.WaitGroup
	errs := make(chan error, 32)
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := Parse(line)
			if err != nil {
				errs <- err
				return
			}
			assert.Equal(t, want, got)
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestMustParsePanics(t *testing.T) {
	assert.Panics(t, func() { MustParse("not a line") })
}
