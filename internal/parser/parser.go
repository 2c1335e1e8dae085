// Package parser turns one-line endpoint notation such as
//
//	https://spotify.com|v4/artists/{artist,id}?market=string
//
// into an EndpointDescriptor. Everything here is pure: no I/O, no shared
// mutable state, safe to call from any number of goroutines.
package parser

import (
	"regexp"
	"strings"
)

var lineRe = regexp.MustCompile(
	`^(?P<base>https?://\S+?)` + // base = https://spotify.com
		`\|` +
		`(?P<ver>\S+?)` + // ver = v4
		`(?P<paths>/[^?\s]+)` + // paths = /artists/{artist,id}
		`(?:\?(?P<queries>\S+))?$`, // queries = market=string
)

var (
	baseIdx    = lineRe.SubexpIndex("base")
	verIdx     = lineRe.SubexpIndex("ver")
	pathsIdx   = lineRe.SubexpIndex("paths")
	queriesIdx = lineRe.SubexpIndex("queries")
)

// Parse parses a whole endpoint line. Leading and trailing whitespace is
// ignored. A line without the base|version/paths shape yields *LineError;
// rejected path or query sections yield *PathsError or *QueriesError.
func Parse(line string) (*EndpointDescriptor, error) {
	trimmed := strings.TrimSpace(line)

	m := lineRe.FindStringSubmatchIndex(trimmed)
	if m == nil {
		return nil, &LineError{Line: trimmed}
	}
	group := func(i int) (string, bool) {
		if m[2*i] < 0 {
			return "", false
		}
		return trimmed[m[2*i]:m[2*i+1]], true
	}

	base, _ := group(baseIdx)
	ver, _ := group(verIdx)
	pathSpec, _ := group(pathsIdx)

	paths, err := ParsePath(pathSpec)
	if err != nil {
		return nil, err
	}

	desc := &EndpointDescriptor{
		BaseURL: base,
		Version: ver,
		Paths:   paths,
	}

	if querySpec, ok := group(queriesIdx); ok {
		queries, err := ParseQueries(querySpec)
		if err != nil {
			return nil, err
		}
		desc.Queries = queries
	}

	return desc, nil
}

// MustParse is like Parse but panics on error. Intended for tests and
// package-level fixtures only.
func MustParse(line string) *EndpointDescriptor {
	desc, err := Parse(line)
	if err != nil {
		panic(err)
	}
	return desc
}
