package parser

import (
	"regexp"
	"strings"
)

var (
	// {name,data_type}, neither part empty nor containing a comma
	pathParamRe = regexp.MustCompile(`^\{(?P<name>[^,]+),(?P<data_type>[^,]+)\}$`)
)

// ParsePath parses a "/"-prefixed path spec into its ordered segments.
// The first rejected segment aborts the whole parse.
func ParsePath(path string) ([]PathParam, error) {
	if path == "" {
		return nil, &PathsError{Kind: EmptyPath}
	}
	if path[0] != '/' {
		return nil, &PathsError{Kind: StartSlash, Path: path}
	}

	segments := strings.Split(path[1:], "/")
	params := make([]PathParam, 0, len(segments))
	for _, segment := range segments {
		param, err := parsePathParam(segment)
		if err != nil {
			return nil, &PathsError{Kind: BadPath, Err: err}
		}
		params = append(params, param)
	}
	return params, nil
}

func parsePathParam(segment string) (PathParam, *PathParamError) {
	if segment == "" {
		return PathParam{}, &PathParamError{Kind: EmptyParam}
	}

	if m := pathParamRe.FindStringSubmatch(segment); m != nil {
		return PathParam{Name: m[1], DataType: m[2]}, nil
	}

	// looks like a parameter but did not match the pair shape
	if strings.ContainsAny(segment, "{},") {
		return PathParam{}, &PathParamError{Kind: IllFormedParam, Param: segment}
	}

	return PathParam{Name: segment, DataType: ConstType}, nil
}
