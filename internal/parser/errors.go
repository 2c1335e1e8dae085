package parser

import (
	"errors"
	"fmt"
)

// ParamErrorKind identifies why a single path segment or query pair was rejected
type ParamErrorKind int

const (
	// EmptyParam is an empty segment ("//", trailing "/") or pair ("&&", trailing "&")
	EmptyParam ParamErrorKind = iota
	// IllFormedParam is a segment or pair that does not fit its grammar
	IllFormedParam
)

// PathParamError describes one rejected path segment
type PathParamError struct {
	Kind  ParamErrorKind
	Param string
}

func (e *PathParamError) Error() string {
	if e.Kind == EmptyParam {
		return "empty path param: // or ends with /"
	}
	return fmt.Sprintf("ill formed path param: %s", e.Param)
}

// PathsErrorKind identifies why a path spec was rejected
type PathsErrorKind int

const (
	// StartSlash means the path spec does not begin with "/"
	StartSlash PathsErrorKind = iota
	// EmptyPath means the path spec is empty
	EmptyPath
	// BadPath means one of the segments was rejected, see PathsError.Err
	BadPath
)

// PathsError describes a rejected path spec. For BadPath, Err holds the
// segment error that caused it.
type PathsError struct {
	Kind PathsErrorKind
	Path string
	Err  *PathParamError
}

func (e *PathsError) Error() string {
	switch e.Kind {
	case StartSlash:
		return fmt.Sprintf("path does not start with /: %s", e.Path)
	case EmptyPath:
		return "path is empty"
	default:
		return fmt.Sprintf("invalid path from path parameter: %v", e.Err)
	}
}

func (e *PathsError) Unwrap() error {
	if e.Err == nil {
		return nil
	}
	return e.Err
}

// QueryParamError describes one rejected query pair
type QueryParamError struct {
	Kind  ParamErrorKind
	Param string
}

func (e *QueryParamError) Error() string {
	if e.Kind == EmptyParam {
		return "empty query param: && or ends with &"
	}
	return fmt.Sprintf("ill formed query param: %s", e.Param)
}

// QueriesErrorKind identifies why a query spec was rejected
type QueriesErrorKind int

const (
	// EmptyQueries means the query spec is empty
	EmptyQueries QueriesErrorKind = iota
	// BadQuery means one of the pairs was rejected, see QueriesError.Err
	BadQuery
)

// QueriesError describes a rejected query spec
type QueriesError struct {
	Kind QueriesErrorKind
	Err  *QueryParamError
}

func (e *QueriesError) Error() string {
	if e.Kind == EmptyQueries {
		return "empty queries"
	}
	return fmt.Sprintf("invalid query from query parameters: %v", e.Err)
}

func (e *QueriesError) Unwrap() error {
	if e.Err == nil {
		return nil
	}
	return e.Err
}

// LineError is returned when a line does not have the base|version/paths?queries shape at all
type LineError struct {
	Line string
}

func (e *LineError) Error() string {
	return fmt.Sprintf("malformed endpoint line: %q does not match base|version/paths[?queries]", e.Line)
}

// IsInvalidInput reports whether err (or anything it wraps) comes from
// rejecting the parsed text. Such errors are the caller's fault, not ours.
func IsInvalidInput(err error) bool {
	var (
		lineErr    *LineError
		pathsErr   *PathsError
		pathErr    *PathParamError
		queriesErr *QueriesError
		queryErr   *QueryParamError
	)
	return errors.As(err, &lineErr) ||
		errors.As(err, &pathsErr) ||
		errors.As(err, &pathErr) ||
		errors.As(err, &queriesErr) ||
		errors.As(err, &queryErr)
}
