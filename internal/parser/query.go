package parser

import (
	"strings"
)

// ParseQueries parses the text after "?" into ordered name=type pairs.
// It is all-or-nothing: the first rejected pair aborts the parse.
func ParseQueries(queries string) ([]QueryParam, error) {
	if queries == "" {
		return nil, &QueriesError{Kind: EmptyQueries}
	}

	pairs := strings.Split(queries, "&")
	params := make([]QueryParam, 0, len(pairs))
	for _, pair := range pairs {
		param, err := parseQueryParam(pair)
		if err != nil {
			return nil, &QueriesError{Kind: BadQuery, Err: err}
		}
		params = append(params, param)
	}
	return params, nil
}

func parseQueryParam(pair string) (QueryParam, *QueryParamError) {
	if pair == "" {
		return QueryParam{}, &QueryParamError{Kind: EmptyParam}
	}

	args := strings.Split(pair, "=")
	if len(args) != 2 || args[0] == "" || args[1] == "" {
		return QueryParam{}, &QueryParamError{Kind: IllFormedParam, Param: pair}
	}
	return QueryParam{Name: args[0], DataType: args[1]}, nil
}
