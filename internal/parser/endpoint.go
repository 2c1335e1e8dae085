package parser

import (
	"strings"
)

// ConstType is the data type recorded for literal path segments
const ConstType = "const"

// EndpointDescriptor is one parsed endpoint line
type EndpointDescriptor struct {
	BaseURL string       `json:"base_url" yaml:"base_url"`
	Version string       `json:"version" yaml:"version"`
	Paths   []PathParam  `json:"paths" yaml:"paths"`
	Queries []QueryParam `json:"queries,omitempty" yaml:"queries,omitempty"`
}

// PathParam is one "/"-delimited path segment, either a literal or a {name,type} parameter
type PathParam struct {
	Name     string `json:"name" yaml:"name"`
	DataType string `json:"data_type" yaml:"data_type"`
}

// QueryParam is one "&"-delimited name=type pair
type QueryParam struct {
	Name     string `json:"name" yaml:"name"`
	DataType string `json:"data_type" yaml:"data_type"`
}

// IsConst reports whether the segment is a literal path component
func (p PathParam) IsConst() bool {
	return p.DataType == ConstType
}

func (p PathParam) String() string {
	if p.IsConst() {
		return p.Name
	}
	return "{" + p.Name + "," + p.DataType + "}"
}

func (q QueryParam) String() string {
	return q.Name + "=" + q.DataType
}

// HasQueries reports whether the line carried a query section
func (d *EndpointDescriptor) HasQueries() bool {
	return d.Queries != nil
}

// PathSpec renders the path section, leading slash included
func (d *EndpointDescriptor) PathSpec() string {
	var b strings.Builder
	for _, p := range d.Paths {
		b.WriteByte('/')
		b.WriteString(p.String())
	}
	return b.String()
}

// QuerySpec renders the query section without the leading "?"
func (d *EndpointDescriptor) QuerySpec() string {
	pairs := make([]string, len(d.Queries))
	for i, q := range d.Queries {
		pairs[i] = q.String()
	}
	return strings.Join(pairs, "&")
}

// String renders the descriptor back into endpoint line notation.
// Parse(d.String()) yields a descriptor equal to d.
func (d *EndpointDescriptor) String() string {
	line := d.BaseURL + "|" + d.Version + d.PathSpec()
	if d.HasQueries() {
		line += "?" + d.QuerySpec()
	}
	return line
}
