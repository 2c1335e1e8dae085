package openapi

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"daysquare/internal/parser"

	"github.com/getkin/kin-openapi/openapi3"
)

// Entry is a named endpoint descriptor to export
type Entry struct {
	Name       string
	Descriptor *parser.EndpointDescriptor
}

// Export builds a validated OpenAPI 3 document with one GET operation per entry
func Export(ctx context.Context, title string, entries []Entry) (*openapi3.T, error) {
	doc := &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:   title,
			Version: "1.0.0",
		},
		Paths: openapi3.NewPaths(),
	}

	servers := map[string]bool{}
	for _, entry := range entries {
		desc := entry.Descriptor
		serverURL := ServerURL(desc)
		if !servers[serverURL] {
			servers[serverURL] = true
			doc.Servers = append(doc.Servers, &openapi3.Server{URL: serverURL})
		}

		template := PathTemplate(desc)
		if doc.Paths.Value(template) != nil {
			return nil, fmt.Errorf("duplicate path %s (entry %s)", template, entry.Name)
		}

		op := openapi3.NewOperation()
		op.OperationID = entry.Name
		op.Summary = desc.String()
		// alternate servers only when the document serves several APIs
		op.Servers = &openapi3.Servers{{URL: serverURL}}
		for _, p := range desc.Paths {
			if p.IsConst() {
				continue
			}
			op.AddParameter(openapi3.NewPathParameter(p.Name).WithSchema(SchemaFor(p.DataType)))
		}
		for _, q := range desc.Queries {
			op.AddParameter(openapi3.NewQueryParameter(q.Name).WithSchema(SchemaFor(q.DataType)))
		}
		op.Responses = openapi3.NewResponses(
			openapi3.WithStatus(200, &openapi3.ResponseRef{Value: openapi3.NewResponse().WithDescription("OK")}),
		)

		doc.Paths.Set(template, &openapi3.PathItem{Get: op})
	}

	sort.Slice(doc.Servers, func(i, j int) bool { return doc.Servers[i].URL < doc.Servers[j].URL })
	if len(doc.Servers) == 1 {
		for _, item := range doc.Paths.Map() {
			item.Get.Servers = nil
		}
	}

	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("generated OpenAPI document is invalid: %w", err)
	}
	return doc, nil
}

// ServerURL joins the base URL and the version
func ServerURL(desc *parser.EndpointDescriptor) string {
	return strings.TrimSuffix(desc.BaseURL, "/") + "/" + desc.Version
}

// PathTemplate renders the path section with {name} placeholders
func PathTemplate(desc *parser.EndpointDescriptor) string {
	var b strings.Builder
	for _, p := range desc.Paths {
		b.WriteByte('/')
		if p.IsConst() {
			b.WriteString(p.Name)
			continue
		}
		b.WriteString("{" + p.Name + "}")
	}
	return b.String()
}

// SchemaFor maps a declared data type onto an OpenAPI schema
func SchemaFor(dataType string) *openapi3.Schema {
	switch strings.ToLower(dataType) {
	case "int", "integer", "int32", "int64", "long":
		return openapi3.NewIntegerSchema()
	case "float", "double", "number", "decimal":
		return openapi3.NewFloat64Schema()
	case "bool", "boolean":
		return openapi3.NewBoolSchema()
	default:
		return openapi3.NewStringSchema()
	}
}

// DataTypeFor maps a schema back onto a data type name
func DataTypeFor(schema *openapi3.SchemaRef) string {
	if schema == nil || schema.Value == nil || schema.Value.Type == nil {
		return "string"
	}
	switch {
	case schema.Value.Type.Is("integer"):
		return "int"
	case schema.Value.Type.Is("number"):
		return "float"
	case schema.Value.Type.Is("boolean"):
		return "bool"
	default:
		return "string"
	}
}
