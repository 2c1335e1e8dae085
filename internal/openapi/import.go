package openapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"daysquare/internal/parser"

	"github.com/getkin/kin-openapi/openapi3"
)

// Imported is one endpoint recovered from an OpenAPI document
type Imported struct {
	Name       string
	Descriptor *parser.EndpointDescriptor
}

// ImportError records a path that has no endpoint line form
type ImportError struct {
	Path string
	Err  error
}

func (e *ImportError) Error() string {
	return fmt.Sprintf("path %s: %v", e.Path, e.Err)
}

func (e *ImportError) Unwrap() error {
	return e.Err
}

// Fetch downloads and loads an OpenAPI document
func Fetch(ctx context.Context, client *http.Client, docURL string) (*openapi3.T, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, docURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return Load(body)
}

// Load parses an OpenAPI document from JSON or YAML
func Load(data []byte) (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse OpenAPI doc: %w", err)
	}
	return doc, nil
}

// Import turns every path of doc into an endpoint descriptor. Each line is
// rendered and re-parsed, so only endpoints the notation can express are
// returned; the rest are reported as *ImportError values.
func Import(doc *openapi3.T) ([]Imported, []error) {
	base, version, err := splitServer(doc)
	if err != nil {
		return nil, []error{err}
	}

	paths := doc.Paths.Map()
	keys := make([]string, 0, len(paths))
	for path := range paths {
		keys = append(keys, path)
	}
	sort.Strings(keys)

	var (
		imported []Imported
		errs     []error
	)
	for _, path := range keys {
		item := paths[path]
		op := item.Get
		if op == nil {
			// fall back to the first operation in a stable order
			ops := item.Operations()
			methods := make([]string, 0, len(ops))
			for method := range ops {
				methods = append(methods, method)
			}
			sort.Strings(methods)
			if len(methods) == 0 {
				continue
			}
			op = ops[methods[0]]
		}

		params := append(openapi3.Parameters{}, item.Parameters...)
		params = append(params, op.Parameters...)

		desc, err := parser.Parse(endpointLine(base, version, path, params))
		if err != nil {
			errs = append(errs, &ImportError{Path: path, Err: err})
			continue
		}

		name := op.OperationID
		if name == "" {
			name = strings.Trim(strings.NewReplacer("/", "-", "{", "", "}", "").Replace(path), "-")
		}
		imported = append(imported, Imported{Name: name, Descriptor: desc})
	}

	return imported, errs
}

// splitServer splits the first server URL at its last path segment into
// base URL and version. A server without a path uses info.version.
func splitServer(doc *openapi3.T) (string, string, error) {
	if len(doc.Servers) == 0 || doc.Servers[0] == nil {
		return "", "", fmt.Errorf("document declares no servers")
	}
	u, err := url.Parse(strings.TrimSuffix(doc.Servers[0].URL, "/"))
	if err != nil {
		return "", "", fmt.Errorf("invalid server url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", "", fmt.Errorf("server url %q is not absolute http(s)", doc.Servers[0].URL)
	}

	path := u.Path
	idx := strings.LastIndex(path, "/")
	if idx < 0 || path[idx+1:] == "" {
		if doc.Info == nil || doc.Info.Version == "" {
			return "", "", fmt.Errorf("server url %q has no version segment and info.version is empty", doc.Servers[0].URL)
		}
		return u.Scheme + "://" + u.Host + path, doc.Info.Version, nil
	}
	return u.Scheme + "://" + u.Host + path[:idx], path[idx+1:], nil
}

func endpointLine(base, version, path string, params openapi3.Parameters) string {
	pathTypes := map[string]string{}
	var queries []string
	for _, ref := range params {
		if ref == nil || ref.Value == nil {
			continue
		}
		p := ref.Value
		switch p.In {
		case openapi3.ParameterInPath:
			pathTypes[p.Name] = DataTypeFor(p.Schema)
		case openapi3.ParameterInQuery:
			queries = append(queries, p.Name+"="+DataTypeFor(p.Schema))
		}
	}

	segments := strings.Split(strings.TrimPrefix(path, "/"), "/")
	for i, segment := range segments {
		if !strings.HasPrefix(segment, "{") || !strings.HasSuffix(segment, "}") {
			continue
		}
		name := segment[1 : len(segment)-1]
		dataType, ok := pathTypes[name]
		if !ok {
			dataType = "string"
		}
		segments[i] = "{" + name + "," + dataType + "}"
	}

	line := base + "|" + version + "/" + strings.Join(segments, "/")
	if len(queries) > 0 {
		line += "?" + strings.Join(queries, "&")
	}
	return line
}
