package types

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"daysquare/internal/parser"

	"github.com/google/uuid"
)

// Service is a registered remote API
type Service struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	URL         string    `json:"url"`
	Description string    `json:"description"`
	// Endpoint is an optional endpoint line describing the service API
	Endpoint  string    `json:"endpoint,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ValidationError lists every rejected field of a service
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, field := range []string{"title", "url", "description", "endpoint"} {
		if msg, ok := e.Fields[field]; ok {
			msgs = append(msgs, fmt.Sprintf("%s: %s", field, msg))
		}
	}
	return "invalid service: " + strings.Join(msgs, "; ")
}

// Validate checks field lengths and that Endpoint, when set, parses
func (s *Service) Validate() error {
	fields := map[string]string{}

	if n := utf8.RuneCountInString(s.Title); n < 1 || n > 50 {
		fields["title"] = "must be between 1 and 50 characters"
	}
	if strings.TrimSpace(s.URL) == "" {
		fields["url"] = "is required"
	}
	if n := utf8.RuneCountInString(s.Description); n < 1 || n > 150 {
		fields["description"] = "must be between 1 and 150 characters"
	}
	if s.Endpoint != "" {
		if _, err := parser.Parse(s.Endpoint); err != nil {
			fields["endpoint"] = err.Error()
		}
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// Descriptor parses the service endpoint line. It returns nil, nil when
// the service has none.
func (s *Service) Descriptor() (*parser.EndpointDescriptor, error) {
	if s.Endpoint == "" {
		return nil, nil
	}
	return parser.Parse(s.Endpoint)
}
