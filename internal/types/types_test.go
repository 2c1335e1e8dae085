package types

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceValidate(t *testing.T) {
	valid := Service{Title: "spotify", URL: "spotify.com", Description: "music service"}
	require.NoError(t, valid.Validate())

	withEndpoint := valid
	withEndpoint.Endpoint = "https://api.spotify.com|v1/artists/{id,string}"
	require.NoError(t, withEndpoint.Validate())

	tests := []struct {
		name       string
		mutate     func(s *Service)
		wantFields []string
	}{
		{"missing title", func(s *Service) { s.Title = "" }, []string{"title"}},
		{"long title", func(s *Service) { s.Title = strings.Repeat("a", 51) }, []string{"title"}},
		{"missing url", func(s *Service) { s.URL = " " }, []string{"url"}},
		{"long description", func(s *Service) { s.Description = strings.Repeat("d", 151) }, []string{"description"}},
		{"bad endpoint", func(s *Service) { s.Endpoint = "https://x.com|v1/a//b" }, []string{"endpoint"}},
		{"everything missing", func(s *Service) { *s = Service{} }, []string{"title", "url", "description"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid
			tt.mutate(&s)
			err := s.Validate()

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Len(t, verr.Fields, len(tt.wantFields))
			for _, f := range tt.wantFields {
				assert.Contains(t, verr.Fields, f)
			}
		})
	}
}

func TestValidationErrorMessageIsOrdered(t *testing.T) {
	err := &ValidationError{Fields: map[string]string{"description": "x", "title": "y"}}
	assert.Equal(t, "invalid service: title: y; description: x", err.Error())
}

func TestServiceDescriptor(t *testing.T) {
	s := Service{}
	desc, err := s.Descriptor()
	assert.NoError(t, err)
	assert.Nil(t, desc)

	s.Endpoint = "https://api.spotify.com|v1/me"
	desc, err = s.Descriptor()
	require.NoError(t, err)
	assert.Equal(t, "v1", desc.Version)
}
