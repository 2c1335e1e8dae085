package server

import (
	"errors"
	"net/http"
	"strings"

	"daysquare/internal/logger"
	"daysquare/internal/openapi"
	"daysquare/internal/parser"
	"daysquare/internal/store"
	"daysquare/internal/types"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const formPage = `<!doctype html>
<html>
    <head><title>Submit API</title></head>
    <body>
        <form action="/form" method="post">
            <label for="url">
                Enter url:
                <input type="text" name="url" placeholder="https://api.spotify.com|v1/artists/{id,string}?market=string">
            </label>

            <input type="submit" value="Submit">
        </form>
    </body>
</html>
`

func (s *Server) healthCheck(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func (s *Server) getForm(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(formPage))
}

func (s *Server) postForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "BadRequest", "invalid form body")
		return
	}
	line := r.PostForm.Get("url")
	log := logger.WithReqIDFromCtx(r.Context(), s.log).WithField("request_url", line)

	desc, err := parser.Parse(line)
	if err != nil {
		status, reason := parseErrorStatus(err)
		if status == http.StatusBadRequest {
			log.WithError(err).Info("Rejected endpoint line")
			writeError(w, status, reason, err.Error())
			return
		}
		log.WithError(err).Error("Failed to parse endpoint line")
		writeError(w, status, reason, "failed to parse endpoint line")
		return
	}

	log.Debug("Parsed endpoint line")
	writeJSON(w, http.StatusOK, desc)
}

// parseErrorStatus maps a parse failure to a response: rejected input is
// the client's fault, anything else is ours
func parseErrorStatus(err error) (int, string) {
	if parser.IsInvalidInput(err) {
		return http.StatusBadRequest, "InvalidEndpoint"
	}
	return http.StatusInternalServerError, "InternalError"
}

func (s *Server) createService(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "BadRequest", "invalid form body")
		return
	}

	service := &types.Service{
		Title:       strings.TrimSpace(r.PostForm.Get("title")),
		URL:         strings.TrimSpace(r.PostForm.Get("url")),
		Description: strings.TrimSpace(r.PostForm.Get("description")),
		Endpoint:    strings.TrimSpace(r.PostForm.Get("endpoint")),
	}
	log := logger.WithReqIDFromCtx(r.Context(), s.log).WithField("request_url", service.URL)
	log.Info("Adding a new API service")

	if err := service.Validate(); err != nil {
		var verr *types.ValidationError
		if errors.As(err, &verr) {
			writeJSON(w, http.StatusBadRequest, errorResponse{
				Code:    http.StatusBadRequest,
				Message: err.Error(),
				Reason:  "InvalidService",
				Fields:  verr.Fields,
			})
			return
		}
		writeError(w, http.StatusBadRequest, "InvalidService", err.Error())
		return
	}

	if err := s.store.CreateService(r.Context(), service); err != nil {
		log.WithError(err).Error("Failed to store service")
		writeError(w, http.StatusInternalServerError, "InternalError", "failed to store service")
		return
	}

	writeJSON(w, http.StatusOK, service)
}

func (s *Server) listServices(w http.ResponseWriter, r *http.Request) {
	services, err := s.store.ListServices(r.Context())
	if err != nil {
		logger.WithReqIDFromCtx(r.Context(), s.log).WithError(err).Error("Failed to list services")
		writeError(w, http.StatusInternalServerError, "InternalError", "failed to list services")
		return
	}
	writeJSON(w, http.StatusOK, services)
}

func (s *Server) getService(w http.ResponseWriter, r *http.Request) {
	service, ok := s.lookupService(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, service)
}

func (s *Server) deleteService(w http.ResponseWriter, r *http.Request) {
	id, ok := serviceID(w, r)
	if !ok {
		return
	}
	err := s.store.DeleteService(r.Context(), id)
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "NotFound", err.Error())
	case err != nil:
		logger.WithReqIDFromCtx(r.Context(), s.log).WithError(err).Error("Failed to delete service")
		writeError(w, http.StatusInternalServerError, "InternalError", "failed to delete service")
	default:
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) serviceOpenAPI(w http.ResponseWriter, r *http.Request) {
	service, ok := s.lookupService(w, r)
	if !ok {
		return
	}

	desc, err := service.Descriptor()
	if err != nil {
		// stored lines were validated on the way in
		logger.WithReqIDFromCtx(r.Context(), s.log).WithError(err).Error("Stored endpoint no longer parses")
		writeError(w, http.StatusInternalServerError, "InternalError", "stored endpoint is invalid")
		return
	}
	if desc == nil {
		writeError(w, http.StatusNotFound, "NotFound", "service has no endpoint")
		return
	}

	doc, err := openapi.Export(r.Context(), service.Title, []openapi.Entry{{Name: service.Title, Descriptor: desc}})
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "UnsupportedEndpoint", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (s *Server) lookupService(w http.ResponseWriter, r *http.Request) (*types.Service, bool) {
	id, ok := serviceID(w, r)
	if !ok {
		return nil, false
	}
	service, err := s.store.GetService(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "NotFound", err.Error())
		return nil, false
	}
	if err != nil {
		logger.WithReqIDFromCtx(r.Context(), s.log).WithError(err).Error("Failed to fetch service")
		writeError(w, http.StatusInternalServerError, "InternalError", "failed to fetch service")
		return nil, false
	}
	return service, true
}

func serviceID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "BadRequest", "invalid service id")
		return uuid.Nil, false
	}
	return id, true
}
