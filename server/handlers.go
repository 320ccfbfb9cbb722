package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"

	"github.com/menmos/intervals-go/interval"
	"github.com/menmos/intervals-go/payload"
)

const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

func (s *Server) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.log.WithError(err).WithField("status", status).Debug("failed to write response")
	}
}

func (s *Server) handleIntervals(w http.ResponseWriter, req *http.Request, _ httprouter.Params) {
	var raw interface{}
	if err := json.NewDecoder(req.Body).Decode(&raw); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.writeTooLarge(w, tooLarge.Limit)
			return
		}
		s.metrics.reject("body")
		s.writeJSON(w, http.StatusBadRequest, payload.ErrorResponse{Error: "Invalid request body", Details: err.Error()})
		return
	}

	request, err := payload.ParseIntervalRequest(raw)
	if errors.Is(err, payload.ErrNotAnObject) {
		s.metrics.reject("body")
		s.writeJSON(w, http.StatusBadRequest, payload.ErrorResponse{Error: "Invalid request body", Details: err.Error()})
		return
	}
	if err != nil {
		s.writeProcessingError(w, err)
		return
	}

	response, err := s.svc.Process(request)
	if err != nil {
		s.writeProcessingError(w, err)
		return
	}

	s.metrics.observeResult(len(response.Result), response.ExecutionTime)
	s.writeJSON(w, http.StatusOK, response)
}

func (s *Server) writeProcessingError(w http.ResponseWriter, err error) {
	if !interval.IsInputError(err) {
		s.writeInternalError(w, err)
		return
	}
	s.metrics.reject(rejectionKind(err))
	s.writeJSON(w, http.StatusBadRequest, payload.ErrorResponse{Error: "Processing failed", Details: err.Error()})
}

func rejectionKind(err error) string {
	var (
		formatErr *interval.FormatError
		valueErr  *interval.ValueError
	)
	switch {
	case errors.As(err, &formatErr):
		return "format"
	case errors.As(err, &valueErr):
		return "value"
	default:
		return "validation"
	}
}

func (s *Server) writeInternalError(w http.ResponseWriter, err error) {
	s.log.WithError(err).Error("Server error")

	message := "Something went wrong"
	if s.cfg.IsDevelopment() {
		message = err.Error()
	}
	s.writeJSON(w, http.StatusInternalServerError, payload.ErrorResponse{Error: "Internal server error", Message: message})
}

func (s *Server) handlePanic(w http.ResponseWriter, _ *http.Request, recovered interface{}) {
	err, ok := recovered.(error)
	if !ok {
		err = fmt.Errorf("%v", recovered)
	}
	s.writeInternalError(w, errors.WithStack(err))
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	s.writeJSON(w, http.StatusOK, payload.HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(timestampLayout),
		Service:   ServiceName,
		Version:   Version,
	})
}

func (s *Server) handleDocs(w http.ResponseWriter, req *http.Request, _ httprouter.Params) {
	s.writeJSON(w, http.StatusOK, openAPIDocument(req.Host))
}

func (s *Server) handleNotFound(w http.ResponseWriter, req *http.Request) {
	s.writeJSON(w, http.StatusNotFound, payload.ErrorResponse{
		Error:   "Not Found",
		Message: fmt.Sprintf("Route %s %s not found", req.Method, req.URL.RequestURI()),
	})
}
