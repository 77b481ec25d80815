package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/jonathan/resume-rewriter/internal/logger"
	"github.com/jonathan/resume-rewriter/internal/pipeline"
	"github.com/jonathan/resume-rewriter/internal/server/middleware"
	"github.com/jonathan/resume-rewriter/internal/types"
)

// Multipart form field names
const (
	formResume         = "resume"
	formJobDescription = "job_description"
)

var formFieldNames = map[string]string{
	"Resume":         formResume,
	"JobDescription": formJobDescription,
	"ContentType":    "content_type",
	"Filename":       "filename",
}

// envelope is the body of every rewrite response
type envelope struct {
	Data    any    `json:"data"`
	Status  int    `json:"status"`
	Message string `json:"message,omitempty"`
}

// handleRewrite runs the pipeline on an authorized multipart request.
func (s *Server) handleRewrite(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.RequestID(r.Context())
	log := s.log.With(zap.String(logger.FieldRequestID, requestID))

	req, err := s.parseRewriteRequest(w, r)
	if r.MultipartForm != nil {
		defer r.MultipartForm.RemoveAll() //nolint:errcheck
	}
	if err != nil {
		s.failure(w, log, err)
		return
	}

	log.Info("rewrite request accepted",
		zap.String("filename", req.Filename),
		zap.String("content_type", req.ContentType),
		zap.Int("resume_bytes", len(req.Resume)),
	)

	payload, err := s.runner.Run(r.Context(), pipeline.Input{
		Resume:         req.Resume,
		ContentType:    req.ContentType,
		JobDescription: req.JobDescription,
		RequestID:      requestID,
	})
	if err != nil {
		s.failure(w, log, err)
		return
	}

	s.jsonResponse(w, http.StatusCreated, envelope{Data: payload, Status: http.StatusCreated})
}

// parseRewriteRequest reads the multipart form within the upload limit.
func (s *Server) parseRewriteRequest(w http.ResponseWriter, r *http.Request) (*types.RewriteRequest, error) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)
	if err := r.ParseMultipartForm(s.maxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, &ErrUploadTooLarge{Limit: s.maxUploadBytes}
		}
		return nil, &ErrValidation{Field: "body", Message: "must be multipart/form-data"}
	}

	file, header, err := r.FormFile(formResume)
	if err != nil {
		return nil, &ErrValidation{Field: formResume, Message: "is required"}
	}
	defer file.Close() //nolint:errcheck

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read resume: %w", err)
	}

	req := &types.RewriteRequest{
		Resume:         data,
		ContentType:    header.Header.Get("Content-Type"),
		Filename:       header.Filename,
		JobDescription: strings.TrimSpace(r.FormValue(formJobDescription)),
	}
	if err := req.Validate(); err != nil {
		return nil, validationError(err)
	}
	return req, nil
}

func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &ErrValidation{Field: "request", Message: err.Error()}
	}

	fe := verrs[0]
	field, ok := formFieldNames[fe.Field()]
	if !ok {
		field = fe.Field()
	}
	message := "is invalid"
	if fe.Tag() == "required" || fe.Tag() == "min" {
		message = "is required"
	}
	return &ErrValidation{Field: field, Message: message}
}

// denyResponse answers a request whose credential was not affirmed.
func (s *Server) denyResponse(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatus(err)
	if status != http.StatusBadGateway {
		status = http.StatusUnauthorized
	}

	if tracker := pipeline.TrackerFrom(r.Context()); tracker != nil {
		_ = tracker.Advance(pipeline.StateUnauthorized, "Not Authorized")
	}

	s.log.Warn("request not authorized",
		zap.String(logger.FieldRequestID, middleware.RequestID(r.Context())),
		zap.String(logger.FieldStage, string(pipeline.StateUnauthorized)),
		zap.Int("status", status),
		zap.Error(err),
	)
	if status == http.StatusUnauthorized {
		s.errorResponse(w, status, "Not Authorized")
		return
	}
	s.errorResponse(w, status, publicMessage(err))
}

// failure logs err and writes the matching error response.
func (s *Server) failure(w http.ResponseWriter, log *zap.Logger, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		log.Error("rewrite failed", zap.Int("status", status), zap.Error(err))
	} else {
		log.Info("rewrite rejected", zap.Int("status", status), zap.Error(err))
	}
	s.errorResponse(w, status, publicMessage(err))
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error("failed to encode JSON response", zap.Error(err))
	}
}

// errorResponse writes an error envelope
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, envelope{Data: "Error", Status: status, Message: message})
}
