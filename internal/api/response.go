package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/certprep/internal/progression"
	"github.com/abhisek/certprep/internal/quizgen"
	"github.com/abhisek/certprep/internal/store"
)

// Error codes returned in the error envelope.
const (
	CodeNotFound          = "not_found"
	CodeConflict          = "conflict"
	CodeInvalidArgument   = "invalid_argument"
	CodeUpstreamMalformed = "upstream_malformed"
	CodeGenerationFailed  = "generation_failed"
	CodeInternal          = "internal"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.AbortWithStatusJSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

// errInvalidArgument marks request decoding failures.
var errInvalidArgument = errors.New("invalid argument")

// classify maps a service error onto an HTTP status and error code.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, errInvalidArgument), errors.Is(err, quizgen.ErrInvalidRequest):
		return http.StatusBadRequest, CodeInvalidArgument
	case errors.Is(err, progression.ErrNotFound),
		errors.Is(err, store.ErrNotFound),
		errors.Is(err, quizgen.ErrUnknownCertification):
		return http.StatusNotFound, CodeNotFound
	case errors.Is(err, progression.ErrAlreadyGraded), errors.Is(err, progression.ErrConflict):
		return http.StatusConflict, CodeConflict
	case errors.Is(err, quizgen.ErrMalformed):
		return http.StatusBadGateway, CodeUpstreamMalformed
	case errors.Is(err, quizgen.ErrGeneration):
		return http.StatusBadGateway, CodeGenerationFailed
	}
	return http.StatusInternalServerError, CodeInternal
}

// respondErr writes err with its mapped status. Internal errors are
// logged and replaced by a generic message.
func (s *Server) respondErr(c *gin.Context, err error) {
	status, code := classify(err)
	if status >= http.StatusInternalServerError {
		s.log.Error("request failed", "path", c.FullPath(), "code", code, "error", err)
		if status == http.StatusInternalServerError {
			err = errors.New("internal error")
		}
	}
	RespondError(c, status, code, err)
}
