package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/spektr-org/promptchart/engine"
	"github.com/spektr-org/promptchart/resolver"
	"github.com/spektr-org/promptchart/translator"
)

// Error codes returned in APIError.Code.
const (
	ErrorCodeInvalidRequest   = "INVALID_REQUEST"
	ErrorCodeUnknownDataset   = "UNKNOWN_DATASET"
	ErrorCodeInvalidIntent    = "INVALID_INTENT"
	ErrorCodeGenerationFailed = "GENERATION_FAILED"
	ErrorCodeInternal         = "INTERNAL_ERROR"
)

// APIError is the body of every non-2xx response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// RespondWithError sends a standardized JSON error response.
func RespondWithError(c *gin.Context, httpStatus int, code, message string, details any) {
	c.AbortWithStatusJSON(httpStatus, APIError{Code: code, Message: message, Details: details})
}

// respondWithPipelineError maps resolver and engine errors to HTTP.
func respondWithPipelineError(c *gin.Context, err error) {
	var unknown *engine.UnknownDatasetError
	switch {
	case errors.Is(err, resolver.ErrEmptyPrompt):
		RespondWithError(c, http.StatusBadRequest, ErrorCodeInvalidRequest, err.Error(), nil)
	case errors.As(err, &unknown):
		RespondWithError(c, http.StatusNotFound, ErrorCodeUnknownDataset, unknown.Error(), gin.H{"dataset": unknown.Name})
	case errors.Is(err, translator.ErrInvalidIntent):
		RespondWithError(c, http.StatusUnprocessableEntity, ErrorCodeInvalidIntent, "Invalid intent from LLM", gin.H{"reason": err.Error()})
	case errors.Is(err, translator.ErrGeneration):
		RespondWithError(c, http.StatusBadGateway, ErrorCodeGenerationFailed, "Failed to generate chart intent", gin.H{"reason": err.Error()})
	default:
		log.WithError(err).WithField("requestId", requestID(c)).Error("chart request failed")
		RespondWithError(c, http.StatusInternalServerError, ErrorCodeInternal, "Internal server error", nil)
	}
}
