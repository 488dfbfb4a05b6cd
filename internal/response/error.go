package response

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/basaam0/receipt-roundup/internal/errs"
	"github.com/basaam0/receipt-roundup/pkg/logger"
)

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (h *responseHandler) WriteError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(ErrorResponse{
		Code:    code,
		Message: message,
	}); err != nil {
		log := logger.FromContext(r.Context())
		log.Error("failed to encode error response", "error", err, "status", status, "code", code)
	}
}

func (h *responseHandler) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContext(r.Context())

	switch e := err.(type) {
	case *errs.NotFoundError:
		log.Warn("resource not found", "error", e.Message)
		h.WriteError(w, r, http.StatusNotFound, "not_found", e.Message)

	case *errs.ValidationError:
		log.Warn("validation failed", "error", e.Message)
		h.WriteError(w, r, http.StatusBadRequest, "invalid_input", e.Message)

	case *errs.SourceUnreadableError:
		log.Warn("receipt image unreadable", "error", e.Message, "cause", e.Cause)
		h.WriteError(w, r, http.StatusBadRequest, "source_unreadable", e.Message)

	case *errs.RequestFailedError:
		log.Error("image annotation request failed", "error", e.Message, "cause", e.Cause)
		h.WriteError(w, r, http.StatusBadGateway, "recognition_unavailable", e.Message)

	case *errs.EmptyBatchResponseError, *errs.ResponseError, *errs.EmptyTextAnnotationsError:
		// The recognition exchange completed but the receipt couldn't be read.
		log.Warn("receipt analysis failed", "error", err.Error())
		h.WriteError(w, r, http.StatusUnprocessableEntity, "analysis_failed", err.Error())

	case *errs.StorageUnavailableError:
		log.Error("storage error",
			"operation", e.Operation,
			"error", e.Message,
			"cause", e.Cause)
		h.WriteError(w, r, http.StatusInternalServerError, "internal_error",
			"An error occurred")

	default:
		log.Error("unexpected error",
			"error", err,
			"type", fmt.Sprintf("%T", err))
		h.WriteError(w, r, http.StatusInternalServerError, "internal_error",
			"An unexpected error occurred")
	}
}
