// Package envelope writes the JSON response envelope shared by all /api routes.
package envelope

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/BearBump/ShipperBox/internal/api/middleware"
	"github.com/BearBump/ShipperBox/internal/apperr"
	"github.com/BearBump/ShipperBox/internal/validation"
)

const (
	StatusSuccess         = "Success"
	StatusError           = "Error"
	StatusValidationError = "ValidationError"

	MsgUnhandled = "An unhandled exception has occurred while executing the request."
)

type successResponse struct {
	ID     string `json:"id"`
	Method string `json:"method"`
	Status string `json:"status"`
	Data   any    `json:"data"`
}

type failureResponse struct {
	ID     string `json:"id"`
	Method string `json:"method"`
	Status string `json:"status"`
	Errors any    `json:"errors"`
}

type failureInformation struct {
	Message     string `json:"message"`
	Description string `json:"description"`
}

// Message is the data of a response that only carries a text.
type Message struct {
	Message string `json:"message"`
}

func method(r *http.Request) string {
	return r.URL.Path + "." + r.Method
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		slog.Error("json encode", "error", err.Error())
	}
}

func Success(w http.ResponseWriter, r *http.Request, data any) {
	writeJSON(w, http.StatusOK, successResponse{
		ID:     middleware.CorrelationID(r.Context()),
		Method: method(r),
		Status: StatusSuccess,
		Data:   data,
	})
}

// Failure answers 400 for an expected business outcome.
func Failure(w http.ResponseWriter, r *http.Request, message string) {
	writeJSON(w, http.StatusBadRequest, failureResponse{
		ID:     middleware.CorrelationID(r.Context()),
		Method: method(r),
		Status: StatusError,
		Errors: Message{Message: message},
	})
}

func Violations(w http.ResponseWriter, r *http.Request, vs []validation.Violation) {
	infos := make([]failureInformation, 0, len(vs))
	for _, v := range vs {
		infos = append(infos, failureInformation{Message: v.Field + " error", Description: v.Message})
	}
	writeJSON(w, http.StatusBadRequest, failureResponse{
		ID:     middleware.CorrelationID(r.Context()),
		Method: method(r),
		Status: StatusValidationError,
		Errors: infos,
	})
}

// Error maps argument errors to 400 and everything else to 500. The 500 body
// carries err's text only when debug is set.
func Error(w http.ResponseWriter, r *http.Request, log *slog.Logger, debug bool, err error) {
	if ae, ok := apperr.AsArgument(err); ok {
		Violations(w, r, []validation.Violation{{Field: ae.Param, Message: ae.Error()}})
		return
	}

	log.Error("request failed",
		"method", method(r),
		"correlation_id", middleware.CorrelationID(r.Context()),
		"error", err.Error(),
	)

	info := failureInformation{Message: MsgUnhandled}
	if debug {
		info = failureInformation{Message: err.Error(), Description: fmt.Sprintf("%+v", err)}
	}
	writeJSON(w, http.StatusInternalServerError, failureResponse{
		ID:     middleware.CorrelationID(r.Context()),
		Method: method(r),
		Status: StatusError,
		Errors: []failureInformation{info},
	})
}
