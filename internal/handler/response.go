package handler

import (
	"errors"
	"net/http"
	"strings"

	apperrors "github.com/ordinacija/patients-api/pkg/errors"
	"github.com/ordinacija/patients-api/pkg/result"
)

// Response is the uniform JSON envelope returned by every endpoint.
type Response struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Errors  []string    `json:"errors,omitempty"`
}

func NewSuccessResponse(data interface{}) Response {
	return Response{Status: "success", Data: data}
}

func NewMessageResponse(message string) Response {
	return Response{Status: "success", Message: message}
}

func NewErrorResponse(message string, errs ...string) Response {
	return Response{Status: "error", Message: message, Errors: errs}
}

// FromResult maps a service Result to an HTTP status and envelope. Failure
// messages carry no structured codes, so the class is read off the message.
func FromResult(res result.Result) (int, Response) {
	if res.IsSuccess() {
		return http.StatusOK, Response{Status: "success"}
	}

	msg := res.Error()
	status := http.StatusInternalServerError
	switch {
	case strings.Contains(strings.ToLower(msg), "not found"):
		status = http.StatusNotFound
	case strings.Contains(msg, "already registered"):
		status = http.StatusConflict
	case strings.Contains(msg, "aren't valid"):
		status = http.StatusBadRequest
	}
	return status, NewErrorResponse(msg, res.Errors()...)
}

// FromError maps a service error to an HTTP status and envelope. AppError
// codes drive the status; anything else is a 500.
func FromError(err error) (int, Response) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		status := http.StatusInternalServerError
		switch appErr.Code {
		case apperrors.ErrNotFound:
			status = http.StatusNotFound
		case apperrors.ErrBadRequest:
			status = http.StatusBadRequest
		case apperrors.ErrConflict:
			status = http.StatusConflict
		}
		return status, NewErrorResponse(appErr.Message)
	}
	return http.StatusInternalServerError, NewErrorResponse(err.Error())
}
