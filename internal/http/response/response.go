package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Tillayevxusniddin/JDUCoworking/internal/common"
)

// ErrorCollector counts error responses by code.
type ErrorCollector interface {
	ObserveError(code string)
}

var errorCollector ErrorCollector

func SetErrorCollector(c ErrorCollector) {
	errorCollector = c
}

type errorBody struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

// Error maps the error taxonomy onto HTTP statuses. Internal causes are
// never serialized; clients see the code and message only.
func Error(w http.ResponseWriter, err error) {
	code := common.CodeOf(err)
	body := errorBody{Code: string(code), Message: "internal error"}

	var appErr *common.Error
	if errors.As(err, &appErr) && code != common.CodeInternal {
		body.Message = appErr.Message
		body.Fields = appErr.Fields
	}
	if errorCollector != nil {
		errorCollector.ObserveError(string(code))
	}
	JSON(w, statusFor(code), errorEnvelope{Error: body})
}

func statusFor(code common.ErrorCode) int {
	switch code {
	case common.CodeValidation:
		return http.StatusBadRequest
	case common.CodeUnauthorized:
		return http.StatusUnauthorized
	case common.CodeForbidden:
		return http.StatusForbidden
	case common.CodeNotFound:
		return http.StatusNotFound
	case common.CodeConflict:
		return http.StatusConflict
	case common.CodeInvalidState, common.CodeCapacity:
		return http.StatusUnprocessableEntity
	case common.CodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
