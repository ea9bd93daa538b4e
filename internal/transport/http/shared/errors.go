package shared

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"perftrack/internal/transport/http/api"
)

// ErrorRule maps a domain sentinel to a response status and code.
type ErrorRule struct {
	Target error
	Status int
	Code   string
}

func NotFound(target error, code string) ErrorRule {
	return ErrorRule{Target: target, Status: http.StatusNotFound, Code: code}
}

func BadRequest(target error, code string) ErrorRule {
	return ErrorRule{Target: target, Status: http.StatusBadRequest, Code: code}
}

func Conflict(target error, code string) ErrorRule {
	return ErrorRule{Target: target, Status: http.StatusConflict, Code: code}
}

// FailMapped writes the first matching rule for err. Unmatched errors are
// logged and reported as 500 with fallbackCode.
func FailMapped(w http.ResponseWriter, requestID string, err error, fallbackCode string, rules ...ErrorRule) {
	for _, rule := range rules {
		if errors.Is(err, rule.Target) {
			api.Fail(w, rule.Status, rule.Code, rule.Target.Error(), requestID)
			return
		}
	}
	zap.L().Error("request failed",
		zap.String("code", fallbackCode),
		zap.String("requestId", requestID),
		zap.Error(err),
	)
	api.Fail(w, http.StatusInternalServerError, fallbackCode, "internal server error", requestID)
}
