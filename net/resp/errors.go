package resp

import (
	"net/http"

	"github.com/lapisvisuals/lapis/ecode"
)

// BadRequest indicates a bad request.
func BadRequest(message string, data ...any) *Exception {
	return newResponse(http.StatusBadRequest, ecode.RequestErr, message, data...)
}

// MissingFields indicates required request fields are absent.
func MissingFields(message string, data ...any) *Exception {
	return newResponse(http.StatusBadRequest, ecode.MissingFields, message, data...)
}

// InvalidEmail indicates an address failed the email format check.
func InvalidEmail(message string, data ...any) *Exception {
	return newResponse(http.StatusBadRequest, ecode.InvalidEmail, message, data...)
}

// UnAuthorized indicates that the request is unauthorized.
func UnAuthorized(message string, data ...any) *Exception {
	return newResponse(http.StatusUnauthorized, ecode.NoLogin, message, data...)
}

// InvalidCredentials indicates a failed login.
func InvalidCredentials(message string, data ...any) *Exception {
	return newResponse(http.StatusUnauthorized, ecode.InvalidCredentials, message, data...)
}

// NotFound indicates that the requested resource is not found.
func NotFound(message string, data ...any) *Exception {
	return newResponse(http.StatusNotFound, ecode.NothingFound, message, data...)
}

// Conflict indicates a conflict error.
func Conflict(message string, data ...any) *Exception {
	return newResponse(http.StatusConflict, ecode.Conflict, message, data...)
}

// InternalServer indicates a server error.
func InternalServer(message string, data ...any) *Exception {
	return newResponse(http.StatusInternalServerError, ecode.ServerErr, message, data...)
}

// SendFailed indicates an email provider failure.
func SendFailed(message string, data ...any) *Exception {
	return newResponse(http.StatusInternalServerError, ecode.SendFailed, message, data...)
}

// DBQuery indicates a storage failure.
func DBQuery(message string, data ...any) *Exception {
	return newResponse(http.StatusInternalServerError, ecode.StorageErr, message, data...)
}

// TooManyRequests indicates the caller hit a capacity limit.
func TooManyRequests(message string, data ...any) *Exception {
	return newResponse(http.StatusTooManyRequests, ecode.TooManyRequests, message, data...)
}

// ServiceUnavailable indicates a dependency is down.
func ServiceUnavailable(message string, data ...any) *Exception {
	return newResponse(http.StatusServiceUnavailable, ecode.ServiceUnavailable, message, data...)
}
