package ecode

import (
	"net/http"
	"sync"
)

// Business codes returned in the Code field of error responses.
const (
	OK = 0

	// authentication
	NoLogin            = -101
	InvalidCredentials = -102
	SessionExpired     = -103

	// request
	RequestErr     = -400
	ParamErr       = -401
	MissingFields  = -402
	InvalidEmail   = -403
	AccessDenied   = -404
	NothingFound   = -405
	MethodNotAllow = -406
	Conflict       = -409

	TooManyRequests = -429

	// server
	ServerErr          = -500
	ServiceUnavailable = -503
	Deadline           = -504
	SendFailed         = -510
	StorageErr         = -520
)

var (
	mu       sync.RWMutex
	messages = map[int]string{
		OK:                 "ok",
		NoLogin:            "Account not logged in",
		InvalidCredentials: "invalid credentials",
		SessionExpired:     "Session expired",
		RequestErr:         "Invalid request",
		ParamErr:           "Invalid parameters",
		MissingFields:      "Missing required fields",
		InvalidEmail:       "Invalid email format",
		AccessDenied:       "Access denied",
		NothingFound:       "Not found",
		MethodNotAllow:     "Method not allowed",
		Conflict:           "Conflict",
		TooManyRequests:    "Too many requests",
		ServerErr:          "Internal server error",
		ServiceUnavailable: "Service unavailable",
		Deadline:           "Deadline exceeded",
		SendFailed:         "Failed to send email. Please try again.",
		StorageErr:         "Failed to save data",
	}
)

// Text returns the message registered for code.
func Text(code int) string {
	mu.RLock()
	defer mu.RUnlock()
	if msg, ok := messages[code]; ok {
		return msg
	}
	return messages[ServerErr]
}

// Register sets or replaces the message for code.
func Register(code int, message string) {
	mu.Lock()
	defer mu.Unlock()
	messages[code] = message
}

// ToHTTPStatus maps a business code to its HTTP status.
func ToHTTPStatus(code int) int {
	switch code {
	case OK:
		return http.StatusOK
	case NoLogin, InvalidCredentials, SessionExpired:
		return http.StatusUnauthorized
	case AccessDenied:
		return http.StatusForbidden
	case NothingFound:
		return http.StatusNotFound
	case MethodNotAllow:
		return http.StatusMethodNotAllowed
	case Conflict:
		return http.StatusConflict
	case TooManyRequests:
		return http.StatusTooManyRequests
	case ServiceUnavailable:
		return http.StatusServiceUnavailable
	case Deadline:
		return http.StatusGatewayTimeout
	case ServerErr, SendFailed, StorageErr:
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}
