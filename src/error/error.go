package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
)

const (
	// Password Errors
	MsgEmptyPassword             = "Password cannot be empty"
	MsgExceededMaxPasswordLength = "Password must not be more than %d characters"
	MsgInvalidHashFormat         = "Invalid password hash format"
	MsgHashingError              = "Error while hashing password"

	// Authentication & User Errors
	MsgInvalidToken         = "Authentication token is invalid or expired"
	MsgWrongCredentials     = "Email or password is wrong"
	MsgEmailExist           = "A user with this email already exists"
	MsgUserNoLongerExist    = "User belonging to this token no longer exists"
	MsgTokenNotProvided     = "You are not logged in, please provide a token"
	MsgPermissionDenied     = "You are not allowed to perform this action"
	MsgUserNotAuthenticated = "Authentication required. Please log in."

	// Server/Internal Errors
	MsgServerError = "Server Error. Please try again later"
)

// StatusFail is the only value ever written to the envelope's status field.
const StatusFail = "fail"

// Reason is the closed set of failure reasons. Only this package implements it.
type Reason interface {
	Message() string
	Status() int
	reason()
}

// ErrorMessage enumerates the reasons that carry no parameter.
type ErrorMessage int

const (
	EmptyPassword ErrorMessage = iota + 1
	InvalidHashFormat
	HashingError
	InvalidToken
	ServerError
	WrongCredentials
	EmailExist
	UserNoLongerExist
	TokenNotProvided
	PermissionDenied
	UserNotAuthenticated
)

// AllMessages lists every parameterless reason.
var AllMessages = []ErrorMessage{
	EmptyPassword,
	InvalidHashFormat,
	HashingError,
	InvalidToken,
	ServerError,
	WrongCredentials,
	EmailExist,
	UserNoLongerExist,
	TokenNotProvided,
	PermissionDenied,
	UserNotAuthenticated,
}

func (ErrorMessage) reason() {}

func (m ErrorMessage) Message() string {
	switch m {
	case EmptyPassword:
		return MsgEmptyPassword
	case InvalidHashFormat:
		return MsgInvalidHashFormat
	case HashingError:
		return MsgHashingError
	case InvalidToken:
		return MsgInvalidToken
	case WrongCredentials:
		return MsgWrongCredentials
	case EmailExist:
		return MsgEmailExist
	case UserNoLongerExist:
		return MsgUserNoLongerExist
	case TokenNotProvided:
		return MsgTokenNotProvided
	case PermissionDenied:
		return MsgPermissionDenied
	case UserNotAuthenticated:
		return MsgUserNotAuthenticated
	default:
		return MsgServerError
	}
}

func (m ErrorMessage) Status() int {
	switch m {
	case EmptyPassword:
		return http.StatusBadRequest
	case InvalidToken, WrongCredentials, UserNoLongerExist, TokenNotProvided, UserNotAuthenticated:
		return http.StatusUnauthorized
	case EmailExist:
		return http.StatusConflict
	case PermissionDenied:
		return http.StatusForbidden
	default:
		// InvalidHashFormat, HashingError, ServerError and anything unknown.
		return http.StatusInternalServerError
	}
}

func (m ErrorMessage) String() string {
	return m.Message()
}

// ExceededMaxPasswordLength is the reason for a password longer than the given maximum.
type ExceededMaxPasswordLength int

func (ExceededMaxPasswordLength) reason() {}

func (n ExceededMaxPasswordLength) Message() string {
	return fmt.Sprintf(MsgExceededMaxPasswordLength, int(n))
}

func (ExceededMaxPasswordLength) Status() int {
	return http.StatusBadRequest
}

func (n ExceededMaxPasswordLength) String() string {
	return n.Message()
}

// MessageFor returns the fixed text of a reason. A nil reason reads as ServerError.
func MessageFor(r Reason) string {
	if r == nil {
		return ServerError.Message()
	}
	return r.Message()
}

// HttpError pairs a client-facing message with the HTTP status it is answered with.
type HttpError struct {
	Message string
	Status  int
}

// New builds an HttpError with a custom message and status.
func New(message string, status int) *HttpError {
	return &HttpError{Message: message, Status: status}
}

// FromReason builds an HttpError carrying the reason's fixed message and status.
func FromReason(r Reason) *HttpError {
	if r == nil {
		r = ServerError
	}
	return &HttpError{Message: r.Message(), Status: r.Status()}
}

func NewServerError(message string) *HttpError {
	return New(message, http.StatusInternalServerError)
}

func NewBadRequest(message string) *HttpError {
	return New(message, http.StatusBadRequest)
}

// NewConflict is used for unique constraint violations.
func NewConflict(message string) *HttpError {
	return New(message, http.StatusConflict)
}

func NewUnauthorized(message string) *HttpError {
	return New(message, http.StatusUnauthorized)
}

func NewForbidden(message string) *HttpError {
	return New(message, http.StatusForbidden)
}

func (e *HttpError) Error() string {
	return fmt.Sprintf("HttpError: message: %s, status: %d", e.Message, e.Status)
}

// ErrorResponse is the JSON body of every error answer.
type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func (r ErrorResponse) String() string {
	return string(r.mustMarshal())
}

func (r ErrorResponse) mustMarshal() []byte {
	body, err := json.Marshal(r)
	if err != nil {
		// Two plain string fields cannot fail to encode.
		panic(fmt.Sprintf("encode error response: %v", err))
	}
	return body
}

// ToResponse converts an HttpError into its status code and envelope.
func ToResponse(e *HttpError) (int, ErrorResponse) {
	if e == nil {
		e = FromReason(ServerError)
	}
	return e.Status, ErrorResponse{Status: StatusFail, Message: e.Message}
}

// AsHttpError unwraps err to an HttpError. Anything else becomes the generic ServerError.
func AsHttpError(err error) *HttpError {
	var httpErr *HttpError
	if stderrors.As(err, &httpErr) && httpErr != nil {
		return httpErr
	}
	return FromReason(ServerError)
}

// WriteError answers the request with err's status and envelope.
func WriteError(w http.ResponseWriter, err error) {
	status, resp := ToResponse(AsHttpError(err))
	body := resp.mustMarshal()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(body)
}
