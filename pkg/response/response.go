package response

import "errors"

type Response struct {
	ResponseError `json:"error,omitzero"`
}

type ResponseError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

//Error Codes
type ErrCode string

var (
	FAILED_REQUEST    ErrCode = "REQUEST_FAILED"
	BAD_REQUEST       ErrCode = "FAILED_TO_DECODE"
	NOT_FOUND         ErrCode = "NOT_FOUND"
	FORBIDDEN         ErrCode = "FORBIDDEN"
	UNAUTHORIZED      ErrCode = "UNAUTHORIZED"
	VALIDATION_FAILED ErrCode = "VALIDATION_FAILED"
	CONFLICT          ErrCode = "CONFLICT"
	UPSTREAM_FAILED   ErrCode = "UPSTREAM_FAILED"
)

var (
	ErrBadRequest = errors.New("bad request")
	ErrNotFound   = errors.New("resource not found")
	ErrForbidden  = errors.New("operation not allowed for this user")
	ErrNoSession  = errors.New("no active session")
	ErrConflict   = errors.New("conflict")
	ErrValidation = errors.New("validation failed")
	ErrUpstream   = errors.New("backend request failed")
)

func Error(code, msg string) Response {
	return Response{
		ResponseError: ResponseError{
			Code:    code,
			Message: msg,
		},
	}
}
