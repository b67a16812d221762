package domain

type ErrorCode string

const (
	ErrorCodeNotFound         ErrorCode = "NOT_FOUND"
	ErrorCodeUnknownEventKind ErrorCode = "UNKNOWN_EVENT_KIND"
	ErrorCodeUnknownChannel   ErrorCode = "UNKNOWN_CHANNEL"
	ErrorCodeUnknownTemplate  ErrorCode = "UNKNOWN_TEMPLATE"
	ErrorCodeInvalidStatus    ErrorCode = "INVALID_STATUS"
)

// DomainError is returned for conditions the caller can act on; anything else
// is treated as an internal error by the HTTP layer.
type DomainError struct {
	Code       ErrorCode
	Message    string
	HTTPStatus int
}

func (e *DomainError) Error() string {
	return e.Message
}
