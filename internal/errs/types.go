package errs

type ErrorMessage struct {
	Message string
}

func (e *ErrorMessage) Error() string { return e.Message }

// Analysis failure messages are part of the observable contract; tests and
// log consumers match on the exact strings.
const (
	emptyBatchResponseMessage   = "Received empty batch image annotation response."
	responseErrorMessage        = "Received image annotation response with error."
	emptyTextAnnotationsMessage = "Received image annotation response without text annotations."
	requestFailedMessage        = "Image annotation request failed."
	sourceUnreadableMessage     = "Failed to read receipt image source."
)

// SourceUnreadableError means the image bytes could not be fetched from the
// source URL before annotation was ever attempted.
type SourceUnreadableError struct {
	ErrorMessage
	Cause error
}

func (e *SourceUnreadableError) Unwrap() error { return e.Cause }

// RequestFailedError means the batch annotation call itself raised a
// transport or service fault; the underlying fault is preserved as the cause.
type RequestFailedError struct {
	ErrorMessage
	Cause error
}

func (e *RequestFailedError) Unwrap() error { return e.Cause }

// EmptyBatchResponseError means the batch response carried zero per-image
// responses.
type EmptyBatchResponseError struct {
	ErrorMessage
}

// ResponseError means the per-image response carried an embedded error
// status instead of annotations.
type ResponseError struct {
	ErrorMessage
}

// EmptyTextAnnotationsError means the per-image response succeeded but holds
// no text annotations.
type EmptyTextAnnotationsError struct {
	ErrorMessage
}

// StorageUnavailableError wraps a record or image store I/O fault; fatal for
// the current request, never retried in-core.
type StorageUnavailableError struct {
	ErrorMessage
	Operation string
	Cause     error
}

func (e *StorageUnavailableError) Unwrap() error { return e.Cause }

type NotFoundError struct {
	ErrorMessage
}

type ValidationError struct {
	ErrorMessage
}

func NewSourceUnreadableError(cause error) *SourceUnreadableError {
	return &SourceUnreadableError{
		ErrorMessage: ErrorMessage{Message: sourceUnreadableMessage},
		Cause:        cause,
	}
}

func NewRequestFailedError(cause error) *RequestFailedError {
	return &RequestFailedError{
		ErrorMessage: ErrorMessage{Message: requestFailedMessage},
		Cause:        cause,
	}
}

func NewEmptyBatchResponseError() *EmptyBatchResponseError {
	return &EmptyBatchResponseError{
		ErrorMessage: ErrorMessage{Message: emptyBatchResponseMessage},
	}
}

func NewResponseError() *ResponseError {
	return &ResponseError{
		ErrorMessage: ErrorMessage{Message: responseErrorMessage},
	}
}

func NewEmptyTextAnnotationsError() *EmptyTextAnnotationsError {
	return &EmptyTextAnnotationsError{
		ErrorMessage: ErrorMessage{Message: emptyTextAnnotationsMessage},
	}
}

func NewStorageUnavailableError(operation, message string, cause error) *StorageUnavailableError {
	return &StorageUnavailableError{
		ErrorMessage: ErrorMessage{Message: message},
		Operation:    operation,
		Cause:        cause,
	}
}

func NewNotFoundError(message string) *NotFoundError {
	return &NotFoundError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}

func NewValidationError(message string) *ValidationError {
	return &ValidationError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}
