package testgen

import "fmt"

// Kind classifies a generation failure. Only retriable kinds participate in
// the retry loop; everything else short-circuits.
type Kind int

const (
	KindUnknown Kind = iota
	// KindMaterialMissing means the source material file does not exist.
	KindMaterialMissing
	// KindModelUnavailable is an HTTP 503: model not loaded or overloaded.
	KindModelUnavailable
	// KindModelNotFound is an HTTP 404: the configured model name is wrong.
	KindModelNotFound
	// KindServerError is an HTTP 500 from the inference server.
	KindServerError
	// KindConnectionFailed means the endpoint could not be reached.
	KindConnectionFailed
	// KindTimeout means the model took longer than the call timeout.
	KindTimeout
	// KindEmptyResponse is a 200 whose content payload is empty.
	KindEmptyResponse
)

func (k Kind) Retriable() bool {
	switch k {
	case KindModelUnavailable, KindConnectionFailed, KindTimeout:
		return true
	}
	return false
}

func (k Kind) String() string {
	switch k {
	case KindMaterialMissing:
		return "material_missing"
	case KindModelUnavailable:
		return "model_unavailable"
	case KindModelNotFound:
		return "model_not_found"
	case KindServerError:
		return "server_error"
	case KindConnectionFailed:
		return "connection_failed"
	case KindTimeout:
		return "timeout"
	case KindEmptyResponse:
		return "empty_response"
	default:
		return "unknown"
	}
}

// Error is the discriminated failure every generation call resolves to. The
// client never returns an untyped error: callers can always switch on Kind
// to render a diagnostic without crashing the request.
type Error struct {
	Kind   Kind
	Detail string
	Err    error
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return e.Kind.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Message is the human-readable diagnostic shown to the user.
func (e *Error) Message() string {
	switch e.Kind {
	case KindMaterialMissing:
		return "Material file not found."
	case KindModelUnavailable:
		return "The model is not ready or overloaded (503)."
	case KindModelNotFound:
		return "Model not found. Check the model name on the inference server."
	case KindServerError:
		return "The inference server failed internally (500). Restart the model."
	case KindConnectionFailed:
		return "Connection failed: the inference server is not responding."
	case KindTimeout:
		return "Timeout: the model took too long to respond."
	case KindEmptyResponse:
		return "The model returned an empty response."
	default:
		if e.Detail != "" {
			return "Unexpected error: " + e.Detail
		}
		return "Unexpected error."
	}
}
