package api

import "errors"

var (
	// ErrTransport means the request never produced a server response
	// (network failure, DNS, timeout, cancelled context).
	ErrTransport = errors.New("transport failure")

	// ErrRejected means the server answered but the envelope did not report
	// success. The wrapped message carries the server's explanation when one
	// was provided.
	ErrRejected = errors.New("server rejected request")

	// ErrMalformedEnvelope means the response body could not be decoded into
	// the expected envelope shape. Malformed payloads are stopped here and
	// never reach domain logic.
	ErrMalformedEnvelope = errors.New("malformed response envelope")
)

// FallbackMessage is shown when neither the envelope nor the error chain
// carries anything usable.
const FallbackMessage = "request failed, please try again"
