package api

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Envelope is the backend's standard response wrapper. data stays raw so each
// service can decode its own payload shape after the success check.
type Envelope struct {
	IsSucceeded bool                `json:"isSucceeded"`
	Message     string              `json:"message"`
	Messages    map[string][]string `json:"messages"`
	Data        json.RawMessage     `json:"data"`
}

// FirstMessage returns the most specific server message available: the flat
// message field, then the first entry of the grouped messages map, then empty.
func (e *Envelope) FirstMessage() string {
	if msg := strings.TrimSpace(e.Message); msg != "" {
		return msg
	}
	for _, group := range e.Messages {
		for _, msg := range group {
			if trimmed := strings.TrimSpace(msg); trimmed != "" {
				return trimmed
			}
		}
	}
	return ""
}

// Err converts a non-success envelope into an ErrRejected with the
// best-effort message chain applied.
func (e *Envelope) Err() error {
	msg := e.FirstMessage()
	if msg == "" {
		msg = FallbackMessage
	}
	return fmt.Errorf("%w: %s", ErrRejected, msg)
}

// DecodeData unmarshals the envelope payload into v. A success envelope with
// no payload counts as malformed: callers asked for data the server promised.
func (e *Envelope) DecodeData(v any) error {
	if len(e.Data) == 0 {
		return fmt.Errorf("%w: missing data", ErrMalformedEnvelope)
	}
	if err := json.Unmarshal(e.Data, v); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedEnvelope, err)
	}
	return nil
}

func decodeEnvelope(body []byte) (*Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedEnvelope, err)
	}
	return &env, nil
}
