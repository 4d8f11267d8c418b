package api

import (
	"encoding/json"
	"io"
	"net/http"
)

const maxBodyBytes = 1 << 20

// Envelope is the uniform response shape of every backend endpoint. Code 200
// signals success regardless of transport status; anything else is a domain
// error whose message is surfaced to the operator unchanged.
type Envelope struct {
	Code    int             `json:"code"`
	Status  string          `json:"status"`
	Message string          `json:"message,omitempty"`
	Result  json.RawMessage `json:"result,omitempty"`
}

// decodeEnvelope reads resp and unmarshals the envelope result into out when
// out is non-nil. The caller has already dealt with 401; everything that is
// not a well-formed success lands in DomainError or TransportError.
func decodeEnvelope(resp *http.Response, out any) error {
	defer resp.Body.Close()
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return &TransportError{Op: "read response", Err: err}
	}
	var env Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return &TransportError{Op: "decode response", Err: err}
	}
	if env.Code != http.StatusOK {
		return &DomainError{
			Code:       env.Code,
			Status:     env.Status,
			Message:    env.Message,
			HTTPStatus: resp.StatusCode,
		}
	}
	if out == nil {
		return nil
	}
	if len(env.Result) == 0 {
		return &TransportError{Op: "decode response", Err: errMissingResult}
	}
	if err := json.Unmarshal(env.Result, out); err != nil {
		return &TransportError{Op: "decode result", Err: err}
	}
	return nil
}
