package api

import (
	"bytes"
	"encoding/json"
)

// errorPayload is the structured error the backend places inside an envelope.
type errorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// envelope is the canonical response wrapper every endpoint returns:
// exactly one of Data/Error is meaningful, gated by Success.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *errorPayload   `json:"error"`
}

var jsonNull = []byte("null")

// normalizeEnvelope turns a raw response body into the canonical envelope.
// The backend wraps error envelopes in a {"detail": ...} layer when they
// travel through its HTTP exception path; exactly one such layer is
// unwrapped. The result is not validated further: a body without a success
// field decodes to Success=false and flows down the failure path.
func normalizeEnvelope(raw []byte) (envelope, error) {
	var probe struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return envelope{}, err
	}
	if len(probe.Detail) > 0 && !bytes.Equal(probe.Detail, jsonNull) {
		raw = probe.Detail
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return envelope{}, err
	}
	return env, nil
}

// PageMeta carries pagination metadata for list endpoints. The server is
// trusted for consistency between the fields.
type PageMeta struct {
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalItems int `json:"totalItems"`
	TotalPages int `json:"totalPages"`
}
