package envelope

import (
	"encoding/json"
	"fmt"
)

// Payload is the decoded top-level provider response. Operation code picks
// the fields it needs (e.g. "customers", "order", "pagination") and decodes
// them into domain types.
type Payload map[string]json.RawMessage

// Field decodes the named payload field into dst. Absent fields are not an
// error; dst is left untouched and ok is false.
func (p Payload) Field(name string, dst any) (ok bool, err error) {
	raw, present := p[name]
	if !present {
		return false, nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return true, &MalformedError{Err: fmt.Errorf("decode field %q: %w", name, err)}
	}
	return true, nil
}

// MalformedError reports a response body that could not be decoded or did
// not have the shape the envelope contract requires.
type MalformedError struct {
	Err  error
	Body []byte
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("crm: malformed provider response: %v", e.Err)
}

func (e *MalformedError) Unwrap() error { return e.Err }

// ProviderError reports a well-formed response whose envelope indicates
// logical failure. Message and Fields carry whatever diagnostics the
// provider supplied.
type ProviderError struct {
	Message string
	Fields  map[string]string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("crm: provider rejected request: %s", e.Message)
}

// diagnostics is the error detail shape providers attach next to a false
// success flag. Both fields are optional.
type diagnostics struct {
	ErrorMsg string            `json:"errorMsg"`
	Errors   map[string]string `json:"errors"`
}

// Validate decodes a raw response body and checks its success indicator.
//
// successField names the boolean the provider uses to signal logical
// success; pass "" when the operation's response carries no indicator, in
// which case any well-formed object validates. A false or absent indicator
// produces a *ProviderError carrying the provider's diagnostics; an
// undecodable body or a non-boolean indicator produces a *MalformedError.
func Validate(body []byte, successField string) (Payload, error) {
	var payload Payload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, &MalformedError{Err: err, Body: body}
	}

	if successField == "" {
		return payload, nil
	}

	raw, present := payload[successField]
	if present {
		var ok bool
		if err := json.Unmarshal(raw, &ok); err != nil {
			return nil, &MalformedError{
				Err:  fmt.Errorf("field %q is not a boolean: %w", successField, err),
				Body: body,
			}
		}
		if ok {
			return payload, nil
		}
	}

	// Indicator false or missing: surface whatever diagnostics came along.
	var diag diagnostics
	_ = json.Unmarshal(body, &diag)
	if diag.ErrorMsg == "" {
		diag.ErrorMsg = "unknown error"
	}
	return nil, &ProviderError{Message: diag.ErrorMsg, Fields: diag.Errors}
}
