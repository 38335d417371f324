// Package envelope assembles outbound request envelopes for CRM calls and
// validates the provider's response envelopes.
package envelope

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/omnicart/crmbridge/internal/crm/filter"
)

// FormContentType is the media type CRM write calls use for their bodies.
const FormContentType = "application/x-www-form-urlencoded"

// Envelope is everything the transport needs for one call beyond method and
// endpoint: ordered query parameters, headers, and an optional form body.
// Envelopes are built fresh per call and never shared between calls.
type Envelope struct {
	Query   []filter.Param
	Headers map[string]string
	Body    []filter.Param // nil when the call has no body
}

// QueryString renders the query parameters in their original order.
func (e *Envelope) QueryString() string { return encodeParams(e.Query) }

// BodyString renders the form body, or "" when the call has none.
func (e *Envelope) BodyString() string {
	if e.Body == nil {
		return ""
	}
	return encodeParams(e.Body)
}

// encodeParams percent-encodes params preserving their order.
// url.Values.Encode sorts keys alphabetically, which would break both the
// insertion-order guarantee and the positional association of repeated
// bracket-less keys, so the encoding is done by hand.
func encodeParams(params []filter.Param) string {
	var b strings.Builder
	for i, p := range params {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(p.Key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.Value))
	}
	return b.String()
}

// FormField is one named body field whose value is serialized to JSON text,
// e.g. Name "customer" with a customer object as Value.
type FormField struct {
	Name  string
	Value any
}

// Builder assembles envelopes for a provider, injecting the provider's fixed
// authentication parameters into every call. The zero auth set is valid.
type Builder struct {
	auth []filter.Param
}

// NewBuilder returns a Builder that appends the given auth parameters to the
// query of every envelope it builds.
func NewBuilder(auth ...filter.Param) *Builder {
	return &Builder{auth: auth}
}

// Read builds an envelope for a read-style call: the flattened filter
// parameters followed by the auth parameters, no body. An empty filter set
// yields an envelope carrying only the auth parameters.
func (b *Builder) Read(params []filter.Param) *Envelope {
	query := make([]filter.Param, 0, len(params)+len(b.auth))
	query = append(query, params...)
	query = append(query, b.auth...)
	return &Envelope{
		Query:   query,
		Headers: map[string]string{},
	}
}

// Write builds an envelope for a write-style call: each field is JSON-encoded
// into a single form value and the auth parameters travel in the query string,
// matching the provider convention of authenticating every call the same way.
func (b *Builder) Write(fields ...FormField) (*Envelope, error) {
	body := make([]filter.Param, 0, len(fields))
	for _, f := range fields {
		data, err := json.Marshal(f.Value)
		if err != nil {
			return nil, fmt.Errorf("encode form field %q: %w", f.Name, err)
		}
		body = append(body, filter.Param{Key: f.Name, Value: string(data)})
	}

	query := make([]filter.Param, 0, len(b.auth))
	query = append(query, b.auth...)

	return &Envelope{
		Query:   query,
		Headers: map[string]string{"Content-Type": FormContentType},
		Body:    body,
	}, nil
}
