package crm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/omnicart/crmbridge/internal/crm/envelope"
	"github.com/omnicart/crmbridge/internal/crm/filter"
	"github.com/omnicart/crmbridge/internal/crm/transport"
	"github.com/omnicart/crmbridge/internal/telemetry"
)

// Client is the generic request pipeline shared by all providers. It holds
// only read-only configuration and the shared transport; every call builds
// its own envelope, so concurrent calls never observe each other's state.
type Client struct {
	baseURL string
	prov    Provider
	doer    transport.Doer
	builder *envelope.Builder
	log     zerolog.Logger
}

// NewClient returns a Client calling the provider at baseURL (including any
// API path prefix) through doer.
func NewClient(baseURL string, prov Provider, doer transport.Doer, log zerolog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		prov:    prov,
		doer:    doer,
		builder: envelope.NewBuilder(prov.AuthParams()...),
		log:     log,
	}
}

// Get runs a read-style operation: flattened filter params plus auth in the
// query string, no body.
func (c *Client) Get(ctx context.Context, op Operation, endpoint string, params []filter.Param) (envelope.Payload, error) {
	return c.call(ctx, http.MethodGet, op, endpoint, c.builder.Read(params))
}

// Post runs a write-style operation: body is JSON-encoded into the form
// field the provider names for op, auth goes into the query string.
func (c *Client) Post(ctx context.Context, op Operation, endpoint string, body any) (envelope.Payload, error) {
	env, err := c.builder.Write(envelope.FormField{Name: c.prov.BodyField(op), Value: body})
	if err != nil {
		return nil, fmt.Errorf("build envelope for %s: %w", op, err)
	}
	return c.call(ctx, http.MethodPost, op, endpoint, env)
}

func (c *Client) call(ctx context.Context, method string, op Operation, endpoint string, env *envelope.Envelope) (envelope.Payload, error) {
	url := c.baseURL + endpoint
	if qs := env.QueryString(); qs != "" {
		url += "?" + qs
	}

	// Endpoint, not URL: the query string carries the API key.
	log := c.log.With().
		Str("call_id", uuid.New().String()).
		Str("op", string(op)).
		Str("method", method).
		Str("endpoint", endpoint).
		Logger()
	log.Debug().Msg("crm call started")

	start := time.Now()
	resp, err := c.doer.Do(ctx, &transport.Request{
		Method:  method,
		URL:     url,
		Headers: env.Headers,
		Body:    env.BodyString(),
	})
	duration := time.Since(start)

	if err != nil {
		status := 0
		var te *transport.Error
		if errors.As(err, &te) {
			status = te.Status
		}
		telemetry.ObserveCRMRequest(string(op), method, status, duration)
		log.Error().Err(err).Int("status", status).Dur("duration", duration).Msg("crm transport failure")
		return nil, err
	}

	telemetry.ObserveCRMRequest(string(op), method, resp.Status, duration)

	payload, err := envelope.Validate(resp.Body, c.prov.SuccessField(op))
	if err != nil {
		log.Error().Err(err).Int("status", resp.Status).Msg("crm response rejected")
		return nil, err
	}

	log.Debug().Int("status", resp.Status).Dur("duration", duration).Msg("crm call completed")
	return payload, nil
}
