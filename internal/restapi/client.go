// Package restapi implements the HTTP client for the personal trainer
// REST service. It covers both halves of the console's data plane: the
// collection fetchers and the create/update/delete mutation gateway.
//
// The customer collection is served as a hypermedia envelope with the
// records nested under an embedded-resources key and a self link per
// record; trainings come back as a flat array with the owning customer
// pre-embedded. Both shapes are normalized into domain types here.
package restapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/rkiviaho/trainerdesk/internal/domain"
	"github.com/rkiviaho/trainerdesk/internal/metrics"
)

// DefaultTimeout is the per-request timeout when none is configured.
const DefaultTimeout = 15 * time.Second

// Config contains configuration for the API client.
type Config struct {
	BaseURL string        // API root, e.g. https://host/api
	Timeout time.Duration // Per-request timeout
}

// Client talks to the personal trainer REST service.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

// New creates a new API client.
func New(cfg Config, logger *slog.Logger) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("restapi: base URL is required")
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Client{
		baseURL: cfg.BaseURL,
		http:    &http.Client{Timeout: cfg.Timeout},
		logger:  logger,
	}, nil
}

// CustomersURL returns the customer collection endpoint.
func (c *Client) CustomersURL() string {
	return c.baseURL + "/customers"
}

// CustomerLink rebuilds a full customer reference link from a bare
// identifier segment.
func (c *Client) CustomerLink(ref string) string {
	return c.CustomersURL() + "/" + ref
}

// =============================================================================
// Wire payloads
// =============================================================================

type selfLinks struct {
	Self struct {
		Href string `json:"href"`
	} `json:"self"`
}

type customerPayload struct {
	Firstname     string    `json:"firstname"`
	Lastname      string    `json:"lastname"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	Streetaddress string    `json:"streetaddress"`
	Postcode      string    `json:"postcode"`
	City          string    `json:"city"`
	Links         selfLinks `json:"_links"`
}

func (p customerPayload) toDomain() domain.Customer {
	return domain.Customer{
		Firstname:     p.Firstname,
		Lastname:      p.Lastname,
		Email:         p.Email,
		Phone:         p.Phone,
		Streetaddress: p.Streetaddress,
		Postcode:      p.Postcode,
		City:          p.City,
		SelfLink:      p.Links.Self.Href,
	}
}

type customerEnvelope struct {
	Embedded *struct {
		Customers []customerPayload `json:"customers"`
	} `json:"_embedded"`
}

type customerBody struct {
	Firstname     string `json:"firstname"`
	Lastname      string `json:"lastname"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Streetaddress string `json:"streetaddress"`
	Postcode      string `json:"postcode"`
	City          string `json:"city"`
}

type trainingPayload struct {
	ID       int64            `json:"id"`
	Date     string           `json:"date"`
	Duration int              `json:"duration"`
	Activity string           `json:"activity"`
	Customer *customerPayload `json:"customer"`
}

type trainingBody struct {
	Date     string `json:"date"`
	Duration int    `json:"duration"`
	Activity string `json:"activity"`
	Customer string `json:"customer"`
}

// =============================================================================
// Collection fetchers
// =============================================================================

// ListCustomers retrieves the customer collection, unwrapping the
// hypermedia envelope into a flat sequence preserving server order.
func (c *Client) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	const op = "customers.list"

	body, err := c.get(ctx, op, "customers", c.CustomersURL())
	if err != nil {
		return nil, err
	}

	var envelope customerEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, domain.Malformed(op, "response is not a customer envelope", err)
	}
	if envelope.Embedded == nil {
		return nil, domain.Malformed(op, "response is missing the embedded customer list", nil)
	}

	customers := make([]domain.Customer, 0, len(envelope.Embedded.Customers))
	for _, p := range envelope.Embedded.Customers {
		if p.Links.Self.Href == "" {
			return nil, domain.Malformed(op, "customer record is missing its self link", nil)
		}
		customers = append(customers, p.toDomain())
	}
	return customers, nil
}

// ListTrainings retrieves the training collection. Each element's
// ISO-8601 date is parsed into a structured instant here, and the
// embedded customer is required.
func (c *Client) ListTrainings(ctx context.Context) ([]domain.Training, error) {
	const op = "trainings.list"

	body, err := c.get(ctx, op, "trainings", c.baseURL+"/gettrainings")
	if err != nil {
		return nil, err
	}

	var payloads []trainingPayload
	if err := json.Unmarshal(body, &payloads); err != nil {
		return nil, domain.Malformed(op, "response is not a training list", err)
	}

	trainings := make([]domain.Training, 0, len(payloads))
	for _, p := range payloads {
		if p.Customer == nil {
			return nil, domain.Malformed(op, fmt.Sprintf("training %d is missing its customer", p.ID), nil)
		}
		date, err := time.Parse(time.RFC3339, p.Date)
		if err != nil {
			return nil, domain.Malformed(op, fmt.Sprintf("training %d has an unparseable date %q", p.ID, p.Date), err)
		}
		trainings = append(trainings, domain.Training{
			ID:       p.ID,
			Date:     date,
			Duration: p.Duration,
			Activity: p.Activity,
			Customer: p.Customer.toDomain(),
		})
	}
	return trainings, nil
}

// =============================================================================
// Mutation gateway
// =============================================================================

// CreateCustomer creates a new customer record.
func (c *Client) CreateCustomer(ctx context.Context, draft domain.CustomerDraft) error {
	const op = "customers.create"
	return c.write(ctx, op, "customers", http.MethodPost, c.CustomersURL(), customerDraftBody(draft))
}

// UpdateCustomer replaces the record at the given self link.
func (c *Client) UpdateCustomer(ctx context.Context, selfLink string, draft domain.CustomerDraft) error {
	const op = "customers.update"
	if selfLink == "" {
		return domain.Invalid(op, "update target is required")
	}
	return c.write(ctx, op, "customers", http.MethodPut, selfLink, customerDraftBody(draft))
}

// DeleteCustomer removes the record at the given self link.
func (c *Client) DeleteCustomer(ctx context.Context, selfLink string) error {
	const op = "customers.delete"
	if selfLink == "" {
		return domain.Invalid(op, "delete target is required")
	}
	return c.write(ctx, op, "customers", http.MethodDelete, selfLink, nil)
}

// CreateTraining creates a new training session. The draft's bare
// customer identifier is expanded into a full reference link against
// the customers endpoint; the draft never carries the full link itself.
func (c *Client) CreateTraining(ctx context.Context, draft domain.TrainingDraft) error {
	const op = "trainings.create"

	body := trainingBody{
		Date:     normalizeDateInput(draft.Date),
		Duration: draft.DurationMinutes(),
		Activity: draft.Activity,
		Customer: c.CustomerLink(draft.Customer),
	}
	return c.write(ctx, op, "trainings", http.MethodPost, c.baseURL+"/trainings", body)
}

// DeleteTraining removes a training session by id.
func (c *Client) DeleteTraining(ctx context.Context, id int64) error {
	const op = "trainings.delete"
	url := fmt.Sprintf("%s/trainings/%d", c.baseURL, id)
	return c.write(ctx, op, "trainings", http.MethodDelete, url, nil)
}

func customerDraftBody(d domain.CustomerDraft) customerBody {
	return customerBody{
		Firstname:     d.Firstname,
		Lastname:      d.Lastname,
		Email:         d.Email,
		Phone:         d.Phone,
		Streetaddress: d.Streetaddress,
		Postcode:      d.Postcode,
		City:          d.City,
	}
}

// normalizeDateInput converts datetime-local form input to RFC 3339.
// Input that is already RFC 3339, or anything unrecognized, passes
// through unchanged for the API to judge.
func normalizeDateInput(raw string) string {
	for _, layout := range []string{"2006-01-02T15:04", "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC().Format(time.RFC3339)
		}
	}
	return raw
}

// =============================================================================
// Transport
// =============================================================================

// get issues a read request and returns the response body. Failures
// are FetchFailed errors; the caller's collection state is left to the
// caller to preserve.
func (c *Client) get(ctx context.Context, op, resource, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to build request")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	metrics.APIRequestDuration.WithLabelValues(resource, "read").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.APIRequestsTotal.WithLabelValues(resource, "read", "transport_error").Inc()
		return nil, domain.FetchFailed(op, 0, err)
	}
	defer resp.Body.Close()

	metrics.APIRequestsTotal.WithLabelValues(resource, "read", strconv.Itoa(resp.StatusCode)).Inc()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, domain.FetchFailed(op, resp.StatusCode, nil)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domain.FetchFailed(op, 0, err)
	}
	return body, nil
}

// write issues a mutating request. Failures are MutationFailed errors;
// no local state changes are implied by success or failure here -
// callers refetch to observe the result.
func (c *Client) write(ctx context.Context, op, resource, method, url string, body any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return domain.Internal(err, op, "failed to marshal request body")
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return domain.Internal(err, op, "failed to build request")
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	metrics.APIRequestDuration.WithLabelValues(resource, "write").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.APIRequestsTotal.WithLabelValues(resource, "write", "transport_error").Inc()
		return domain.MutationFailed(op, 0, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	metrics.APIRequestsTotal.WithLabelValues(resource, "write", strconv.Itoa(resp.StatusCode)).Inc()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return domain.MutationFailed(op, resp.StatusCode, nil)
	}
	return nil
}
