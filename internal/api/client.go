package api

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// RawRecord is an inbound backend record before normalization. The
// backend mixes snake_case and camelCase keys for the same logical
// fields, so records are decoded untyped and handed to the normalize
// package, the only code allowed to read this shape.
type RawRecord = map[string]any

// StatusError non-2xx HTTP response. The body is not parsed; only the
// status code is surfaced, matching the backend's contract.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected HTTP status %d", e.Code)
}

// ErrUnauthorized login rejected or token expired.
var ErrUnauthorized = errors.New("unauthorized")

// Client clinic backend REST client.
type Client struct {
	http   *resty.Client
	logger *zap.Logger
}

// New creates a client for the clinic backend. No automatic retries:
// write failures are surfaced to the user who decides whether to retry.
func New(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &Client{
		http:   httpClient,
		logger: logger,
	}
}

// SetToken attaches a bearer token to all subsequent requests.
func (c *Client) SetToken(token string) {
	c.http.SetAuthToken(token)
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// Login exchanges credentials for a bearer token and installs it on the
// client.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	var out loginResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(loginRequest{Username: username, Password: password}).
		SetResult(&out).
		Post("/api/login")
	if err != nil {
		return "", fmt.Errorf("login: %w", err)
	}
	if resp.StatusCode() == 401 || resp.StatusCode() == 403 {
		return "", ErrUnauthorized
	}
	if resp.IsError() {
		return "", &StatusError{Code: resp.StatusCode()}
	}
	c.SetToken(out.Token)
	return out.Token, nil
}

// ListPatients GET /api/pacientes
func (c *Client) ListPatients(ctx context.Context) ([]RawRecord, error) {
	return c.getList(ctx, "/api/pacientes")
}

// ListProcedures GET /api/pacientes/{id}/proceduras — zones arrive as
// name + pulse count pairs here, not ids.
func (c *Client) ListProcedures(ctx context.Context, patientID string) ([]RawRecord, error) {
	return c.getList(ctx, "/api/pacientes/"+patientID+"/proceduras")
}

// ListZones GET /api/zonas — the main zone catalog.
func (c *Client) ListZones(ctx context.Context) ([]RawRecord, error) {
	return c.getList(ctx, "/api/zonas")
}

// ListEditingZones GET /api/proceduras/zonas — the alternate catalog the
// backend exposes for resolving a newly typed zone name during inline
// editing.
func (c *Client) ListEditingZones(ctx context.Context) ([]RawRecord, error) {
	return c.getList(ctx, "/api/proceduras/zonas")
}

// CreatePatient POST /api/pacientes
func (c *Client) CreatePatient(ctx context.Context, payload PatientWrite) error {
	return c.write(ctx, resty.MethodPost, "/api/pacientes", payload)
}

// UpdatePatient PUT /api/pacientes/{id}
func (c *Client) UpdatePatient(ctx context.Context, id string, payload PatientWrite) error {
	return c.write(ctx, resty.MethodPut, "/api/pacientes/"+id, payload)
}

// DeletePatient DELETE /api/pacientes/{id} — the backend cascades the
// patient's procedures.
func (c *Client) DeletePatient(ctx context.Context, id string) error {
	return c.write(ctx, resty.MethodDelete, "/api/pacientes/"+id, nil)
}

// CreateProcedure POST /api/proceduras
func (c *Client) CreateProcedure(ctx context.Context, payload ProcedureWrite) error {
	return c.write(ctx, resty.MethodPost, "/api/proceduras", payload)
}

// UpdateProcedure PUT /api/proceduras/{id}
func (c *Client) UpdateProcedure(ctx context.Context, id string, payload ProcedureWrite) error {
	return c.write(ctx, resty.MethodPut, "/api/proceduras/"+id, payload)
}

// DeleteProcedure DELETE /api/proceduras/{id}
func (c *Client) DeleteProcedure(ctx context.Context, id string) error {
	return c.write(ctx, resty.MethodDelete, "/api/proceduras/"+id, nil)
}

func (c *Client) getList(ctx context.Context, path string) ([]RawRecord, error) {
	var out []RawRecord
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&out).
		Get(path)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", path, err)
	}
	if resp.IsError() {
		c.logger.Warn("backend read failed",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode()),
		)
		return nil, &StatusError{Code: resp.StatusCode()}
	}
	return out, nil
}

func (c *Client) write(ctx context.Context, method, path string, body any) error {
	req := c.http.R().SetContext(ctx)
	if body != nil {
		req.SetBody(body)
	}
	resp, err := req.Execute(method, path)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	if resp.IsError() {
		c.logger.Warn("backend write failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode()),
		)
		return &StatusError{Code: resp.StatusCode()}
	}
	return nil
}
