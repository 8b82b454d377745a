package esi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ruslanminnebaev21-del/beri-prosto-service/internal/model"
	"go.uber.org/zap"
)

const DefaultBaseURL = "https://api.esi.bz"

var (
	ErrTokenNotSet        = errors.New("ESI_TOKEN is not set")
	ErrUnexpectedResponse = errors.New("unexpected ESI response")
	ErrMachineNotFound    = errors.New("machine not found")
)

// Source yields the current state of every locker machine.
type Source interface {
	Machines(ctx context.Context) (map[string]model.Machine, error)
}

// StatusError is a non-2xx answer from the vendor API.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("ESI %d: %s", e.Code, e.Body)
}

type ClientConfig struct {
	BaseURL string
	Token   string
	Timeout time.Duration
}

// Client talks to the ESI locker management API.
type Client struct {
	baseURL string
	token   string
	client  *http.Client
	log     *zap.Logger
}

var _ Source = (*Client)(nil)

func NewClient(cfg ClientConfig, log *zap.Logger) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   cfg.Token,
		client:  &http.Client{Timeout: timeout},
		log:     log,
	}
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	if c.token == "" {
		return nil, ErrTokenNotSet
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	c.log.Debug("esi request", zap.String("path", path))

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("esi %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Code: resp.StatusCode, Body: string(bytes.TrimSpace(body))}
	}

	return body, nil
}

// Machines fetches GET /machines, an object keyed by machine id.
func (c *Client) Machines(ctx context.Context) (map[string]model.Machine, error) {
	body, err := c.get(ctx, "/machines")
	if err != nil {
		return nil, err
	}
	return decodeMachines(body)
}

func decodeMachines(body []byte) (map[string]model.Machine, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 || bytes.Equal(body, []byte("null")) {
		return map[string]model.Machine{}, nil
	}
	if body[0] != '{' {
		return nil, ErrUnexpectedResponse
	}

	machines := map[string]model.Machine{}
	if err := json.Unmarshal(body, &machines); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnexpectedResponse, err)
	}
	return machines, nil
}

// Machine returns a single machine from the snapshot of src.
func Machine(ctx context.Context, src Source, id string) (model.Machine, error) {
	machines, err := src.Machines(ctx)
	if err != nil {
		return model.Machine{}, err
	}
	m, ok := machines[id]
	if !ok {
		return model.Machine{}, fmt.Errorf("%w: %s", ErrMachineNotFound, id)
	}
	return m, nil
}
