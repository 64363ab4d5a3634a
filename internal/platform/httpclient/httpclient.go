package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"pet-registry/internal/domain/errs"
)

const (
	DefaultTimeout = 10 * time.Second
)

// Client habla JSON contra la API del registro (lo usa el CLI con --server).
type Client struct {
	HTTP    *http.Client
	BaseURL string
}

// New valida baseURL y crea un Client con timeout.
func New(baseURL string, timeout time.Duration) (*Client, error) {
	return NewWithTransport(baseURL, timeout, nil)
}

// NewWithTransport permite inyectar un Transport (p.ej. para tests).
func NewWithTransport(baseURL string, timeout time.Duration, tr http.RoundTripper) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if tr == nil {
		tr = http.DefaultTransport
	}
	return &Client{
		HTTP:    &http.Client{Timeout: timeout, Transport: tr},
		BaseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

// apiError es el cuerpo de error que devuelve la API.
type apiError struct {
	Error   string            `json:"error"`
	Code    errs.Code         `json:"code"`
	Details map[string]string `json:"details,omitempty"`
}

// DoJSON hace un request JSON contra BaseURL+path.
// - in: body a enviar (opcional)
// - out: donde decodificar la respuesta (opcional)
// Una respuesta no-2xx se traduce a un error de errs según el code del cuerpo.
func (c *Client) DoJSON(ctx context.Context, method, path string, in, out any) error {
	if c == nil || c.HTTP == nil {
		return errors.New("httpclient: nil client")
	}

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("httpclient: marshal json: %w", err)
		}
		body = bytes.NewReader(b)
	}

	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return fmt.Errorf("httpclient: new request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("httpclient: do request: %w", err)
	}
	defer resp.Body.Close()

	// 1MB max
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("httpclient: read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeError(resp.StatusCode, raw)
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("httpclient: unmarshal json: %w", err)
	}
	return nil
}

func decodeError(status int, raw []byte) error {
	var ae apiError
	_ = json.Unmarshal(raw, &ae)

	msg := strings.TrimSpace(ae.Error)
	if msg == "" {
		msg = fmt.Sprintf("http status %d", status)
	}

	kind := errs.ErrStorage
	switch ae.Code {
	case errs.CodeValidation:
		kind = errs.ErrValidation
	case errs.CodeIntegrity:
		kind = errs.ErrIntegrity
	case errs.CodeNotFound:
		kind = errs.ErrNotFound
	case "":
		if status == http.StatusNotFound {
			kind = errs.ErrNotFound
		}
	}
	return &errs.Error{Kind: kind, Message: msg, Details: ae.Details}
}
