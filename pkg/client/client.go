// Package client é o cliente HTTP tipado da API de estoque.
//
// Leituras usam retry.ReadPolicy e escritas retry.WritePolicy; erros 4xx nunca são repetidos.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hugohenrick/erp-estoque/pkg/retry"
)

// APIError representa uma resposta de erro da API
type APIError struct {
	Status  int    `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("api: %d %s: %s", e.Status, e.Message, e.Details)
	}
	return fmt.Sprintf("api: %d %s", e.Status, e.Message)
}

// StatusCode implementa retry.StatusCoder
func (e *APIError) StatusCode() int {
	return e.Status
}

// Client conversa com a API REST
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	read    retry.Policy
	write   retry.Policy
}

// Option configura o Client
type Option func(*Client)

// WithToken define o token JWT enviado no header Authorization
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithHTTPClient substitui o http.Client padrão
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithPolicies substitui as políticas de novas tentativas
func WithPolicies(read, write retry.Policy) Option {
	return func(c *Client) {
		c.read = read
		c.write = write
	}
}

// New cria um cliente para a URL base da API (ex.: http://localhost:8080/api/v1)
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
		read:    retry.ReadPolicy,
		write:   retry.WritePolicy,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetToken troca o token em uso (login/refresh)
func (c *Client) SetToken(token string) {
	c.token = token
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	return retry.Do(ctx, c.read, func(ctx context.Context) error {
		return c.do(ctx, http.MethodGet, path, nil, out)
	})
}

func (c *Client) send(ctx context.Context, method, path string, in, out interface{}) error {
	var body []byte
	if in != nil {
		var err error
		if body, err = json.Marshal(in); err != nil {
			return fmt.Errorf("falha ao serializar requisição: %w", err)
		}
	}
	return retry.Do(ctx, c.write, func(ctx context.Context) error {
		return c.do(ctx, method, path, body, out)
	})
}

func (c *Client) do(ctx context.Context, method, path string, body []byte, out interface{}) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode >= 400 {
		apiErr := &APIError{}
		if json.Unmarshal(data, apiErr) != nil || apiErr.Message == "" {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
		apiErr.Status = resp.StatusCode
		return apiErr
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("falha ao decodificar resposta: %w", err)
	}
	return nil
}
