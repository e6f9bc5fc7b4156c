// Package gqlclient — клиент GraphQL-шлюза каталога.
//
// Fetch никогда не возвращает ошибку вызывающему: о сбое сообщается через Alerter,
// а результатом становится nil.
package gqlclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/DRSN-tech/catalog-admin/pkg/logger"
	"github.com/guonaihong/gout"
)

const defaultTimeout = 10 * time.Second

// Alerter показывает сообщение пользователю.
type Alerter interface {
	Alert(message string)
}

// AlerterFunc позволяет использовать функцию как Alerter.
type AlerterFunc func(message string)

func (f AlerterFunc) Alert(message string) { f(message) }

type gqlError struct {
	Message string        `json:"message"`
	Path    []interface{} `json:"path"`
}

type gqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []gqlError      `json:"errors"`
}

type Client struct {
	endpoint string
	http     *http.Client
	alerter  Alerter
	logger   logger.Logger
}

type Option func(*Client)

// WithHTTPClient подменяет http.Client (таймауты, транспорт).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithLogger(l logger.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New создаёт клиента для шлюза endpoint, например http://localhost:8080/graphql.
func New(endpoint string, alerter Alerter, opts ...Option) *Client {
	c := &Client{
		endpoint: endpoint,
		http:     &http.Client{Timeout: defaultTimeout},
		alerter:  alerter,
		logger:   logger.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Fetch отправляет запрос и возвращает поле data. При сетевой ошибке сообщает
// "Error in sending data to server: <причина>", при ошибках GraphQL — текст первой ошибки.
// В обоих случаях возвращает nil.
func (c *Client) Fetch(ctx context.Context, query string, variables map[string]interface{}) json.RawMessage {
	var res gqlResponse

	err := gout.New(c.http).
		POST(c.endpoint).
		WithContext(ctx).
		SetJSON(gout.H{"query": query, "variables": variables}).
		BindJSON(&res).
		Do()
	if err != nil {
		c.logger.Warnf("graphql request failed: %v", err)
		c.alerter.Alert(fmt.Sprintf("Error in sending data to server: %v", err))
		return nil
	}

	if len(res.Errors) > 0 {
		c.logger.Debugf("graphql errors: %d, first path: %v", len(res.Errors), res.Errors[0].Path)
		c.alerter.Alert(res.Errors[0].Message)
		return nil
	}

	return res.Data
}

// fetchInto выполняет Fetch и разбирает data в out. false — данных нет (о причине уже сообщено).
func (c *Client) fetchInto(ctx context.Context, query string, variables map[string]interface{}, out interface{}) bool {
	data := c.Fetch(ctx, query, variables)
	if data == nil {
		return false
	}

	if err := json.Unmarshal(data, out); err != nil {
		c.logger.Warnf("graphql: decode data: %v", err)
		c.alerter.Alert(fmt.Sprintf("Unexpected response from server: %v", err))
		return false
	}

	return true
}
