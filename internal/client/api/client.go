// Package api — Go SDK над REST контрактом сервера.
// Все вызовы проходят через единственную точку doRequest: там
// навешивается bearer токен, кодируются тела и разбираются ошибки.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// TokenSource выдаёт текущий bearer токен. Пустая строка означает,
// что пользователь не авторизован и заголовок не ставится.
type TokenSource interface {
	AuthToken() string
}

// APIError описывает ответ сервера со статусом 4xx/5xx.
type APIError struct {
	Status     int
	StatusText string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: %d %s: %s", e.Status, e.StatusText, e.Message)
	}
	return fmt.Sprintf("api: %d %s", e.Status, e.StatusText)
}

// IsAuthError сообщает, требует ли ошибка принудительного выхода.
func IsAuthError(err error) bool {
	apiErr, ok := err.(*APIError)
	return ok && (apiErr.Status == http.StatusUnauthorized || apiErr.Status == http.StatusForbidden)
}

// Client — клиент REST API. Создаётся один на процесс.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
}

// NewClient создаёт клиента. baseURL указывается без завершающего /api.
func NewClient(baseURL string, tokens TokenSource) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
		tokens:  tokens,
	}
}

// doRequest выполняет один HTTP вызов. Ответ 204 или пустое тело
// оставляют out нетронутым. Повторов нет: решение об этом за вызывающим.
func (c *Client) doRequest(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	endpoint := c.baseURL + "/api" + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("api: не удалось сериализовать тело запроса: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("api: не удалось собрать запрос: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.tokens.AuthToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("api: сетевой сбой %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("api: не удалось прочитать ответ: %w", err)
	}

	if resp.StatusCode >= 400 {
		return &APIError{
			Status:     resp.StatusCode,
			StatusText: http.StatusText(resp.StatusCode),
			Message:    errorMessage(payload),
		}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent || len(payload) == 0 {
		return nil
	}

	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("api: не удалось разобрать ответ %s %s: %w", method, path, err)
	}
	return nil
}

// errorMessage достаёт человекочитаемый текст из тела ошибки.
func errorMessage(payload []byte) string {
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(payload, &body); err == nil {
		if body.Error != "" {
			return body.Error
		}
		if body.Message != "" {
			return body.Message
		}
	}
	return strings.TrimSpace(string(payload))
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	return c.doRequest(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	return c.doRequest(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) put(ctx context.Context, path string, body, out interface{}) error {
	return c.doRequest(ctx, http.MethodPut, path, nil, body, out)
}

func (c *Client) patch(ctx context.Context, path string, body, out interface{}) error {
	return c.doRequest(ctx, http.MethodPatch, path, nil, body, out)
}

func (c *Client) delete(ctx context.Context, path string, body interface{}) error {
	return c.doRequest(ctx, http.MethodDelete, path, nil, body, nil)
}

// setQuery добавляет параметр только при непустом значении, чтобы в
// строке запроса не было мусорных пустых ключей.
func setQuery(q url.Values, key, value string) {
	if value != "" {
		q.Set(key, value)
	}
}
