// Package delivery - тонкий адаптер к внешнему провайдеру push-уведомлений.
// Повторные попытки не выполняются: политика повторов принадлежит провайдеру.
package delivery

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shenikar/geo_alert_dispatch/internal/models"
)

const (
	PriorityHigh   = "high"
	PriorityNormal = "normal"

	// NormalTTLSeconds - устаревшее некритическое оповещение не доставляется позже часа
	NormalTTLSeconds = 3600
)

// Payload - данные события для конкретного получателя
type Payload struct {
	EventID        string          `json:"eventId"`
	Type           string          `json:"type"`
	Severity       models.Severity `json:"severity"`
	Title          string          `json:"title"`
	Message        string          `json:"message"`
	Location       models.Location `json:"location"`
	RequiresAction bool            `json:"requiresAction"`
	Timestamp      int64           `json:"timestamp"`
	TrustWeight    float64         `json:"trustWeight"`
	DistanceMeters float64         `json:"distanceMeters"`
}

// Request - тело запроса к провайдеру
type Request struct {
	Tokens   []string `json:"tokens"`
	Payload  Payload  `json:"payload"`
	Priority string   `json:"priority"`
	TTL      int      `json:"ttl"`
}

// Client - интерфейс отправки push-уведомлений
type Client interface {
	Send(ctx context.Context, req Request) error
}

// NewRequest собирает запрос для одного устройства. Критические события уходят с высоким
// приоритетом и нулевым TTL: доставить сразу или не доставлять вовсе.
func NewRequest(event *models.EmergencyEvent, token string, distanceMeters float64) Request {
	priority, ttl := PriorityNormal, NormalTTLSeconds
	if event.IsCritical() {
		priority, ttl = PriorityHigh, 0
	}
	return Request{
		Tokens: []string{token},
		Payload: Payload{
			EventID:        event.ID,
			Type:           event.Type,
			Severity:       event.Severity,
			Title:          event.Title,
			Message:        event.Message,
			Location:       event.Location,
			RequiresAction: event.RequiresAction,
			Timestamp:      event.Timestamp,
			TrustWeight:    event.TrustWeight,
			DistanceMeters: distanceMeters,
		},
		Priority: priority,
		TTL:      ttl,
	}
}

// HTTPClient отправляет запросы провайдеру по HTTP
type HTTPClient struct {
	url        string
	apiKey     string
	httpClient *http.Client
}

// NewHTTPClient создает клиента провайдера. Таймаут отдельной попытки задает вызывающий через контекст,
// timeout здесь - верхняя граница на случай контекста без дедлайна.
func NewHTTPClient(url, apiKey string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		url:    url,
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Send выполняет один POST к провайдеру. Ответ не 2xx считается ошибкой доставки.
func (c *HTTPClient) Send(ctx context.Context, req Request) error {
	if c.url == "" {
		return fmt.Errorf("push provider URL is not configured")
	}

	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to marshal push request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create push request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("push provider request failed: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("push provider returned status %d", resp.StatusCode)
	}
	return nil
}
