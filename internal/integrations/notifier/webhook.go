package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
)

// WebhookSender отправляет событие POST-запросом во внешний сервис уведомлений
type WebhookSender struct {
	url        string
	httpClient *http.Client
}

// NewWebhookSender создает клиента с таймаутом на запрос
func NewWebhookSender(url string, timeout time.Duration) *WebhookSender {
	return &WebhookSender{
		url: url,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (s *WebhookSender) Name() string { return "webhook" }

func (s *WebhookSender) Send(ctx context.Context, n domain.Notification) error {
	body, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEncode, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrDeliver, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrDeliver, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	default:
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("%w: status code %d: %s", ErrUnexpectedStatus, resp.StatusCode, string(respBody))
	}
}
