// Package clients содержит HTTP-клиенты гейтвея к внутренним сервисам:
// reservation, payment и loyalty. Клиенты реализуют порты domain.*Ledger
// и переводят коды ответов в доменные ошибки.
package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/avoronkov/hotel-booking/internal/domain"
)

// headerUserName — заголовок, которым гейтвей передаёт личность пользователя.
const headerUserName = "X-User-Name"

const defaultTimeout = 5 * time.Second

// errorBody — тело ошибки внутренних сервисов.
type errorBody struct {
	Message string              `json:"message"`
	Errors  []domain.FieldError `json:"errors,omitempty"`
}

// errorMapping задаёт доменные ошибки для кодов 404 и 409 конкретного вызова.
type errorMapping struct {
	notFound error
	conflict error
}

// baseClient — общая часть клиентов: JSON-вызов с маппингом ошибок.
// Сетевые сбои и 5xx заворачиваются в domain.ErrLedgerUnavailable, чтобы
// оркестратор мог отличить недоступность сервиса от бизнес-ошибки.
type baseClient struct {
	httpClient *http.Client
	baseURL    string
	logger     *log.Entry
}

func newBaseClient(baseURL string, timeout time.Duration, logger *log.Entry) baseClient {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if logger == nil {
		logger = log.New().WithField("component", "clients")
	}
	return baseClient{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		logger:     logger,
	}
}

func (c *baseClient) doJSON(ctx context.Context, method, path, username string, in, out interface{}, errs errorMapping) error {
	var body *bytes.Buffer
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal %s %s request: %w", method, path, err)
		}
		body = bytes.NewBuffer(data)
	} else {
		body = &bytes.Buffer{}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build %s %s request: %w", method, path, err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if username != "" {
		req.Header.Set(headerUserName, username)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %v: %w", method, path, err, domain.ErrLedgerUnavailable)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		if out == nil || resp.StatusCode == http.StatusNoContent {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode %s %s response: %v: %w", method, path, err, domain.ErrLedgerUnavailable)
		}
		return nil
	case resp.StatusCode == http.StatusBadRequest:
		var eb errorBody
		if err := json.NewDecoder(resp.Body).Decode(&eb); err != nil || len(eb.Errors) == 0 {
			return domain.NewValidationError("request", "rejected by downstream service")
		}
		return &domain.ValidationError{Fields: eb.Errors}
	case resp.StatusCode == http.StatusNotFound && errs.notFound != nil:
		return errs.notFound
	case resp.StatusCode == http.StatusConflict && errs.conflict != nil:
		return errs.conflict
	default:
		c.logger.WithFields(log.Fields{
			"method": method,
			"path":   path,
			"status": resp.StatusCode,
		}).Warn("unexpected downstream status")
		return fmt.Errorf("%s %s: status %d: %w", method, path, resp.StatusCode, domain.ErrLedgerUnavailable)
	}
}
