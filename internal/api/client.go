package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/ravd-cli/internal/logger"
	"github.com/ignatzorin/ravd-cli/internal/pkg/apperror"
)

// TokenSource выдаёт текущий bearer-токен; пустая строка означает,
// что сессии нет. Реализуется хранилищем сессии.
type TokenSource interface {
	Token() string
}

// Client — типизированная обёртка над удалённым API RAVD.
// Клиент не хранит никакого состояния, кроме адреса сервера и источника
// токена: результаты каждой операции нормализуются и отдаются вызывающему.
type Client struct {
	baseURL    string
	tokens     TokenSource
	httpClient *http.Client
}

// NewClient создаёт клиент API. Нулевой таймаут означает, что начатый
// запрос ожидается до конца без ограничения по времени.
func NewClient(baseURL string, tokens TokenSource, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		tokens:  tokens,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// doJSON выполняет один JSON-запрос к серверу. Любой статус вне 2xx
// превращается в единообразную ошибку запроса без разбора тела ответа.
func (c *Client) doJSON(ctx context.Context, method, path string, body any, out any, failMessage string) error {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("api: не удалось сериализовать тело запроса: %w", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return apperror.Wrap(err, apperror.ErrCodeRequest, failMessage)
	}

	requestID := uuid.New().String()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", requestID)
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	logger.L().WithFields(map[string]interface{}{
		"method":     method,
		"path":       path,
		"request_id": requestID,
	}).Debug("api: исходящий запрос")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apperror.Wrap(err, apperror.ErrCodeRequest, failMessage)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return apperror.Wrap(
			fmt.Errorf("неожиданный статус %d", resp.StatusCode),
			apperror.ErrCodeRequest,
			failMessage,
		)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return apperror.Wrap(err, apperror.ErrCodeRequest, failMessage)
		}
	}
	return nil
}
