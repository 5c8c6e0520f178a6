package stages

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/ecomqa/purchasectl/internal/config"
)

const (
	defaultTimeout  = 30 * time.Second
	maxBodyExcerpt  = 200
	maxResponseBody = 10 * 1024 * 1024 // 10 MB
)

// Client выполняет вызовы стадий purchase pipeline.
//
// Один Client обслуживает один прогон: адреса сервисов и значения
// по умолчанию фиксируются при создании и не меняются.
type Client struct {
	endpoints config.Endpoints
	defaults  *config.Defaults

	// httpClient — клиент для всех JSON API.
	httpClient *http.Client

	// basketClient — отдельный клиент для basket-сервиса: проверка
	// TLS-сертификата отключена. Это осознанное исключение для
	// тестовых деплойментов корзины, остальные сервисы ходят
	// с полной проверкой.
	basketClient *http.Client

	logger *slog.Logger
}

// Config — конфигурация Client.
type Config struct {
	Endpoints config.Endpoints
	Defaults  *config.Defaults

	// Timeout — таймаут каждого запроса (default: 30s).
	Timeout time.Duration

	// Logger (default: slog.Default()).
	Logger *slog.Logger
}

// New создаёт Client.
func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		endpoints:  cfg.Endpoints,
		defaults:   cfg.Defaults,
		httpClient: &http.Client{Timeout: timeout},
		basketClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
			},
		},
		logger: logger,
	}
}

// doJSON выполняет JSON-запрос и декодирует ответ в out (если out != nil).
// Возвращает ошибку, обёрнутую в один из видов таксономии.
func (c *Client) doJSON(ctx context.Context, method, url string, headers map[string]string, payload, out any) error {
	var bodyReader io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	for key, val := range headers {
		req.Header.Set(key, val)
	}

	body, err := c.send(c.httpClient, req)
	if err != nil {
		return err
	}

	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("%w: %v: %s", ErrDecode, err, truncate(string(body), maxBodyExcerpt))
		}
	}

	return nil
}

// send выполняет запрос, классифицирует транспортные ошибки
// и проверяет HTTP-статус. Возвращает тело ответа.
func (c *Client) send(client *http.Client, req *http.Request) ([]byte, error) {
	resp, err := client.Do(req)
	if err != nil {
		return nil, classifyTransport(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", ErrConnection, err)
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("%w: %d: %s", ErrHTTPStatus, resp.StatusCode, truncate(string(body), maxBodyExcerpt))
	}

	return body, nil
}

// classifyTransport относит транспортную ошибку к виду таксономии.
func classifyTransport(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}

	return fmt.Errorf("%w: %v", ErrConnection, err)
}

// flexibleID принимает идентификатор, приходящий числом или строкой.
// Сервисы непоследовательны в типе идентификаторов между деплойментами.
type flexibleID string

func (f *flexibleID) UnmarshalJSON(data []byte) error {
	s := string(bytes.Trim(data, `"`))
	if s == "null" {
		s = ""
	}
	*f = flexibleID(s)
	return nil
}

// authHeader формирует заголовок авторизации SSO.
func authHeader(token string) string {
	return "sso-jwt " + token
}

// truncate обрезает строку до указанной длины.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
