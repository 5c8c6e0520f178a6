package sellerconfig

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

const defaultTimeout = 30 * time.Second

// Ошибки updater-а.
var (
	// ErrMalformedConfig — документ seller-config не содержит
	// ожидаемой структуры supportedGatewayOperations.
	ErrMalformedConfig = errors.New("malformed seller config")

	// ErrHTTPStatus — сервис ответил статусом >= 400.
	ErrHTTPStatus = errors.New("unexpected http status")
)

// Outcome — исход обработки одного ресурса.
type Outcome string

const (
	// OutcomeUpdated — операция добавлена, PUT выполнен.
	OutcomeUpdated Outcome = "UPDATED"

	// OutcomeAlreadyPresent — операция уже в списке, обновление пропущено.
	OutcomeAlreadyPresent Outcome = "ALREADY_PRESENT"

	// OutcomeNameMismatch — имя конфига не прошло фильтр, пропущено.
	OutcomeNameMismatch Outcome = "NAME_MISMATCH"
)

// Updater массово добавляет gateway-операцию в seller-configs.
//
// Для каждого ресурса выполняется read-modify-write: GET документа,
// локальная правка, PUT с eTag версии и свежим IdempotentId.
// Документ гоняется как map, чтобы не потерять незнакомые поля.
type Updater struct {
	baseURL    string
	authToken  string
	httpClient *http.Client
	logger     *slog.Logger
}

// Config — конфигурация Updater.
type Config struct {
	// BaseURL — базовый адрес seller-configs сервиса.
	BaseURL string

	// AuthToken — значение заголовка Authorization (sso-jwt ...).
	AuthToken string

	// Timeout — таймаут запросов (default: 30s).
	Timeout time.Duration

	// Logger (default: slog.Default()).
	Logger *slog.Logger
}

// New создаёт Updater.
func New(cfg Config) *Updater {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Updater{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		authToken:  cfg.AuthToken,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// ReadResourceIDs читает идентификаторы ресурсов из первой колонки CSV.
// Пустые строки пропускаются.
func ReadResourceIDs(r io.Reader) ([]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	var ids []string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		if len(record) == 0 {
			continue
		}
		id := strings.TrimSpace(record[0])
		if id != "" {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// AddOperation добавляет операцию в seller-config одного ресурса.
//
// Пропускает ресурс, если имя не начинается с namePrefix (пустой
// префикс отключает фильтр) или операция уже присутствует.
func (u *Updater) AddOperation(ctx context.Context, resourceID, operation, namePrefix string) (Outcome, error) {
	doc, err := u.get(ctx, resourceID)
	if err != nil {
		return "", err
	}

	if namePrefix != "" {
		name, _ := doc["name"].(string)
		if !strings.HasPrefix(strings.ToLower(name), strings.ToLower(namePrefix)) {
			u.logger.Info("skipping: name filter mismatch", "resource", resourceID, "name", name)
			return OutcomeNameMismatch, nil
		}
	}

	ops, err := gatewayOperations(doc)
	if err != nil {
		return "", fmt.Errorf("%s: %w", resourceID, err)
	}

	for _, existing := range ops {
		if existing == operation {
			u.logger.Info("skipping: operation already present", "resource", resourceID, "operation", operation)
			return OutcomeAlreadyPresent, nil
		}
	}

	appendOperation(doc, operation)

	if err := u.put(ctx, resourceID, doc); err != nil {
		return "", err
	}

	u.logger.Info("seller config updated", "resource", resourceID, "operation", operation)
	return OutcomeUpdated, nil
}

// Summary — итог обработки всего CSV.
type Summary struct {
	Updated  int
	Skipped  int
	Failed   int
	Failures []string
}

// ProcessCSV применяет AddOperation к каждому ресурсу из CSV.
// Ошибка одного ресурса не останавливает остальные.
func (u *Updater) ProcessCSV(ctx context.Context, r io.Reader, operation, namePrefix string) (*Summary, error) {
	ids, err := ReadResourceIDs(r)
	if err != nil {
		return nil, err
	}

	summary := &Summary{}
	for _, id := range ids {
		outcome, err := u.AddOperation(ctx, id, operation, namePrefix)
		switch {
		case err != nil:
			u.logger.Error("resource update failed", "resource", id, "error", err)
			summary.Failed++
			summary.Failures = append(summary.Failures, id)
		case outcome == OutcomeUpdated:
			summary.Updated++
		default:
			summary.Skipped++
		}
	}
	return summary, nil
}

// get загружает документ seller-config.
func (u *Updater) get(ctx context.Context, resourceID string) (map[string]any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.resourceURL(resourceID), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", u.authToken)

	var doc map[string]any
	if err := u.do(req, &doc); err != nil {
		return nil, fmt.Errorf("get %s: %w", resourceID, err)
	}
	return doc, nil
}

// put записывает изменённый документ с eTag версии и свежим IdempotentId.
func (u *Updater) put(ctx context.Context, resourceID string, doc map[string]any) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, u.resourceURL(resourceID), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", u.authToken)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("eTag", fmt.Sprint(doc["version"]))
	req.Header.Set("IdempotentId", uuid.NewString())

	if err := u.do(req, nil); err != nil {
		return fmt.Errorf("put %s: %w", resourceID, err)
	}
	return nil
}

func (u *Updater) resourceURL(resourceID string) string {
	if strings.HasPrefix(resourceID, "/") {
		return u.baseURL + resourceID
	}
	return u.baseURL + "/" + resourceID
}

func (u *Updater) do(req *http.Request, out any) error {
	resp, err := u.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return fmt.Errorf("%w: %d: %s", ErrHTTPStatus, resp.StatusCode, truncate(string(body), 200))
	}

	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// gatewayOperations извлекает список операций первого gateway-блока.
func gatewayOperations(doc map[string]any) ([]string, error) {
	blocks, ok := doc["supportedGatewayOperations"].([]any)
	if !ok || len(blocks) == 0 {
		return nil, ErrMalformedConfig
	}
	block, ok := blocks[0].(map[string]any)
	if !ok {
		return nil, ErrMalformedConfig
	}
	raw, ok := block["operations"].([]any)
	if !ok {
		return nil, ErrMalformedConfig
	}

	ops := make([]string, 0, len(raw))
	for _, op := range raw {
		if s, ok := op.(string); ok {
			ops = append(ops, s)
		}
	}
	return ops, nil
}

// appendOperation дописывает операцию в первый gateway-блок.
// Вызывается только после успешного gatewayOperations.
func appendOperation(doc map[string]any, operation string) {
	blocks := doc["supportedGatewayOperations"].([]any)
	block := blocks[0].(map[string]any)
	block["operations"] = append(block["operations"].([]any), operation)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
