package loadtest

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Значения по умолчанию.
const (
	defaultRequests    = 100
	defaultConcurrency = 10
	defaultHTTPTimeout = 30 * time.Second
)

// Config — конфигурация прогона.
type Config struct {
	// URL — endpoint для POST запросов (обязательно).
	URL string

	// Requests — общее число запросов (default: 100).
	Requests int

	// Concurrency — размер пула воркеров (default: 10).
	Concurrency int

	// Headers — заголовки каждого запроса.
	Headers map[string]string

	// Body — тело запроса (отправляется как есть).
	Body []byte

	// Timeout — таймаут одного запроса (default: 30s).
	Timeout time.Duration

	// MetricsAddr — адрес /metrics endpoint-а на время прогона.
	// Пустое значение отключает экспорт.
	MetricsAddr string

	// Logger (default: slog.Default()).
	Logger *slog.Logger
}

// Report — сводка прогона.
type Report struct {
	Total     int
	Succeeded int
	Failed    int

	// Латентность считается по запросам, получившим ответ;
	// транспортные ошибки в распределение не входят.
	MinLatency time.Duration
	AvgLatency time.Duration
	MaxLatency time.Duration
}

// SuccessRate возвращает долю успешных запросов в процентах.
func (r *Report) SuccessRate() float64 {
	if r.Total == 0 {
		return 0
	}
	return float64(r.Succeeded) / float64(r.Total) * 100
}

// Runner выполняет серию POST запросов пулом воркеров
// и собирает распределение латентности.
type Runner struct {
	cfg        Config
	httpClient *http.Client
	logger     *slog.Logger
}

// New создаёт Runner.
func New(cfg Config) *Runner {
	if cfg.Requests <= 0 {
		cfg.Requests = defaultRequests
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = defaultConcurrency
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Runner{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// result — исход одного запроса.
type result struct {
	latency time.Duration
	// answered — получен ли ответ (любой статус).
	answered bool
	success  bool
	errMsg   string
}

// Run выполняет прогон и возвращает сводку.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	if r.cfg.URL == "" {
		return nil, fmt.Errorf("url is required")
	}

	registry := prometheus.NewRegistry()
	m := newMetrics(registry)

	// Metrics endpoint живёт только на время прогона
	var metricsServer *http.Server
	if r.cfg.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
		metricsServer = &http.Server{Addr: r.cfg.MetricsAddr, Handler: mux}
		go func() {
			if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				r.logger.Error("metrics server error", "error", err)
			}
		}()
		defer metricsServer.Shutdown(context.Background())
		r.logger.Info("metrics endpoint up", "addr", r.cfg.MetricsAddr)
	}

	r.logger.Info("starting load test",
		"url", r.cfg.URL,
		"requests", r.cfg.Requests,
		"concurrency", r.cfg.Concurrency,
	)

	jobs := make(chan int)
	results := make(chan result, r.cfg.Requests)

	var wg sync.WaitGroup
	for w := 0; w < r.cfg.Concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range jobs {
				res := r.post(ctx)
				m.observe(res.latency.Seconds(), res.success)
				results <- res
			}
		}()
	}

	for i := 0; i < r.cfg.Requests; i++ {
		select {
		case jobs <- i:
		case <-ctx.Done():
			i = r.cfg.Requests // прекращаем раздачу
		}
	}
	close(jobs)
	wg.Wait()
	close(results)

	report := summarize(results, r.logger)
	r.logger.Info("load test finished",
		"total", report.Total,
		"succeeded", report.Succeeded,
		"failed", report.Failed,
	)
	return report, nil
}

// post выполняет один запрос и измеряет латентность.
func (r *Runner) post(ctx context.Context) result {
	var body io.Reader
	if len(r.cfg.Body) > 0 {
		body = bytes.NewReader(r.cfg.Body)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.cfg.URL, body)
	if err != nil {
		return result{errMsg: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")
	for key, val := range r.cfg.Headers {
		req.Header.Set(key, val)
	}

	start := time.Now()
	resp, err := r.httpClient.Do(req)
	latency := time.Since(start)
	if err != nil {
		return result{errMsg: err.Error()}
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	return result{
		latency:  latency,
		answered: true,
		success:  resp.StatusCode == http.StatusOK,
		errMsg:   statusError(resp.StatusCode),
	}
}

func statusError(code int) string {
	if code == http.StatusOK {
		return ""
	}
	return fmt.Sprintf("status %d", code)
}

// summarize сводит результаты в Report.
func summarize(results <-chan result, logger *slog.Logger) *Report {
	report := &Report{}
	var sum time.Duration
	var answered int

	for res := range results {
		report.Total++
		if res.success {
			report.Succeeded++
		} else {
			report.Failed++
			logger.Debug("request failed", "error", res.errMsg)
		}

		if !res.answered {
			continue
		}
		answered++
		sum += res.latency
		if report.MinLatency == 0 || res.latency < report.MinLatency {
			report.MinLatency = res.latency
		}
		if res.latency > report.MaxLatency {
			report.MaxLatency = res.latency
		}
	}

	if answered > 0 {
		report.AvgLatency = sum / time.Duration(answered)
	}
	return report
}
