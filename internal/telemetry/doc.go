// Package telemetry обеспечивает наблюдаемость инструмента.
//
// Включает:
//   - logging.go — structured logging через slog
//
// Все команды используют единый формат логирования; loadtest
// дополнительно экспортирует Prometheus метрики на /metrics endpoint
// (см. internal/loadtest).
package telemetry
