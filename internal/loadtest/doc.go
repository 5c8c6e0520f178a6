// Package loadtest — самостоятельная утилита нагрузочного прогона:
// серия POST запросов пулом воркеров с замером латентности.
//
// Не связана с purchase pipeline. На время прогона может экспортировать
// Prometheus метрики на /metrics endpoint.
package loadtest
