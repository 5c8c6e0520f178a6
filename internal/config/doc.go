// Package config строит конфигурацию одного прогона.
//
// Включает:
//   - резолвер адресов сервисов из метки окружения (без сетевых вызовов)
//   - встроенные значения по умолчанию для всех стадий pipeline
//   - настройки из переменных окружения процесса
//
// Все значения неизменяемы после старта и передаются в стадии явно.
package config
