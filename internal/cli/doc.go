// Package cli собирает команды инструмента purchasectl.
//
// # Commands
//
//   - run          — end-to-end purchase pipeline (автоматический или
//     интерактивный режим)
//   - sellerconfig — массовое обновление seller-configs по CSV
//   - loadtest     — нагрузочный прогон endpoint-а
//
// run — ядро инструмента; sellerconfig и loadtest — независимые
// утилиты без общего дизайна, живущие под одним бинарником только
// ради удобства дистрибуции.
//
// ## Output
//
// Форматирование вывода. Поддерживает два режима:
//   - Таблицы (text/tabwriter) — по умолчанию
//   - JSON (с флагом --json)
//
// Данные выводятся в stdout, сообщения (Success/Error) — в stderr,
// логи — тоже в stderr. Это позволяет использовать pipe:
// purchasectl run --json | jq .
package cli
