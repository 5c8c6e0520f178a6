// Package stages реализует leaf-операции purchase pipeline.
//
// Каждая стадия — один удалённый вызов плюс интерпретация ответа:
//   - shoppers.go — создание и обновление shopper-аккаунта
//   - sso.go      — выдача авторизационного токена
//   - encrypt.go  — шифрование номера карты локальным helper-ом
//   - payment.go  — регистрация платёжного профиля и покупка
//   - basket.go   — добавление позиции в корзину (SOAP)
//
// Стадии не принимают решений о продолжении прогона: они возвращают
// результат или ошибку, классифицированную по таксономии errors.go,
// а фатальность решает driver (internal/pipeline).
package stages
