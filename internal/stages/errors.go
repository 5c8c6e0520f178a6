package stages

import "errors"

// Таксономия ошибок удалённых вызовов.
//
// Каждая стадия классифицирует свою ошибку в один из этих видов
// и оборачивает через %w; driver различает виды через errors.Is,
// строки сообщений не разбираются.
var (
	// ErrConnection — не удалось установить соединение с сервисом.
	ErrConnection = errors.New("connection failed")

	// ErrTimeout — запрос превысил таймаут транспорта.
	ErrTimeout = errors.New("request timed out")

	// ErrHTTPStatus — сервис ответил статусом >= 400.
	// Сообщение содержит код и фрагмент тела ответа.
	ErrHTTPStatus = errors.New("unexpected http status")

	// ErrDecode — ответ не разобран или ожидаемое поле отсутствует.
	ErrDecode = errors.New("response decode failed")
)
