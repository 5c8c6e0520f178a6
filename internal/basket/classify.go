package basket

import (
	"encoding/xml"
	"html"
	"io"
	"strings"
)

// Namespace SOAP-сервиса корзины. Ответ может приходить с return-элементом
// в этом namespace или вообще без namespace — зависит от деплоймента,
// поэтому варианты пробуются в фиксированном порядке приоритета.
const serviceNamespace = "urn:WscgdBasketService"

// Status — классификация ответа корзины.
type Status string

const (
	// StatusSuccess — сервис подтвердил добавление позиции.
	StatusSuccess Status = "SUCCESS"

	// StatusReported — сервис вернул осмысленное сообщение об отказе.
	StatusReported Status = "REPORTED"

	// StatusUnparseable — ответ не удалось разобрать до сообщения.
	StatusUnparseable Status = "UNPARSEABLE"
)

// Result — результат интерпретации ответа корзины.
type Result struct {
	// Status — классификация ответа.
	Status Status

	// Message — дословный текст сообщения сервиса (для StatusReported).
	Message string
}

// Classify интерпретирует сырой ответ basket-сервиса.
//
// Ответ — вложенный, дважды закодированный документ: внешний envelope
// содержит поле return, текст которого сам является экранированным
// XML-документом. Алгоритм:
//
//  1. Разбор внешнего envelope, поиск return-элемента
//     (сначала в namespace сервиса, затем в любом).
//  2. Пустой или отсутствующий return — StatusUnparseable.
//  3. Снятие экранирования с текста return и разбор его как
//     вложенного документа.
//  4. Извлечение элемента MESSAGE; отсутствует — StatusUnparseable.
//  5. "success" без учёта регистра — StatusSuccess, иначе
//     StatusReported с дословным текстом.
//
// Чистая функция: без сети и без побочных эффектов, повторный вызов
// на том же входе даёт тот же результат.
func Classify(raw string) Result {
	returnText, ok := findReturnText(raw)
	if !ok || returnText == "" {
		return Result{Status: StatusUnparseable}
	}

	inner := html.UnescapeString(returnText)

	message, ok := findElementText(inner, "MESSAGE")
	if !ok || message == "" {
		return Result{Status: StatusUnparseable}
	}

	if strings.EqualFold(message, "success") {
		return Result{Status: StatusSuccess}
	}
	return Result{Status: StatusReported, Message: message}
}

// findReturnText ищет текст return-элемента во внешнем envelope.
// Элемент в namespace сервиса имеет приоритет над элементом без namespace.
func findReturnText(raw string) (string, bool) {
	dec := xml.NewDecoder(strings.NewReader(raw))

	var fallback string
	var fallbackFound bool

	for {
		tok, err := dec.Token()
		if err != nil {
			break
		}

		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "return" {
			continue
		}

		var text string
		if err := dec.DecodeElement(&text, &se); err != nil {
			break
		}

		if se.Name.Space == serviceNamespace {
			return text, true
		}
		if !fallbackFound {
			fallback = text
			fallbackFound = true
		}
	}

	return fallback, fallbackFound
}

// findElementText ищет текст первого элемента с заданным локальным именем.
func findElementText(doc, local string) (string, bool) {
	dec := xml.NewDecoder(strings.NewReader(doc))

	for {
		tok, err := dec.Token()
		if err != nil {
			if err != io.EOF {
				return "", false
			}
			break
		}

		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != local {
			continue
		}

		var text string
		if err := dec.DecodeElement(&text, &se); err != nil {
			return "", false
		}
		return text, true
	}

	return "", false
}
