// Package basket строит envelope запроса корзины и интерпретирует
// дважды закодированный ответ basket-сервиса.
//
// Интерпретация вынесена в чистую функцию Classify: разбор внешнего
// envelope → снятие экранирования → разбор вложенного документа →
// классификация. Тестируется без сети.
package basket
