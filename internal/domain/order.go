package domain

// PaymentProfileID — идентификатор сохранённого платёжного инструмента.
//
// Возвращается Payment API после регистрации зашифрованной карты
// и обязателен для финальной покупки.
type PaymentProfileID string

// String возвращает строковое представление идентификатора.
func (id PaymentProfileID) String() string { return string(id) }

// OrderID — идентификатор заказа, терминальный артефакт pipeline.
//
// Пустое значение означает, что покупка не состоялась.
type OrderID string

// String возвращает строковое представление идентификатора.
func (id OrderID) String() string { return string(id) }
