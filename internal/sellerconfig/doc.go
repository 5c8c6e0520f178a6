// Package sellerconfig — самостоятельная утилита массового обновления
// seller-configs по списку из CSV.
//
// Не связана с purchase pipeline: отдельный инструмент с собственным
// циклом read-modify-write (GET → правка → PUT с eTag и IdempotentId).
package sellerconfig
