// Package pipeline содержит driver purchase-прогона.
//
// Driver — линейная машина состояний, последовательно вызывающая
// стадии (internal/stages) и решающая, продолжать или прерывать
// прогон при ошибке. Параметры стадий поступают через Params:
// AutoParams (всё по умолчанию) или Prompter (override-ы оператора).
//
// Стадии строго последовательны, без повторов и параллелизма:
// транзиентная ошибка фатальной стадии завершает прогон.
package pipeline
