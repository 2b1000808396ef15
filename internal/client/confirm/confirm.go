// Package confirm реализует барьер подтверждения необратимых действий:
// операция выполняется только после дословного ввода контрольной фразы.
package confirm

import "errors"

// DeletePhrase — фраза подтверждения удаления аккаунта.
const DeletePhrase = "DELETE"

// ErrNotConfirmed возвращается, когда введённая фраза не совпала.
var ErrNotConfirmed = errors.New("confirm: фраза подтверждения не совпала")

// Gate проверяет дословное совпадение контрольной фразы.
// Сравнение чувствительно к регистру, пробелы не обрезаются.
type Gate struct {
	Phrase string
}

// Confirm возвращает true только при точном совпадении ввода с фразой.
func (g Gate) Confirm(input string) bool {
	return g.Phrase != "" && input == g.Phrase
}

// Run выполняет action только после успешного подтверждения.
// При несовпадении фразы action не вызывается вовсе.
func (g Gate) Run(input string, action func() error) error {
	if !g.Confirm(input) {
		return ErrNotConfirmed
	}
	return action()
}
