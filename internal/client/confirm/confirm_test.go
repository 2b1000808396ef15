package confirm

import (
	"errors"
	"testing"
)

func TestGateConfirm(t *testing.T) {
	gate := Gate{Phrase: DeletePhrase}

	cases := []struct {
		name  string
		input string
		want  bool
	}{
		{"точное совпадение", "DELETE", true},
		{"нижний регистр", "delete", false},
		{"смешанный регистр", "Delete", false},
		{"лишний пробел", "DELETE ", false},
		{"пустой ввод", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := gate.Confirm(tc.input); got != tc.want {
				t.Errorf("Confirm(%q) = %v, ожидалось %v", tc.input, got, tc.want)
			}
		})
	}
}

func TestGateRunBlocksAction(t *testing.T) {
	gate := Gate{Phrase: DeletePhrase}

	called := false
	err := gate.Run("delete", func() error {
		called = true
		return nil
	})

	if !errors.Is(err, ErrNotConfirmed) {
		t.Fatalf("ожидалась ErrNotConfirmed, получено %v", err)
	}
	if called {
		t.Fatal("действие не должно вызываться без подтверждения")
	}

	if err := gate.Run("DELETE", func() error {
		called = true
		return nil
	}); err != nil {
		t.Fatalf("подтверждённое действие вернуло ошибку: %v", err)
	}
	if !called {
		t.Fatal("подтверждённое действие не было вызвано")
	}
}

func TestGateEmptyPhraseNeverConfirms(t *testing.T) {
	gate := Gate{}
	if gate.Confirm("") {
		t.Fatal("пустая фраза не должна подтверждаться пустым вводом")
	}
}
