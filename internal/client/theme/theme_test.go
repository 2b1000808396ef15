package theme

import (
	"os"
	"path/filepath"
	"testing"
)

func TestManagerDefaultsToLight(t *testing.T) {
	m, err := NewManager(filepath.Join(t.TempDir(), "theme.json"))
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	if m.Mode() != Light {
		t.Fatalf("режим по умолчанию %q, ожидался light", m.Mode())
	}
}

func TestManagerTogglePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "theme.json")

	m, err := NewManager(path)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}

	mode, err := m.Toggle()
	if err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if mode != Dark {
		t.Fatalf("после первого переключения ожидался dark, получен %q", mode)
	}

	// Перезапуск видит сохранённый выбор
	reopened, err := NewManager(path)
	if err != nil {
		t.Fatalf("повторное открытие: %v", err)
	}
	if reopened.Mode() != Dark {
		t.Fatalf("тема не пережила перезапуск: %q", reopened.Mode())
	}

	if reopened.Palette() != palettes[Dark] {
		t.Fatal("палитра не соответствует режиму")
	}
}

func TestManagerIgnoresUnknownStoredTheme(t *testing.T) {
	path := filepath.Join(t.TempDir(), "theme.json")
	if err := os.WriteFile(path, []byte(`{"theme":"sepia"}`), 0o600); err != nil {
		t.Fatal(err)
	}

	m, err := NewManager(path)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	if m.Mode() != Light {
		t.Fatalf("неизвестная тема должна откатываться к light, получено %q", m.Mode())
	}
}

func TestCurrentPanicsWithoutConfigure(t *testing.T) {
	defer func() {
		Configure(nil)
		if recover() == nil {
			t.Fatal("Current без Configure должен паниковать")
		}
	}()

	Configure(nil)
	Current()
}
