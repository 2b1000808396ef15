// Package theme управляет светлой и тёмной палитрами клиента.
// Выбор темы переживает перезапуск: пишется в тот же durable файл стиль,
// что и сессия, под ключом theme.
package theme

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
)

const (
	Light = "light"
	Dark  = "dark"
)

// Palette — набор цветов интерфейса.
type Palette struct {
	Background string `json:"background"`
	Surface    string `json:"surface"`
	Text       string `json:"text"`
	Primary    string `json:"primary"`
	Accent     string `json:"accent"`
	Danger     string `json:"danger"`
}

var palettes = map[string]Palette{
	Light: {
		Background: "#f5f7f4",
		Surface:    "#ffffff",
		Text:       "#1d2b20",
		Primary:    "#2e7d32",
		Accent:     "#66bb6a",
		Danger:     "#c62828",
	},
	Dark: {
		Background: "#121a14",
		Surface:    "#1e2a21",
		Text:       "#e8f0e9",
		Primary:    "#81c784",
		Accent:     "#4caf50",
		Danger:     "#ef5350",
	},
}

// Manager хранит текущую тему и её durable копию.
type Manager struct {
	mu   sync.RWMutex
	path string
	mode string
}

type persisted struct {
	Theme string `json:"theme"`
}

// NewManager читает сохранённую тему. Неизвестное или отсутствующее
// значение откатывается к светлой.
func NewManager(path string) (*Manager, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	m := &Manager{path: path, mode: Light}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return m, nil
		}
		return nil, err
	}

	var p persisted
	if err := json.Unmarshal(data, &p); err == nil {
		if _, ok := palettes[p.Theme]; ok {
			m.mode = p.Theme
		}
	}

	return m, nil
}

// Mode возвращает текущий режим: light или dark.
func (m *Manager) Mode() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.mode
}

// Palette возвращает палитру текущего режима.
func (m *Manager) Palette() Palette {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return palettes[m.mode]
}

// Toggle переключает режим и сохраняет выбор.
func (m *Manager) Toggle() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.mode == Dark {
		m.mode = Light
	} else {
		m.mode = Dark
	}

	data, err := json.Marshal(persisted{Theme: m.mode})
	if err != nil {
		return m.mode, err
	}
	return m.mode, os.WriteFile(m.path, data, 0o600)
}

// Пакетный доступ для кода, которому неудобно таскать Manager.
var (
	defaultMu      sync.RWMutex
	defaultManager *Manager
)

// Configure выставляет менеджер для пакетного доступа.
func Configure(m *Manager) {
	defaultMu.Lock()
	defaultManager = m
	defaultMu.Unlock()
}

// Current возвращает сконфигурированный менеджер.
// Паникует, если Configure не был вызван: обращение к теме до
// инициализации это ошибка программиста, а не рантайма.
func Current() *Manager {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	if defaultManager == nil {
		panic("theme: менеджер не сконфигурирован, вызовите Configure")
	}
	return defaultManager
}
