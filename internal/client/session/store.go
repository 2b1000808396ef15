// Package session хранит состояние входа клиента в JSON файле.
// Все чтения и записи идут через Store, чтобы инвариант "ключи сессии
// живут и умирают вместе" соблюдался в одном месте.
package session

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/recyconnect/backend/internal/logger"
	"github.com/recyconnect/backend/internal/models"
)

// state — сериализуемое содержимое хранилища. Набор ключей фиксирован.
type state struct {
	User       *models.User `json:"user,omitempty"`
	IsLoggedIn string       `json:"isLoggedIn,omitempty"`
	IsAdmin    string       `json:"isAdmin,omitempty"`
	AuthToken  string       `json:"authToken,omitempty"`
	LoginTime  string       `json:"loginTime,omitempty"`
}

// Store — единственная точка доступа к durable состоянию сессии.
type Store struct {
	mu        sync.RWMutex
	path      string
	state     state
	listeners []func()
}

// NewStore читает состояние из файла по указанному пути.
// Повреждённый файл молча вычищается: пользователь считается вышедшим.
func NewStore(path string) (*Store, error) {
	s := &Store{path: path}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	if err := s.load(); err != nil {
		logger.Log.Warnf("session: повреждённое состояние вычищено: %v", err)
		if err := s.purge(); err != nil {
			return nil, err
		}
	}

	return s, nil
}

func (s *Store) load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.state = state{}
			return nil
		}
		return err
	}

	var st state
	if err := json.Unmarshal(data, &st); err != nil {
		return err
	}

	// Залогинен, но объекта пользователя нет: состояние противоречиво
	if st.IsLoggedIn == "true" && st.User == nil {
		return errors.New("session: isLoggedIn без объекта user")
	}

	s.state = st
	return nil
}

// purge удаляет файл и сбрасывает состояние. Все ключи исчезают вместе.
func (s *Store) purge() error {
	s.state = state{}
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func (s *Store) save() error {
	data, err := json.MarshalIndent(s.state, "", "  ")
	if err != nil {
		return err
	}

	// Пишем во временный файл и переименовываем, чтобы не оставить
	// наполовину записанное состояние
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

// SetSession атомарно записывает все ключи входа.
func (s *Store) SetSession(user *models.User, token string) error {
	s.mu.Lock()
	s.state = state{
		User:       user,
		IsLoggedIn: "true",
		IsAdmin:    boolString(user != nil && models.IsAdminRole(user.Role)),
		AuthToken:  token,
		LoginTime:  time.Now().Format(time.RFC3339),
	}
	err := s.save()
	s.mu.Unlock()

	s.notify()
	return err
}

// Clear удаляет все ключи сессии разом.
func (s *Store) Clear() error {
	s.mu.Lock()
	err := s.purge()
	s.mu.Unlock()

	s.notify()
	return err
}

// Reload перечитывает файл, подхватывая записи других процессов.
// Повреждённое состояние вычищается как при старте.
func (s *Store) Reload() error {
	s.mu.Lock()
	err := s.load()
	if err != nil {
		logger.Log.Warnf("session: повреждённое состояние вычищено: %v", err)
		err = s.purge()
	}
	s.mu.Unlock()

	s.notify()
	return err
}

// Subscribe регистрирует обработчик изменения сессии.
func (s *Store) Subscribe(fn func()) {
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}

func (s *Store) notify() {
	s.mu.RLock()
	listeners := make([]func(), len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.RUnlock()

	for _, fn := range listeners {
		fn()
	}
}

// User возвращает сохранённого пользователя или nil.
func (s *Store) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.User
}

// IsAuthenticated считает вход действительным при наличии токена.
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.AuthToken != "" && s.state.IsLoggedIn == "true"
}

// IsAdmin возвращает сохранённый признак администратора.
func (s *Store) IsAdmin() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.IsAdmin == "true"
}

// AuthToken возвращает bearer токен или пустую строку.
func (s *Store) AuthToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.AuthToken
}

// LoginTime возвращает время входа в формате RFC3339.
func (s *Store) LoginTime() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.LoginTime
}

func boolString(v bool) string {
	if v {
		return "true"
	}
	return "false"
}
