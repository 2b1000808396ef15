// Package mirror держит локальную копию серверной коллекции для одной
// страницы. Мутации применяются оптимистично: перед правкой снимается
// снимок, и при отказе сервера состояние откатывается к нему.
package mirror

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Mirror — локальная копия коллекции записей типа T.
// Записи адресуются по ID через переданную функцию доступа.
type Mirror[T any] struct {
	mu       sync.Mutex
	items    []T
	snapshot []T
	id       func(T) uuid.UUID
	inflight map[uuid.UUID]struct{}
}

// New создаёт пустое зеркало с функцией извлечения ID.
func New[T any](id func(T) uuid.UUID) *Mirror[T] {
	return &Mirror[T]{
		id:       id,
		inflight: make(map[uuid.UUID]struct{}),
	}
}

// Load заполняет зеркало результатом fetch. При ошибке зеркало
// становится пустым, а ошибка возвращается вызывающему для логирования:
// страница с пустым списком лучше страницы с упавшей загрузкой.
func (m *Mirror[T]) Load(ctx context.Context, fetch func(context.Context) ([]T, error)) error {
	items, err := fetch(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()

	if err != nil {
		m.items = nil
		m.snapshot = nil
		return err
	}

	m.items = items
	m.snapshot = nil
	return nil
}

// Items возвращает копию текущего содержимого.
func (m *Mirror[T]) Items() []T {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]T, len(m.items))
	copy(out, m.items)
	return out
}

// Len возвращает размер зеркала.
func (m *Mirror[T]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

// Get возвращает запись по ID.
func (m *Mirror[T]) Get(id uuid.UUID) (T, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, item := range m.items {
		if m.id(item) == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// BeginEdit возвращает редактируемую копию записи. Правки копии не
// видны в зеркале, пока не применены через ApplyUpdate.
func (m *Mirror[T]) BeginEdit(id uuid.UUID) (T, bool) {
	return m.Get(id)
}

// ApplyUpdate оптимистично заменяет запись с тем же ID.
// Предыдущее состояние сохраняется для Rollback.
func (m *Mirror[T]) ApplyUpdate(updated T) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.id(updated)
	for i, item := range m.items {
		if m.id(item) == id {
			m.takeSnapshot()
			m.items[i] = updated
			return true
		}
	}
	return false
}

// Remove оптимистично удаляет запись по ID.
func (m *Mirror[T]) Remove(id uuid.UUID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, item := range m.items {
		if m.id(item) == id {
			m.takeSnapshot()
			m.items = append(m.items[:i:i], m.items[i+1:]...)
			return true
		}
	}
	return false
}

// Add оптимистично добавляет запись в конец.
func (m *Mirror[T]) Add(item T) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.takeSnapshot()
	m.items = append(m.items, item)
}

// Rollback откатывает последнюю оптимистичную мутацию.
// Вызывается, когда сервер отверг изменение.
func (m *Mirror[T]) Rollback() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.snapshot == nil {
		return
	}
	m.items = m.snapshot
	m.snapshot = nil
}

// Commit фиксирует мутацию: снимок больше не нужен.
func (m *Mirror[T]) Commit() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snapshot = nil
}

// takeSnapshot сохраняет состояние перед первой мутацией серии.
// Снимок остаётся неизменным, пока его не заберёт Rollback или Commit.
func (m *Mirror[T]) takeSnapshot() {
	if m.snapshot != nil {
		return
	}
	m.snapshot = make([]T, len(m.items))
	copy(m.snapshot, m.items)
}

// TryAcquire помечает запись как занятую переходом. Возвращает false,
// если переход по этой записи уже в полёте: второй запуск не допускается.
func (m *Mirror[T]) TryAcquire(id uuid.UUID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, busy := m.inflight[id]; busy {
		return false
	}
	m.inflight[id] = struct{}{}
	return true
}

// Release снимает пометку занятости.
func (m *Mirror[T]) Release(id uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.inflight, id)
}
