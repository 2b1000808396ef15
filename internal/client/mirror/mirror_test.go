package mirror

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/recyconnect/backend/internal/models"
)

func itemID(i models.Item) uuid.UUID { return i.ID }

func seeded(t *testing.T, titles ...string) (*Mirror[models.Item], []models.Item) {
	t.Helper()

	items := make([]models.Item, 0, len(titles))
	for _, title := range titles {
		items = append(items, models.Item{ID: uuid.New(), Title: title})
	}

	m := New(itemID)
	err := m.Load(context.Background(), func(context.Context) ([]models.Item, error) {
		out := make([]models.Item, len(items))
		copy(out, items)
		return out, nil
	})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return m, items
}

func TestMirrorLoadErrorEmptiesMirror(t *testing.T) {
	m, _ := seeded(t, "книга", "лампа")

	loadErr := errors.New("сеть недоступна")
	err := m.Load(context.Background(), func(context.Context) ([]models.Item, error) {
		return nil, loadErr
	})

	if !errors.Is(err, loadErr) {
		t.Fatalf("ошибка загрузки должна всплывать, получено %v", err)
	}
	if m.Len() != 0 {
		t.Fatal("после ошибки зеркало должно быть пустым")
	}
}

func TestMirrorOptimisticUpdateAndRollback(t *testing.T) {
	m, items := seeded(t, "книга", "лампа")

	edited, ok := m.BeginEdit(items[0].ID)
	if !ok {
		t.Fatal("запись не найдена")
	}
	edited.Title = "учебник"

	// Правка копии не видна до применения
	if current, _ := m.Get(items[0].ID); current.Title != "книга" {
		t.Fatal("теневая копия не должна менять зеркало")
	}

	if !m.ApplyUpdate(edited) {
		t.Fatal("ApplyUpdate не нашёл запись")
	}
	if current, _ := m.Get(items[0].ID); current.Title != "учебник" {
		t.Fatal("оптимистичная правка не применилась")
	}

	// Сервер отказал: откатываемся к снимку
	m.Rollback()
	if current, _ := m.Get(items[0].ID); current.Title != "книга" {
		t.Fatal("Rollback не вернул прежнее состояние")
	}
}

func TestMirrorRemoveCommitAndRollback(t *testing.T) {
	m, items := seeded(t, "книга", "лампа", "стул")

	if !m.Remove(items[1].ID) {
		t.Fatal("Remove не нашёл запись")
	}
	if m.Len() != 2 {
		t.Fatalf("после удаления ожидалось 2 записи, есть %d", m.Len())
	}

	m.Rollback()
	if m.Len() != 3 {
		t.Fatal("Rollback должен вернуть удалённую запись")
	}

	// Подтверждённое удаление откату не подлежит
	m.Remove(items[1].ID)
	m.Commit()
	m.Rollback()
	if m.Len() != 2 {
		t.Fatal("после Commit откат не должен ничего менять")
	}
}

func TestMirrorInFlightGuard(t *testing.T) {
	m, items := seeded(t, "книга")
	id := items[0].ID

	if !m.TryAcquire(id) {
		t.Fatal("первый захват должен пройти")
	}
	if m.TryAcquire(id) {
		t.Fatal("повторный захват той же записи должен быть отклонён")
	}

	m.Release(id)
	if !m.TryAcquire(id) {
		t.Fatal("после Release захват должен снова проходить")
	}
}

func TestMirrorItemsReturnsCopy(t *testing.T) {
	m, _ := seeded(t, "книга")

	snapshot := m.Items()
	snapshot[0].Title = "испорчено"

	if current := m.Items(); current[0].Title != "книга" {
		t.Fatal("мутация снимка не должна трогать зеркало")
	}
}
