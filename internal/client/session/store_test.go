package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"github.com/recyconnect/backend/internal/logger"
	"github.com/recyconnect/backend/internal/models"
)

func TestMain(m *testing.M) {
	logger.Init("error")
	os.Exit(m.Run())
}

func testUser(role string) *models.User {
	return &models.User{
		ID:    uuid.New(),
		Email: "student@chitkara.edu.in",
		Name:  "Студент",
		Role:  role,
	}
}

func TestStoreSessionLifecycle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	store, err := NewStore(path)
	if err != nil {
		t.Fatalf("не удалось создать хранилище: %v", err)
	}

	if store.IsAuthenticated() {
		t.Fatal("новое хранилище не должно считаться авторизованным")
	}

	user := testUser(models.RoleUser)
	if err := store.SetSession(user, "token-123"); err != nil {
		t.Fatalf("SetSession вернул ошибку: %v", err)
	}

	if !store.IsAuthenticated() {
		t.Fatal("после SetSession вход должен быть действителен")
	}
	if store.IsAdmin() {
		t.Fatal("обычный пользователь не должен быть администратором")
	}
	if store.AuthToken() != "token-123" {
		t.Errorf("неожиданный токен: %q", store.AuthToken())
	}
	if store.LoginTime() == "" {
		t.Error("loginTime должен быть заполнен")
	}

	// Новый экземпляр над тем же файлом видит сессию
	reopened, err := NewStore(path)
	if err != nil {
		t.Fatalf("повторное открытие: %v", err)
	}
	if !reopened.IsAuthenticated() {
		t.Fatal("сессия должна переживать перезапуск")
	}
	if reopened.User() == nil || reopened.User().ID != user.ID {
		t.Fatal("пользователь не восстановился из файла")
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear вернул ошибку: %v", err)
	}
	if store.IsAuthenticated() || store.User() != nil || store.AuthToken() != "" {
		t.Fatal("после Clear все ключи должны исчезнуть вместе")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatal("файл сессии должен быть удалён")
	}
}

func TestStoreAdminDerivation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	store, err := NewStore(path)
	if err != nil {
		t.Fatalf("не удалось создать хранилище: %v", err)
	}

	if err := store.SetSession(testUser(models.RoleAdministrator), "tok"); err != nil {
		t.Fatalf("SetSession: %v", err)
	}
	if !store.IsAdmin() {
		t.Fatal("роль ADMINISTRATOR должна давать признак администратора")
	}
}

func TestStoreCorruptedFilePurged(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	if err := os.WriteFile(path, []byte(`{"user": not-json`), 0o600); err != nil {
		t.Fatal(err)
	}

	store, err := NewStore(path)
	if err != nil {
		t.Fatalf("повреждённый файл не должен быть фатальным: %v", err)
	}

	if store.IsAuthenticated() {
		t.Fatal("после повреждения состояние должно быть logged out")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatal("повреждённый файл должен быть удалён")
	}
}

func TestStoreInconsistentStatePurged(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	// isLoggedIn без объекта пользователя
	if err := os.WriteFile(path, []byte(`{"isLoggedIn":"true","authToken":"x"}`), 0o600); err != nil {
		t.Fatal(err)
	}

	store, err := NewStore(path)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	if store.IsAuthenticated() || store.AuthToken() != "" {
		t.Fatal("противоречивое состояние должно вычищаться целиком")
	}
}

func TestStoreSubscribeAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	store, err := NewStore(path)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	fired := 0
	store.Subscribe(func() { fired++ })

	if err := store.SetSession(testUser(models.RoleUser), "tok"); err != nil {
		t.Fatalf("SetSession: %v", err)
	}
	if fired != 1 {
		t.Fatalf("подписчик должен сработать один раз, сработал %d", fired)
	}

	// Внешний процесс стёр файл, Reload подхватывает
	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	if err := store.Reload(); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if store.IsAuthenticated() {
		t.Fatal("после внешнего удаления сессия должна исчезнуть")
	}
	if fired != 2 {
		t.Fatalf("подписчик должен сработать на Reload, счётчик %d", fired)
	}
}
