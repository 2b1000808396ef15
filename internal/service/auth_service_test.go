package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/recyconnect/backend/internal/models"
	"github.com/recyconnect/backend/internal/repository"
)

// mockAuthRepository реализует AuthRepository для тестов.
type mockAuthRepository struct {
	usersByEmail map[string]*models.User
	usersByID    map[uuid.UUID]*models.User
	sessions     map[string]*models.Session
}

func newMockAuthRepository() *mockAuthRepository {
	return &mockAuthRepository{
		usersByEmail: make(map[string]*models.User),
		usersByID:    make(map[uuid.UUID]*models.User),
		sessions:     make(map[string]*models.Session),
	}
}

func (m *mockAuthRepository) Create(ctx context.Context, user *models.User) error {
	user.ID = uuid.New()
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	m.usersByEmail[user.Email] = user
	m.usersByID[user.ID] = user
	return nil
}

func (m *mockAuthRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if user, ok := m.usersByEmail[email]; ok {
		return user, nil
	}
	return nil, repository.ErrUserNotFound
}

func (m *mockAuthRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if user, ok := m.usersByID[id]; ok {
		return user, nil
	}
	return nil, repository.ErrUserNotFound
}

func (m *mockAuthRepository) UpdateProfile(ctx context.Context, user *models.User) error {
	if existing, ok := m.usersByID[user.ID]; ok {
		existing.Name = user.Name
		existing.Phone = user.Phone
		existing.Bio = user.Bio
		return nil
	}
	return repository.ErrUserNotFound
}

func (m *mockAuthRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	if user, ok := m.usersByID[id]; ok {
		user.PasswordHash = passwordHash
		return nil
	}
	return repository.ErrUserNotFound
}

func (m *mockAuthRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	user, ok := m.usersByID[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	delete(m.usersByEmail, user.Email)
	user.Role = models.RoleDeleted
	for token, s := range m.sessions {
		if s.UserID == id {
			delete(m.sessions, token)
		}
	}
	return nil
}

func (m *mockAuthRepository) CreateSession(ctx context.Context, session *models.Session) error {
	session.ID = uuid.New()
	session.CreatedAt = time.Now()
	m.sessions[session.RefreshToken] = session
	return nil
}

func (m *mockAuthRepository) DeleteSession(ctx context.Context, refreshToken string) error {
	delete(m.sessions, refreshToken)
	return nil
}

func (m *mockAuthRepository) DeleteAllSessions(ctx context.Context, userID uuid.UUID) error {
	for token, s := range m.sessions {
		if s.UserID == userID {
			delete(m.sessions, token)
		}
	}
	return nil
}

func newTestAuthService(repo *mockAuthRepository) *AuthService {
	tokenManager := NewTokenManager("access", "refresh", time.Minute, time.Hour)
	return NewAuthService(repo, tokenManager, "@chitkara.edu.in")
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	repo := newMockAuthRepository()
	service := newTestAuthService(repo)

	ctx := context.Background()
	res, err := service.Register(ctx, RegisterInput{
		Email:     "student@chitkara.edu.in",
		Password:  "Password1",
		Name:      "Студент Тестовый",
		CollegeID: "CU-2024-001",
	}, map[string]string{"ip": "127.0.0.1"})
	if err != nil {
		t.Fatalf("register вернул ошибку: %v", err)
	}

	if res.User.ID == uuid.Nil {
		t.Fatalf("user ID должен быть установлен")
	}
	if res.User.Role != models.RoleUser {
		t.Fatalf("новый пользователь должен получить роль USER, получили %s", res.User.Role)
	}
	if res.User.IsAdmin {
		t.Fatalf("новый пользователь не должен быть администратором")
	}
	if len(repo.sessions) != 1 {
		t.Fatalf("ожидалась одна сессия, получили %d", len(repo.sessions))
	}

	loginRes, err := service.Login(ctx, LoginInput{
		Email:    "student@chitkara.edu.in",
		Password: "Password1",
	}, nil)
	if err != nil {
		t.Fatalf("login вернул ошибку: %v", err)
	}
	if loginRes.TokenPair.AccessToken == "" {
		t.Fatalf("ожидался access токен")
	}
}

func TestAuthService_RegisterRejectsForeignDomain(t *testing.T) {
	repo := newMockAuthRepository()
	service := newTestAuthService(repo)

	_, err := service.Register(context.Background(), RegisterInput{
		Email:     "someone@gmail.com",
		Password:  "Password1",
		Name:      "Гость",
		CollegeID: "CU-2024-002",
	}, nil)
	if err == nil {
		t.Fatalf("регистрация с посторонним доменом должна отклоняться")
	}
}

func TestAuthService_LoginSuspended(t *testing.T) {
	repo := newMockAuthRepository()
	service := newTestAuthService(repo)

	hash, _ := bcrypt.GenerateFromPassword([]byte("Password1"), bcrypt.DefaultCost)
	user := &models.User{
		ID:           uuid.New(),
		Email:        "banned@chitkara.edu.in",
		PasswordHash: string(hash),
		Role:         models.RoleUser,
		Status:       models.UserStatusSuspended,
	}
	repo.usersByEmail[user.Email] = user
	repo.usersByID[user.ID] = user

	if _, err := service.Login(context.Background(), LoginInput{
		Email:    user.Email,
		Password: "Password1",
	}, nil); err == nil {
		t.Fatalf("заблокированный пользователь не должен входить")
	}
}

func TestAuthService_Refresh(t *testing.T) {
	repo := newMockAuthRepository()
	tokenManager := NewTokenManager("access-secret", "refresh-secret", time.Minute, time.Hour)
	service := NewAuthService(repo, tokenManager, "")

	ctx := context.Background()
	hash, _ := bcrypt.GenerateFromPassword([]byte("Password1"), bcrypt.DefaultCost)
	user := &models.User{
		ID:           uuid.New(),
		Email:        "user@chitkara.edu.in",
		PasswordHash: string(hash),
		Role:         models.RoleUser,
		Status:       models.UserStatusActive,
	}
	repo.usersByEmail[user.Email] = user
	repo.usersByID[user.ID] = user

	tokenPair, accessExp, refreshExp, err := tokenManager.GeneratePair(user)
	if err != nil {
		t.Fatalf("не удалось сгенерировать токены: %v", err)
	}
	if accessExp.After(refreshExp) {
		t.Fatalf("access должен истекать раньше refresh")
	}

	repo.sessions[tokenPair.RefreshToken] = &models.Session{
		ID:           uuid.New(),
		UserID:       user.ID,
		RefreshToken: tokenPair.RefreshToken,
		ExpiresAt:    refreshExp,
	}

	newPair, err := service.Refresh(ctx, tokenPair.RefreshToken, nil)
	if err != nil {
		t.Fatalf("refresh вернул ошибку: %v", err)
	}
	if newPair.RefreshToken == tokenPair.RefreshToken {
		t.Fatalf("ожидался новый refresh токен")
	}
}

func TestAuthService_DeleteAccount(t *testing.T) {
	repo := newMockAuthRepository()
	service := newTestAuthService(repo)

	ctx := context.Background()
	res, err := service.Register(ctx, RegisterInput{
		Email:     "leaver@chitkara.edu.in",
		Password:  "Password1",
		Name:      "Уходящий",
		CollegeID: "CU-2024-003",
	}, nil)
	if err != nil {
		t.Fatalf("register вернул ошибку: %v", err)
	}

	// Неверная фраза подтверждения
	if err := service.DeleteAccount(ctx, res.User.ID, DeleteAccountInput{
		Password:     "Password1",
		Confirmation: "delete",
	}); err == nil {
		t.Fatalf("подтверждение должно сверяться дословно, без нормализации регистра")
	}

	// Неверный пароль
	if err := service.DeleteAccount(ctx, res.User.ID, DeleteAccountInput{
		Password:     "WrongPass1",
		Confirmation: DeleteConfirmationPhrase,
	}); err == nil {
		t.Fatalf("удаление с неверным паролем должно отклоняться")
	}

	if err := service.DeleteAccount(ctx, res.User.ID, DeleteAccountInput{
		Password:     "Password1",
		Confirmation: DeleteConfirmationPhrase,
	}); err != nil {
		t.Fatalf("удаление аккаунта вернуло ошибку: %v", err)
	}

	if repo.usersByID[res.User.ID].Role != models.RoleDeleted {
		t.Fatalf("после удаления роль должна быть DELETED")
	}
	if len(repo.sessions) != 0 {
		t.Fatalf("после удаления сессии должны быть закрыты")
	}
}
