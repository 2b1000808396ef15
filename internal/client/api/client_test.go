package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/recyconnect/backend/internal/client/confirm"
	"github.com/recyconnect/backend/internal/models"
)

type staticToken string

func (t staticToken) AuthToken() string { return string(t) }

func TestClientCreateThenListRoundTrip(t *testing.T) {
	var (
		mu    sync.Mutex
		items []models.Item
	)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok-1" {
			t.Errorf("неожиданный заголовок Authorization: %q", got)
		}

		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/api/items":
			var req ItemRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				t.Fatalf("тело запроса не разобралось: %v", err)
			}
			item := models.Item{ID: uuid.New(), Title: req.Title, Category: req.Category}
			mu.Lock()
			items = append(items, item)
			mu.Unlock()
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(item)
		case r.Method == http.MethodGet && r.URL.Path == "/api/items":
			mu.Lock()
			defer mu.Unlock()
			_ = json.NewEncoder(w).Encode(items)
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	client := NewClient(server.URL, staticToken("tok-1"))

	created, err := client.CreateItem(context.Background(), ItemRequest{
		Title:          "Лабораторный халат",
		Description:    "почти новый",
		Category:       "clothing",
		Condition:      "good",
		PickupLocation: "корпус B",
	})
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}

	listed, err := client.ListItems(context.Background(), ItemsQuery{})
	if err != nil {
		t.Fatalf("ListItems: %v", err)
	}

	matches := 0
	for _, item := range listed {
		if item.ID == created.ID {
			matches++
		}
	}
	if matches != 1 {
		t.Fatalf("созданный id должен встретиться ровно один раз, встретился %d", matches)
	}
}

func TestClientQueryOnlyFromSetKeys(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, staticToken(""))

	if _, err := client.ListItems(context.Background(), ItemsQuery{Category: "books"}); err != nil {
		t.Fatalf("ListItems: %v", err)
	}
	if gotQuery != "category=books" {
		t.Errorf("пустые фильтры не должны попадать в запрос, получено %q", gotQuery)
	}

	if _, err := client.ListItems(context.Background(), ItemsQuery{}); err != nil {
		t.Fatalf("ListItems без фильтров: %v", err)
	}
	if gotQuery != "" {
		t.Errorf("запрос без фильтров должен быть без query, получено %q", gotQuery)
	}
}

func TestClientErrorMapping(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "не авторизован"})
	}))
	defer server.Close()

	client := NewClient(server.URL, staticToken(""))

	_, err := client.Profile(context.Background())
	if err == nil {
		t.Fatal("ожидалась ошибка")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("ожидалась *APIError, получено %T", err)
	}
	if apiErr.Status != http.StatusUnauthorized || apiErr.Message != "не авторизован" {
		t.Errorf("неожиданная ошибка: %+v", apiErr)
	}
	if !IsAuthError(err) {
		t.Error("401 должен считаться ошибкой авторизации")
	}
}

func TestClientNoContentLeavesOutUntouched(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := NewClient(server.URL, staticToken("tok"))
	if err := client.MarkMessageRead(context.Background(), uuid.New()); err != nil {
		t.Fatalf("204 не должен быть ошибкой: %v", err)
	}
}

func TestClientDeleteAccountGateBlocksCall(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	client := NewClient(server.URL, staticToken("tok"))

	err := client.DeleteAccount(context.Background(), "Password1", "delete")
	if !errors.Is(err, confirm.ErrNotConfirmed) {
		t.Fatalf("ожидалась ошибка подтверждения, получено %v", err)
	}
	if called {
		t.Fatal("вызов удаления не должен уходить на сервер без точной фразы")
	}
}

func TestClientTransitionGuardBlocksCall(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	client := NewClient(server.URL, staticToken("tok"))

	// resolved — терминальный статус, переходов из него нет
	_, err := client.UpdateReportedStatus(context.Background(), uuid.New(), models.ReportedStatusResolved, models.ReportedStatusActive)
	if !errors.Is(err, ErrTransitionNotAllowed) {
		t.Fatalf("ожидалась ErrTransitionNotAllowed, получено %v", err)
	}
	if called {
		t.Fatal("запрещённый переход не должен доходить до сервера")
	}

	_, err = client.UpdateConcernStatus(context.Background(), uuid.New(), models.ConcernStatusResolved, ConcernStatusRequest{Status: models.ConcernStatusPending})
	if !errors.Is(err, ErrTransitionNotAllowed) {
		t.Fatalf("ожидалась ErrTransitionNotAllowed для обращения, получено %v", err)
	}
	if called {
		t.Fatal("запрещённый переход обращения не должен доходить до сервера")
	}
}
