package view

import (
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/recyconnect/backend/internal/models"
)

var itemAccessor = Accessor[models.Item]{
	SearchFields: func(i models.Item) []string {
		return []string{i.Title, i.Description, i.Category}
	},
	FilterField: func(i models.Item, field string) string {
		switch field {
		case "category":
			return i.Category
		case "condition":
			return i.Condition
		}
		return ""
	},
	CreatedAt: func(i models.Item) time.Time { return i.CreatedAt },
	Price: func(i models.Item) string {
		if i.AskingPrice == nil {
			return ""
		}
		return fmt.Sprintf("₹ %.2f", *i.AskingPrice)
	},
	Title: func(i models.Item) string { return i.Title },
}

func price(v float64) *float64 { return &v }

func testItems() []models.Item {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return []models.Item{
		{ID: uuid.New(), Title: "Физика, том 1", Description: "учебник", Category: "books", Condition: "good", AskingPrice: price(450), CreatedAt: base},
		{ID: uuid.New(), Title: "Настольная лампа", Description: "тёплый свет", Category: "electronics", Condition: "new", AskingPrice: price(1200), CreatedAt: base.Add(48 * time.Hour)},
		{ID: uuid.New(), Title: "Велосипед", Description: "горный, требует ремонта", Category: "sports", Condition: "fair", CreatedAt: base.Add(24 * time.Hour)},
	}
}

func TestDeriveSubsetAndInputUntouched(t *testing.T) {
	items := testItems()
	original := make([]models.Item, len(items))
	copy(original, items)

	got := Derive(items, Params{Search: "учебник"}, itemAccessor)

	if len(got) != 1 || got[0].Title != "Физика, том 1" {
		t.Fatalf("неожиданный результат поиска: %+v", got)
	}
	if !reflect.DeepEqual(items, original) {
		t.Fatal("Derive не должен мутировать вход")
	}

	// Каждая запись результата присутствует во входе
	for _, g := range got {
		found := false
		for _, i := range items {
			if i.ID == g.ID {
				found = true
			}
		}
		if !found {
			t.Fatal("результат содержит запись, которой нет во входе")
		}
	}
}

func TestDeriveIdempotent(t *testing.T) {
	items := testItems()
	params := Params{
		Filters: map[string]string{"category": "books"},
		Sort:    SortAZ,
	}

	first := Derive(items, params, itemAccessor)
	second := Derive(items, params, itemAccessor)

	if !reflect.DeepEqual(first, second) {
		t.Fatal("повторный вывод с теми же параметрами должен совпадать")
	}
}

func TestDeriveEmptySearchMatchesAll(t *testing.T) {
	items := testItems()

	got := Derive(items, Params{Search: "   "}, itemAccessor)
	if len(got) != len(items) {
		t.Fatalf("пустой поиск должен вернуть всё: %d из %d", len(got), len(items))
	}
}

func TestDeriveSearchIsCaseInsensitiveOr(t *testing.T) {
	items := testItems()

	// Совпадение по описанию, регистр другой
	got := Derive(items, Params{Search: "ГОРНЫЙ"}, itemAccessor)
	if len(got) != 1 || got[0].Title != "Велосипед" {
		t.Fatalf("поиск без учёта регистра не сработал: %+v", got)
	}
}

func TestDeriveFilterAllPassthrough(t *testing.T) {
	items := testItems()

	got := Derive(items, Params{Filters: map[string]string{"category": "all", "condition": ""}}, itemAccessor)
	if len(got) != len(items) {
		t.Fatal("фильтры all и пустые должны пропускать всё")
	}

	got = Derive(items, Params{Filters: map[string]string{"category": "Books"}}, itemAccessor)
	if len(got) != 1 || got[0].Category != "books" {
		t.Fatalf("категориальный фильтр без учёта регистра не сработал: %+v", got)
	}
}

func TestDeriveSortKeys(t *testing.T) {
	items := testItems()

	recent := Derive(items, Params{Sort: SortRecent}, itemAccessor)
	if recent[0].Title != "Настольная лампа" {
		t.Fatalf("recent должен начинаться с самой свежей записи: %q", recent[0].Title)
	}

	oldest := Derive(items, Params{Sort: SortOldest}, itemAccessor)
	if oldest[0].Title != "Физика, том 1" {
		t.Fatalf("oldest должен начинаться с самой старой записи: %q", oldest[0].Title)
	}

	// Вещь без цены трактуется как 0 и оказывается первой
	lowHigh := Derive(items, Params{Sort: SortPriceLowHigh}, itemAccessor)
	if lowHigh[0].Title != "Велосипед" || lowHigh[2].Title != "Настольная лампа" {
		t.Fatalf("неожиданный порядок price_low_high: %v", titles(lowHigh))
	}

	highLow := Derive(items, Params{Sort: SortPriceHighLow}, itemAccessor)
	if highLow[0].Title != "Настольная лампа" {
		t.Fatalf("неожиданный порядок price_high_low: %v", titles(highLow))
	}

	az := Derive(items, Params{Sort: SortAZ}, itemAccessor)
	za := Derive(items, Params{Sort: SortZA}, itemAccessor)
	if az[0].Title != za[len(za)-1].Title {
		t.Fatal("az и za должны быть зеркальны")
	}
}

func TestDeriveUrgencySort(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	concerns := []models.UserConcern{
		{ID: uuid.New(), Description: "спам", Urgency: models.UrgencyLow, CreatedAt: base.Add(time.Hour)},
		{ID: uuid.New(), Description: "мошенничество", Urgency: models.UrgencyHigh, CreatedAt: base},
		{ID: uuid.New(), Description: "грубость", Urgency: models.UrgencyMedium, CreatedAt: base},
		{ID: uuid.New(), Description: "подделка", Urgency: models.UrgencyHigh, CreatedAt: base.Add(2 * time.Hour)},
	}

	accessor := Accessor[models.UserConcern]{
		CreatedAt: func(c models.UserConcern) time.Time { return c.CreatedAt },
		Urgency:   func(c models.UserConcern) string { return c.Urgency },
	}

	got := Derive(concerns, Params{Sort: SortUrgency}, accessor)

	if got[0].Description != "подделка" || got[1].Description != "мошенничество" {
		t.Fatalf("high срочность должна идти первой, свежие выше: %+v", descriptions(got))
	}
	if got[2].Description != "грубость" || got[3].Description != "спам" {
		t.Fatalf("неожиданный хвост сортировки: %+v", descriptions(got))
	}
}

func TestParsePrice(t *testing.T) {
	cases := []struct {
		raw  string
		want float64
	}{
		{"₹ 1,250.50", 1250.50},
		{"$99", 99},
		{"450", 450},
		{"Donated", 0},
		{"", 0},
		{"-15", 0},
	}

	for _, tc := range cases {
		if got := ParsePrice(tc.raw); got != tc.want {
			t.Errorf("ParsePrice(%q) = %v, ожидалось %v", tc.raw, got, tc.want)
		}
	}
}

func titles(items []models.Item) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.Title
	}
	return out
}

func descriptions(concerns []models.UserConcern) []string {
	out := make([]string, len(concerns))
	for i, c := range concerns {
		out[i] = c.Description
	}
	return out
}
