// Package view выводит отображаемую последовательность из локальной
// коллекции: поиск, категориальные фильтры и сортировка. Derive чистая
// функция: вход не мутируется, пересчёт всегда выполняется целиком.
package view

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/recyconnect/backend/internal/models"
)

// SortKey — закрытый набор ключей сортировки.
type SortKey string

const (
	SortRecent       SortKey = "recent"
	SortOldest       SortKey = "oldest"
	SortPriceLowHigh SortKey = "price_low_high"
	SortPriceHighLow SortKey = "price_high_low"
	SortAZ           SortKey = "az"
	SortZA           SortKey = "za"
	SortUrgency      SortKey = "urgency"
)

// Params — параметры вывода. Пустой Search совпадает со всем,
// значение фильтра "" или "all" пропускает все записи.
type Params struct {
	Search  string
	Filters map[string]string
	Sort    SortKey
}

// Accessor описывает, как читать поля записи T. Необязательные
// аксессоры можно оставить nil, соответствующие возможности тогда
// отключены.
type Accessor[T any] struct {
	// SearchFields возвращает текстовые поля, по которым идёт поиск.
	SearchFields func(T) []string
	// FilterField возвращает значение категориального поля по имени.
	FilterField func(T, string) string
	// CreatedAt возвращает время создания. Отсутствующее время
	// трактуется как нулевое и уходит в конец свежей сортировки.
	CreatedAt func(T) time.Time
	// Price возвращает сырой текст цены, как он пришёл с сервера.
	Price func(T) string
	// Title возвращает заголовок для алфавитной сортировки.
	Title func(T) string
	// Urgency возвращает срочность для сортировки обращений.
	Urgency func(T) string
}

// Derive возвращает новую последовательность: подмножество входа,
// отфильтрованное и отсортированное по параметрам. Вход не меняется.
func Derive[T any](items []T, p Params, a Accessor[T]) []T {
	out := make([]T, 0, len(items))

	term := strings.ToLower(strings.TrimSpace(p.Search))
	for _, item := range items {
		if !matchesSearch(item, term, a) {
			continue
		}
		if !matchesFilters(item, p.Filters, a) {
			continue
		}
		out = append(out, item)
	}

	sortItems(out, p.Sort, a)
	return out
}

// matchesSearch выполняет OR поиск по подстроке без учёта регистра.
// Пустой запрос совпадает с любой записью.
func matchesSearch[T any](item T, term string, a Accessor[T]) bool {
	if term == "" || a.SearchFields == nil {
		return true
	}
	for _, field := range a.SearchFields(item) {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

func matchesFilters[T any](item T, filters map[string]string, a Accessor[T]) bool {
	if len(filters) == 0 || a.FilterField == nil {
		return true
	}
	for field, want := range filters {
		if want == "" || strings.EqualFold(want, "all") {
			continue
		}
		if !strings.EqualFold(a.FilterField(item, field), want) {
			return false
		}
	}
	return true
}

func sortItems[T any](items []T, key SortKey, a Accessor[T]) {
	createdAt := func(item T) time.Time {
		if a.CreatedAt == nil {
			return time.Time{}
		}
		return a.CreatedAt(item)
	}

	switch key {
	case SortOldest:
		sort.SliceStable(items, func(i, j int) bool {
			return createdAt(items[i]).Before(createdAt(items[j]))
		})
	case SortPriceLowHigh:
		if a.Price == nil {
			return
		}
		sort.SliceStable(items, func(i, j int) bool {
			return ParsePrice(a.Price(items[i])) < ParsePrice(a.Price(items[j]))
		})
	case SortPriceHighLow:
		if a.Price == nil {
			return
		}
		sort.SliceStable(items, func(i, j int) bool {
			return ParsePrice(a.Price(items[i])) > ParsePrice(a.Price(items[j]))
		})
	case SortAZ:
		if a.Title == nil {
			return
		}
		sort.SliceStable(items, func(i, j int) bool {
			return strings.ToLower(a.Title(items[i])) < strings.ToLower(a.Title(items[j]))
		})
	case SortZA:
		if a.Title == nil {
			return
		}
		sort.SliceStable(items, func(i, j int) bool {
			return strings.ToLower(a.Title(items[i])) > strings.ToLower(a.Title(items[j]))
		})
	case SortUrgency:
		if a.Urgency == nil {
			return
		}
		sort.SliceStable(items, func(i, j int) bool {
			ri := models.UrgencyRank[strings.ToLower(a.Urgency(items[i]))]
			rj := models.UrgencyRank[strings.ToLower(a.Urgency(items[j]))]
			if ri != rj {
				return ri > rj
			}
			return createdAt(items[i]).After(createdAt(items[j]))
		})
	default:
		// SortRecent: свежие сверху, записи без времени в конце
		sort.SliceStable(items, func(i, j int) bool {
			return createdAt(items[i]).After(createdAt(items[j]))
		})
	}
}

// ParsePrice переводит текст цены в число. Символы валют, запятые и
// пробелы отбрасываются; нечитаемая или пожертвованная цена даёт 0.
func ParsePrice(raw string) float64 {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case '₹', '$', ',', ' ':
			return -1
		}
		return r
	}, raw)

	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || value < 0 {
		return 0
	}
	return value
}
