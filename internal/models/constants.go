package models

// Роли пользователей
const (
	RoleUser          = "USER"
	RoleAdministrator = "ADMINISTRATOR"
	// RoleDeleted — сентинел мягкого удаления: такие пользователи
	// исключаются из всех списков, но строка в БД остаётся.
	RoleDeleted = "DELETED"
)

// UserStatus константы статусов аккаунта
const (
	UserStatusActive    = "active"
	UserStatusSuspended = "suspended"
	UserStatusPending   = "pending"
)

// ReportedItemType дискриминант lost/found записи
const (
	ReportedTypeLost  = "lost"
	ReportedTypeFound = "found"
)

// ReportedStatus константы статусов объявлений о потерянном/найденном
const (
	ReportedStatusActive   = "active"
	ReportedStatusVerified = "verified"
	ReportedStatusResolved = "resolved"
	ReportedStatusClosed   = "closed"
)

// ConcernStatus константы статусов обращений
const (
	ConcernStatusPending    = "pending"
	ConcernStatusInProgress = "in_progress"
	ConcernStatusResolved   = "resolved"
	ConcernStatusEscalated  = "escalated"
)

// ConcernType константы типов обращений
const (
	ConcernTypeUser       = "user"
	ConcernTypeItem       = "item"
	ConcernTypeFraud      = "fraud"
	ConcernTypeHarassment = "harassment"
	ConcernTypeSpam       = "spam"
	ConcernTypeOther      = "other"
)

// ConcernUrgency константы срочности обращений
const (
	UrgencyLow    = "low"
	UrgencyMedium = "medium"
	UrgencyHigh   = "high"
)

// DonationStatus производные статусы пожертвованной вещи.
// Статус не хранится в БД, а выводится из claimed_by_id/claimed_date.
const (
	DonationStatusAvailable = "available"
	DonationStatusClaimed   = "claimed"
	DonationStatusCompleted = "completed"
)

// FlagStatus константы статусов флагов модерации
const (
	FlagStatusPending   = "PENDING"
	FlagStatusReviewed  = "REVIEWED"
	FlagStatusResolved  = "RESOLVED"
	FlagStatusDismissed = "DISMISSED"
)

// FlagTarget допустимые типы целей флага
const (
	FlagTargetItem    = "item"
	FlagTargetUser    = "user"
	FlagTargetMessage = "message"
	FlagTargetConcern = "concern"
)

// ValidConcernTypes список валидных типов обращений
var ValidConcernTypes = map[string]struct{}{
	ConcernTypeUser:       {},
	ConcernTypeItem:       {},
	ConcernTypeFraud:      {},
	ConcernTypeHarassment: {},
	ConcernTypeSpam:       {},
	ConcernTypeOther:      {},
}

// ValidUrgencies список валидных уровней срочности
var ValidUrgencies = map[string]struct{}{
	UrgencyLow:    {},
	UrgencyMedium: {},
	UrgencyHigh:   {},
}

// ValidFlagTargets список валидных типов целей флага
var ValidFlagTargets = map[string]struct{}{
	FlagTargetItem:    {},
	FlagTargetUser:    {},
	FlagTargetMessage: {},
	FlagTargetConcern: {},
}

// ValidFlagStatuses список валидных статусов флага
var ValidFlagStatuses = map[string]struct{}{
	FlagStatusPending:   {},
	FlagStatusReviewed:  {},
	FlagStatusResolved:  {},
	FlagStatusDismissed: {},
}

// UrgencyRank фиксированная таблица рангов срочности для сортировки.
var UrgencyRank = map[string]int{
	UrgencyHigh:   3,
	UrgencyMedium: 2,
	UrgencyLow:    1,
}

// reportedTransitions описывает допустимые переходы статусов объявления.
// resolved и closed — терминальные, из них переходов нет.
var reportedTransitions = map[string]map[string]struct{}{
	ReportedStatusActive: {
		ReportedStatusVerified: {},
		ReportedStatusResolved: {},
		ReportedStatusClosed:   {},
	},
	ReportedStatusVerified: {
		ReportedStatusResolved: {},
		ReportedStatusClosed:   {},
	},
}

// concernTransitions описывает допустимые переходы статусов обращения.
// Эскалация доступна из любого нетерминального статуса; resolved — терминальный.
var concernTransitions = map[string]map[string]struct{}{
	ConcernStatusPending: {
		ConcernStatusInProgress: {},
		ConcernStatusResolved:   {},
		ConcernStatusEscalated:  {},
	},
	ConcernStatusInProgress: {
		ConcernStatusResolved:  {},
		ConcernStatusEscalated: {},
	},
	ConcernStatusEscalated: {
		ConcernStatusResolved: {},
	},
}

// CanTransitionReported проверяет, допустим ли переход статуса объявления.
func CanTransitionReported(from, to string) bool {
	targets, ok := reportedTransitions[from]
	if !ok {
		return false
	}
	_, ok = targets[to]
	return ok
}

// CanTransitionConcern проверяет, допустим ли переход статуса обращения.
func CanTransitionConcern(from, to string) bool {
	targets, ok := concernTransitions[from]
	if !ok {
		return false
	}
	_, ok = targets[to]
	return ok
}

// IsAdminRole возвращает true для всех вариантов админской роли,
// встречающихся в данных: admin, ADMIN, ADMINISTRATOR.
func IsAdminRole(role string) bool {
	return role == "admin" || role == "ADMIN" || role == RoleAdministrator
}
