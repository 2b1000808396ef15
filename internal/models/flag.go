package models

import (
	"time"

	"github.com/google/uuid"
)

// Flag — отметка модерации, прикреплённая к целевой сущности.
type Flag struct {
	ID          uuid.UUID  `db:"id" json:"id"`
	FlaggedByID uuid.UUID  `db:"flagged_by_id" json:"flaggedBy"`
	TargetType  string     `db:"target_type" json:"targetType"`
	TargetID    uuid.UUID  `db:"target_id" json:"targetId"`
	Reason      string     `db:"reason" json:"reason"`
	Description *string    `db:"description" json:"description,omitempty"`
	Severity    *string    `db:"severity" json:"severity,omitempty"`
	Status      string     `db:"status" json:"status"`
	AdminNotes  *string    `db:"admin_notes" json:"adminNotes,omitempty"`
	ResolvedAt  *time.Time `db:"resolved_at" json:"resolvedAt,omitempty"`
	CreatedAt   time.Time  `db:"created_at" json:"createdAt"`
}
