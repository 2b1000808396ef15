package models

import (
	"time"

	"github.com/google/uuid"
)

// UserConcern описывает обращение пользователя к модерации.
type UserConcern struct {
	ID             uuid.UUID  `db:"id" json:"id"`
	ReporterID     uuid.UUID  `db:"reporter_id" json:"reporterId"`
	ConcernType    string     `db:"concern_type" json:"concernType"`
	UserInQuestion *string    `db:"user_in_question" json:"userInQuestion,omitempty"`
	ItemInvolved   *string    `db:"item_involved" json:"itemInvolved,omitempty"`
	Description    string     `db:"description" json:"description"`
	Urgency        string     `db:"urgency" json:"urgency"`
	ContactMethod  *string    `db:"contact_method" json:"contactMethod,omitempty"`
	Status         string     `db:"status" json:"status"`
	AdminResponse  *string    `db:"admin_response" json:"adminResponse,omitempty"`
	AssignedTo     *uuid.UUID `db:"assigned_to" json:"assignedTo,omitempty"`
	ResolvedDate   *time.Time `db:"resolved_date" json:"resolvedDate,omitempty"`
	CreatedAt      time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt      *time.Time `db:"updated_at" json:"updatedAt,omitempty"`
}
