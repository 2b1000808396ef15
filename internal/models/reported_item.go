package models

import (
	"time"

	"github.com/google/uuid"
)

// ReportedItem описывает объявление о потерянной или найденной вещи.
//
// Поле ItemType — дискриминант: для lost заполняется только группа
// Lost* полей, для found — только Found* и CurrentLocation. Неприменимая
// группа всегда явно null, а не отсутствует, чтобы потребители JSON
// могли разбирать запись исчерпывающе, не проверяя наличие полей.
type ReportedItem struct {
	ID          uuid.UUID `db:"id" json:"id"`
	ReporterID  uuid.UUID `db:"reporter_id" json:"reporterId"`
	ItemType    string    `db:"item_type" json:"itemType"`
	Title       string    `db:"title" json:"title"`
	Description string    `db:"description" json:"description"`
	Category    string    `db:"category" json:"category"`
	Color       *string   `db:"color" json:"color"`
	Brand       *string   `db:"brand" json:"brand"`

	LocationLost *string `db:"location_lost" json:"locationLost"`
	DateLost     *string `db:"date_lost" json:"dateLost"`
	TimeLost     *string `db:"time_lost" json:"timeLost"`

	LocationFound   *string `db:"location_found" json:"locationFound"`
	DateFound       *string `db:"date_found" json:"dateFound"`
	TimeFound       *string `db:"time_found" json:"timeFound"`
	CurrentLocation *string `db:"current_location" json:"currentLocation"`

	ContactInfo string     `db:"contact_info" json:"contactInfo"`
	Status      string     `db:"status" json:"status"`
	CreatedAt   time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt   *time.Time `db:"updated_at" json:"updatedAt,omitempty"`
}

// ClearInapplicableGroup обнуляет группу полей, не соответствующую
// дискриминанту. Вызывается перед сохранением.
func (r *ReportedItem) ClearInapplicableGroup() {
	switch r.ItemType {
	case ReportedTypeLost:
		r.LocationFound = nil
		r.DateFound = nil
		r.TimeFound = nil
		r.CurrentLocation = nil
	case ReportedTypeFound:
		r.LocationLost = nil
		r.DateLost = nil
		r.TimeLost = nil
	}
}
