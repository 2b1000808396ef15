package models

import (
	"time"

	"github.com/google/uuid"
)

// Item описывает объявление о продаже вещи.
type Item struct {
	ID            uuid.UUID  `db:"id" json:"id"`
	OwnerID       uuid.UUID  `db:"owner_id" json:"ownerId"`
	SellerName    string     `db:"seller_name" json:"sellerName"`
	Title         string     `db:"title" json:"title"`
	Description   string     `db:"description" json:"description"`
	Category      string     `db:"category" json:"category"`
	Condition     string     `db:"condition" json:"condition"`
	Verified      bool       `db:"verified" json:"verified"`
	UsageTime     *int       `db:"usage_time" json:"usageTime,omitempty"`
	UsageTimeUnit *string    `db:"usage_time_unit" json:"usageTimeUnit,omitempty"`
	Warranty      *string    `db:"warranty" json:"warranty,omitempty"`
	OriginalPrice *float64   `db:"original_price" json:"originalPrice,omitempty"`
	AskingPrice   *float64   `db:"asking_price" json:"askingPrice,omitempty"`
	Quantity      *int       `db:"quantity" json:"quantity,omitempty"`
	PickupLocation string    `db:"pickup_location" json:"pickupLocation"`
	Delivery      *string    `db:"delivery" json:"delivery,omitempty"`
	Color         *string    `db:"color" json:"color,omitempty"`
	Material      *string    `db:"material" json:"material,omitempty"`
	CreatedAt     time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt     *time.Time `db:"updated_at" json:"updatedAt,omitempty"`

	// Заполняется отдельным запросом, в таблице items не хранится.
	Images []ItemImage `db:"-" json:"images,omitempty"`
}

// ItemImage хранит метаданные загруженного изображения вещи.
type ItemImage struct {
	ID        uuid.UUID `db:"id" json:"id"`
	ItemID    uuid.UUID `db:"item_id" json:"itemId"`
	FileName  string    `db:"file_name" json:"fileName"`
	FilePath  string    `db:"file_path" json:"filePath"`
	FileSize  int64     `db:"file_size" json:"fileSize"`
	FileType  string    `db:"file_type" json:"fileType"`
	IsPrimary bool      `db:"is_primary" json:"isPrimary"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}
