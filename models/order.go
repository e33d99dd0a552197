package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order mirrors one Zelty order header. Keyed by both the remote numeric id
// and the remote UUID; both are unique. Line items live in OrderItem and are
// synced immediately after their parent order's upsert.
type Order struct {
	ID         uint   `gorm:"primary_key" json:"id"`
	RemoteId   uint   `gorm:"uniqueIndex;not null" json:"remote_id"`
	RemoteUUID string `gorm:"uniqueIndex;size:64;not null" json:"remote_uuid"`

	RestaurantRemoteId uint       `gorm:"index;not null" json:"restaurant_remote_id"`
	Restaurant         Restaurant `gorm:"foreignKey:RestaurantRemoteId;references:RemoteId" json:"-"`

	Reference string `gorm:"size:100" json:"reference"`
	Status    string `gorm:"size:32" json:"status"`

	// Fulfillment mode: delivery, takeaway or on-site.
	Mode   string `gorm:"size:32" json:"mode"`
	Source string `gorm:"size:64" json:"source"`

	Covers    int    `gorm:"default:0" json:"covers"`
	TableName string `gorm:"size:64" json:"table_name"`

	TotalPrice    decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"total_price"`
	TotalDiscount decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"total_discount"`
	TotalTax      decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"total_tax"`
	LeftToPay     decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"left_to_pay"`

	Comment string `gorm:"type:text" json:"comment"`

	RemoteCreatedAt time.Time  `json:"remote_created_at"`
	ClosedAt        *time.Time `json:"closed_at"`
	DueAt           *time.Time `json:"due_at"`

	LastSeenAt *time.Time `json:"last_seen_at"`
	CreatedAt  time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}
