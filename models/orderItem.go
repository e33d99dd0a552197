package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItem mirrors one line of a Zelty order, synced as a nested expansion
// of its parent order's page. A single item's upsert failure is isolated: it
// is recorded and skipped without aborting the parent order or the page.
type OrderItem struct {
	ID       uint `gorm:"primary_key" json:"id"`
	RemoteId uint `gorm:"uniqueIndex;not null" json:"remote_id"`

	OrderRemoteId uint  `gorm:"index;not null" json:"order_remote_id"`
	Order         Order `gorm:"foreignKey:OrderRemoteId;references:RemoteId" json:"-"`

	DishRemoteId uint `gorm:"index;not null" json:"dish_remote_id"`
	Dish         Dish `gorm:"foreignKey:DishRemoteId;references:RemoteId" json:"-"`

	Name     string          `gorm:"size:255" json:"name"`
	Quantity decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"quantity"`

	UnitPrice  decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"unit_price"`
	TotalPrice decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"total_price"`
	Discount   decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"discount"`
	TaxRate    decimal.Decimal `gorm:"type:decimal(8,4);default:0" json:"tax_rate"`

	// Free-form modifiers document, stored verbatim.
	Modifiers []byte `gorm:"type:json" json:"modifiers"`

	LastSeenAt *time.Time `json:"last_seen_at"`
	CreatedAt  time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}
