package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Dish mirrors one Zelty catalog dish. RestaurantRemoteId references
// restaurants.remote_id, which is why restaurants must be synced first.
type Dish struct {
	ID       uint `gorm:"primary_key" json:"id"`
	RemoteId uint `gorm:"uniqueIndex;not null" json:"remote_id"`

	RestaurantRemoteId uint       `gorm:"index;not null" json:"restaurant_remote_id"`
	Restaurant         Restaurant `gorm:"foreignKey:RestaurantRemoteId;references:RemoteId" json:"-"`

	Disabled    bool   `gorm:"not null;default:false" json:"disabled"`
	Name        string `gorm:"size:255;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	Ref         string `gorm:"size:100" json:"ref"`

	Price         decimal.Decimal  `gorm:"type:decimal(20,4);default:0" json:"price"`
	PriceTakeaway *decimal.Decimal `gorm:"type:decimal(20,4);default:null" json:"price_takeaway"`
	PriceDelivery *decimal.Decimal `gorm:"type:decimal(20,4);default:null" json:"price_delivery"`

	TaxRate decimal.Decimal `gorm:"type:decimal(8,4);default:0" json:"tax_rate"`
	TaxRef  string          `gorm:"size:32" json:"tax_ref"`

	// Free-form remote documents, stored verbatim.
	Tags    []byte `gorm:"type:json" json:"tags"`
	Options []byte `gorm:"type:json" json:"options"`

	LastSeenAt *time.Time `json:"last_seen_at"`
	CreatedAt  time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}
