package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Restaurant mirrors one Zelty restaurant. Rows are owned exclusively by the
// restaurant synchronizer: every sync fully replaces the mutable fields of
// the row keyed by RemoteId. Remote deletions are never propagated.
type Restaurant struct {
	ID       uint `gorm:"primary_key" json:"id"`
	RemoteId uint `gorm:"uniqueIndex;not null" json:"remote_id"`

	Disabled   bool   `gorm:"not null;default:false" json:"disabled"`
	Name       string `gorm:"size:255;not null" json:"name"`
	PublicName string `gorm:"size:255" json:"public_name"`

	Currency    string `gorm:"size:8" json:"currency"`
	CountryCode string `gorm:"size:8" json:"country_code"`
	Locale      string `gorm:"size:16" json:"locale"`
	Timezone    string `gorm:"size:64" json:"timezone"`

	Email   string `gorm:"size:255" json:"email"`
	Phone   string `gorm:"size:32" json:"phone"`
	Address string `gorm:"size:255" json:"address"`
	City    string `gorm:"size:128" json:"city"`
	Zip     string `gorm:"size:16" json:"zip"`
	Siret   string `gorm:"size:32" json:"siret"`

	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`

	// Operating-hours structures are opaque remote documents; they are stored
	// verbatim and never interpreted by this service.
	OpeningHours  []byte `gorm:"type:json" json:"opening_hours"`
	DeliveryHours []byte `gorm:"type:json" json:"delivery_hours"`
	TakeawayHours []byte `gorm:"type:json" json:"takeaway_hours"`

	CanDeliver  bool `gorm:"not null;default:false" json:"can_deliver"`
	CanTakeaway bool `gorm:"not null;default:false" json:"can_takeaway"`
	CanEatIn    bool `gorm:"not null;default:false" json:"can_eat_in"`

	DeliveryMinPrice  decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"delivery_min_price"`
	DeliveryFees      decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"delivery_fees"`
	OrderDelayMinutes int             `gorm:"default:0" json:"order_delay_minutes"`

	Comment string `gorm:"type:text" json:"comment"`

	LastSeenAt *time.Time `json:"last_seen_at"`
	CreatedAt  time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}
