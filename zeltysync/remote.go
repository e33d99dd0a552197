package zeltysync

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/restoflow/resto_backend/models"
	"github.com/shopspring/decimal"
)

// Response envelopes. Each list endpoint wraps its records in a single named
// array.
type restaurantListResponse struct {
	Restaurants []zeltyRestaurant `json:"restaurants"`
}

type dishListResponse struct {
	Dishes []zeltyDish `json:"dishes"`
}

type orderListResponse struct {
	Orders []zeltyOrder `json:"orders"`
}

type zeltyRestaurant struct {
	ID               uint            `json:"id"`
	Name             string          `json:"name"`
	PublicName       string          `json:"public_name"`
	Disable          *bool           `json:"disable"`
	Currency         string          `json:"currency"`
	CountryCode      string          `json:"country_code"`
	Locale           string          `json:"locale"`
	Timezone         string          `json:"timezone"`
	Email            string          `json:"email"`
	Phone            string          `json:"phone"`
	Address          string          `json:"address"`
	City             string          `json:"city"`
	Zip              string          `json:"zip"`
	Siret            string          `json:"siret"`
	Lat              json.Number     `json:"lat"`
	Lng              json.Number     `json:"lng"`
	OpeningHours     json.RawMessage `json:"opening_hours"`
	DeliveryHours    json.RawMessage `json:"delivery_hours"`
	TakeawayHours    json.RawMessage `json:"takeaway_hours"`
	CanDeliver       *bool           `json:"can_deliver"`
	CanTakeaway      *bool           `json:"can_takeaway"`
	CanEatIn         *bool           `json:"can_eat_in"`
	DeliveryMinPrice json.Number     `json:"delivery_min_price"`
	DeliveryFees     json.Number     `json:"delivery_fees"`
	OrderDelay       int             `json:"order_delay"`
	Comment          string          `json:"comment"`
}

type zeltyDish struct {
	ID            uint            `json:"id"`
	IDRestaurant  uint            `json:"id_restaurant"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Ref           string          `json:"ref"`
	Disable       *bool           `json:"disable"`
	Price         json.Number     `json:"price"`
	PriceTakeaway json.Number     `json:"price_takeaway"`
	PriceDelivery json.Number     `json:"price_delivery"`
	TaxRate       json.Number     `json:"tax_rate"`
	TaxRef        string          `json:"tax_ref"`
	Tags          json.RawMessage `json:"tags"`
	Options       json.RawMessage `json:"options"`
}

type zeltyOrder struct {
	ID           uint             `json:"id"`
	UUID         string           `json:"uuid"`
	IDRestaurant uint             `json:"id_restaurant"`
	Ref          string           `json:"ref"`
	Status       string           `json:"status"`
	Mode         string           `json:"mode"`
	Source       string           `json:"source"`
	Covers       int              `json:"covers"`
	TableName    string           `json:"table_name"`
	Price        json.Number      `json:"price"`
	Discount     json.Number      `json:"discount"`
	Tax          json.Number      `json:"tax"`
	LeftToPay    json.Number      `json:"left_to_pay"`
	Comment      string           `json:"comment"`
	CreatedAt    string           `json:"created_at"`
	ClosedAt     string           `json:"closed_at"`
	DueDate      string           `json:"due_date"`
	Items        []zeltyOrderItem `json:"items"`
}

type zeltyOrderItem struct {
	ID        uint            `json:"id"`
	IDDish    string          `json:"id_dish"`
	Name      string          `json:"name"`
	Quantity  json.Number     `json:"quantity"`
	UnitPrice json.Number     `json:"unit_price"`
	Price     json.Number     `json:"price"`
	Discount  json.Number     `json:"discount"`
	TaxRate   json.Number     `json:"tax_rate"`
	Modifiers json.RawMessage `json:"modifiers"`
}

func mapRemoteRestaurant(rr zeltyRestaurant, seenAt time.Time) *models.Restaurant {
	return &models.Restaurant{
		RemoteId:          rr.ID,
		Disabled:          boolOrFalse(rr.Disable),
		Name:              strings.TrimSpace(rr.Name),
		PublicName:        strings.TrimSpace(rr.PublicName),
		Currency:          rr.Currency,
		CountryCode:       rr.CountryCode,
		Locale:            rr.Locale,
		Timezone:          rr.Timezone,
		Email:             strings.TrimSpace(rr.Email),
		Phone:             strings.TrimSpace(rr.Phone),
		Address:           strings.TrimSpace(rr.Address),
		City:              strings.TrimSpace(rr.City),
		Zip:               strings.TrimSpace(rr.Zip),
		Siret:             strings.TrimSpace(rr.Siret),
		Latitude:          floatFromNumber(rr.Lat),
		Longitude:         floatFromNumber(rr.Lng),
		OpeningHours:      rawOrDefault(rr.OpeningHours, "{}"),
		DeliveryHours:     rawOrDefault(rr.DeliveryHours, "{}"),
		TakeawayHours:     rawOrDefault(rr.TakeawayHours, "{}"),
		CanDeliver:        boolOrFalse(rr.CanDeliver),
		CanTakeaway:       boolOrFalse(rr.CanTakeaway),
		CanEatIn:          boolOrFalse(rr.CanEatIn),
		DeliveryMinPrice:  decimalFromNumber(rr.DeliveryMinPrice),
		DeliveryFees:      decimalFromNumber(rr.DeliveryFees),
		OrderDelayMinutes: rr.OrderDelay,
		Comment:           rr.Comment,
		LastSeenAt:        &seenAt,
	}
}

func mapRemoteDish(rd zeltyDish, seenAt time.Time) *models.Dish {
	return &models.Dish{
		RemoteId:           rd.ID,
		RestaurantRemoteId: rd.IDRestaurant,
		Disabled:           boolOrFalse(rd.Disable),
		Name:               strings.TrimSpace(rd.Name),
		Description:        rd.Description,
		Ref:                strings.TrimSpace(rd.Ref),
		Price:              decimalFromNumber(rd.Price),
		PriceTakeaway:      decimalPtrFromNumber(rd.PriceTakeaway),
		PriceDelivery:      decimalPtrFromNumber(rd.PriceDelivery),
		TaxRate:            decimalFromNumber(rd.TaxRate),
		TaxRef:             rd.TaxRef,
		Tags:               rawOrDefault(rd.Tags, "[]"),
		Options:            rawOrDefault(rd.Options, "[]"),
		LastSeenAt:         &seenAt,
	}
}

func mapRemoteOrder(ro zeltyOrder, seenAt time.Time) *models.Order {
	return &models.Order{
		RemoteId:           ro.ID,
		RemoteUUID:         strings.TrimSpace(ro.UUID),
		RestaurantRemoteId: ro.IDRestaurant,
		Reference:          strings.TrimSpace(ro.Ref),
		Status:             ro.Status,
		Mode:               ro.Mode,
		Source:             ro.Source,
		Covers:             ro.Covers,
		TableName:          strings.TrimSpace(ro.TableName),
		TotalPrice:         decimalFromNumber(ro.Price),
		TotalDiscount:      decimalFromNumber(ro.Discount),
		TotalTax:           decimalFromNumber(ro.Tax),
		LeftToPay:          decimalFromNumber(ro.LeftToPay),
		Comment:            ro.Comment,
		RemoteCreatedAt:    parseTimeOrZero(ro.CreatedAt),
		ClosedAt:           parseTimePtr(ro.ClosedAt),
		DueAt:              parseTimePtr(ro.DueDate),
		LastSeenAt:         &seenAt,
	}
}

// mapRemoteOrderItem returns an error when the item's dish reference cannot
// be parsed: the remote sends id_dish as a string field.
func mapRemoteOrderItem(ri zeltyOrderItem, orderRemoteId uint, seenAt time.Time) (*models.OrderItem, error) {
	dishId, err := strconv.ParseUint(strings.TrimSpace(ri.IDDish), 10, 64)
	if err != nil {
		return nil, err
	}
	return &models.OrderItem{
		RemoteId:      ri.ID,
		OrderRemoteId: orderRemoteId,
		DishRemoteId:  uint(dishId),
		Name:          strings.TrimSpace(ri.Name),
		Quantity:      quantityOrDefault(ri.Quantity),
		UnitPrice:     decimalFromNumber(ri.UnitPrice),
		TotalPrice:    decimalFromNumber(ri.Price),
		Discount:      decimalFromNumber(ri.Discount),
		TaxRate:       decimalFromNumber(ri.TaxRate),
		Modifiers:     rawOrDefault(ri.Modifiers, "[]"),
		LastSeenAt:    &seenAt,
	}, nil
}

func boolOrFalse(v *bool) bool {
	return v != nil && *v
}

func rawOrDefault(raw json.RawMessage, def string) []byte {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return []byte(def)
	}
	return []byte(raw)
}

func decimalFromNumber(num json.Number) decimal.Decimal {
	if num.String() == "" {
		return decimal.Zero
	}
	if d, err := decimal.NewFromString(num.String()); err == nil {
		return d
	}
	return decimal.Zero
}

func decimalPtrFromNumber(num json.Number) *decimal.Decimal {
	if num.String() == "" {
		return nil
	}
	d, err := decimal.NewFromString(num.String())
	if err != nil {
		return nil
	}
	return &d
}

// quantityOrDefault defaults to 1 only when the field is absent. Explicit
// values pass through unchanged, zero and negative included (voided or
// refunded lines).
func quantityOrDefault(num json.Number) decimal.Decimal {
	if num.String() == "" {
		return decimal.NewFromInt(1)
	}
	return decimalFromNumber(num)
}

func floatFromNumber(num json.Number) float64 {
	if num.String() == "" {
		return 0
	}
	if f, err := num.Float64(); err == nil {
		return f
	}
	return 0
}

// invalidOrderTimestamps lists the order's timestamp fields whose raw value
// is present but not RFC3339. The mapping stores them as zero values; the
// caller surfaces them so bad remote data stays visible.
func invalidOrderTimestamps(ro zeltyOrder) []string {
	var bad []string
	for _, field := range []struct {
		name  string
		value string
	}{
		{"created_at", ro.CreatedAt},
		{"closed_at", ro.ClosedAt},
		{"due_date", ro.DueDate},
	} {
		raw := strings.TrimSpace(field.value)
		if raw == "" {
			continue
		}
		if _, err := time.Parse(time.RFC3339, raw); err != nil {
			bad = append(bad, field.name+"="+raw)
		}
	}
	return bad
}

func parseTimeOrZero(value string) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t
	}
	return time.Time{}
}

func parseTimePtr(value string) *time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return &t
	}
	return nil
}
