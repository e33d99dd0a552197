package zeltysync

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sampleRestaurantJSON = []byte(`{
	"id": 42,
	"name": "Chez Lili",
	"public_name": "Chez Lili - Bastille",
	"disable": true,
	"currency": "EUR",
	"country_code": "FR",
	"locale": "fr_FR",
	"timezone": "Europe/Paris",
	"email": "contact@chezlili.fr",
	"phone": "+33140000000",
	"address": "12 rue de la Roquette",
	"city": "Paris",
	"zip": "75011",
	"siret": "84412345600017",
	"lat": 48.853,
	"lng": 2.369,
	"opening_hours": {"mon": [["11:30", "14:30"]]},
	"can_deliver": true,
	"can_takeaway": true,
	"delivery_min_price": 15,
	"delivery_fees": 2.5,
	"order_delay": 20,
	"comment": "closed in August"
}`)

func TestMapRemoteRestaurant_FieldRenames(t *testing.T) {
	var rr zeltyRestaurant
	require.NoError(t, json.Unmarshal(sampleRestaurantJSON, &rr))

	seenAt := time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)
	row := mapRemoteRestaurant(rr, seenAt)

	assert.Equal(t, uint(42), row.RemoteId)
	assert.True(t, row.Disabled)
	assert.Equal(t, "Chez Lili", row.Name)
	assert.Equal(t, "Chez Lili - Bastille", row.PublicName)
	assert.Equal(t, "EUR", row.Currency)
	assert.Equal(t, "FR", row.CountryCode)
	assert.Equal(t, "fr_FR", row.Locale)
	assert.Equal(t, "Europe/Paris", row.Timezone)
	assert.InDelta(t, 48.853, row.Latitude, 1e-9)
	assert.InDelta(t, 2.369, row.Longitude, 1e-9)
	assert.JSONEq(t, `{"mon": [["11:30", "14:30"]]}`, string(row.OpeningHours))
	assert.True(t, row.CanDeliver)
	assert.True(t, row.CanTakeaway)
	assert.False(t, row.CanEatIn)
	assert.Equal(t, "15", row.DeliveryMinPrice.String())
	assert.Equal(t, "2.5", row.DeliveryFees.String())
	assert.Equal(t, 20, row.OrderDelayMinutes)
	require.NotNil(t, row.LastSeenAt)
	assert.Equal(t, seenAt, *row.LastSeenAt)
}

func TestMapRemoteRestaurant_AbsentOptionalFieldDefaults(t *testing.T) {
	var rr zeltyRestaurant
	require.NoError(t, json.Unmarshal([]byte(`{"id": 7, "name": "Solo"}`), &rr))

	row := mapRemoteRestaurant(rr, time.Now())

	assert.False(t, row.Disabled, "missing disable must default to false")
	assert.False(t, row.CanDeliver)
	assert.JSONEq(t, `{}`, string(row.OpeningHours))
	assert.JSONEq(t, `{}`, string(row.DeliveryHours))
	assert.True(t, row.DeliveryMinPrice.IsZero())
}

func TestMapRemoteDish(t *testing.T) {
	var rd zeltyDish
	require.NoError(t, json.Unmarshal([]byte(`{
		"id": 301,
		"id_restaurant": 42,
		"name": "Burrata",
		"ref": "ENT-01",
		"price": 9.5,
		"price_takeaway": 8.9,
		"tax_rate": 10,
		"tags": ["starter", "veggie"]
	}`), &rd))

	row := mapRemoteDish(rd, time.Now())

	assert.Equal(t, uint(301), row.RemoteId)
	assert.Equal(t, uint(42), row.RestaurantRemoteId)
	assert.False(t, row.Disabled)
	assert.Equal(t, "9.5", row.Price.String())
	require.NotNil(t, row.PriceTakeaway)
	assert.Equal(t, "8.9", row.PriceTakeaway.String())
	assert.Nil(t, row.PriceDelivery, "absent price variant stays nil")
	assert.Equal(t, "10", row.TaxRate.String())
	assert.JSONEq(t, `["starter", "veggie"]`, string(row.Tags))
}

func TestMapRemoteDish_MissingTagsDefaultToEmptyList(t *testing.T) {
	var rd zeltyDish
	require.NoError(t, json.Unmarshal([]byte(`{"id": 1, "id_restaurant": 2, "name": "Plain"}`), &rd))

	row := mapRemoteDish(rd, time.Now())
	assert.JSONEq(t, `[]`, string(row.Tags))
	assert.JSONEq(t, `[]`, string(row.Options))
}

func TestMapRemoteOrder(t *testing.T) {
	var ro zeltyOrder
	require.NoError(t, json.Unmarshal([]byte(`{
		"id": 9001,
		"uuid": "8c7e6d5c-1111-2222-3333-444455556666",
		"id_restaurant": 42,
		"ref": "T12-45",
		"status": "closed",
		"mode": "delivery",
		"source": "web",
		"covers": 2,
		"table_name": "12",
		"price": 47.8,
		"discount": 5,
		"tax": 4.35,
		"left_to_pay": 0,
		"created_at": "2025-03-14T19:05:00+01:00",
		"closed_at": "2025-03-14T21:10:00+01:00"
	}`), &ro))

	row := mapRemoteOrder(ro, time.Now())

	assert.Equal(t, uint(9001), row.RemoteId)
	assert.Equal(t, "8c7e6d5c-1111-2222-3333-444455556666", row.RemoteUUID)
	assert.Equal(t, uint(42), row.RestaurantRemoteId)
	assert.Equal(t, "closed", row.Status)
	assert.Equal(t, "delivery", row.Mode)
	assert.Equal(t, 2, row.Covers)
	assert.Equal(t, "47.8", row.TotalPrice.String())
	assert.Equal(t, "5", row.TotalDiscount.String())
	assert.False(t, row.RemoteCreatedAt.IsZero())
	require.NotNil(t, row.ClosedAt)
	assert.Nil(t, row.DueAt, "absent due_date stays nil")
}

func TestMapRemoteOrderItem_ParsesDishIdFromString(t *testing.T) {
	item := zeltyOrderItem{
		ID:       501,
		IDDish:   "301",
		Name:     "Burrata",
		Quantity: json.Number("2"),
	}

	row, err := mapRemoteOrderItem(item, 9001, time.Now())
	require.NoError(t, err)
	assert.Equal(t, uint(501), row.RemoteId)
	assert.Equal(t, uint(9001), row.OrderRemoteId)
	assert.Equal(t, uint(301), row.DishRemoteId)
	assert.Equal(t, "2", row.Quantity.String())
	assert.JSONEq(t, `[]`, string(row.Modifiers))
}

func TestMapRemoteOrderItem_ExplicitQuantityKeptVerbatim(t *testing.T) {
	// Zero and negative quantities are real data (voided or refunded lines);
	// only an absent field defaults to 1.
	cases := []struct {
		quantity json.Number
		want     string
	}{
		{json.Number("0"), "0"},
		{json.Number("-1"), "-1"},
		{json.Number("2.5"), "2.5"},
		{json.Number(""), "1"},
	}
	for _, tc := range cases {
		item := zeltyOrderItem{ID: 600, IDDish: "301", Quantity: tc.quantity}
		row, err := mapRemoteOrderItem(item, 9001, time.Now())
		require.NoError(t, err)
		assert.Equal(t, tc.want, row.Quantity.String(), "quantity %q", tc.quantity)
	}
}

func TestMapRemoteOrderItem_BadDishIdFails(t *testing.T) {
	item := zeltyOrderItem{ID: 502, IDDish: "not-a-number"}

	_, err := mapRemoteOrderItem(item, 9001, time.Now())
	assert.Error(t, err)
}
