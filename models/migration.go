package models

import (
	"log"

	"github.com/restoflow/resto_backend/config"
)

func MigrateTable() {
	db := config.GetDB()

	// Restaurants first: dishes and orders reference restaurants.remote_id,
	// order items reference both orders.remote_id and dishes.remote_id.
	err := db.AutoMigrate(
		&Restaurant{},
		&Dish{},
		&Order{}, &OrderItem{},
		&SyncRun{}, &SyncRecordError{},
	)
	if err != nil {
		log.Fatal(err)
	}
}
