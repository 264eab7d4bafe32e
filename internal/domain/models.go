package domain

import "database/sql"

type Product struct {
	ID           int64  `db:"id"`
	Name         string `db:"name"`
	UnitEarnings string `db:"unit_earnings"` // text-formatted decimal, cast at query time
	OwnerID      int64  `db:"owner_id"`
}

type Sale struct {
	ID         int64         `db:"id"`
	ProductID  sql.NullInt64 `db:"product_id"` // NULL once the product is gone
	Quantity   int           `db:"quantity"`
	Zone       string        `db:"zone"`
	CheckoutID string        `db:"checkout_id"`
	CreatedAt  string        `db:"created_at"`
	OwnerID    sql.NullInt64 `db:"owner_id"`
	Latitude   float64       `db:"latitude"`
	Longitude  float64       `db:"longitude"`
}
