package repos

import (
	"database/sql"
	"errors"

	"veneya/internal/domain"

	"github.com/jmoiron/sqlx"
)

type SaleRepo struct{ db *sqlx.DB }

func NewSaleRepo(db *sqlx.DB) *SaleRepo { return &SaleRepo{db: db} }

// Record inserts one sale row and returns its generated id. Insert and id
// read happen inside one transaction so no half-written sale is ever
// visible.
func (r *SaleRepo) Record(productID int64, quantity int, zone, checkoutID string, ownerID int64, lat, lon float64) (int64, error) {
	var id int64
	err := RunTx(r.db, func(tx *sqlx.Tx) error {
		res, err := tx.Exec(`
			INSERT INTO sale(product_id, quantity, zone, checkout_id, owner_id, latitude, longitude)
			VALUES(?, ?, ?, ?, ?, ?, ?)
		`, productID, quantity, zone, checkoutID, ownerID, lat, lon)
		if err != nil {
			return mapSQLErr(err)
		}
		id, err = res.LastInsertId()
		return err
	})
	return id, err
}

func (r *SaleRepo) ByID(id int64) (*domain.Sale, error) {
	var s domain.Sale
	err := r.db.Get(&s, `
		SELECT id, product_id, quantity, zone, COALESCE(checkout_id,'') AS checkout_id,
		       created_at, owner_id, latitude, longitude
		FROM sale WHERE id = ?
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SaleRepo) ListByCheckout(checkoutID string) ([]domain.Sale, error) {
	var out []domain.Sale
	err := r.db.Select(&out, `
		SELECT id, product_id, quantity, zone, COALESCE(checkout_id,'') AS checkout_id,
		       created_at, owner_id, latitude, longitude
		FROM sale
		WHERE checkout_id = ?
		ORDER BY id
	`, checkoutID)
	return out, err
}

func (r *SaleRepo) ListByOwner(ownerID int64) ([]domain.Sale, error) {
	var out []domain.Sale
	err := r.db.Select(&out, `
		SELECT id, product_id, quantity, zone, COALESCE(checkout_id,'') AS checkout_id,
		       created_at, owner_id, latitude, longitude
		FROM sale
		WHERE owner_id = ?
		ORDER BY datetime(created_at) DESC, id DESC
	`, ownerID)
	return out, err
}
