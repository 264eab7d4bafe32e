package repos

import (
	"veneya/internal/domain"

	"github.com/jmoiron/sqlx"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

// Create inserts a product for the owning account and returns its id.
func (r *ProductRepo) Create(name, unitEarnings string, ownerID int64) (int64, error) {
	var id int64
	err := RunTx(r.db, func(tx *sqlx.Tx) error {
		res, err := tx.Exec(`
			INSERT INTO product(name, unit_earnings, owner_id)
			VALUES(?, ?, ?)
		`, name, unitEarnings, ownerID)
		if err != nil {
			return mapSQLErr(err)
		}
		id, err = res.LastInsertId()
		return err
	})
	return id, err
}

func (r *ProductRepo) ListByOwner(ownerID int64) ([]domain.Product, error) {
	var out []domain.Product
	err := r.db.Select(&out, `
		SELECT id, name, unit_earnings, owner_id
		FROM product
		WHERE owner_id = ?
		ORDER BY name
	`, ownerID)
	return out, err
}
