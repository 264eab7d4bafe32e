package repos

import "github.com/jmoiron/sqlx"

type ReportRepo struct{ db *sqlx.DB }

func NewReportRepo(db *sqlx.DB) *ReportRepo { return &ReportRepo{db: db} }

// Earnings are computed from the product's current unit_earnings at query
// time, not snapshotted at sale time. A later price change retroactively
// changes historical totals.
type ZoneProductEarnings struct {
	ProductName string  `db:"product_name"`
	QuantitySum int     `db:"quantity_sum"`
	EarningsSum float64 `db:"earnings_sum"`
}

func (r *ReportRepo) EarningsByZoneAndProduct(ownerID int64, zone string) ([]ZoneProductEarnings, error) {
	var out []ZoneProductEarnings
	err := r.db.Select(&out, `
		SELECT p.name AS product_name,
		       SUM(s.quantity) AS quantity_sum,
		       SUM(s.quantity * CAST(p.unit_earnings AS REAL)) AS earnings_sum
		FROM sale s
		JOIN product p ON p.id = s.product_id
		WHERE s.zone = ? AND s.owner_id = ?
		GROUP BY p.id, p.name
		ORDER BY p.name
	`, zone, ownerID)
	return out, err
}

func (r *ReportRepo) TotalEarnings(ownerID int64, zone string) (float64, error) {
	var total float64
	err := r.db.Get(&total, `
		SELECT COALESCE(SUM(s.quantity * CAST(p.unit_earnings AS REAL)), 0)
		FROM sale s
		JOIN product p ON p.id = s.product_id
		WHERE s.zone = ? AND s.owner_id = ?
	`, zone, ownerID)
	return total, err
}

// SaleBreakdownRow is one sale row with its raw position, for the per-sale
// map view.
type SaleBreakdownRow struct {
	ProductName string  `db:"product_name"`
	Quantity    int     `db:"quantity"`
	Latitude    float64 `db:"latitude"`
	Longitude   float64 `db:"longitude"`
}

func (r *ReportRepo) SalesBreakdown(ownerID int64, zone string) ([]SaleBreakdownRow, error) {
	var out []SaleBreakdownRow
	err := r.db.Select(&out, `
		SELECT p.name AS product_name, s.quantity, s.latitude, s.longitude
		FROM sale s
		JOIN product p ON p.id = s.product_id
		WHERE s.zone = ? AND s.owner_id = ?
		ORDER BY datetime(s.created_at), s.id
	`, zone, ownerID)
	return out, err
}

// ZoneTotal ranks a zone by its summed earnings, for the best/worst zone
// listing on the report screen.
type ZoneTotal struct {
	Zone        string  `db:"zone"`
	SaleCount   int     `db:"sale_count"`
	EarningsSum float64 `db:"earnings_sum"`
}

func (r *ReportRepo) ZoneTotals(ownerID int64) ([]ZoneTotal, error) {
	var out []ZoneTotal
	err := r.db.Select(&out, `
		SELECT s.zone,
		       COUNT(*) AS sale_count,
		       SUM(s.quantity * CAST(p.unit_earnings AS REAL)) AS earnings_sum
		FROM sale s
		JOIN product p ON p.id = s.product_id
		WHERE s.owner_id = ?
		GROUP BY s.zone
		ORDER BY earnings_sum DESC
	`, ownerID)
	return out, err
}
