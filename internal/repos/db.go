package repos

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}
	// Single local writer; also keeps PRAGMA foreign_keys applied to the
	// one live connection.
	db.SetMaxOpenConns(1)

	if err := ensureSchema(db); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	return db, nil
}

// ensureSchema provisions all tables and constraints. Safe to run on every
// start; foreign-key enforcement is switched on before anything else touches
// the connection.
func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Accounts
CREATE TABLE IF NOT EXISTS account(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  username TEXT NOT NULL UNIQUE,
  email TEXT NOT NULL UNIQUE,
  secret TEXT NOT NULL,
  average_earnings TEXT NOT NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);

-- Products
CREATE TABLE IF NOT EXISTS product(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL,
  unit_earnings TEXT NOT NULL,
  owner_id INTEGER NOT NULL REFERENCES account(id) ON DELETE CASCADE
);
CREATE INDEX IF NOT EXISTS idx_product_owner ON product(owner_id);

-- Sales. Rows outlive their product and account on purpose: history stays
-- queryable after a cascade, with the dangling reference nulled out.
CREATE TABLE IF NOT EXISTS sale(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  product_id INTEGER REFERENCES product(id) ON DELETE SET NULL,
  quantity INTEGER NOT NULL CHECK (quantity >= 1),
  zone TEXT NOT NULL,
  checkout_id TEXT,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  owner_id INTEGER REFERENCES account(id) ON DELETE SET NULL,
  latitude REAL,
  longitude REAL
);
CREATE INDEX IF NOT EXISTS idx_sale_zone  ON sale(zone);
CREATE INDEX IF NOT EXISTS idx_sale_owner ON sale(owner_id);

-- Resolved-zone cache, keyed by coordinates rounded to 4 decimals
CREATE TABLE IF NOT EXISTS zone_cache(
  latitude REAL NOT NULL,
  longitude REAL NOT NULL,
  zone TEXT NOT NULL,
  resolved_at TEXT DEFAULT CURRENT_TIMESTAMP,
  PRIMARY KEY(latitude, longitude)
);

-- Sessions (outer surface only)
CREATE TABLE IF NOT EXISTS sessions(
  id TEXT PRIMARY KEY,
  account_id INTEGER REFERENCES account(id) ON DELETE CASCADE,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  last_seen TEXT
);
`
	_, err := db.Exec(schema)
	return err
}
