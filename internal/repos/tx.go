package repos

import "github.com/jmoiron/sqlx"

// TxError reports which phase of a transaction run failed. A "statement"
// failure means the body errored and everything was rolled back; a "commit"
// failure means the body ran but the store refused the commit.
type TxError struct {
	Phase string // "begin" | "statement" | "commit"
	Err   error
}

func (e *TxError) Error() string { return "tx " + e.Phase + ": " + e.Err.Error() }
func (e *TxError) Unwrap() error { return e.Err }

// RunTx executes fn inside one transaction: all statements commit together
// or none do. Rollback is deferred so every exit path, including panics in
// fn, releases the transaction.
func RunTx(db *sqlx.DB, fn func(tx *sqlx.Tx) error) error {
	tx, err := db.Beginx()
	if err != nil {
		return &TxError{Phase: "begin", Err: err}
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(tx); err != nil {
		return &TxError{Phase: "statement", Err: err}
	}
	if err := tx.Commit(); err != nil {
		return &TxError{Phase: "commit", Err: err}
	}
	return nil
}
