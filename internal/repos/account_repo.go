package repos

import (
	"database/sql"
	"errors"

	"veneya/internal/domain"

	"github.com/jmoiron/sqlx"
)

type AccountRepo struct{ db *sqlx.DB }

func NewAccountRepo(db *sqlx.DB) *AccountRepo { return &AccountRepo{db: db} }

// Create inserts a new account and returns its generated id.
// Returns ErrDuplicate when the username or email is already taken.
func (r *AccountRepo) Create(username, email, secret, averageEarnings string) (int64, error) {
	var id int64
	err := RunTx(r.db, func(tx *sqlx.Tx) error {
		res, err := tx.Exec(`
			INSERT INTO account(username, email, secret, average_earnings)
			VALUES(?, ?, ?, ?)
		`, username, email, secret, averageEarnings)
		if err != nil {
			return mapSQLErr(err)
		}
		id, err = res.LastInsertId()
		return err
	})
	return id, err
}

// VerifyCredentials returns the account iff username and secret match
// exactly. A miss is (nil, nil): a lookup with no row, not a failure.
func (r *AccountRepo) VerifyCredentials(username, secret string) (*domain.Account, error) {
	var a domain.Account
	err := r.db.Get(&a, `
		SELECT id, username, email, secret, average_earnings, created_at
		FROM account WHERE username = ? AND secret = ?
	`, username, secret)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AccountRepo) ByID(id int64) (*domain.Account, error) {
	var a domain.Account
	err := r.db.Get(&a, `
		SELECT id, username, email, secret, average_earnings, created_at
		FROM account WHERE id = ?
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// RecoveryInfo is what the password-reset flow compares the user's
// answers against.
type RecoveryInfo struct {
	Email           string `db:"email"`
	AverageEarnings string `db:"average_earnings"`
}

func (r *AccountRepo) LookupForRecovery(username string) (*RecoveryInfo, error) {
	var info RecoveryInfo
	err := r.db.Get(&info, `SELECT email, average_earnings FROM account WHERE username = ?`, username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &info, nil
}

// ResetSecret unconditionally overwrites the stored secret. Callers must
// have verified identity via LookupForRecovery first.
func (r *AccountRepo) ResetSecret(username, newSecret string) error {
	_, err := r.db.Exec(`UPDATE account SET secret = ? WHERE username = ?`, newSecret, username)
	return err
}

// Delete removes the account. Owned products cascade; sale rows survive
// with their references nulled out.
func (r *AccountRepo) Delete(accountID int64) error {
	return RunTx(r.db, func(tx *sqlx.Tx) error {
		_, err := tx.Exec(`DELETE FROM account WHERE id = ?`, accountID)
		return err
	})
}

// ---------- Sessions (outer surface) ----------

func (r *AccountRepo) BindSession(sid string, accountID int64) error {
	_, err := r.db.Exec(`
		INSERT INTO sessions(id, account_id, last_seen)
		VALUES(?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET account_id = excluded.account_id, last_seen = CURRENT_TIMESTAMP
	`, sid, accountID)
	return err
}

func (r *AccountRepo) SessionAccount(sid string) (*domain.Account, error) {
	var a domain.Account
	err := r.db.Get(&a, `
		SELECT a.id, a.username, a.email, a.secret, a.average_earnings, a.created_at
		FROM sessions s
		JOIN account a ON a.id = s.account_id
		WHERE s.id = ?
	`, sid)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AccountRepo) UnbindSession(sid string) error {
	_, err := r.db.Exec(`UPDATE sessions SET account_id = NULL, last_seen = CURRENT_TIMESTAMP WHERE id = ?`, sid)
	return err
}
