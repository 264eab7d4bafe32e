package domain

type Account struct {
	ID       int64  `db:"id"`
	Username string `db:"username"`
	Email    string `db:"email"`
	Secret   string `db:"secret"`
	// AverageEarnings is stored as the user typed it; the recovery flow
	// compares it verbatim against what the user re-enters.
	AverageEarnings string `db:"average_earnings"`
	CreatedAt       string `db:"created_at"`
}
