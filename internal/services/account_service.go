package services

import (
	"errors"
	"math/rand"

	"veneya/internal/domain"
	"veneya/internal/repos"

	"go.uber.org/zap"
)

var (
	ErrBadCreds = errors.New("invalid username or password")
	// ErrRecoveryMismatch covers both an unknown username and wrong
	// verification answers, so the flow does not leak which one it was.
	ErrRecoveryMismatch = errors.New("recovery details do not match our records")
)

type AccountService struct {
	Accounts *repos.AccountRepo
	Log      *zap.Logger
}

func NewAccountService(accounts *repos.AccountRepo, logger *zap.Logger) *AccountService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AccountService{Accounts: accounts, Log: logger}
}

// Register creates a new account. repos.ErrDuplicate surfaces when the
// username or email is taken.
func (s *AccountService) Register(username, email, secret, averageEarnings string) (int64, error) {
	id, err := s.Accounts.Create(username, email, secret, averageEarnings)
	if err != nil {
		return 0, err
	}
	s.Log.Info("account registered", zap.Int64("account_id", id), zap.String("username", username))
	return id, nil
}

func (s *AccountService) Login(sid, username, secret string) (*domain.Account, error) {
	a, err := s.Accounts.VerifyCredentials(username, secret)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, ErrBadCreds
	}
	if err := s.Accounts.BindSession(sid, a.ID); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *AccountService) Logout(sid string) error {
	return s.Accounts.UnbindSession(sid)
}

func (s *AccountService) CurrentAccount(sid string) (*domain.Account, error) {
	return s.Accounts.SessionAccount(sid)
}

// RecoverSecret verifies the user's email and declared average earnings
// against the stored values, then overwrites the secret with a generated
// one and hands it back for display. Both values must match verbatim.
func (s *AccountService) RecoverSecret(username, email, averageEarnings string) (string, error) {
	info, err := s.Accounts.LookupForRecovery(username)
	if err != nil {
		return "", err
	}
	if info == nil || info.Email != email || info.AverageEarnings != averageEarnings {
		return "", ErrRecoveryMismatch
	}

	newSecret := randomSecret(8)
	if err := s.Accounts.ResetSecret(username, newSecret); err != nil {
		return "", err
	}
	s.Log.Info("secret reset via recovery", zap.String("username", username))
	return newSecret, nil
}

// Delete removes the account and, by cascade, its products. Sale history
// stays behind with nulled references.
func (s *AccountService) Delete(accountID int64) error {
	if err := s.Accounts.Delete(accountID); err != nil {
		return err
	}
	s.Log.Info("account deleted", zap.Int64("account_id", accountID))
	return nil
}

const secretAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

func randomSecret(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = secretAlphabet[rand.Intn(len(secretAlphabet))]
	}
	return string(b)
}
