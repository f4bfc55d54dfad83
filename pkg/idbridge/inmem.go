package idbridge

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Account is the in-memory representation of an external identity account.
type Account struct {
	Ref    AccountRef
	Name   string
	Login  string
	Phone  string
	Active bool
	Photo  []byte
	Secret string
	Role   string
}

// InMemIdentityBridge implements IdentityBridge using in-memory storage.
// It is intended for tests, demos and running without an external
// identity service. Failure modes can be injected per operation to
// exercise the service's sync-failure handling.
type InMemIdentityBridge struct {
	mu       sync.RWMutex
	accounts map[AccountRef]Account

	// FailCreate, FailUpdate, FailSetSecret and FailDelete force the
	// corresponding operation to return an error when set.
	FailCreate    bool
	FailUpdate    bool
	FailSetSecret bool
	FailDelete    bool
}

// NewInMemIdentityBridge creates a new in-memory identity bridge.
func NewInMemIdentityBridge() *InMemIdentityBridge {
	return &InMemIdentityBridge{
		accounts: make(map[AccountRef]Account),
	}
}

// FindByLogin looks up an account by login, case-insensitively.
func (b *InMemIdentityBridge) FindByLogin(ctx context.Context, login string) (AccountRef, bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for ref, acct := range b.accounts {
		if strings.EqualFold(acct.Login, login) {
			return ref, true, nil
		}
	}
	return "", false, nil
}

// CreateAccount provisions a new account with the default role.
func (b *InMemIdentityBridge) CreateAccount(ctx context.Context, snapshot AccountSnapshot, secret string) (AccountRef, error) {
	if b.FailCreate {
		return "", fmt.Errorf("identity store unavailable")
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	ref := AccountRef(uuid.New().String())
	b.accounts[ref] = Account{
		Ref:    ref,
		Name:   snapshot.Name,
		Login:  snapshot.Login,
		Phone:  snapshot.Phone,
		Active: snapshot.Active,
		Photo:  snapshot.Photo,
		Secret: secret,
		Role:   "user",
	}
	return ref, nil
}

// UpdateAccount pushes snapshot fields onto an existing account.
func (b *InMemIdentityBridge) UpdateAccount(ctx context.Context, ref AccountRef, snapshot AccountSnapshot) error {
	if b.FailUpdate {
		return fmt.Errorf("identity store unavailable")
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	acct, ok := b.accounts[ref]
	if !ok {
		return fmt.Errorf("account not found: %s", ref)
	}

	acct.Name = snapshot.Name
	acct.Login = snapshot.Login
	acct.Phone = snapshot.Phone
	acct.Active = snapshot.Active
	acct.Photo = snapshot.Photo
	b.accounts[ref] = acct
	return nil
}

// SetAccountSecret replaces the account's credential.
func (b *InMemIdentityBridge) SetAccountSecret(ctx context.Context, ref AccountRef, secret string) error {
	if b.FailSetSecret {
		return fmt.Errorf("identity store unavailable")
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	acct, ok := b.accounts[ref]
	if !ok {
		return fmt.Errorf("account not found: %s", ref)
	}

	acct.Secret = secret
	b.accounts[ref] = acct
	return nil
}

// DeleteAccount removes the account.
func (b *InMemIdentityBridge) DeleteAccount(ctx context.Context, ref AccountRef) error {
	if b.FailDelete {
		return fmt.Errorf("identity store unavailable")
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.accounts[ref]; !ok {
		return fmt.Errorf("account not found: %s", ref)
	}
	delete(b.accounts, ref)
	return nil
}

// GetAccount returns a copy of the stored account. Test helper.
func (b *InMemIdentityBridge) GetAccount(ref AccountRef) (Account, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	acct, ok := b.accounts[ref]
	return acct, ok
}

// Seed inserts an account directly, bypassing provisioning. Test helper.
func (b *InMemIdentityBridge) Seed(acct Account) AccountRef {
	b.mu.Lock()
	defer b.mu.Unlock()

	if acct.Ref == "" {
		acct.Ref = AccountRef(uuid.New().String())
	}
	b.accounts[acct.Ref] = acct
	return acct.Ref
}

// AccountCount returns the number of stored accounts. Test helper.
func (b *InMemIdentityBridge) AccountCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return len(b.accounts)
}
