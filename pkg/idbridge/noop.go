package idbridge

import (
	"context"
)

// NoopIdentityBridge is a no-op implementation of IdentityBridge.
// Use it to run the profile directory without mirroring accounts to an
// external identity system. Lookups find nothing and mutations succeed
// silently without creating anything.
type NoopIdentityBridge struct{}

// NewNoopIdentityBridge creates a new no-op identity bridge.
func NewNoopIdentityBridge() IdentityBridge {
	return &NoopIdentityBridge{}
}

func (b *NoopIdentityBridge) FindByLogin(ctx context.Context, login string) (AccountRef, bool, error) {
	return "", false, nil
}

func (b *NoopIdentityBridge) CreateAccount(ctx context.Context, snapshot AccountSnapshot, secret string) (AccountRef, error) {
	return "", nil
}

func (b *NoopIdentityBridge) UpdateAccount(ctx context.Context, ref AccountRef, snapshot AccountSnapshot) error {
	return nil
}

func (b *NoopIdentityBridge) SetAccountSecret(ctx context.Context, ref AccountRef, secret string) error {
	return nil
}

func (b *NoopIdentityBridge) DeleteAccount(ctx context.Context, ref AccountRef) error {
	return nil
}
