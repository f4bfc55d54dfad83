// Package secrets generates temporary credentials and their encrypted,
// non-reversible form.
//
// GenerateTemporarySecret produces a 12-character secret drawn from
// letters, digits and the symbol set "!@#$%^&*" using crypto/rand. The
// plaintext is meant to be surfaced to a caller exactly once and never
// persisted.
//
// SecretHasher is the hashing seam; BcryptHasher is the default
// implementation, using bcrypt with a per-call random salt and a
// configurable cost factor:
//
//	hasher := secrets.NewBcryptHasher()
//
//	secret, err := secrets.GenerateTemporarySecret()
//	if err != nil {
//		return err
//	}
//	hash, err := hasher.Hash(secret)
//	if err != nil {
//		return err
//	}
//	// persist hash; hand secret to the caller once
//
// The stored format is "salt:hash", so hashing the same secret twice
// yields different stored values.
package secrets
