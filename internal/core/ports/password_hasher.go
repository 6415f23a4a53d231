package ports

// PasswordHasher hashes and verifies account passwords.
type PasswordHasher interface {
	// Hash returns an encoded hash of password including its salt and cost.
	Hash(password string) (string, error)

	// Compare returns nil when password matches hash, and an AuthenticationError otherwise.
	Compare(hash, password string) error
}

