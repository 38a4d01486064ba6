package adapter

// PasswordService hashes and verifies login passwords. Strength evaluation
// is deliberately absent: the meter is advisory and no operation rejects a
// password for being weak.
type PasswordService interface {
	// HashPassword derives a storable hash from a plaintext password.
	HashPassword(password string) (string, error)

	// VerifyPassword checks plaintext against a stored hash; a mismatch
	// is an error.
	VerifyPassword(hashedPassword, password string) error
}
