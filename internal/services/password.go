package services

import (
	cryptorand "crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/kampongconnect/backend/internal/config"
	"golang.org/x/crypto/argon2"
)

// PasswordHasher derives argon2id hashes stored as "salt$hash"
type PasswordHasher struct {
	params config.Argon2Config
}

func NewPasswordHasher(params config.Argon2Config) *PasswordHasher {
	return &PasswordHasher{params: params}
}

func (h *PasswordHasher) Hash(password string) (string, error) {
	salt := make([]byte, h.params.SaltLength)
	if _, err := cryptorand.Read(salt); err != nil {
		return "", err
	}

	hash := h.derive(password, salt)
	return fmt.Sprintf("%s$%s", base64.StdEncoding.EncodeToString(salt), base64.StdEncoding.EncodeToString(hash)), nil
}

func (h *PasswordHasher) Verify(password, hashedPassword string) bool {
	parts := strings.Split(hashedPassword, "$")
	if len(parts) != 2 {
		return false
	}

	salt, err := base64.StdEncoding.DecodeString(parts[0])
	if err != nil {
		return false
	}

	hash, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil || len(hash) != int(h.params.KeyLength) {
		return false
	}

	return subtle.ConstantTimeCompare(hash, h.derive(password, salt)) == 1
}

func (h *PasswordHasher) derive(password string, salt []byte) []byte {
	return argon2.IDKey([]byte(password), salt,
		h.params.Time,
		h.params.Memory,
		h.params.Threads,
		h.params.KeyLength)
}
