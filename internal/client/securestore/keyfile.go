package securestore

import (
	"errors"
	"fmt"
	"os"

	"github.com/dmitrijs2005/mmadmin/internal/common"
	"github.com/dmitrijs2005/mmadmin/internal/cryptox"
)

const (
	saltSize   = 16
	secretSize = 32
)

var errKeyfileCorrupt = errors.New("keyfile has unexpected size")

// loadOrCreateKey reads the keyfile at path and derives the AES key from it.
// On first use a fresh salt+secret pair is generated and written with 0600
// permissions. The file layout is salt(16) || secret(32).
func loadOrCreateKey(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		raw = append(common.GenerateRandByteArray(saltSize), common.GenerateRandByteArray(secretSize)...)
		if werr := os.WriteFile(path, raw, 0o600); werr != nil {
			return nil, werr
		}
	} else if err != nil {
		return nil, err
	}

	if len(raw) != saltSize+secretSize {
		return nil, fmt.Errorf("%w: %d bytes", errKeyfileCorrupt, len(raw))
	}

	salt, secret := raw[:saltSize], raw[saltSize:]
	return cryptox.DeriveKey(secret, salt), nil
}
