package secrets

import (
	"errors"
	"os"
	"strings"

	"github.com/zalando/go-keyring"
)

const (
	// Service groups this app's secrets in the OS keychain.
	KeyringService = "dinescout"
)

// ErrNoKey means no geocoding key is configured anywhere. Callers degrade
// to non-geographic ranking rather than failing the request.
var ErrNoKey = errors.New("geocoder API key not found (set it in keychain or via env)")

// GetGeocoderKey resolves the geocoding API key, preferring the OS keychain
// and falling back to the named environment variable.
func GetGeocoderKey(keyringAccount, envName string) (string, error) {
	if strings.TrimSpace(keyringAccount) != "" {
		key, err := keyring.Get(KeyringService, keyringAccount)
		if err == nil && strings.TrimSpace(key) != "" {
			return key, nil
		}
	}

	if envName != "" {
		if key := strings.TrimSpace(os.Getenv(envName)); key != "" {
			return key, nil
		}
	}

	return "", ErrNoKey
}

func SetGeocoderKey(keyringAccount, key string) error {
	if strings.TrimSpace(keyringAccount) == "" {
		return errors.New("keyring account name is empty")
	}
	if strings.TrimSpace(key) == "" {
		return errors.New("key is empty")
	}
	return keyring.Set(KeyringService, keyringAccount, key)
}

func DeleteGeocoderKey(keyringAccount string) error {
	if strings.TrimSpace(keyringAccount) == "" {
		return errors.New("keyring account name is empty")
	}
	return keyring.Delete(KeyringService, keyringAccount)
}
