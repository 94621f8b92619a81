// Package secrets stores API credentials in the operating system keychain.
package secrets

import (
	"fmt"

	"github.com/zalando/go-keyring"
)

// serviceName namespaces punchclock entries in the keychain.
const serviceName = "punchclock"

// APIKeyName is the keychain entry holding the Clockify API key.
const APIKeyName = "clockify_api_key"

// Set writes a named secret to the keychain.
func Set(name, value string) error {
	if err := keyring.Set(serviceName, name, value); err != nil {
		return fmt.Errorf("secrets: store %q: %w", name, err)
	}
	return nil
}

// Get reads a named secret. An absent secret names the command that stores it.
func Get(name string) (string, error) {
	value, err := keyring.Get(serviceName, name)
	if err != nil {
		return "", fmt.Errorf("secrets: %q not found (run `punch setup` to store it): %w", name, err)
	}
	return value, nil
}
