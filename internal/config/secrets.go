package config

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

const keyringService = "pgmeta"

// StorePassword moves the connection's password into the OS keyring and
// clears it from the profile.
func StorePassword(conn *Connection) error {
	if conn.Password == "" {
		return nil
	}
	if err := keyring.Set(keyringService, conn.Name, conn.Password); err != nil {
		return fmt.Errorf("keyring set %s: %w", conn.Name, err)
	}
	conn.Password = ""
	conn.Keyring = true
	return nil
}

// ResolvePassword fills in the password of a keyring-backed connection.
func ResolvePassword(conn Connection) (Connection, error) {
	if !conn.Keyring || conn.Password != "" {
		return conn, nil
	}
	pw, err := keyring.Get(keyringService, conn.Name)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return conn, nil
		}
		return conn, fmt.Errorf("keyring get %s: %w", conn.Name, err)
	}
	conn.Password = pw
	return conn, nil
}

// DeletePassword removes a stored password. A missing entry is not an error.
func DeletePassword(name string) error {
	err := keyring.Delete(keyringService, name)
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("keyring delete %s: %w", name, err)
	}
	return nil
}
