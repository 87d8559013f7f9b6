package listener

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/pem"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"golang.org/x/crypto/ssh"
)

// LoadOrCreateHostKey reads an ssh host key from path, writing a new ed25519
// key there first if the file does not exist. An empty path gives a key that
// only lives as long as the process.
func LoadOrCreateHostKey(path string) (ssh.Signer, error) {
	if path == "" {
		slog.Warn("no host_key_path configured for ssh listener, generating ephemeral key")
		_, key, err := ed25519.GenerateKey(rand.Reader)
		if err != nil {
			return nil, fmt.Errorf("generating ephemeral key: %w", err)
		}
		return ssh.NewSignerFromKey(key)
	}

	keyBytes, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		keyBytes, err = writeHostKey(path)
	}
	if err != nil {
		return nil, fmt.Errorf("reading host key %q: %w", path, err)
	}

	signer, err := ssh.ParsePrivateKey(keyBytes)
	if err != nil {
		return nil, fmt.Errorf("parsing host key %q: %w", path, err)
	}
	return signer, nil
}

func writeHostKey(path string) ([]byte, error) {
	_, key, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generating key: %w", err)
	}

	block, err := ssh.MarshalPrivateKey(key, "tilequest host key")
	if err != nil {
		return nil, fmt.Errorf("marshalling key: %w", err)
	}
	data := pem.EncodeToMemory(block)

	if err := os.WriteFile(path, data, 0600); err != nil {
		return nil, fmt.Errorf("writing key: %w", err)
	}
	slog.Info("generated ssh host key", "path", path)
	return data, nil
}
