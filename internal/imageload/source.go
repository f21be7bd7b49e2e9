package imageload

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/nacl/secretbox"
)

const nonceSize = 24

// ErrDecrypt is returned when sealed media cannot be opened with the key.
var ErrDecrypt = errors.New("decrypt media")

// ErrUnknownResource is returned for a ResourceSource with no registered image.
var ErrUnknownResource = errors.New("unknown resource")

// Source identifies what to load.
type Source interface {
	String() string
}

// MasterKey opens sealed media. It is passed through untouched by callers.
type MasterKey [32]byte

// ParseMasterKey decodes a 64-character hex key. An empty string yields a nil key.
func ParseMasterKey(s string) (*MasterKey, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	raw, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("parse master key: %w", err)
	}
	if len(raw) != len(MasterKey{}) {
		return nil, fmt.Errorf("parse master key: want %d bytes, got %d", len(MasterKey{}), len(raw))
	}
	var k MasterKey
	copy(k[:], raw)
	return &k, nil
}

// Seal encrypts plaintext so that a DecryptableSource with key can read it.
func Seal(key *MasterKey, plaintext []byte) ([]byte, error) {
	if key == nil {
		return nil, fmt.Errorf("seal media: key is nil")
	}
	var nonce [nonceSize]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return nil, fmt.Errorf("seal media: %w", err)
	}
	return secretbox.Seal(nonce[:], plaintext, &nonce, (*[32]byte)(key)), nil
}

func open(key *MasterKey, sealed []byte) ([]byte, error) {
	if len(sealed) < nonceSize+secretbox.Overhead {
		return nil, fmt.Errorf("%w: payload too short", ErrDecrypt)
	}
	var nonce [nonceSize]byte
	copy(nonce[:], sealed[:nonceSize])
	plain, ok := secretbox.Open(nil, sealed[nonceSize:], &nonce, (*[32]byte)(key))
	if !ok {
		return nil, fmt.Errorf("%w: authentication failed", ErrDecrypt)
	}
	return plain, nil
}

// DecryptableSource is a media file, optionally sealed with Key.
type DecryptableSource struct {
	Key     *MasterKey
	Locator string
}

func (s DecryptableSource) String() string { return s.Locator }

// ResourceSource is a built-in glyph registered in Resources.
type ResourceSource struct {
	ID string
}

func (s ResourceSource) String() string { return "resource:" + s.ID }
