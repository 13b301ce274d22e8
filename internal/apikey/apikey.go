// Package apikey resolves the shared API key guarding the control plane and
// keeps it current when the key file changes on disk.
package apikey

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/danlaudk/lambda-ai-apart-hackathon-25/internal/common/fsutil"
)

// KeyBytes is the amount of randomness in a generated key.
const KeyBytes = 32

// FileMode restricts a written key file to its owner.
const FileMode os.FileMode = 0o600

// Source records where a resolved key came from.
type Source string

const (
	SourceExplicit  Source = "explicit"
	SourceFile      Source = "file"
	SourceGenerated Source = "generated"
)

// ErrEmptyKeyFile is returned when the key file exists but holds no key.
var ErrEmptyKeyFile = errors.New("apikey: key file is empty")

// Generate returns a URL-safe random key.
func Generate() (string, error) {
	b := make([]byte, KeyBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("apikey: random: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// ReadFile returns the trimmed key stored at path.
func ReadFile(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	k := strings.TrimSpace(string(b))
	if k == "" {
		return "", ErrEmptyKeyFile
	}
	return k, nil
}

// WriteFile stores key at path with owner-only permissions, creating the
// parent directory when needed.
func WriteFile(path, key string) error {
	if _, err := fsutil.EnsureDir(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	return fsutil.WriteFileAtomic(path, []byte(key), FileMode)
}

// Resolve picks the key in priority order: an explicit value, the contents
// of path, or a freshly generated key that is then written to path.
func Resolve(explicit, path string) (string, Source, error) {
	if k := strings.TrimSpace(explicit); k != "" {
		return k, SourceExplicit, nil
	}
	if path == "" {
		return "", "", errors.New("apikey: no key and no key file configured")
	}
	p, err := fsutil.ExpandHome(path)
	if err != nil {
		return "", "", err
	}
	k, err := ReadFile(p)
	switch {
	case err == nil:
		return k, SourceFile, nil
	case !errors.Is(err, os.ErrNotExist):
		return "", "", fmt.Errorf("apikey: read %s: %w", p, err)
	}
	k, err = Generate()
	if err != nil {
		return "", "", err
	}
	if err := WriteFile(p, k); err != nil {
		return "", "", fmt.Errorf("apikey: save %s: %w", p, err)
	}
	return k, SourceGenerated, nil
}
