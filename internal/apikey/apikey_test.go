package apikey

import (
	"context"
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danlaudk/lambda-ai-apart-hackathon-25/internal/common/fsutil"
)

func TestGenerate_URLSafeAndUnique(t *testing.T) {
	a, err := Generate()
	require.NoError(t, err)
	b, err := Generate()
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
	raw, err := base64.RawURLEncoding.DecodeString(a)
	require.NoError(t, err)
	assert.Len(t, raw, KeyBytes)
	assert.Len(t, a, 43)
}

func TestResolve_ExplicitWins(t *testing.T) {
	p := filepath.Join(t.TempDir(), "key")
	require.NoError(t, os.WriteFile(p, []byte("from-file"), 0o600))
	k, src, err := Resolve("  explicit  ", p)
	require.NoError(t, err)
	assert.Equal(t, "explicit", k)
	assert.Equal(t, SourceExplicit, src)
}

func TestResolve_ReadsTrimmedFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "key")
	require.NoError(t, os.WriteFile(p, []byte("from-file\n"), 0o600))
	k, src, err := Resolve("", p)
	require.NoError(t, err)
	assert.Equal(t, "from-file", k)
	assert.Equal(t, SourceFile, src)
}

func TestResolve_GeneratesAndPersists(t *testing.T) {
	p := filepath.Join(t.TempDir(), "nested", ".api_key")
	k, src, err := Resolve("", p)
	require.NoError(t, err)
	assert.Equal(t, SourceGenerated, src)
	assert.NotEmpty(t, k)

	fi, err := os.Stat(p)
	require.NoError(t, err)
	assert.Equal(t, FileMode, fi.Mode().Perm())

	again, src, err := Resolve("", p)
	require.NoError(t, err)
	assert.Equal(t, k, again, "second start reuses the saved key")
	assert.Equal(t, SourceFile, src)
}

func TestResolve_ExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	k, src, err := Resolve("", "~/.vllmd/api_key")
	require.NoError(t, err)
	assert.Equal(t, SourceGenerated, src)
	assert.True(t, fsutil.PathExists(filepath.Join(home, ".vllmd", "api_key")))
	got, err := ReadFile(filepath.Join(home, ".vllmd", "api_key"))
	require.NoError(t, err)
	assert.Equal(t, k, got)
}

func TestResolve_Errors(t *testing.T) {
	_, _, err := Resolve("", "")
	assert.Error(t, err)

	p := filepath.Join(t.TempDir(), "empty")
	require.NoError(t, os.WriteFile(p, []byte("  \n"), 0o600))
	_, _, err = Resolve("", p)
	assert.ErrorIs(t, err, ErrEmptyKeyFile)
}

func TestStore_WatchReloadsRotatedKey(t *testing.T) {
	p := filepath.Join(t.TempDir(), "key")
	require.NoError(t, WriteFile(p, "one"))
	s := NewStore("one")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, s.Watch(ctx, p, zerolog.Nop()))

	require.NoError(t, WriteFile(p, "two"))
	require.Eventually(t, func() bool { return s.Key() == "two" }, 5*time.Second, 20*time.Millisecond)
	assert.EqualValues(t, 1, s.ReloadCount())

	// An emptied file keeps the last good key.
	require.NoError(t, os.WriteFile(p, nil, 0o600))
	time.Sleep(3 * watchDebounce)
	assert.Equal(t, "two", s.Key())
}

func TestStore_WatchMissingDir(t *testing.T) {
	s := NewStore("k")
	err := s.Watch(context.Background(), filepath.Join(t.TempDir(), "nope", "key"), zerolog.Nop())
	assert.Error(t, err)
}
