package apikey

import (
	"context"
	"fmt"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// Store holds the current key; it satisfies httpapi.KeySource.
type Store struct {
	key     atomic.Value
	reloads atomic.Uint32
}

func NewStore(key string) *Store {
	s := &Store{}
	s.key.Store(key)
	return s
}

func (s *Store) Key() string { return s.key.Load().(string) }

func (s *Store) Set(key string) { s.key.Store(key) }

// ReloadCount returns how many times the key was replaced from disk.
func (s *Store) ReloadCount() uint32 { return s.reloads.Load() }

const watchDebounce = 200 * time.Millisecond

// Watch reloads the key whenever the file at path changes, until ctx ends.
// The parent directory is watched so atomic replacements are seen. An empty
// or unreadable file keeps the previous key.
func (s *Store) Watch(ctx context.Context, path string, log zerolog.Logger) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("apikey: watcher: %w", err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		_ = w.Close()
		return err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return fmt.Errorf("apikey: watch %s: %w", filepath.Dir(abs), err)
	}

	go func() {
		defer w.Close()
		var timer *time.Timer
		defer func() {
			if timer != nil {
				timer.Stop()
			}
		}()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != abs {
					continue
				}
				if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
					continue
				}
				if timer != nil {
					timer.Stop()
				}
				timer = time.AfterFunc(watchDebounce, func() { s.reload(abs, log) })
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				log.Error().Err(err).Msg("api key watcher error")
			}
		}
	}()
	return nil
}

func (s *Store) reload(path string, log zerolog.Logger) {
	k, err := ReadFile(path)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("api key reload skipped")
		return
	}
	if k == s.Key() {
		return
	}
	s.Set(k)
	n := s.reloads.Add(1)
	log.Info().Str("path", path).Uint32("count", n).Msg("api key reloaded")
}
