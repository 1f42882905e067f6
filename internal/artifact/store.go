package artifact

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ErrNotFound is returned when an artifact is unknown or already released
var ErrNotFound = errors.New("artifact not found")

// Artifact is a stored audio file owned by the store
type Artifact struct {
	ID        string    `json:"id"`
	Path      string    `json:"path"`
	Format    string    `json:"format"`
	Size      int64     `json:"size"`
	CreatedAt time.Time `json:"created_at"`
}

// Store keeps generated audio files in one directory and removes them once they
// are older than ttl or when more than maxFiles exist.
type Store struct {
	dir      string
	ttl      time.Duration
	maxFiles int
	logger   *logrus.Logger
	now      func() time.Time

	mu    sync.Mutex
	items map[string]Artifact
}

// Open creates the directory if needed and returns a store that also owns
// artifacts left in it by earlier processes, dated by their modification time.
// A ttl or maxFiles of zero disables that limit.
func Open(dir string, ttl time.Duration, maxFiles int, logger *logrus.Logger) (*Store, error) {
	if dir == "" {
		dir = filepath.Join(os.TempDir(), "voxlate")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create artifact dir: %w", err)
	}
	if logger == nil {
		logger = logrus.New()
	}

	s := &Store{
		dir:      dir,
		ttl:      ttl,
		maxFiles: maxFiles,
		logger:   logger,
		now:      time.Now,
		items:    make(map[string]Artifact),
	}
	if err := s.adopt(); err != nil {
		return nil, err
	}
	return s, nil
}

// adopt indexes artifact files already present in the directory
func (s *Store) adopt() error {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return fmt.Errorf("read artifact dir: %w", err)
	}

	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		name := e.Name()
		ext := filepath.Ext(name)
		id := strings.TrimSuffix(name, ext)
		if ext == "" || uuid.Validate(id) != nil {
			continue
		}

		info, err := e.Info()
		if err != nil {
			continue
		}
		s.items[id] = Artifact{
			ID:        id,
			Path:      filepath.Join(s.dir, name),
			Format:    strings.TrimPrefix(ext, "."),
			Size:      info.Size(),
			CreatedAt: info.ModTime(),
		}
	}

	for _, old := range s.evictOverflowLocked() {
		s.removeFile(old, "max_files")
	}
	if len(s.items) > 0 {
		s.logger.WithFields(logrus.Fields{
			"dir":   s.dir,
			"count": len(s.items),
		}).Debug("Adopted existing artifacts")
	}
	return nil
}

// Dir returns the directory holding the artifacts
func (s *Store) Dir() string {
	return s.dir
}

// Create writes a new artifact through write. The partial file is removed
// if write fails.
func (s *Store) Create(format string, write func(w io.Writer) error) (Artifact, error) {
	format = strings.TrimPrefix(strings.ToLower(format), ".")
	if format == "" {
		format = "bin"
	}

	id := uuid.NewString()
	path := filepath.Join(s.dir, id+"."+format)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return Artifact{}, fmt.Errorf("create artifact file: %w", err)
	}

	if err := write(f); err != nil {
		f.Close()
		os.Remove(path)
		return Artifact{}, err
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return Artifact{}, fmt.Errorf("close artifact file: %w", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		os.Remove(path)
		return Artifact{}, fmt.Errorf("stat artifact file: %w", err)
	}

	a := Artifact{
		ID:        id,
		Path:      path,
		Format:    format,
		Size:      info.Size(),
		CreatedAt: s.now(),
	}

	s.mu.Lock()
	s.items[id] = a
	evicted := s.evictOverflowLocked()
	s.mu.Unlock()

	for _, old := range evicted {
		s.removeFile(old, "max_files")
	}

	s.logger.WithFields(logrus.Fields{
		"id":     id,
		"format": format,
		"bytes":  a.Size,
	}).Debug("Artifact stored")
	return a, nil
}

// Get returns a live artifact by id
func (s *Store) Get(id string) (Artifact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.items[id]
	if !ok || s.expiredLocked(a, s.now()) {
		return Artifact{}, ErrNotFound
	}
	return a, nil
}

// Remove releases an artifact and deletes its file
func (s *Store) Remove(id string) error {
	s.mu.Lock()
	a, ok := s.items[id]
	delete(s.items, id)
	s.mu.Unlock()

	if !ok {
		return ErrNotFound
	}
	s.removeFile(a, "released")
	return nil
}

// Len returns the number of stored artifacts
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Sweep removes artifacts that expired at now and returns how many were removed
func (s *Store) Sweep(now time.Time) int {
	s.mu.Lock()
	var expired []Artifact
	for id, a := range s.items {
		if s.expiredLocked(a, now) {
			expired = append(expired, a)
			delete(s.items, id)
		}
	}
	s.mu.Unlock()

	for _, a := range expired {
		s.removeFile(a, "expired")
	}
	return len(expired)
}

// Run sweeps every interval until ctx is cancelled
func (s *Store) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Sweep(s.now()); n > 0 {
				s.logger.WithField("removed", n).Info("Swept expired artifacts")
			}
		}
	}
}

// Close removes every artifact still held by the store
func (s *Store) Close() error {
	s.mu.Lock()
	items := s.items
	s.items = make(map[string]Artifact)
	s.mu.Unlock()

	for _, a := range items {
		s.removeFile(a, "closed")
	}
	return nil
}

func (s *Store) expiredLocked(a Artifact, now time.Time) bool {
	return s.ttl > 0 && now.Sub(a.CreatedAt) >= s.ttl
}

// evictOverflowLocked drops the oldest entries beyond maxFiles and returns them
func (s *Store) evictOverflowLocked() []Artifact {
	if s.maxFiles <= 0 || len(s.items) <= s.maxFiles {
		return nil
	}

	all := make([]Artifact, 0, len(s.items))
	for _, a := range s.items {
		all = append(all, a)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.Before(all[j].CreatedAt)
	})

	overflow := all[:len(all)-s.maxFiles]
	for _, a := range overflow {
		delete(s.items, a.ID)
	}
	return overflow
}

func (s *Store) removeFile(a Artifact, reason string) {
	if err := os.Remove(a.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
		s.logger.WithError(err).WithField("id", a.ID).Warn("Failed to remove artifact file")
		return
	}
	s.logger.WithFields(logrus.Fields{
		"id":     a.ID,
		"reason": reason,
	}).Debug("Artifact removed")
}
