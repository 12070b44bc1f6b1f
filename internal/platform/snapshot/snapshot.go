// Package snapshot stores rendered chart images. The front-end rasterizes
// the on-screen tooth map (PNG, 2x scale, white background, interactive
// controls excluded, full scroll extent) and uploads the result here; the
// returned id is the snapshot handle the report generator later resolves.
package snapshot

import (
	"bytes"
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"image/png"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	ErrSnapshotNotFound = errors.New("snapshot not found")
	ErrNotPNG           = errors.New("snapshot must be a PNG image")
	ErrTooLarge         = errors.New("snapshot exceeds maximum allowed size")
)

// MaxSnapshotSize is the maximum accepted image size in bytes (10 MB).
const MaxSnapshotSize = 10 * 1024 * 1024

// CaptureScale is the rasterization scale the front-end captures at.
const CaptureScale = 2

// Snapshot describes one stored chart image.
type Snapshot struct {
	ID           string    `json:"id"`
	OdontogramID string    `json:"odontogram_id"`
	ContentType  string    `json:"content_type"`
	Size         int64     `json:"size"`
	Width        int       `json:"width"`
	Height       int       `json:"height"`
	Scale        int       `json:"scale"`
	Hash         string    `json:"hash"`
	CreatedAt    time.Time `json:"created_at"`
}

// Store is the contract for snapshot storage backends.
type Store interface {
	Put(ctx context.Context, odontogramID string, data []byte) (*Snapshot, error)
	Get(ctx context.Context, id string) (*Snapshot, []byte, error)
	Latest(ctx context.Context, odontogramID string) (*Snapshot, []byte, error)
}

type storedSnapshot struct {
	meta Snapshot
	data []byte
}

// MemoryStore is a thread-safe in-memory Store. Snapshots are transient
// render artifacts; they are re-captured per report, so memory retention is
// acceptable for a single-process deployment.
type MemoryStore struct {
	mu        sync.RWMutex
	snapshots map[string]*storedSnapshot
	now       func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		snapshots: make(map[string]*storedSnapshot),
		now:       time.Now,
	}
}

// Put validates and stores a PNG capture. The image header is decoded to
// record the intrinsic dimensions the report generator scales from.
func (s *MemoryStore) Put(_ context.Context, odontogramID string, data []byte) (*Snapshot, error) {
	if int64(len(data)) > MaxSnapshotSize {
		return nil, ErrTooLarge
	}

	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotPNG, err)
	}

	h := sha256.Sum256(data)
	meta := Snapshot{
		ID:           uuid.New().String(),
		OdontogramID: odontogramID,
		ContentType:  "image/png",
		Size:         int64(len(data)),
		Width:        cfg.Width,
		Height:       cfg.Height,
		Scale:        CaptureScale,
		Hash:         fmt.Sprintf("%x", h),
		CreatedAt:    s.now().UTC(),
	}

	stored := make([]byte, len(data))
	copy(stored, data)

	s.mu.Lock()
	s.snapshots[meta.ID] = &storedSnapshot{meta: meta, data: stored}
	s.mu.Unlock()

	out := meta
	return &out, nil
}

// Get returns a snapshot and its PNG bytes by id.
func (s *MemoryStore) Get(_ context.Context, id string) (*Snapshot, []byte, error) {
	s.mu.RLock()
	snap, ok := s.snapshots[id]
	s.mu.RUnlock()
	if !ok {
		return nil, nil, ErrSnapshotNotFound
	}
	meta := snap.meta
	return &meta, snap.data, nil
}

// Latest returns the most recently captured snapshot for an odontogram.
func (s *MemoryStore) Latest(_ context.Context, odontogramID string) (*Snapshot, []byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var best *storedSnapshot
	for _, snap := range s.snapshots {
		if snap.meta.OdontogramID != odontogramID {
			continue
		}
		if best == nil || snap.meta.CreatedAt.After(best.meta.CreatedAt) {
			best = snap
		}
	}
	if best == nil {
		return nil, nil, ErrSnapshotNotFound
	}
	meta := best.meta
	return &meta, best.data, nil
}
