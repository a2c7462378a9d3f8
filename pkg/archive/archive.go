// Package archive persists capture artifacts (photos and audio clips)
// from finished calls. The Store interface abstracts the backend so
// local disk and S3-compatible object stores are interchangeable.
package archive

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Store is a minimal artifact store.
//
// Paths are forward-slash separated and relative to the store root.
// Implementations must be safe for concurrent use.
type Store interface {
	// Put writes the artifact, replacing any existing one at path.
	Put(ctx context.Context, path string, data []byte) error

	// Get reads the artifact. If it does not exist, an error wrapping
	// os.ErrNotExist is returned.
	Get(ctx context.Context, path string) ([]byte, error)

	// Delete removes the artifact. Deleting a missing artifact is not
	// an error.
	Delete(ctx context.Context, path string) error

	// Exists reports whether the artifact exists.
	Exists(ctx context.Context, path string) (bool, error)
}

// Archiver names and stores artifacts for one call.
type Archiver struct {
	store  Store
	callID string
}

// NewArchiver creates an archiver for the given call. An empty callID
// gets a generated one.
func NewArchiver(store Store, callID string) *Archiver {
	if callID == "" {
		callID = uuid.NewString()
	}
	return &Archiver{store: store, callID: callID}
}

// CallID returns the call identifier paths are grouped under.
func (a *Archiver) CallID() string {
	return a.callID
}

// artifactPath builds calls/{YYYY}/{MM}/{DD}/{callID}/{stamp}.{ext} so
// artifacts group by day and call.
func (a *Archiver) artifactPath(at time.Time, ext string) string {
	t := at.UTC()
	return fmt.Sprintf("calls/%s/%s/%s.%s",
		t.Format("2006/01/02"), a.callID, t.Format("150405.000000000"), ext)
}

// SaveImage stores a captured photo and returns its path.
func (a *Archiver) SaveImage(ctx context.Context, image []byte) (string, error) {
	path := a.artifactPath(time.Now(), "jpg")
	if err := a.store.Put(ctx, path, image); err != nil {
		return "", fmt.Errorf("archive: save image: %w", err)
	}
	return path, nil
}

// SaveAudio stores a recorded clip and returns its path.
func (a *Archiver) SaveAudio(ctx context.Context, clip []byte) (string, error) {
	path := a.artifactPath(time.Now(), "pcm")
	if err := a.store.Put(ctx, path, clip); err != nil {
		return "", fmt.Errorf("archive: save audio: %w", err)
	}
	return path, nil
}
