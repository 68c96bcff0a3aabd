package object

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"resume-ats/internal/shared/util"
)

// ErrNotFound is returned by Open when the key does not exist.
var ErrNotFound = errors.New("object not found")

// Object describes a stored blob.
type Object struct {
	Key      string
	Size     int64
	MimeType string
}

// ObjectStore defines the contract for saving and retrieving binary objects.
type ObjectStore interface {
	Save(ctx context.Context, ownerID string, fileName string, r io.Reader) (Object, error)
	Open(ctx context.Context, storageKey string) (io.ReadCloser, error)
	SaveWithKey(ctx context.Context, storageKey string, contentType string, r io.Reader) (int64, error)
}

// NewKey builds a storage key namespaced by a hash of the owner.
func NewKey(ownerID, fileName string) (string, error) {
	sanitized, err := util.SanitizeFileName(fileName)
	if err != nil {
		return "", fmt.Errorf("sanitize file name: %w", err)
	}
	return path.Join(util.HashUserKey(ownerID), uuid.NewString()+"_"+sanitized), nil
}

// Sniff reads the head of r to detect its content type and returns a reader
// that replays the full stream.
func Sniff(r io.Reader) (string, io.Reader, error) {
	var head [3072]byte
	n, err := io.ReadFull(r, head[:])
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return "", nil, fmt.Errorf("read sniff: %w", err)
	}
	mime := mimetype.Detect(head[:n]).String()
	return mime, io.MultiReader(bytes.NewReader(head[:n]), r), nil
}
