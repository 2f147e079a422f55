package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// ErrNotImage is returned for uploads whose sniffed content type is not
// image/*. Sniffing looks at the bytes, never the client-supplied name.
var ErrNotImage = errors.New("upload is not an image")

// ImageStore writes post images to disk under root/posts/ and hands back
// the relative asset path stored on the record.
type ImageStore struct {
	root string
}

func NewImageStore(root string) *ImageStore { return &ImageStore{root: root} }

// Save sniffs the payload, and for images persists it as
// posts/<uuid><ext>, returning that relative path.
func (s *ImageStore) Save(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}
	mtype := mimetype.Detect(data)
	if !strings.HasPrefix(mtype.String(), "image/") {
		return "", ErrNotImage
	}

	rel := filepath.Join("posts", uuid.New().String()+mtype.Extension())
	abs := filepath.Join(s.root, rel)
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return "", fmt.Errorf("create media dir: %w", err)
	}
	if err := os.WriteFile(abs, data, 0o644); err != nil {
		return "", fmt.Errorf("write image: %w", err)
	}
	return rel, nil
}

// Open returns the stored asset for serving.
func (s *ImageStore) Open(rel string) (*os.File, error) {
	return os.Open(filepath.Join(s.root, filepath.Clean(rel)))
}
