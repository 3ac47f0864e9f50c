package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"fleettrack-api/apperrors"
)

// Purposes used when naming stored attachments. An empty purpose produces
// the bare `{owner}_{name}` form used for vehicle photos.
const (
	PurposePhoto     = ""
	PurposeInvoice   = "invoice"
	PurposeWorkOrder = "wo"
)

var allowedExtensions = map[string]bool{
	"png":  true,
	"jpg":  true,
	"jpeg": true,
	"gif":  true,
	"pdf":  true,
}

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]`)

// Store writes uploaded attachments under a single root directory and hands
// out the stored filenames that get persisted on the owning records.
type Store struct {
	root string
}

func New(root string) (*Store, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Store{root: root}, nil
}

func (s *Store) Root() string {
	return s.root
}

// SanitizeFilename strips any path components and maps characters outside
// [A-Za-z0-9._-] to underscores. Extension case is preserved; only the
// allow-list check is case-insensitive.
func SanitizeFilename(raw string) (string, error) {
	name := filepath.Base(strings.ReplaceAll(raw, "\\", "/"))
	name = unsafeChars.ReplaceAllString(name, "_")
	if name == "" || name == "." || name == ".." || strings.Trim(name, "._") == "" {
		return "", apperrors.ErrUnsafeName
	}
	return name, nil
}

// CheckExtension validates the suffix after the last dot against the
// allow-list (png, jpg, jpeg, gif, pdf). A name without a dot is rejected.
func CheckExtension(name string) error {
	idx := strings.LastIndex(name, ".")
	if idx < 0 || idx == len(name)-1 {
		return apperrors.ErrBadExtension
	}
	if !allowedExtensions[strings.ToLower(name[idx+1:])] {
		return apperrors.ErrBadExtension
	}
	return nil
}

// StoredName derives the collision-resistant name for an upload:
// `{ownerKey}_{purpose}_{sanitized}`, with the purpose segment omitted when
// empty. Two owners uploading the same original name never collide.
func StoredName(ownerKey, purpose, raw string) (string, error) {
	name, err := SanitizeFilename(raw)
	if err != nil {
		return "", err
	}
	if err := CheckExtension(name); err != nil {
		return "", err
	}
	if purpose == "" {
		return ownerKey + "_" + name, nil
	}
	return ownerKey + "_" + purpose + "_" + name, nil
}

// Save validates the raw filename and writes the content under the derived
// name, returning the stored filename the caller records on the owning row.
// The bytes go to a temp file first and are renamed into place, so a failed
// write never leaves a partial file under a live name. Replacing an
// attachment does not remove the previously stored file; orphans are an
// accepted limitation.
func (s *Store) Save(ownerKey, purpose, rawFilename string, content io.Reader) (string, error) {
	stored, err := StoredName(ownerKey, purpose, rawFilename)
	if err != nil {
		return "", err
	}

	tmp := filepath.Join(s.root, ".tmp-"+uuid.New().String())
	f, err := os.Create(tmp)
	if err != nil {
		return "", fmt.Errorf("create temp upload: %w", err)
	}
	if _, err := io.Copy(f, content); err != nil {
		f.Close()
		os.Remove(tmp)
		return "", fmt.Errorf("write upload: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("close upload: %w", err)
	}

	if err := os.Rename(tmp, filepath.Join(s.root, stored)); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("finalize upload: %w", err)
	}
	return stored, nil
}

// Remove deletes a stored file. Used for best-effort cleanup when a row
// write fails after its files were already stored.
func (s *Store) Remove(storedName string) error {
	return os.Remove(filepath.Join(s.root, storedName))
}
