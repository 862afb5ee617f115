package cache

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Miis is the per-user rendered preview slot. Entries are a derived,
// disposable artifact: they are regenerated after successful uploads and
// otherwise allowed to go stale.
type Miis struct {
	dir string
}

// NewMiis creates the preview cache rooted at dir.
func NewMiis(dir string) (*Miis, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create mii cache dir: %w", err)
	}
	return &Miis{dir: dir}, nil
}

// slotName maps a username to its cache file name. Usernames come from
// externally issued token claims, so anything that could traverse out of
// the cache directory is rejected rather than sanitized.
func slotName(username string) (string, error) {
	if username == "" ||
		username == "." || username == ".." ||
		strings.ContainsAny(username, `/\`) {
		return "", fmt.Errorf("invalid cache slot name %q", username)
	}
	return username + ".png", nil
}

// Put streams a rendered image into the user's slot, replacing any previous
// preview. The write goes through a temp file so a failed render never
// truncates an existing preview.
func (c *Miis) Put(username string, image io.Reader) error {
	name, err := slotName(username)
	if err != nil {
		return err
	}
	target := filepath.Join(c.dir, name)

	tmp, err := os.CreateTemp(c.dir, name+".*.tmp")
	if err != nil {
		return fmt.Errorf("create preview temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, image); err != nil {
		tmp.Close()
		return fmt.Errorf("write preview: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close preview temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), target); err != nil {
		return fmt.Errorf("publish preview: %w", err)
	}
	return nil
}

// Path returns the filesystem path of a user's preview slot, or "" for a
// username that has no valid slot. The file may not exist or may be stale.
func (c *Miis) Path(username string) string {
	name, err := slotName(username)
	if err != nil {
		return ""
	}
	return filepath.Join(c.dir, name)
}
