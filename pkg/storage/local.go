package storage

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Local is the local-filesystem Disk.
type Local struct {
	root string // absolute root directory
}

// NewLocal returns a disk rooted at root, made absolute relative to the
// working directory. The directory is created on first write.
func NewLocal(root string) (*Local, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("storage/local: root %s: %w", root, err)
	}
	return &Local{root: abs}, nil
}

// Root returns the absolute root directory.
func (d *Local) Root() string { return d.root }

func (d *Local) resolve(p string) (string, error) {
	if p == "" || strings.HasPrefix(p, "/") || filepath.IsAbs(p) {
		return "", fmt.Errorf("%w: %q", ErrInvalidPath, p)
	}
	clean := path.Clean(filepath.ToSlash(p))
	if clean == "." || clean == ".." || strings.HasPrefix(clean, "../") {
		return "", fmt.Errorf("%w: %q", ErrInvalidPath, p)
	}
	return filepath.Join(d.root, filepath.FromSlash(clean)), nil
}

// ── Write ─────────────────────────────────────────────────────────────────────

// Put writes to a temporary file and renames it into place, so a reader
// never sees a partial document.
func (d *Local) Put(p string, content []byte) error {
	full, err := d.resolve(p)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("storage/local: mkdir: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(full), ".put-*")
	if err != nil {
		return fmt.Errorf("storage/local: create %s: %w", p, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		return fmt.Errorf("storage/local: write %s: %w", p, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("storage/local: write %s: %w", p, err)
	}
	if err := os.Rename(tmp.Name(), full); err != nil {
		return fmt.Errorf("storage/local: rename %s: %w", p, err)
	}
	return nil
}

// ── Read ──────────────────────────────────────────────────────────────────────

func (d *Local) Get(p string) ([]byte, error) {
	full, err := d.resolve(p)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(full)
	if err != nil {
		return nil, fmt.Errorf("storage/local: get %s: %w", p, err)
	}
	return data, nil
}

func (d *Local) Exists(p string) bool {
	full, err := d.resolve(p)
	if err != nil {
		return false
	}
	info, err := os.Stat(full)
	return err == nil && !info.IsDir()
}

func (d *Local) Path(p string) string {
	full, err := d.resolve(p)
	if err != nil {
		return ""
	}
	return full
}

// ── Delete ────────────────────────────────────────────────────────────────────

func (d *Local) Delete(p string) error {
	full, err := d.resolve(p)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("storage/local: delete %s: %w", p, err)
	}
	return nil
}
