package files

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"
)

const filePermissions = 0o644

// ErrEmptyPath is returned when a document or output path is blank.
var ErrEmptyPath = errors.New("empty path")

// Document is the full contents of one input file.
type Document struct {
	// Path is the path as the user supplied it; it identifies the document in reports.
	Path    string
	Content string
}

// Manager centralizes how document paths are resolved and how files are read and written.
type Manager struct {
	workDir string
}

// NewManager constructs a Manager that resolves relative paths against workDir. If workDir is
// empty, the process working directory is used.
func NewManager(workDir string) (*Manager, error) {
	var err error
	if workDir == "" {
		workDir, err = os.Getwd()
		if err != nil {
			return nil, err
		}
	}
	abs, err := filepath.Abs(workDir)
	if err != nil {
		return nil, err
	}

	return &Manager{workDir: abs}, nil
}

// WorkDir returns the directory relative paths are resolved against.
func (m *Manager) WorkDir() string {
	return m.workDir
}

// Resolve expands a leading ~ and makes path absolute.
func (m *Manager) Resolve(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", ErrEmptyPath
	}
	path, err := normalizePath(path)
	if err != nil {
		return "", err
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(m.workDir, path)
	}
	return filepath.Clean(path), nil
}

// Read loads a whole document into memory.
func (m *Manager) Read(path string) (Document, error) {
	if m == nil {
		return Document{}, errors.New("files.Manager is nil")
	}

	resolved, err := m.Resolve(path)
	if err != nil {
		return Document{}, err
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		return Document{}, fmt.Errorf("read document: %w", err)
	}

	return Document{Path: path, Content: string(data)}, nil
}

// WriteReport atomically replaces the file at path with content, creating parent directories as
// needed.
func (m *Manager) WriteReport(path string, content []byte) error {
	if m == nil {
		return errors.New("files.Manager is nil")
	}

	resolved, err := m.Resolve(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return fmt.Errorf("create directories: %w", err)
	}

	_, statErr := os.Stat(resolved)
	isNew := errors.Is(statErr, os.ErrNotExist)

	if err := atomic.WriteFile(resolved, bytes.NewReader(content)); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	// atomic.WriteFile keeps the mode of an existing file but leaves new files at 0600.
	if isNew {
		if err := os.Chmod(resolved, filePermissions); err != nil {
			return fmt.Errorf("chmod report: %w", err)
		}
	}
	return nil
}
