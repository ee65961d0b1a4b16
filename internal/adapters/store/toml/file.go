package toml

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	stateFileMode = 0o600
	stateDirMode  = 0o700
)

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

// tomlFile is one state file guarded by a lock shared by every store that
// points at the same path.
type tomlFile struct {
	path        string
	tempPattern string
	label       string
	mu          *sync.RWMutex
}

func newTOMLFile(path, label string) (*tomlFile, error) {
	if path == "" {
		return nil, fmt.Errorf("%s path is empty", label)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s path: %w", label, err)
	}
	absPath = filepath.Clean(absPath)

	return &tomlFile{
		path:        absPath,
		tempPattern: "." + label + "-*.toml.tmp",
		label:       label,
		mu:          lockForPath(absPath),
	}, nil
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}

// read decodes the file into out. found is false when the file is absent.
func (f *tomlFile) read(out any) (bool, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("read %s file: %w", f.label, err)
	}

	if err := toml.Unmarshal(data, out); err != nil {
		return true, fmt.Errorf("decode %s file: %w", f.label, err)
	}

	return true, nil
}

func (f *tomlFile) write(in any) error {
	if err := os.MkdirAll(filepath.Dir(f.path), stateDirMode); err != nil {
		return fmt.Errorf("create %s directory: %w", f.label, err)
	}

	data, err := toml.Marshal(in)
	if err != nil {
		return fmt.Errorf("encode %s file: %w", f.label, err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(f.path), f.tempPattern)
	if err != nil {
		return fmt.Errorf("create temp %s file: %w", f.label, err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp %s file: %w", f.label, err)
	}

	if err := tempFile.Chmod(stateFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp %s file: %w", f.label, err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp %s file: %w", f.label, err)
	}

	if err := os.Rename(tempName, f.path); err != nil {
		return fmt.Errorf("replace %s file: %w", f.label, err)
	}

	cleanup = false
	return nil
}

func (f *tomlFile) remove() error {
	if err := os.Remove(f.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove %s file: %w", f.label, err)
	}

	return nil
}
