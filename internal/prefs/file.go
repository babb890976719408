package prefs

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/pelletier/go-toml/v2"
)

// FileBackend stores preferences in a single TOML document. Every Update
// re-reads the file under an exclusive lock and computes its changes from
// what it read, so the GUI and the client can both write without losing
// each other's changes.
type FileBackend struct {
	path string
	lock *flock.Flock
}

func NewFileBackend(path string) (*FileBackend, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create preferences directory: %w", err)
	}

	return &FileBackend{
		path: path,
		lock: flock.New(path + ".lock"),
	}, nil
}

func (b *FileBackend) Path() string {
	return b.path
}

func (b *FileBackend) Load() (map[string]Value, error) {
	if err := b.lock.RLock(); err != nil {
		return nil, fmt.Errorf("failed to lock preferences: %w", err)
	}
	defer b.unlock()

	return b.read()
}

func (b *FileBackend) Update(fn UpdateFunc) (map[string]Value, error) {
	if err := b.lock.Lock(); err != nil {
		return nil, fmt.Errorf("failed to lock preferences: %w", err)
	}
	defer b.unlock()

	values, err := b.read()
	if err != nil {
		return nil, err
	}

	changes := fn(cloneValues(values))
	if len(changes) == 0 {
		return values, nil
	}

	applyChanges(values, changes)
	if err := b.write(values); err != nil {
		return nil, err
	}
	return values, nil
}

func (b *FileBackend) Close() error {
	return b.lock.Close()
}

func (b *FileBackend) unlock() {
	if err := b.lock.Unlock(); err != nil {
		log.Printf("[PREFS] Failed to release lock on %s: %v", b.path, err)
	}
}

func (b *FileBackend) read() (map[string]Value, error) {
	values := make(map[string]Value)

	data, err := os.ReadFile(b.path)
	if err != nil {
		if os.IsNotExist(err) {
			return values, nil
		}
		return nil, fmt.Errorf("failed to read preferences: %w", err)
	}

	var doc map[string]interface{}
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse preferences %s: %w", b.path, err)
	}

	for key, raw := range doc {
		switch v := raw.(type) {
		case string:
			values[key] = StringValue(v)
		case bool:
			values[key] = BoolValue(v)
		case []interface{}:
			members := make([]string, 0, len(v))
			for _, item := range v {
				if s, ok := item.(string); ok {
					members = append(members, s)
				}
			}
			values[key] = SetValue(members)
		default:
			log.Printf("[PREFS] Ignoring key %q with unsupported type %T", key, raw)
		}
	}

	return values, nil
}

func (b *FileBackend) write(values map[string]Value) error {
	doc := make(map[string]interface{}, len(values))
	for key, v := range values {
		switch v.Kind {
		case KindString:
			doc[key] = v.Str
		case KindBool:
			doc[key] = v.Bool
		case KindStringSet:
			set := v.Set
			if set == nil {
				set = []string{}
			}
			doc[key] = set
		}
	}

	data, err := toml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal preferences: %w", err)
	}

	// Atomic write
	tmp, err := os.CreateTemp(filepath.Dir(b.path), filepath.Base(b.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp preferences file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write temp preferences file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to sync temp preferences file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp preferences file: %w", err)
	}

	if err := os.Rename(tmpName, b.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to rename temp preferences file: %w", err)
	}

	return nil
}
