// Package localfs is a filesystem-backed storage.Store.
//
// Each namespace is a directory; each key is one file whose name is the
// hex-encoded key. Writes go through a temp file and rename, with an fsync
// before the rename, so a value is either fully present or absent. This
// implementation is offline and deterministic: it never uses the network and
// never depends on wall-clock time.
package localfs

import (
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"

	"xdao.co/saf/storage"
)

type Store struct {
	root string
}

// New constructs a filesystem store rooted at root. The directory will be
// created if needed.
func New(root string) (*Store, error) {
	if root == "" {
		return nil, errors.New("localfs: root directory is required")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, err
	}
	return &Store{root: root}, nil
}

func (s *Store) Namespace(name string) (storage.KV, error) {
	if name == "" {
		return nil, storage.ErrBadNamespace
	}
	dir := filepath.Join(s.root, hex.EncodeToString([]byte(name)))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &kv{dir: dir}, nil
}

type kv struct {
	dir string
}

func (k *kv) pathFor(key string) string {
	return filepath.Join(k.dir, hex.EncodeToString([]byte(key))+".kv")
}

func (k *kv) Get(key string) ([]byte, error) {
	if key == "" {
		return nil, storage.ErrEmptyKey
	}
	b, err := os.ReadFile(k.pathFor(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

func (k *kv) Set(key string, value []byte) error {
	if key == "" {
		return storage.ErrEmptyKey
	}
	path := k.pathFor(key)

	f, err := os.CreateTemp(k.dir, ".tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	if _, err := f.Write(value); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}

func (k *kv) Has(key string) bool {
	if key == "" {
		return false
	}
	_, err := os.Stat(k.pathFor(key))
	return err == nil
}
