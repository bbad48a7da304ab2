package storage

import "errors"

var (
	ErrNotFound     = errors.New("storage: not found")
	ErrEmptyKey     = errors.New("storage: empty key")
	ErrBadNamespace = errors.New("storage: invalid namespace")
)

func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }
