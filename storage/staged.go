package storage

// Staged is a copy-on-write overlay over a base KV.
//
// All writes land in the overlay; the base is only touched by Commit. This is
// the mechanism behind trap semantics: the environment stages every mutating
// invocation and commits only on success, so a failing invocation leaves the
// base exactly as it found it.
type Staged struct {
	base   KV
	writes map[string][]byte
}

// NewStaged wraps base in a fresh overlay with no pending writes.
func NewStaged(base KV) *Staged {
	return &Staged{base: base, writes: map[string][]byte{}}
}

func (s *Staged) Get(key string) ([]byte, error) {
	if key == "" {
		return nil, ErrEmptyKey
	}
	if v, ok := s.writes[key]; ok {
		out := make([]byte, len(v))
		copy(out, v)
		return out, nil
	}
	return s.base.Get(key)
}

func (s *Staged) Set(key string, value []byte) error {
	if key == "" {
		return ErrEmptyKey
	}
	v := make([]byte, len(value))
	copy(v, value)
	s.writes[key] = v
	return nil
}

func (s *Staged) Has(key string) bool {
	if key == "" {
		return false
	}
	if _, ok := s.writes[key]; ok {
		return true
	}
	return s.base.Has(key)
}

// Dirty reports whether the overlay holds uncommitted writes.
func (s *Staged) Dirty() bool { return len(s.writes) > 0 }

// Commit flushes pending writes to the base in one pass and clears the
// overlay. On a write error the overlay is kept so the caller can inspect it;
// the base may have absorbed a prefix of the writes, which is why the
// environment treats a failed commit as fatal for the whole store.
func (s *Staged) Commit() error {
	for k, v := range s.writes {
		if err := s.base.Set(k, v); err != nil {
			return err
		}
	}
	s.writes = map[string][]byte{}
	return nil
}

// Discard drops all pending writes.
func (s *Staged) Discard() {
	s.writes = map[string][]byte{}
}
