package kvregistry

import (
	"flag"

	"xdao.co/saf/storage"
)

// The in-memory backend is built in: it has no configuration and every binary
// that links the registry can use it (throwaway environments, tests, demos).
func init() {
	MustRegister(Backend{
		Name:        "mem",
		Description: "In-memory store; nothing survives the process",
		Usage:       UsageCLI | UsageDaemon,
		RegisterFlags: func(fs *flag.FlagSet) {},
		Open: func() (storage.Store, func() error, error) {
			return storage.NewMemStore(), nil, nil
		},
	})
}
