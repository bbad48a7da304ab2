package localfs

import (
	"flag"

	"xdao.co/saf/storage"
	"xdao.co/saf/storage/kvregistry"
)

var flagRoot *string

func init() {
	kvregistry.MustRegister(kvregistry.Backend{
		Name:        "localfs",
		Description: "Filesystem-backed store (one directory per namespace)",
		Usage:       kvregistry.UsageCLI | kvregistry.UsageDaemon,
		RegisterFlags: func(fs *flag.FlagSet) {
			flagRoot = fs.String("localfs-root", "", "localfs: root directory for the store")
		},
		Open: func() (storage.Store, func() error, error) {
			root := ""
			if flagRoot != nil {
				root = *flagRoot
			}
			s, err := New(root)
			if err != nil {
				return nil, nil, err
			}
			return s, nil, nil
		},
	})
}
