package main

import (
	"flag"
	"fmt"
	"net"
	"os"

	"google.golang.org/grpc"

	"xdao.co/saf/env"
	"xdao.co/saf/factory"
	"xdao.co/saf/factory/grpcfactory"
	"xdao.co/saf/storage/kvregistry"

	_ "xdao.co/saf/storage/localfs"
)

func main() {
	fs := flag.NewFlagSet("xdao-safgrpcd", flag.ExitOnError)
	listen := fs.String("listen", "127.0.0.1:7878", "listen address")
	backend := fs.String("backend", "mem", "storage backend name")
	network := fs.String("network", "saf-local", "network id; the environment identity and all account addresses derive from it")
	listBackends := fs.Bool("list-backends", false, "List supported backends and exit")

	kvregistry.RegisterFlags(fs, kvregistry.UsageDaemon)

	_ = fs.Parse(os.Args[1:])
	if *listBackends {
		for _, b := range kvregistry.List(kvregistry.UsageDaemon) {
			if b.Description == "" {
				_, _ = fmt.Fprintf(os.Stdout, "%s\n", b.Name)
				continue
			}
			_, _ = fmt.Fprintf(os.Stdout, "%s\t%s\n", b.Name, b.Description)
		}
		return
	}

	store, closeFn, err := kvregistry.Open(*backend, kvregistry.UsageDaemon)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if closeFn != nil {
		defer closeFn()
	}

	e, err := env.New(env.Options{Network: *network, Store: store})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	svc, err := factory.Provision(e)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	lis, err := net.Listen("tcp", *listen)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer lis.Close()

	s := grpc.NewServer()
	grpcfactory.RegisterFactoryServer(s, &grpcfactory.Server{Factory: svc})

	fmt.Fprintf(os.Stderr, "xdao-safgrpcd listening on %s (backend=%s network=%s factory=%s)\n",
		lis.Addr().String(), *backend, *network, svc.Addr)
	if err := s.Serve(lis); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
