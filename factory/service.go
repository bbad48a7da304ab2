package factory

import (
	"crypto/sha256"

	"github.com/ipfs/go-cid"

	"xdao.co/saf/account"
	"xdao.co/saf/addressing"
	"xdao.co/saf/env"
	"xdao.co/saf/host"
)

// Service is the host-side facade over an environment-hosted factory. It is
// what daemons and RPC servers hold; contracts themselves never see it.
type Service struct {
	Env  *env.Environment
	Addr cid.Cid
}

// Provision registers the account and factory blueprints in e and deploys the
// factory at its deterministic address, initialized with the account
// blueprint. If the backing store already holds a factory from an earlier run
// (same network ID, persistent backend), Provision re-attaches to it instead.
func Provision(e *env.Environment) (*Service, error) {
	accountBlueprint, err := e.RegisterBlueprint(account.Template, func() env.Contract { return account.Instance{} })
	if err != nil {
		return nil, err
	}
	factoryBlueprint, err := e.RegisterBlueprint(Template, func() env.Contract { return Factory{} })
	if err != nil {
		return nil, err
	}

	// One factory per environment: the deployment salt is fixed, derived from
	// the factory template, so the address is stable across restarts.
	salt := sha256.Sum256(Template)
	addr, err := addressing.Contract(e.Identity(), salt)
	if err != nil {
		return nil, err
	}
	if e.Exists(addr) {
		return &Service{Env: e, Addr: addr}, nil
	}
	deployed, err := e.Deploy(factoryBlueprint, salt, [][]byte{accountBlueprint.Bytes()})
	if err != nil {
		return nil, err
	}
	return &Service{Env: e, Addr: deployed}, nil
}

// Create deploys an account instance for owner and returns its address.
func (s *Service) Create(owner [account.KeySize]byte) (cid.Cid, error) {
	var addr cid.Cid
	err := s.Env.Invoke(s.Addr, func(call *host.Invocation) error {
		a, err := Factory{}.Create(call, owner)
		if err != nil {
			return err
		}
		addr = a
		return nil
	})
	if err != nil {
		return cid.Undef, err
	}
	return addr, nil
}

// Address predicts the account address for owner without deploying.
func (s *Service) Address(owner [account.KeySize]byte) (cid.Cid, error) {
	var addr cid.Cid
	err := s.Env.View(s.Addr, func(call *host.Invocation) error {
		a, err := Factory{}.GetAddress(call, owner)
		if err != nil {
			return err
		}
		addr = a
		return nil
	})
	if err != nil {
		return cid.Undef, err
	}
	return addr, nil
}

// Blueprint returns the account blueprint the factory deploys.
func (s *Service) Blueprint() (cid.Cid, error) {
	var blueprint cid.Cid
	err := s.Env.View(s.Addr, func(call *host.Invocation) error {
		b, err := Factory{}.Blueprint(call)
		if err != nil {
			return err
		}
		blueprint = b
		return nil
	})
	if err != nil {
		return cid.Undef, err
	}
	return blueprint, nil
}

// Exists reports whether an account is already deployed for owner.
func (s *Service) Exists(owner [account.KeySize]byte) (bool, error) {
	addr, err := s.Address(owner)
	if err != nil {
		return false, err
	}
	return s.Env.Exists(addr), nil
}
