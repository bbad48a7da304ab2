package main

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/base64"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"xdao.co/saf/account"
	"xdao.co/saf/factory/grpcfactory"
	"xdao.co/saf/host"
	"xdao.co/saf/keys"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, out io.Writer, errOut io.Writer) int {
	if len(args) == 0 {
		printUsage(errOut)
		return 2
	}

	switch args[0] {
	case "key":
		return cmdKey(args[1:], out, errOut)
	case "address":
		return cmdAddress(args[1:], out, errOut)
	case "create":
		return cmdCreate(args[1:], out, errOut)
	case "exists":
		return cmdExists(args[1:], out, errOut)
	case "blueprint":
		return cmdBlueprint(args[1:], out, errOut)
	case "sign":
		return cmdSign(args[1:], out, errOut)
	case "verify":
		return cmdVerify(args[1:], out, errOut)
	case "help", "-h", "--help":
		printUsage(out)
		return 0
	default:
		fmt.Fprintf(errOut, "unknown command: %s\n\n", args[0])
		printUsage(errOut)
		return 2
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "xdao-saf: smart-account factory CLI")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  xdao-saf key init --name <name> [--seed-hex <64hex>] [--force]")
	fmt.Fprintln(w, "  xdao-saf key derive --from <name> --label <label> [--force]")
	fmt.Fprintln(w, "  xdao-saf key list")
	fmt.Fprintln(w, "  xdao-saf key export --name <name> [--label <label>]")
	fmt.Fprintln(w, "  xdao-saf address (--owner <key> | --signer <name> [--signer-label <label>]) [--target <addr>]")
	fmt.Fprintln(w, "  xdao-saf create  (--owner <key> | --signer <name> [--signer-label <label>]) [--target <addr>]")
	fmt.Fprintln(w, "  xdao-saf exists  (--owner <key> | --signer <name> [--signer-label <label>]) [--target <addr>]")
	fmt.Fprintln(w, "  xdao-saf blueprint [--target <addr>]")
	fmt.Fprintln(w, "  xdao-saf sign --payload-file <file> (--seed-hex <64hex> | --signer <name> [--signer-label <label>] | --key-file <path>) [--hash-alg <alg>]")
	fmt.Fprintln(w, "  xdao-saf verify --owner <key> --payload-file <file> --signature <b64> [--hash-alg <alg>]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Notes:")
	fmt.Fprintln(w, "  - --seed-hex must be 32 bytes (64 hex chars) ed25519 seed")
	fmt.Fprintln(w, "  - owner keys are printed/accepted as ed25519:<base64>")
	fmt.Fprintln(w, "  - seeds are stored under ~/.xdao/saf/keys/<name> (0600 files)")
	fmt.Fprintln(w, "  - --target is the xdao-safgrpcd address (default 127.0.0.1:7878)")
	fmt.Fprintln(w, "  - anyone may create an account for any owner key; only the key holder can use it")
	fmt.Fprintln(w, "  - verify checks a signature locally, the way a hosted account instance would")
}

func cmdKey(args []string, out io.Writer, errOut io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(errOut, "usage: xdao-saf key <subcommand> ...")
		fmt.Fprintln(errOut, "subcommands: init, derive, list, export")
		return 2
	}
	switch args[0] {
	case "init":
		fs := flag.NewFlagSet("key init", flag.ContinueOnError)
		fs.SetOutput(errOut)
		name := fs.String("name", "", "Key identifier")
		seedHex := fs.String("seed-hex", "", "Ed25519 seed as 64 hex chars (random when omitted)")
		force := fs.Bool("force", false, "Overwrite an existing key")
		dir := fs.String("dir", "", "Key store directory")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}
		if *name == "" {
			fmt.Fprintln(errOut, "usage: xdao-saf key init --name <name> [--seed-hex <64hex>] [--force]")
			return 2
		}
		ks, err := keys.CreateKeyStore(*dir)
		if err != nil {
			fmt.Fprintf(errOut, "key store: %v\n", err)
			return 1
		}
		var seed []byte
		if *seedHex != "" {
			seed, err = keys.ParseSeedHex(*seedHex)
			if err != nil {
				fmt.Fprintf(errOut, "invalid --seed-hex: %v\n", err)
				return 1
			}
		} else {
			seed = make([]byte, ed25519.SeedSize)
			if _, err := rand.Read(seed); err != nil {
				fmt.Fprintf(errOut, "generate seed: %v\n", err)
				return 1
			}
		}
		ownerKey, path, err := ks.InitializeRootKey(*name, seed, *force)
		if err != nil {
			fmt.Fprintf(errOut, "init key: %v\n", err)
			return 1
		}
		fmt.Fprintf(out, "%s\t%s\n", ownerKey, path)
		return 0
	case "derive":
		fs := flag.NewFlagSet("key derive", flag.ContinueOnError)
		fs.SetOutput(errOut)
		from := fs.String("from", "", "Root key identifier")
		label := fs.String("label", "", "Sub-account label")
		force := fs.Bool("force", false, "Overwrite an existing key")
		dir := fs.String("dir", "", "Key store directory")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}
		if *from == "" || *label == "" {
			fmt.Fprintln(errOut, "usage: xdao-saf key derive --from <name> --label <label> [--force]")
			return 2
		}
		ks, err := keys.CreateKeyStore(*dir)
		if err != nil {
			fmt.Fprintf(errOut, "key store: %v\n", err)
			return 1
		}
		ownerKey, path, err := ks.DeriveKeyFromLabel(*from, *label, *force)
		if err != nil {
			fmt.Fprintf(errOut, "derive key: %v\n", err)
			return 1
		}
		fmt.Fprintf(out, "%s\t%s\n", ownerKey, path)
		return 0
	case "list":
		fs := flag.NewFlagSet("key list", flag.ContinueOnError)
		fs.SetOutput(errOut)
		dir := fs.String("dir", "", "Key store directory")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}
		ks, err := keys.CreateKeyStore(*dir)
		if err != nil {
			fmt.Fprintf(errOut, "key store: %v\n", err)
			return 1
		}
		entries, err := ks.ListKeys()
		if err != nil {
			fmt.Fprintf(errOut, "list keys: %v\n", err)
			return 1
		}
		for _, e := range entries {
			fmt.Fprintln(out, e.Identifier)
			for _, label := range e.Labels {
				fmt.Fprintf(out, "  %s\n", label)
			}
		}
		return 0
	case "export":
		fs := flag.NewFlagSet("key export", flag.ContinueOnError)
		fs.SetOutput(errOut)
		name := fs.String("name", "", "Key identifier")
		label := fs.String("label", "", "Sub-account label")
		dir := fs.String("dir", "", "Key store directory")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}
		if *name == "" {
			fmt.Fprintln(errOut, "usage: xdao-saf key export --name <name> [--label <label>]")
			return 2
		}
		ks, err := keys.CreateKeyStore(*dir)
		if err != nil {
			fmt.Fprintf(errOut, "key store: %v\n", err)
			return 1
		}
		ownerKey, err := ks.ExportKey(*name, *label)
		if err != nil {
			fmt.Fprintf(errOut, "export key: %v\n", err)
			return 1
		}
		fmt.Fprintln(out, ownerKey)
		return 0
	default:
		fmt.Fprintf(errOut, "unknown key subcommand: %s\n", args[0])
		return 2
	}
}

// ownerFlags is the shared flag surface for commands addressed to one owner.
type ownerFlags struct {
	owner       *string
	signer      *string
	signerLabel *string
	dir         *string
}

func registerOwnerFlags(fs *flag.FlagSet) ownerFlags {
	return ownerFlags{
		owner:       fs.String("owner", "", "Owner key (ed25519:<base64>)"),
		signer:      fs.String("signer", "", "Stored key identifier"),
		signerLabel: fs.String("signer-label", "", "Sub-account label for --signer"),
		dir:         fs.String("dir", "", "Key store directory"),
	}
}

func (of ownerFlags) resolve() ([account.KeySize]byte, error) {
	var owner [account.KeySize]byte
	if *of.owner != "" {
		return keys.ParseOwnerKey(*of.owner)
	}
	if *of.signer != "" {
		ks, err := keys.CreateKeyStore(*of.dir)
		if err != nil {
			return owner, err
		}
		exported, err := ks.ExportKey(*of.signer, *of.signerLabel)
		if err != nil {
			return owner, err
		}
		return keys.ParseOwnerKey(exported)
	}
	return owner, fmt.Errorf("one of --owner or --signer is required")
}

func dialTarget(target string) (*grpcfactory.Client, error) {
	client, err := grpcfactory.Dial(target, grpcfactory.DialOptions{Timeout: 5 * time.Second})
	if err != nil {
		return nil, err
	}
	client.Timeout = 10 * time.Second
	return client, nil
}

func cmdAddress(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("address", flag.ContinueOnError)
	fs.SetOutput(errOut)
	of := registerOwnerFlags(fs)
	target := fs.String("target", "127.0.0.1:7878", "xdao-safgrpcd address")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	owner, err := of.resolve()
	if err != nil {
		fmt.Fprintln(errOut, err)
		return 2
	}
	client, err := dialTarget(*target)
	if err != nil {
		fmt.Fprintf(errOut, "dial %s: %v\n", *target, err)
		return 1
	}
	defer client.Close()
	addr, err := client.DeriveAddress(owner)
	if err != nil {
		fmt.Fprintf(errOut, "derive address: %v\n", err)
		return 1
	}
	fmt.Fprintln(out, addr)
	return 0
}

func cmdCreate(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("create", flag.ContinueOnError)
	fs.SetOutput(errOut)
	of := registerOwnerFlags(fs)
	target := fs.String("target", "127.0.0.1:7878", "xdao-safgrpcd address")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	owner, err := of.resolve()
	if err != nil {
		fmt.Fprintln(errOut, err)
		return 2
	}
	client, err := dialTarget(*target)
	if err != nil {
		fmt.Fprintf(errOut, "dial %s: %v\n", *target, err)
		return 1
	}
	defer client.Close()
	addr, err := client.Create(owner)
	if err != nil {
		fmt.Fprintf(errOut, "create: %v\n", err)
		return 1
	}
	fmt.Fprintln(out, addr)
	return 0
}

func cmdExists(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("exists", flag.ContinueOnError)
	fs.SetOutput(errOut)
	of := registerOwnerFlags(fs)
	target := fs.String("target", "127.0.0.1:7878", "xdao-safgrpcd address")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	owner, err := of.resolve()
	if err != nil {
		fmt.Fprintln(errOut, err)
		return 2
	}
	client, err := dialTarget(*target)
	if err != nil {
		fmt.Fprintf(errOut, "dial %s: %v\n", *target, err)
		return 1
	}
	defer client.Close()
	exists, err := client.Exists(owner)
	if err != nil {
		fmt.Fprintf(errOut, "exists: %v\n", err)
		return 1
	}
	fmt.Fprintln(out, exists)
	return 0
}

func cmdBlueprint(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("blueprint", flag.ContinueOnError)
	fs.SetOutput(errOut)
	target := fs.String("target", "127.0.0.1:7878", "xdao-safgrpcd address")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	client, err := dialTarget(*target)
	if err != nil {
		fmt.Fprintf(errOut, "dial %s: %v\n", *target, err)
		return 1
	}
	defer client.Close()
	blueprint, err := client.Blueprint()
	if err != nil {
		fmt.Fprintf(errOut, "blueprint: %v\n", err)
		return 1
	}
	fmt.Fprintln(out, blueprint)
	return 0
}

func cmdSign(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("sign", flag.ContinueOnError)
	fs.SetOutput(errOut)
	payloadFile := fs.String("payload-file", "", "File holding the payload to authorize")
	seedHex := fs.String("seed-hex", "", "Ed25519 seed as 64 hex chars")
	signer := fs.String("signer", "", "Stored key identifier")
	signerLabel := fs.String("signer-label", "", "Sub-account label for --signer")
	keyFile := fs.String("key-file", "", "Seed file path")
	hashAlg := fs.String("hash-alg", "sha256", "Payload digest algorithm (sha256, sha3-256)")
	dir := fs.String("dir", "", "Key store directory")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *payloadFile == "" {
		fmt.Fprintln(errOut, "usage: xdao-saf sign --payload-file <file> (--seed-hex | --signer | --key-file)")
		return 2
	}
	payload, err := os.ReadFile(*payloadFile)
	if err != nil {
		fmt.Fprintf(errOut, "read payload: %v\n", err)
		return 1
	}
	ks, err := keys.CreateKeyStore(*dir)
	if err != nil {
		fmt.Fprintf(errOut, "key store: %v\n", err)
		return 1
	}
	seed, err := ks.LoadSeed(*seedHex, *signer, *signerLabel, *keyFile)
	if err != nil {
		fmt.Fprintf(errOut, "load seed: %v\n", err)
		return 1
	}
	digest, err := keys.PayloadDigest(*hashAlg, payload)
	if err != nil {
		fmt.Fprintf(errOut, "digest: %v\n", err)
		return 1
	}
	sig := keys.SignDigest(ed25519.NewKeyFromSeed(seed), digest)
	fmt.Fprintln(out, base64.StdEncoding.EncodeToString(sig[:]))
	return 0
}

func cmdVerify(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("verify", flag.ContinueOnError)
	fs.SetOutput(errOut)
	ownerStr := fs.String("owner", "", "Owner key (ed25519:<base64>)")
	payloadFile := fs.String("payload-file", "", "File holding the authorized payload")
	signature := fs.String("signature", "", "Signature (base64)")
	hashAlg := fs.String("hash-alg", "sha256", "Payload digest algorithm (sha256, sha3-256)")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *ownerStr == "" || *payloadFile == "" || *signature == "" {
		fmt.Fprintln(errOut, "usage: xdao-saf verify --owner <key> --payload-file <file> --signature <b64>")
		return 2
	}
	owner, err := keys.ParseOwnerKey(*ownerStr)
	if err != nil {
		fmt.Fprintf(errOut, "invalid --owner: %v\n", err)
		return 1
	}
	payload, err := os.ReadFile(*payloadFile)
	if err != nil {
		fmt.Fprintf(errOut, "read payload: %v\n", err)
		return 1
	}
	sig, err := base64.StdEncoding.DecodeString(*signature)
	if err != nil {
		fmt.Fprintf(errOut, "invalid --signature base64: %v\n", err)
		return 1
	}
	digest, err := keys.PayloadDigest(*hashAlg, payload)
	if err != nil {
		fmt.Fprintf(errOut, "digest: %v\n", err)
		return 1
	}
	if err := (host.CryptoVerifier{}).Verify(host.SchemeEd25519, owner[:], digest[:], sig); err != nil {
		fmt.Fprintf(errOut, "reject: %v\n", err)
		return 1
	}
	fmt.Fprintln(out, "OK")
	return 0
}
