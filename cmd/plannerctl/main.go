// Command plannerctl works on the planner data file offline.
//
//	plannerctl encrypt <src> <dst>   encrypt a plaintext document
//	plannerctl decrypt <src> <dst>   decrypt a document (plaintext passes through)
//	plannerctl stats                 print entity counts of PLANNER_FILE
//	plannerctl remove-tag <label>    strip a tag everywhere and save
//	plannerctl token [-sub name]     mint a viewer token
//
// Password, data file and token secret come from the same environment as the
// server (see internal/config).
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/iliyamo/cinema-planner/internal/config"
	"github.com/iliyamo/cinema-planner/internal/logger"
	"github.com/iliyamo/cinema-planner/internal/model"
	"github.com/iliyamo/cinema-planner/internal/planner"
	"github.com/iliyamo/cinema-planner/internal/security"
	"github.com/iliyamo/cinema-planner/internal/storage"
)

var errUsage = errors.New("usage: plannerctl encrypt|decrypt|stats|remove-tag|token [args]")

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "plannerctl:", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	zl, err := logger.New(cfg.Env, "plannerctl")
	if err != nil {
		return err
	}
	defer func() { _ = zl.Sync() }()

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "encrypt", "decrypt":
		return transform(cmd, rest, cfg, out)
	case "stats":
		return stats(cfg, zl, out)
	case "remove-tag":
		return removeTag(rest, cfg, zl, out)
	case "token":
		return token(rest, cfg, out)
	default:
		return errUsage
	}
}

func deriveKey(cfg config.Config) (security.Key, error) {
	params := security.DefaultKDF
	if cfg.KDFIterations > 0 {
		params.Iterations = cfg.KDFIterations
	}
	return security.DeriveKey(cfg.Password, params)
}

func transform(cmd string, args []string, cfg config.Config, out io.Writer) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: plannerctl %s <src> <dst>", cmd)
	}
	key, err := deriveKey(cfg)
	if err != nil {
		return err
	}
	if cmd == "encrypt" {
		if err := security.EncryptFile(args[0], args[1], key); err != nil {
			return err
		}
		fmt.Fprintf(out, "encrypted %s -> %s\n", args[0], args[1])
		return nil
	}
	plain, err := security.DecryptFile(args[0], args[1], key)
	if err != nil {
		return err
	}
	if plain {
		fmt.Fprintf(out, "%s was not encrypted; copied as is to %s\n", args[0], args[1])
		return nil
	}
	fmt.Fprintf(out, "decrypted %s -> %s\n", args[0], args[1])
	return nil
}

func open(cfg config.Config, zl *zap.Logger) (storage.Storage, *planner.Planner, error) {
	opts := []planner.Option{planner.WithLogger(zl)}
	store, err := storage.Open(storage.Options{
		Path:          cfg.DataFile,
		Encrypt:       cfg.Encrypt,
		Password:      cfg.Password,
		KDFIterations: cfg.KDFIterations,
		Log:           zl,
		Planner:       opts,
	})
	if err != nil {
		return nil, nil, err
	}
	p, err := store.Load()
	if err != nil {
		return nil, nil, err
	}
	return store, p, nil
}

func stats(cfg config.Config, zl *zap.Logger, out io.Writer) error {
	_, p, err := open(cfg, zl)
	if err != nil {
		return err
	}
	c, m, t := p.Snapshot().Counts()
	fmt.Fprintf(out, "cinemas: %d\nmovies:  %d\ntags:    %d\n", c, m, t)
	for _, tag := range p.Tags().All() {
		fmt.Fprintf(out, "  %s\n", tag)
	}
	return nil
}

func removeTag(args []string, cfg config.Config, zl *zap.Logger, out io.Writer) error {
	if len(args) != 1 {
		return errors.New("usage: plannerctl remove-tag <label>")
	}
	tag, err := model.NewTag(args[0])
	if err != nil {
		return err
	}
	store, p, err := open(cfg, zl)
	if err != nil {
		return err
	}
	return stripTag(store, p, tag, out)
}

// stripTag removes tag from p and writes the result back through store. The
// file is only reported as changed once the save succeeded.
func stripTag(store storage.Storage, p *planner.Planner, tag model.Tag, out io.Writer) error {
	if err := p.RemoveTag(tag); err != nil {
		return err
	}
	if err := store.Save(p); err != nil {
		return fmt.Errorf("save %s: %w", store.Path(), err)
	}
	fmt.Fprintf(out, "removed %s from %s\n", tag, store.Path())
	return nil
}

func token(args []string, cfg config.Config, out io.Writer) error {
	fs := flag.NewFlagSet("token", flag.ContinueOnError)
	sub := fs.String("sub", "viewer", "token subject")
	ttl := fs.Duration("ttl", cfg.ViewerTokenTTL, "token lifetime")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if cfg.ViewerSecret == "" {
		return errors.New("VIEWER_JWT_SECRET is not set")
	}
	tok, err := security.NewViewerToken(cfg.ViewerSecret, *sub, *ttl)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, tok.Token)
	fmt.Fprintf(out, "expires %s\n", tok.Exp.Format("2006-01-02 15:04:05 MST"))
	return nil
}
