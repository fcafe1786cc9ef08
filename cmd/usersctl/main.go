// Command usersctl manages catalogue accounts from the shell: it creates the
// first administrator and enables or disables existing users.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/Skotchmaster/snake_catalogue/internal/config"
	"github.com/Skotchmaster/snake_catalogue/internal/models"
	"github.com/Skotchmaster/snake_catalogue/internal/repo"
	"github.com/Skotchmaster/snake_catalogue/pkg/db"
	"github.com/Skotchmaster/snake_catalogue/pkg/hash"
)

const usage = `usage: usersctl <command> [flags]

commands:
  create  -username NAME -password PASSWORD
  disable -username NAME
  enable  -username NAME
`

type userAdmin interface {
	CreateUser(ctx context.Context, u *models.User) error
	SetDisabled(ctx context.Context, username string, disabled bool) error
}

type passwordHasher interface {
	Hash(password string) (string, error)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := execute(ctx, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func execute(ctx context.Context, args []string) error {
	driver, dsn, err := config.LoadDatabase()
	if err != nil {
		return err
	}

	gdb, err := db.Open(ctx, driver, dsn)
	if err != nil {
		return err
	}
	defer db.Close(gdb)

	r := &repo.GormRepo{DB: gdb}
	if err := r.Migrate(ctx); err != nil {
		return err
	}
	return run(ctx, args, r, hash.NewBcrypt(0), os.Stdout)
}

func run(ctx context.Context, args []string, users userAdmin, hasher passwordHasher, out io.Writer) error {
	if len(args) == 0 {
		return errors.New(usage)
	}

	cmd := args[0]
	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	username := fs.String("username", "", "account name")
	password := fs.String("password", "", "account password (create only)")
	if err := fs.Parse(args[1:]); err != nil {
		return fmt.Errorf("%s: %w\n%s", cmd, err, usage)
	}
	if *username == "" {
		return fmt.Errorf("%s: -username is required", cmd)
	}

	switch cmd {
	case "create":
		if *password == "" {
			return errors.New("create: -password is required")
		}
		pwHash, err := hasher.Hash(*password)
		if err != nil {
			return fmt.Errorf("create: %w", err)
		}
		u := &models.User{Username: *username, PasswordHash: pwHash}
		if err := users.CreateUser(ctx, u); err != nil {
			return fmt.Errorf("create %s: %w", *username, err)
		}
		fmt.Fprintf(out, "created user %s (id %d)\n", u.Username, u.ID)
	case "disable", "enable":
		if err := users.SetDisabled(ctx, *username, cmd == "disable"); err != nil {
			return fmt.Errorf("%s %s: %w", cmd, *username, err)
		}
		fmt.Fprintf(out, "%sd user %s\n", cmd, *username)
	default:
		return fmt.Errorf("unknown command %q\n%s", cmd, usage)
	}
	return nil
}
