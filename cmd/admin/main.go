package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"sangha/internal/config"
	"sangha/internal/logging"
	"sangha/internal/profile"
	"sangha/internal/store"
)

var errHelp = errors.New("help provided")

// roleSetter is the profile repository subset the promote command needs.
type roleSetter interface {
	SetRole(ctx context.Context, email string, role profile.Role) error
}

type commandLine struct {
	migrate func(ctx context.Context) error
	roles   roleSetter
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  migrate                              - create or update the database schema")
	fmt.Println("  promote -email EMAIL [-role ROLE]    - set the role of an existing profile (default admin)")
}

func (cli *commandLine) run(ctx context.Context, args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	promoteCmd := flag.NewFlagSet("promote", flag.ContinueOnError)
	promoteEmail := promoteCmd.String("email", "", "Email of the profile to promote.")
	promoteRole := promoteCmd.String("role", string(profile.RoleAdmin), "Target role: student, mentor or admin.")

	switch args[1] {
	case "migrate":
		return cli.migrate(ctx)
	case "promote":
		if err := promoteCmd.Parse(args[2:]); err != nil {
			return err
		}
		email := strings.ToLower(strings.TrimSpace(*promoteEmail))
		role, ok := profile.ParseRole(*promoteRole)
		if email == "" || !ok {
			promoteCmd.Usage()
			return errHelp
		}
		return cli.roles.SetRole(ctx, email, role)
	default:
		cli.printUsage()
		return errHelp
	}
}

func main() {
	cfg := config.Load()
	log := logging.New(cfg.Production())
	defer func() { _ = log.Sync() }()

	ctx := context.Background()
	db, err := store.NewPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal("db connect failed", zap.Error(err))
	}
	defer db.Close()

	cli := &commandLine{
		migrate: func(ctx context.Context) error { return store.Migrate(ctx, db.Pool) },
		roles:   profile.NewRepository(db.Pool),
	}
	if err := cli.run(ctx, os.Args); err != nil {
		if errors.Is(err, errHelp) {
			os.Exit(2)
		}
		log.Error("command failed", zap.Error(err))
		os.Exit(1)
	}
	log.Info("done", zap.String("command", os.Args[1]))
}
