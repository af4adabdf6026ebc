package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"locali/internal/config"
)

const usage = "Usage: migrate [up|down|steps N|force V|version]"

// command is a parsed migrate invocation. n is the step count for "steps"
// and the target version for "force".
type command struct {
	name string
	n    int
}

func parseCommand(args []string) (command, error) {
	if len(args) == 0 {
		return command{}, errors.New("missing command")
	}
	cmd := command{name: args[0]}
	switch cmd.name {
	case "up", "down", "version":
		return cmd, nil
	case "steps", "force":
		if len(args) < 2 {
			return command{}, fmt.Errorf("%s requires a number argument", cmd.name)
		}
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return command{}, fmt.Errorf("invalid %s argument %q: %w", cmd.name, args[1], err)
		}
		if cmd.name == "steps" && n == 0 {
			return command{}, errors.New("steps must be non-zero")
		}
		cmd.n = n
		return cmd, nil
	default:
		return command{}, fmt.Errorf("unknown command: %s", cmd.name)
	}
}

func main() {
	cmd, err := parseCommand(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	m, err := migrate.New(cfg.DB.MigrationsPath, cfg.DB.DSN())
	if err != nil {
		log.Fatalf("failed to create migrate instance from %s: %v", cfg.DB.MigrationsPath, err)
	}
	defer m.Close()

	if err := run(m, cmd); err != nil {
		log.Fatalf("migrate %s: %v", cmd.name, err)
	}
}

func run(m *migrate.Migrate, cmd command) error {
	var err error
	switch cmd.name {
	case "up":
		err = m.Up()
	case "down":
		err = m.Down()
	case "steps":
		err = m.Steps(cmd.n)
	case "force":
		if err := m.Force(cmd.n); err != nil {
			return err
		}
		log.Printf("forced schema version to %d", cmd.n)
		return nil
	case "version":
		version, dirty, verr := m.Version()
		if errors.Is(verr, migrate.ErrNilVersion) {
			fmt.Println("version: none")
			return nil
		}
		if verr != nil {
			return verr
		}
		fmt.Printf("version: %d, dirty: %v\n", version, dirty)
		return nil
	}

	if errors.Is(err, migrate.ErrNoChange) {
		log.Printf("%s: schema already current", cmd.name)
		return nil
	}
	if err != nil {
		return err
	}
	log.Printf("%s: migrations applied", cmd.name)
	return nil
}
