// Command backup exports the stored study data to a JSON file or imports one,
// including exports taken from the browser version of the app.
//
//	backup export [file]
//	backup import <file>
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"korean-learning-bot/internal/application/usecases"
	"korean-learning-bot/internal/config"
	"korean-learning-bot/internal/infrastructure/logging"
	"korean-learning-bot/internal/infrastructure/persistence"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: backup export [file] | backup import <file>")
	}

	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}
	logger := logging.New(cfg.AppEnv, cfg.LogLevel, os.Stderr)

	db, err := persistence.Open(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	backup := usecases.NewBackupUseCase(persistence.NewKVStore(db), logger)
	ctx := context.Background()

	switch args[0] {
	case "export":
		var w io.Writer = os.Stdout
		if len(args) > 1 {
			file, err := os.Create(args[1])
			if err != nil {
				return fmt.Errorf("failed to create backup file: %w", err)
			}
			defer file.Close()
			w = file
		}
		return backup.Export(ctx, w)

	case "import":
		if len(args) < 2 {
			return fmt.Errorf("usage: backup import <file>")
		}
		file, err := os.Open(args[1])
		if err != nil {
			return fmt.Errorf("failed to open backup file: %w", err)
		}
		defer file.Close()

		keys, err := backup.Import(ctx, file)
		if err != nil {
			return err
		}
		for _, key := range keys {
			fmt.Println(key)
		}
		return nil

	default:
		return fmt.Errorf("unknown command %q", args[0])
	}
}
