// Package main provides administrative maintenance utilities for the
// portfolio database.
//
// Usage:
//
//	admin [-db-path path] seed            # insert the default projects (idempotent)
//	admin [-db-path path] clear-messages  # delete all contact messages (asks for confirmation)
//	admin [-db-path path] stats           # print message and project counts
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/cbouguerba/portfolio-backend/internal/config"
	"github.com/cbouguerba/portfolio-backend/internal/repo"
	"github.com/cbouguerba/portfolio-backend/internal/services"
)

func main() {
	_ = godotenv.Load()
	cfg := config.MustLoad()

	var dbPath string
	flag.StringVar(&dbPath, "db-path", cfg.DBPath, "path to the sqlite database")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() != 1 {
		usage()
		os.Exit(2)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	db, err := repo.OpenSQLite(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := repo.AutoMigrate(db); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	svc := &services.ProjectService{DB: db}

	switch cmd := flag.Arg(0); cmd {
	case "seed":
		err = runSeed(ctx, svc)
	case "clear-messages":
		err = runClearMessages(ctx, svc, os.Stdin)
	case "stats":
		err = runStats(ctx, svc)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", cmd)
		usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s [-db-path path] <seed|clear-messages|stats>\n\n", os.Args[0])
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  seed            insert the default featured projects (skips existing titles)")
	fmt.Fprintln(os.Stderr, "  clear-messages  delete all contact messages after confirmation")
	fmt.Fprintln(os.Stderr, "  stats           print message and project counts")
	fmt.Fprintln(os.Stderr, "\nFlags:")
	flag.PrintDefaults()
}

func runSeed(ctx context.Context, svc *services.ProjectService) error {
	created, err := svc.SeedDefaults(ctx)
	if err != nil {
		return err
	}
	if created == 0 {
		fmt.Println("Nothing to do: all default projects already exist.")
		return nil
	}
	fmt.Printf("Seeded %d project(s).\n", created)
	return nil
}

func runClearMessages(ctx context.Context, svc *services.ProjectService, in *os.File) error {
	fmt.Print("Delete ALL contact messages? This cannot be undone. [y/N]: ")
	reader := bufio.NewReader(in)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return err
	}
	if strings.ToLower(strings.TrimSpace(answer)) != "y" {
		fmt.Println("Aborted.")
		return nil
	}
	deleted, err := svc.ClearMessages(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Deleted %d message(s).\n", deleted)
	return nil
}

func runStats(ctx context.Context, svc *services.ProjectService) error {
	stats, err := svc.GetStats(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Messages:        %d\n", stats.Messages)
	fmt.Printf("Unread messages: %d\n", stats.UnreadMessages)
	fmt.Printf("Projects:        %d\n", stats.Projects)
	return nil
}
