package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"

	"github.com/eringen/pokefans"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "serve":
		if err := runServe(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "version":
		fmt.Printf("pokefans %s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func runServe() error {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("load .env: %w", err)
	}
	cfg, err := pokefans.LoadConfig()
	if err != nil {
		return err
	}

	app := pokefans.New(cfg, pokefans.DefaultViews())
	app.Echo.HideBanner = true
	app.Echo.Logger.SetLevel(log.INFO)
	defer app.Close()

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		app.Echo.Logger.Infof("shutting down")
		_ = app.Echo.Close()
	}()

	app.Echo.Logger.Infof("pokefans %s listening on %s", version, cfg.Addr)
	return app.Start()
}

func printUsage() {
	fmt.Println(`pokefans - the PokéFans community site

Usage:
  pokefans <command>

Commands:
  serve         Start the web server
  version       Print the pokefans version
  help          Show this help message

Configuration is read from POKEFANS_* environment variables, a .env file
or pokefans.yaml in the working directory. POKEFANS_SESSION_SECRET is
required.

Examples:
  POKEFANS_SESSION_SECRET=change-me pokefans serve
  POKEFANS_ADDR=:8080 pokefans serve`)
}
