package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/swagshop/uitest/internal/logging"
	"github.com/swagshop/uitest/internal/report"
	"github.com/swagshop/uitest/internal/store"
)

var version = "0.1.0"

// ServeCommand runs the embedded Swag Shop storefront.
func ServeCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the sample storefront the test suite runs against",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "addr",
				Usage: "listen address",
				Value: ":8080",
			},
			&cli.StringFlag{
				Name:  "log-file",
				Usage: "optional rotated log file",
			},
		},
		Action: func(c *cli.Context) error {
			log := logging.New(logging.Options{
				Level: os.Getenv("LOG_LEVEL"),
				File:  c.String("log-file"),
			})
			defer log.Sync()

			app, err := store.New(log)
			if err != nil {
				return fmt.Errorf("failed to build storefront: %w", err)
			}

			listener, server, err := store.StartServer(c.String("addr"), app, log)
			if err != nil {
				return err
			}
			defer listener.Close()

			return store.WaitForShutdown(server, nil, log)
		},
	}
}

// ReportCommand renders the HTML summary from a persisted results file.
func ReportCommand() *cli.Command {
	return &cli.Command{
		Name:  "report",
		Usage: "Render an HTML report from a suite results file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "results",
				Usage: "path to the results JSON written by a suite run",
				Value: filepath.Join("artifacts", "results.json"),
			},
			&cli.StringFlag{
				Name:  "out",
				Usage: "path of the HTML report to write",
				Value: filepath.Join("artifacts", "report.html"),
			},
		},
		Action: func(c *cli.Context) error {
			results, err := report.LoadResults(c.String("results"))
			if err != nil {
				return err
			}
			path, err := report.Generate(results, c.String("out"))
			if err != nil {
				return err
			}
			fmt.Fprintf(c.App.Writer, "report written to %s\n", path)
			return nil
		},
	}
}

func main() {
	// Load environment variables from .env file when present.
	if err := godotenv.Load(); err != nil {
		fmt.Fprintln(os.Stderr, "Warning: .env file not found, using environment variables")
	}

	app := &cli.App{
		Name:    "swagshop",
		Usage:   "Swag Shop UI test suite tooling",
		Version: version,
		Commands: []*cli.Command{
			ServeCommand(),
			ReportCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
