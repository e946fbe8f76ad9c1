package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/JK0987/mousehunt-improved/internal/capture"
	"github.com/JK0987/mousehunt-improved/internal/config"
	"github.com/JK0987/mousehunt-improved/internal/errors"
	"github.com/JK0987/mousehunt-improved/internal/history"
	"github.com/JK0987/mousehunt-improved/internal/journal"
	"github.com/JK0987/mousehunt-improved/internal/ops"
)

// newCLIApp creates the CLI application with all commands.
func newCLIApp(db *sql.DB, cfg *config.Config, log zerolog.Logger) *cli.App {
	app := &cli.App{
		Name:    "mhjournal",
		Usage:   "Local journal history archive for MouseHunt",
		Version: Version,
		Commands: []*cli.Command{
			statsCmd(db, cfg),
			listCmd(db, cfg),
			showCmd(db),
			captureCmd(db, log),
			exportCmd(db),
			importCmd(db),
			purgeCmd(db),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// namespaceFlag is shared by every command.
func namespaceFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "namespace",
		Aliases: []string{"n"},
		Value:   journal.DefaultNamespace,
		Usage:   "Store namespace",
	}
}

// statsCmd creates the stats command.
func statsCmd(db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "stats",
		Usage: "Summarize the captured archive",
		Flags: []cli.Flag{namespaceFlag()},
		Action: func(c *cli.Context) error {
			output, err := ops.Stats(c.Context, db, cfg, ops.StatsInput{
				Namespace: c.String("namespace"),
			})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// listCmd creates the list command.
func listCmd(db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List one page of the archive, newest first",
		Flags: []cli.Flag{
			namespaceFlag(),
			&cli.IntFlag{Name: "page", Aliases: []string{"p"}, Value: 1, Usage: "1-based page number"},
			&cli.IntFlag{Name: "page-size", Usage: "Entries per page (defaults to the journal page size)"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.List(c.Context, db, cfg, ops.ListInput{
				Namespace: c.String("namespace"),
				Page:      c.Int("page"),
				PageSize:  c.Int("page-size"),
			})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// showCmd creates the show command.
func showCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Show a single entry by id",
		ArgsUsage: "<id>",
		Flags:     []cli.Flag{namespaceFlag()},
		Action: func(c *cli.Context) error {
			var id int64
			if _, err := fmt.Sscanf(c.Args().First(), "%d", &id); err != nil {
				return outputError(errors.NewInvalidRequest("id must be an integer"))
			}

			output, err := ops.Fetch(c.Context, db, ops.FetchInput{
				Namespace: c.String("namespace"),
				ID:        id,
			})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// captureCmd creates the capture command. It feeds rendered entry markup
// from stdin through the same sink the live feed uses, one fragment per
// line of input or the whole input as one fragment.
func captureCmd(db *sql.DB, log zerolog.Logger) *cli.Command {
	return &cli.Command{
		Name:  "capture",
		Usage: "Capture a rendered journal entry fragment from stdin",
		Flags: []cli.Flag{namespaceFlag()},
		Action: func(c *cli.Context) error {
			markup, err := io.ReadAll(os.Stdin)
			if err != nil {
				return outputError(errors.NewInternal(err))
			}

			session := history.NewSession()
			sink := capture.NewSink(db, c.String("namespace"), nil, session, log)
			if err := sink.Observe(c.Context, string(markup)); err != nil {
				return outputError(err)
			}

			return outputJSON(map[string]string{"status": "ok"})
		},
	}
}

// exportCmd creates the export command.
func exportCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export the archive to a JSONL file",
		Flags: []cli.Flag{
			namespaceFlag(),
			&cli.StringFlag{Name: "path", Required: true, Usage: "Output file path"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.Export(c.Context, db, ops.ExportInput{
				Namespace: c.String("namespace"),
				Path:      c.String("path"),
			})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// importCmd creates the import command.
func importCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:  "import",
		Usage: "Backfill the archive from a JSONL export",
		Flags: []cli.Flag{
			namespaceFlag(),
			&cli.StringFlag{Name: "path", Required: true, Usage: "Input file path"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.Import(c.Context, db, ops.ImportInput{
				Namespace: c.String("namespace"),
				Path:      c.String("path"),
			})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// purgeCmd creates the purge command.
func purgeCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:  "purge",
		Usage: "Delete every entry in a namespace",
		Flags: []cli.Flag{
			namespaceFlag(),
			&cli.BoolFlag{Name: "confirm", Usage: "Required; refuses without it"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.Purge(c.Context, db, ops.PurgeInput{
				Namespace: c.String("namespace"),
				Confirm:   c.Bool("confirm"),
			})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// outputJSON writes a value as indented JSON to stdout.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError writes a structured error as JSON to stderr and returns it
// so the process exits non-zero.
func outputError(err error) error {
	type errBody struct {
		Code    string         `json:"code"`
		Message string         `json:"message"`
		Details map[string]any `json:"details,omitempty"`
	}

	body := errBody{Code: string(errors.ErrInternal), Message: err.Error()}
	if jErr, ok := err.(*errors.JournalError); ok {
		body.Code = string(jErr.Code)
		body.Message = jErr.Message
		body.Details = jErr.Details
	}

	enc := json.NewEncoder(os.Stderr)
	enc.SetIndent("", "  ")
	_ = enc.Encode(map[string]errBody{"error": body})

	return err
}
