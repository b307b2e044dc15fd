package cli

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/hammamikhairi/doughcalc/internal/domain"
	"github.com/hammamikhairi/doughcalc/internal/export"
	"github.com/hammamikhairi/doughcalc/internal/share"
)

func (a *app) tuiCmd() *cli.Command {
	return &cli.Command{
		Name:  "tui",
		Usage: "Run the interactive calculator (default)",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, log, done, err := a.setup(cmd)
			if err != nil {
				return err
			}
			defer done()

			eng, session, err := a.startSession(ctx, cmd, log)
			if err != nil {
				return err
			}
			defer endSession(ctx, eng, log, session.ID)
			return a.runTUI(ctx, eng, log, session.ID, cfg)
		},
	}
}

func (a *app) calcCmd() *cli.Command {
	return &cli.Command{
		Name:  "calc",
		Usage: "Print the ingredient weights once",
		Description: `Derive every ingredient weight and print the recipe.

The Markdown format is the shareable report; json and yaml print the
calculated result; table is meant for the terminal.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"t"},
				Value:   string(export.FormatMarkdown),
				Usage:   fmt.Sprintf("output format (supported values: %s)", strings.Join(export.SupportedFormats(), ", ")),
				Sources: cli.EnvVars("DOUGHCALC_FORMAT"),
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "output file path (default: stdout)",
			},
			&cli.BoolFlag{
				Name:  "copy",
				Usage: "also copy the Markdown report to the clipboard",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			format, err := export.ParseFormat(cmd.String("format"))
			if err != nil {
				return err
			}

			_, log, done, err := a.setup(cmd)
			if err != nil {
				return err
			}
			defer done()

			eng, session, err := a.startSession(ctx, cmd, log)
			if err != nil {
				return err
			}
			defer endSession(ctx, eng, log, session.ID)

			res, err := eng.Result(ctx, session.ID)
			if err != nil {
				return err
			}

			w := export.NewWriter(format, a.out)
			if path := cmd.String("output"); path != "" {
				w = export.NewFileWriterOrStdout(format, path, log)
			}
			defer func() {
				if err := w.Close(); err != nil {
					log.Warn("failed to close output: %v", err)
				}
			}()

			if err := w.Serialize(ctx, *res); err != nil {
				return err
			}

			if cmd.Bool("copy") {
				if err := export.Copy(a.clip, export.Markdown(*res)); err != nil {
					return err
				}
				fmt.Fprintln(a.errOut, export.CopiedMessage)
			}
			return nil
		},
	}
}

func (a *app) linkCmd() *cli.Command {
	return &cli.Command{
		Name:  "link",
		Usage: "Print a share link for the recipe",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "document",
				Usage: "print a YAML recipe document instead of a link",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, log, done, err := a.setup(cmd)
			if err != nil {
				return err
			}
			defer done()

			eng, session, err := a.startSession(ctx, cmd, log)
			if err != nil {
				return err
			}
			defer endSession(ctx, eng, log, session.ID)

			r, err := eng.Recipe(ctx, session.ID)
			if err != nil {
				return err
			}

			if cmd.Bool("document") {
				return share.WriteDocument(a.out, r)
			}

			link, err := share.Link(cfg.BaseURL, r)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(a.out, link)
			return err
		},
	}
}

func (a *app) presetsCmd() *cli.Command {
	return &cli.Command{
		Name:  "presets",
		Usage: "List built-in dough formulas",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "search",
				Aliases: []string{"s"},
				Usage:   "only list presets whose name, description or tags match",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			_, log, done, err := a.setup(cmd)
			if err != nil {
				return err
			}
			defer done()

			src := a.presetSource(log)
			var list []domain.PresetSummary
			if q := cmd.String("search"); q != "" {
				list, err = src.Search(ctx, q)
			} else {
				list, err = src.List(ctx)
			}
			if err != nil {
				return fmt.Errorf("listing presets: %w", err)
			}
			if len(list) == 0 {
				_, err = fmt.Fprintln(a.out, "no presets found")
				return err
			}

			tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tDESCRIPTION\tTAGS")
			for _, p := range list {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", p.ID, p.Name, p.Description, strings.Join(p.Tags, ", "))
			}
			return tw.Flush()
		},
	}
}
