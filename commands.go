package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"biorhythms-server/api"
	"biorhythms-server/api/biorhythms"
	"biorhythms-server/biorhythm"
	"biorhythms-server/config"
	"biorhythms-server/di"
	"biorhythms-server/models"
	"biorhythms-server/plotter"

	"github.com/spf13/cobra"
)

// cli carries state shared between the root command and its children.
type cli struct {
	cfg    *config.Config
	server string
}

func newRootCmd() *cobra.Command {
	app := &cli{}

	root := &cobra.Command{
		Use:   "biorhythms",
		Short: "Biorhythm series and charts",
		Long: `Biorhythms computes the physical (23 day), emotional (28 day) and
intellectual (33 day) cycles for a birth date, and serves them as a JSON API,
PNG/SVG charts and an interactive HTML page.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			configFile, _ := cmd.Flags().GetString("config")
			if configFile != "" {
				app.cfg, err = config.LoadFromFile(configFile)
			} else {
				app.cfg, err = config.Load()
			}
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
				app.cfg.Logging.Level = lvl
			}
			if store, _ := cmd.Flags().GetString("store"); store != "" {
				app.cfg.Store.Backend = store
				if err := app.cfg.Validate(); err != nil {
					return err
				}
			}
			slog.SetDefault(config.NewLogger(cmd.ErrOrStderr(), app.cfg.Logging))
			return nil
		},
	}

	root.PersistentFlags().String("config", "", "config file path (default: ./config/config.yaml)")
	root.PersistentFlags().String("log-level", "", "log level override (debug, info, warn, error)")
	root.PersistentFlags().String("store", "", "store backend override (redis, badger, memory)")
	root.PersistentFlags().StringVar(&app.server, "server", "",
		"talk to a running server at this base URL instead of opening the store")

	root.AddCommand(
		newVersionCmd(),
		app.newServeCmd(),
		app.newRenderCmd(),
		app.newReadoutCmd(),
		app.newBirthDateCmd(),
	)
	return root
}

// remote returns the API client when --server is set.
func (app *cli) remote() (biorhythms.BiorhythmsAPI, bool) {
	if app.server == "" {
		return nil, false
	}
	base := strings.TrimRight(app.server, "/")
	return biorhythms.NewBiorhythmsApiClient(api.NewHTTPClient(base)), true
}

func (app *cli) container(ctx context.Context) (*di.Container, error) {
	c, err := di.NewContainer(ctx, app.cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize: %w", err)
	}
	return c, nil
}

// --- Version Command ---

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "biorhythms %s\n", version)
			fmt.Fprintf(out, "  commit:  %s\n", commit)
			fmt.Fprintf(out, "  built:   %s\n", date)
		},
	}
}

// --- Serve Command ---

func (app *cli) newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
				app.cfg.Server.Addr = addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			c, err := app.container(ctx)
			if err != nil {
				return err
			}
			defer c.Close()

			c.SeriesCacheJanitor.StartPeriodicJob(ctx,
				time.Duration(app.cfg.Cache.PurgeIntervalMinutes)*time.Minute)
			return c.BiorhythmHttpServer.Start(ctx)
		},
	}
	cmd.Flags().String("addr", "", "listen address override, e.g. :8080")
	return cmd
}

// --- Render Command ---

func (app *cli) newRenderCmd() *cobra.Command {
	var opts dateFlags
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the chart to a file",
		Long: `Render the chart around a centre date. The output format follows the
file extension: .png, .svg, .html or .json (drawing operations).

Examples:
  biorhythms render --birth 1990-07-04 --out chart.png
  biorhythms render --center 2024-03-15 --span 30 --out chart.html
  biorhythms render --server http://localhost:8080 --out chart.svg`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, _ := cmd.Flags().GetString("out")
			span, _ := cmd.Flags().GetInt("span")
			width, _ := cmd.Flags().GetInt("width")
			height, _ := cmd.Flags().GetInt("height")
			if !cmd.Flags().Changed("span") {
				span = app.cfg.Chart.Span
			}
			if !cmd.Flags().Changed("width") {
				width = app.cfg.Chart.Width
			}
			if !cmd.Flags().Changed("height") {
				height = app.cfg.Chart.Height
			}
			if span < 0 {
				return fmt.Errorf("span must not be negative, got %d", span)
			}
			kind, err := chartKind(out)
			if err != nil {
				return err
			}

			var body []byte
			if client, ok := app.remote(); ok {
				birth, center, err := opts.parse()
				if err != nil {
					return err
				}
				body, err = client.GetChart(cmd.Context(), kind, biorhythms.Query{
					Birth:  birth,
					Center: center,
					Span:   &span,
					Width:  width,
					Height: height,
				})
				if err != nil {
					return err
				}
			} else {
				if body, err = app.renderLocal(cmd.Context(), opts, kind, span, width, height); err != nil {
					return err
				}
			}

			if err := os.WriteFile(out, body, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", out, err)
			}
			slog.Info("Chart written",
				slog.String("path", out),
				slog.String("kind", kind),
				slog.Int("span", span))
			return nil
		},
	}
	opts.register(cmd)
	cmd.Flags().String("out", "chart.png", "output file (.png, .svg, .html, .json)")
	cmd.Flags().Int("span", biorhythm.DefaultSpan, "days shown on each side of the centre")
	cmd.Flags().Int("width", 800, "chart width in pixels")
	cmd.Flags().Int("height", 360, "chart height in pixels")
	return cmd
}

// chartKind maps an output file extension to a chart kind.
func chartKind(path string) (string, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".png":
		return biorhythms.CHART_PNG, nil
	case ".svg":
		return biorhythms.CHART_SVG, nil
	case ".html", ".htm":
		return biorhythms.CHART_HTML, nil
	case ".json":
		return biorhythms.CHART_OPS, nil
	default:
		return "", fmt.Errorf("unsupported output extension %q", ext)
	}
}

func (app *cli) renderLocal(ctx context.Context, opts dateFlags, kind string, span, width, height int) ([]byte, error) {
	c, err := app.container(ctx)
	if err != nil {
		return nil, err
	}
	defer c.Close()

	birth, center, err := opts.resolve(c)
	if err != nil {
		return nil, err
	}
	snap := c.BiorhythmService.Snapshot(birth, center, span)
	frame := plotter.Frame{
		Series:    snap.Series,
		LeftDays:  snap.LeftDays,
		RightDays: snap.RightDays,
		Center:    snap.Center,
	}

	var buf bytes.Buffer
	switch kind {
	case biorhythms.CHART_HTML:
		err = plotter.RenderHTML(&buf, frame, width, height)
	case biorhythms.CHART_OPS:
		rec := plotter.NewRecorder(float64(width), float64(height))
		c.Renderer.Render(rec, frame)
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		err = enc.Encode(rec)
	default:
		err = plotter.RenderImage(&buf, plotter.Format(kind), width, height, c.Renderer, frame)
	}
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// --- Readout Command ---

func (app *cli) newReadoutCmd() *cobra.Command {
	var opts dateFlags
	cmd := &cobra.Command{
		Use:   "readout",
		Short: "Print the cycle percentages for a day",
		RunE: func(cmd *cobra.Command, args []string) error {
			var resp models.ReadoutResponse
			if client, ok := app.remote(); ok {
				birth, center, err := opts.parse()
				if err != nil {
					return err
				}
				r, err := client.GetReadout(cmd.Context(), biorhythms.Query{Birth: birth, Center: center})
				if err != nil {
					return err
				}
				resp = *r
			} else {
				c, err := app.container(cmd.Context())
				if err != nil {
					return err
				}
				defer c.Close()

				birth, center, err := opts.resolve(c)
				if err != nil {
					return err
				}
				snap := c.BiorhythmService.Snapshot(birth, center, 0)
				resp = models.NewReadoutResponse(birth, snap.Today)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (born %s)\n", resp.Date, resp.BirthDate)
			for _, cv := range resp.Cycles {
				fmt.Fprintf(out, "  %-13s %4s%%\n", cv.Name, cv.Formatted)
			}
			return nil
		},
	}
	opts.register(cmd)
	return cmd
}

// --- Birth Date Command ---

// birthDates is the persisted birth date, either in the local store or on a
// remote server.
type birthDates interface {
	GetBirthDate(ctx context.Context) (biorhythm.Date, bool, error)
	SetBirthDate(ctx context.Context, d biorhythm.Date) error
	ClearBirthDate(ctx context.Context) error
}

type localBirthDates struct {
	c *di.Container
}

func (l localBirthDates) GetBirthDate(ctx context.Context) (biorhythm.Date, bool, error) {
	return l.c.BiorhythmService.BirthDate()
}

func (l localBirthDates) SetBirthDate(ctx context.Context, d biorhythm.Date) error {
	if d.After(l.c.BiorhythmService.Today()) {
		return fmt.Errorf("birth date %s is in the future", d)
	}
	return l.c.BiorhythmService.SetBirthDate(d)
}

func (l localBirthDates) ClearBirthDate(ctx context.Context) error {
	return l.c.BiorhythmService.ClearBirthDate()
}

// birthDates opens the local store unless --server is set. The returned
// func releases it.
func (app *cli) birthDates(ctx context.Context) (birthDates, func(), error) {
	if client, ok := app.remote(); ok {
		return client, func() {}, nil
	}
	c, err := app.container(ctx)
	if err != nil {
		return nil, nil, err
	}
	return localBirthDates{c: c}, func() { c.Close() }, nil
}

func (app *cli) newBirthDateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "birthdate",
		Short: "Show, store or clear the persisted birth date",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "get",
		Short: "Print the stored birth date",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, done, err := app.birthDates(cmd.Context())
			if err != nil {
				return err
			}
			defer done()

			d, ok, err := store.GetBirthDate(cmd.Context())
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "not set")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), d)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set YYYY-MM-DD",
		Short: "Store the birth date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := biorhythm.ParseDate(args[0])
			if err != nil {
				return err
			}

			store, done, err := app.birthDates(cmd.Context())
			if err != nil {
				return err
			}
			defer done()

			if err := store.SetBirthDate(cmd.Context(), d); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), d)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Forget the stored birth date",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, done, err := app.birthDates(cmd.Context())
			if err != nil {
				return err
			}
			defer done()
			return store.ClearBirthDate(cmd.Context())
		},
	})
	return cmd
}

// dateFlags are the --birth and --center flags shared by render and readout.
type dateFlags struct {
	birth  string
	center string
}

func (f *dateFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.birth, "birth", "", "birth date YYYY-MM-DD (default: stored birth date)")
	cmd.Flags().StringVar(&f.center, "center", "", "centre date YYYY-MM-DD (default: today)")
}

// parse returns nil for flags that were not given.
func (f *dateFlags) parse() (birth, center *biorhythm.Date, err error) {
	if f.birth != "" {
		d, err := biorhythm.ParseDate(f.birth)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid --birth: %w", err)
		}
		birth = &d
	}
	if f.center != "" {
		d, err := biorhythm.ParseDate(f.center)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid --center: %w", err)
		}
		center = &d
	}
	return birth, center, nil
}

// resolve fills in the stored birth date and today for missing flags.
func (f *dateFlags) resolve(c *di.Container) (birth, center biorhythm.Date, err error) {
	override, centerFlag, err := f.parse()
	if err != nil {
		return 0, 0, err
	}
	if birth, err = c.BiorhythmService.ResolveBirthDate(override); err != nil {
		return 0, 0, err
	}

	center = c.BiorhythmService.Today()
	if centerFlag != nil {
		center = *centerFlag
	}
	return birth, center, nil
}
