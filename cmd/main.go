// cmd/main.go

package main

import (
	"database/sql"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/invoicing-renderer/internal/cache"
	"github.com/invoicing-renderer/internal/config"
	"github.com/invoicing-renderer/internal/logger"
	"github.com/invoicing-renderer/internal/repository"
	"github.com/invoicing-renderer/internal/server"
	"github.com/invoicing-renderer/internal/storage"
	"github.com/invoicing-renderer/pkg/invoice"
	"github.com/invoicing-renderer/pkg/render"
)

var version = "dev"

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "invoicing",
		Usage:   "render invoices and estimates as single-page PDFs",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to a YAML config file",
				EnvVars: []string{"INVOICE_CONFIG"},
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "override log.level (debug, info, warn, error)",
			},
		},
		Commands: []*cli.Command{
			serveCommand(),
			renderCommand(),
			previewCommand(),
			templatesCommand(),
		},
	}
}

func loadConfig(c *cli.Context) (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, nil, err
	}
	if lvl := c.String("log-level"); lvl != "" {
		cfg.Log.Level = lvl
	}
	log, err := logger.NewForEnvironment(cfg.IsProduction(), &logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return cfg, log, nil
}

// newGenerator builds the generator described by cfg and a string naming its
// settings, used to keep cache keys apart between configurations.
func newGenerator(cfg config.RenderConfig) (*render.Generator, string) {
	opts := []render.Option{
		render.WithLocale(cfg.LocaleTag()),
		render.WithCurrencySymbol(cfg.CurrencySymbol),
		render.WithCompression(cfg.Compress),
		render.WithProfessionalSubline(cfg.ProfessionalSubline),
	}
	if cfg.Creator != "" {
		opts = append(opts, render.WithCreator(cfg.Creator))
	}
	seed := "none"
	if cfg.DecorSeed != nil {
		opts = append(opts, render.WithDecorSeed(*cfg.DecorSeed))
		seed = fmt.Sprint(*cfg.DecorSeed)
	}
	variant := fmt.Sprintf("locale=%s|symbol=%s|compress=%t|subline=%t|creator=%s|seed=%s",
		cfg.LocaleTag(), cfg.CurrencySymbol, cfg.Compress, cfg.ProfessionalSubline, cfg.Creator, seed)
	return render.NewGenerator(opts...), variant
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "run the HTTP API",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "addr", Usage: "override http.addr"},
		},
		Action: func(c *cli.Context) error {
			cfg, log, err := loadConfig(c)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()
			if addr := c.String("addr"); addr != "" {
				cfg.HTTP.Addr = addr
			}

			ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
			defer stop()

			log.Info("Starting invoice renderer",
				zap.String("app", cfg.App.Name),
				zap.String("env", cfg.App.Env),
				zap.String("addr", cfg.HTTP.Addr))

			gen, variant := newGenerator(cfg.Render)
			opts := server.Options{
				Generator:    gen,
				Variant:      variant,
				PreviewScale: cfg.Render.PreviewScale,
				Prefix:       cfg.Storage.Prefix,
				Logger:       log,
			}

			if cfg.Database.Enabled {
				db, err := repository.Open(ctx, cfg.Database)
				if err != nil {
					return err
				}
				defer closeDB(db, log)
				if cfg.Database.Migrate {
					if err := repository.Migrate(ctx, db); err != nil {
						return err
					}
					log.Info("Database schema applied")
				}
				opts.Store = repository.New(db, log)
				log.Info("Database connected successfully")
			}

			sink, err := storage.New(ctx, cfg.Storage, log)
			if err != nil {
				return err
			}
			opts.Sink = sink

			if cfg.Redis.Enabled {
				rc, client, err := cache.New(ctx, cfg.Redis, log)
				if err != nil {
					return err
				}
				defer client.Close()
				opts.Cache = rc
				log.Info("Redis connected successfully", zap.String("addr", cfg.Redis.Addr))
			}

			if err := server.New(cfg.HTTP, opts).ListenAndServe(ctx); err != nil {
				log.Error("Server stopped with error", zap.Error(err))
				return err
			}
			log.Info("Server stopped")
			return nil
		},
	}
}

func closeDB(db *sql.DB, log *zap.Logger) {
	if err := db.Close(); err != nil {
		log.Error("Error closing database", zap.Error(err))
	}
}

var documentFlags = []cli.Flag{
	&cli.StringFlag{
		Name:     "in",
		Aliases:  []string{"i"},
		Usage:    "document file (JSON or YAML) with invoice, business and template",
		Required: true,
	},
	&cli.StringFlag{
		Name:     "out",
		Aliases:  []string{"o"},
		Usage:    "output file",
		Required: true,
	},
	&cli.StringFlag{
		Name:  "template",
		Usage: "template override",
	},
}

func renderCommand() *cli.Command {
	return &cli.Command{
		Name:  "render",
		Usage: "render a document file to PDF",
		Flags: documentFlags,
		Action: func(c *cli.Context) error {
			return renderFile(c, func(gen *render.Generator, _ *config.Config, doc *Document, tmpl invoice.Template) ([]byte, error) {
				return gen.Generate(doc.Invoice, doc.Business, tmpl)
			})
		},
	}
}

func previewCommand() *cli.Command {
	return &cli.Command{
		Name:  "preview",
		Usage: "render a document file to a PNG preview",
		Flags: append([]cli.Flag{
			&cli.Float64Flag{Name: "scale", Usage: "pixels per point (default render.preview_scale)"},
		}, documentFlags...),
		Action: func(c *cli.Context) error {
			return renderFile(c, func(gen *render.Generator, cfg *config.Config, doc *Document, tmpl invoice.Template) ([]byte, error) {
				scale := cfg.Render.PreviewScale
				if c.IsSet("scale") {
					scale = c.Float64("scale")
				}
				return gen.GeneratePreview(doc.Invoice, doc.Business, tmpl, scale)
			})
		},
	}
}

type produceFunc func(gen *render.Generator, cfg *config.Config, doc *Document, tmpl invoice.Template) ([]byte, error)

func renderFile(c *cli.Context, produce produceFunc) error {
	cfg, log, err := loadConfig(c)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	doc, err := ReadDocument(c.String("in"))
	if err != nil {
		return err
	}
	tmpl, err := doc.TemplateOverride(c.String("template"))
	if err != nil {
		return err
	}

	gen, _ := newGenerator(cfg.Render)
	data, err := produce(gen, cfg, doc, tmpl)
	if err != nil {
		return err
	}
	out := c.String("out")
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}
	log.Info("Rendered document",
		zap.String("invoice", doc.Invoice.Number),
		zap.String("template", string(render.ResolveTemplate(doc.Invoice, tmpl))),
		zap.String("out", out),
		zap.Int("bytes", len(data)))
	return nil
}

func templatesCommand() *cli.Command {
	return &cli.Command{
		Name:  "templates",
		Usage: "list the available templates",
		Action: func(c *cli.Context) error {
			return writeTemplates(c.App.Writer)
		},
	}
}

func writeTemplates(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TEMPLATE\tNAME\tPRIMARY\tACCENT\tLAYOUT")
	for _, s := range invoice.Templates() {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", s.Template, s.DisplayName, s.Primary.Hex(), s.Accent.Hex(), s.Layout)
	}
	return tw.Flush()
}
