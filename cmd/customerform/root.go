package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/spf13/cobra"

	customerform "github.com/c-w-schwind/Aufgabe-Christian"
	"github.com/c-w-schwind/Aufgabe-Christian/internal/config"
	"github.com/c-w-schwind/Aufgabe-Christian/pkg/render"
	"github.com/c-w-schwind/Aufgabe-Christian/pkg/renderers/tui"
	"github.com/c-w-schwind/Aufgabe-Christian/pkg/submission"
)

type app struct {
	configPath string
	logLevel   string
	endpoint   string
	timeout    time.Duration
	theme      string
	variant    string
	templates  string

	cfg    *config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:          "customerform",
		Short:        "Interactive customer form",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Fill in and submit the form against the configured endpoint
  customerform --endpoint http://localhost:8080/customers

  # Serve the stub endpoint in another terminal
  customerform stub --addr :8080

  # Override the "show current data" summary with ./templates/summary.tpl
  customerform --templates ./templates

  # Force the stub to answer 500 to try the failure path
  customerform stub --fail-with 500
`),
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runForm(cmd.Context())
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "path to the YAML config file (default $"+config.EnvVar+")")
	flags.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error")

	cmd.Flags().StringVar(&a.endpoint, "endpoint", "", "collection URL records are submitted to")
	cmd.Flags().DurationVar(&a.timeout, "timeout", 0, "timeout of a single submission")
	cmd.Flags().StringVar(&a.theme, "theme", "", "terminal palette name")
	cmd.Flags().StringVar(&a.variant, "variant", "", "terminal palette variant (dark, light)")
	cmd.Flags().StringVar(&a.templates, "templates", "", "directory with template overrides (summary.tpl)")

	cmd.AddCommand(newStubCmd(a), newCheckCmd(a))
	return cmd
}

// load reads the config file and applies flag overrides.
func (a *app) load(cmd *cobra.Command) error {
	var err error
	if a.configPath != "" {
		a.cfg, err = config.LoadFile(a.configPath)
	} else {
		a.cfg, err = config.Load()
	}
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		a.cfg.LogLevel = a.logLevel
	}
	if flags.Changed("endpoint") {
		a.cfg.Endpoint = a.endpoint
	}
	if flags.Changed("timeout") {
		a.cfg.Timeout = a.timeout.String()
	}
	if flags.Changed("theme") {
		a.cfg.Theme.Name = a.theme
	}
	if flags.Changed("variant") {
		a.cfg.Theme.Variant = a.variant
	}
	if flags.Changed("templates") {
		a.cfg.TemplatesDir = a.templates
	}
	if flags.Changed("addr") {
		a.cfg.Stub.Addr, _ = flags.GetString("addr")
	}
	if flags.Changed("fail-with") {
		a.cfg.Stub.FailWith, _ = flags.GetInt("fail-with")
	}
	if err := a.cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	level, _ := a.cfg.SlogLevel()
	a.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	return nil
}

func (a *app) runForm(parent context.Context) error {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt)
	defer stop()

	timeout, _ := a.cfg.TimeoutDuration()
	client, err := customerform.NewClient(
		submission.WithEndpoint(a.cfg.Endpoint),
		submission.WithTimeout(timeout),
		submission.WithLogger(a.logger),
	)
	if err != nil {
		return err
	}

	ui, err := tui.New(
		tui.WithThemeSelector(tui.NewManifestSelector(tui.DefaultManifest()), a.cfg.Theme.Name, a.cfg.Theme.Variant),
		tui.WithLogger(a.logger),
	)
	if err != nil {
		return err
	}

	summary, err := render.NewSummaryEngine(a.cfg.TemplatesDir)
	if err != nil {
		return err
	}

	registry := render.NewRegistry()
	registry.MustRegister(ui)
	registry.MustRegister(render.NewLogRenderer(a.logger))

	session, err := customerform.NewSession(ui, client,
		customerform.WithCatalog(a.cfg.Catalog()),
		customerform.WithRenderers(registry, ui.Name()),
		customerform.WithSummary(summary),
		customerform.WithLogger(a.logger),
	)
	if err != nil {
		return err
	}

	a.logger.Debug("starting form", "endpoint", client.Endpoint(), "renderers", registry.List())
	return ui.Run(ctx, session)
}
