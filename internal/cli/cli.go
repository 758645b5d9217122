package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/carta-conjuntura/internal/config"
	"github.com/pfrederiksen/carta-conjuntura/internal/extract"
	"github.com/pfrederiksen/carta-conjuntura/internal/logger"
	"github.com/pfrederiksen/carta-conjuntura/internal/notifier"
	"github.com/pfrederiksen/carta-conjuntura/internal/observe"
	"github.com/pfrederiksen/carta-conjuntura/internal/pipeline"
	"github.com/pfrederiksen/carta-conjuntura/internal/report"
	"github.com/pfrederiksen/carta-conjuntura/internal/scraper"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

// Version is set at build time with -ldflags "-X ...cli.Version=v1.2.3".
var Version = "dev"

// ErrRunFailed is returned when a run ends with status Erro. The status has
// already been printed.
var ErrRunFailed = errors.New("run finished with status Erro")

type options struct {
	configPath string
	verbose    bool
	recipient  string
	date       string
	dryRun     bool
	format     string
	file       string
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "carta-conjuntura",
		Short: "E-mail today's IPEA Carta de Conjuntura bulletin",
		Long: `Fetches the IPEA Carta de Conjuntura page, extracts the entry published
today (title, date, summary, PDF link) and e-mails it to the configured
recipient. Without a recipient the report goes to the sender's own mailbox.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDeliver(cmd, opts)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Config file (default ./carta-conjuntura.yaml or XDG config dir)")
	cmd.PersistentFlags().BoolVar(&opts.verbose, "verbose", false, "Enable verbose logging")
	cmd.PersistentFlags().StringVar(&opts.date, "date", "", "Target date (2026-10-16, 16/10/2026 or '16 de outubro de 2026'); default today")
	cmd.PersistentFlags().StringVar(&opts.format, "format", "text", "Output format: text or json")
	addRunFlags(cmd, opts)

	run := &cobra.Command{
		Use:   "run",
		Short: "Run one delivery (the default command)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDeliver(cmd, opts)
		},
	}
	addRunFlags(run, opts)

	ext := &cobra.Command{
		Use:   "extract",
		Short: "Print the report for the target date without sending e-mail",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd, opts)
		},
	}
	ext.Flags().StringVar(&opts.file, "file", "", "Read markup from a local file instead of fetching")

	version := &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), Version)
		},
	}

	cmd.AddCommand(run, ext, version)
	return cmd
}

func addRunFlags(cmd *cobra.Command, opts *options) {
	cmd.Flags().StringVar(&opts.recipient, "recipient", "", "Destination address (default: recipient from config, else the sender)")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Print the e-mail instead of sending it")
}

// setup loads the configuration and installs the logger.
func setup(cmd *cobra.Command, opts *options) (*config.Config, OutputFormat, error) {
	format, err := ParseFormat(opts.format)
	if err != nil {
		return nil, "", err
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, "", fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", fmt.Errorf("invalid config: %w", err)
	}

	if opts.verbose {
		logger.SetDefault(logger.NewConsole(logger.LevelDebug, cmd.ErrOrStderr()))
	} else {
		logger.SetDefault(logger.New(logger.ParseLevel(cfg.LogLevel), cmd.ErrOrStderr()))
	}

	return cfg, format, nil
}

func newScraper(cfg *config.Config, obs observe.Observer) *scraper.Scraper {
	return scraper.New(scraper.Options{
		URL:       cfg.URL,
		UserAgent: cfg.UserAgent,
		Timeout:   cfg.Timeout,
		Observer:  obs,
	})
}

func newMailer(cfg *config.Config, dryRun bool, out io.Writer) (notifier.Mailer, error) {
	if dryRun {
		return notifier.NewDryRunMailer(out), nil
	}
	if err := cfg.ValidateSMTP(); err != nil {
		return nil, fmt.Errorf("invalid config: %w (use --dry-run to print the e-mail instead)", err)
	}
	return notifier.NewSMTPMailer(notifier.SMTPConfig{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
		FromName: cfg.SMTP.FromName,
		TLS:      cfg.SMTP.TLS,
		Timeout:  cfg.SMTP.Timeout,
	})
}

// runDeliver is the main command logic
func runDeliver(cmd *cobra.Command, opts *options) error {
	cfg, format, err := setup(cmd, opts)
	if err != nil {
		return err
	}

	recipient := opts.recipient
	if recipient == "" {
		recipient = cfg.RecipientAddress()
	}
	if recipient == "" {
		return config.ErrNoRecipient
	}

	// Keep stdout clean for the JSON status.
	mailOut := cmd.OutOrStdout()
	if format == FormatJSON {
		mailOut = cmd.ErrOrStderr()
	}
	mailer, err := newMailer(cfg, opts.dryRun, mailOut)
	if err != nil {
		return err
	}

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	obs := observe.NewLogObserver()
	s := newScraper(cfg, obs)
	p := pipeline.New(
		s,
		notifier.New(mailer, obs),
		pipeline.WithObserver(obs),
		pipeline.WithLocation(loc),
		pipeline.WithTargetDate(opts.date),
	)

	logger.Info("Starting report delivery", logger.Fields{"url": s.URL(), "recipient": recipient, "target": p.TargetDate(), "dry_run": opts.dryRun})

	status := p.Run(cmd.Context(), recipient)

	if err := WriteStatus(cmd.OutOrStdout(), status, format); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	if status.Status == report.StatusError {
		return ErrRunFailed
	}
	return nil
}

// runExtract prints the report without sending it.
func runExtract(cmd *cobra.Command, opts *options) error {
	cfg, format, err := setup(cmd, opts)
	if err != nil {
		return err
	}

	loc, err := cfg.Location()
	if err != nil {
		return err
	}
	target := report.ParseDate(opts.date)
	if target == "" {
		target = report.FormatDate(time.Now().In(loc))
	}

	obs := observe.NewLogObserver()

	var markup string
	if opts.file != "" {
		data, err := os.ReadFile(opts.file)
		if err != nil {
			return fmt.Errorf("reading markup: %w", err)
		}
		markup = string(data)
	} else {
		markup, err = newScraper(cfg, obs).Fetch(cmd.Context())
		if err != nil {
			return err
		}
	}

	r := extract.New(obs).Extract(markup, target)
	if err := WriteReport(cmd.OutOrStdout(), r, format); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

// Execute runs the CLI
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		if !errors.Is(err, ErrRunFailed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		stop()
		os.Exit(ExitError)
	}
}
