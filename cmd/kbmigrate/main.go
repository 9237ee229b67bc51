package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/kbmigrate"
	"github.com/fwojciec/kbmigrate/fs"
	"github.com/fwojciec/kbmigrate/goquery"
	"github.com/fwojciec/kbmigrate/htmltomarkdown"
	"github.com/fwojciec/kbmigrate/migrate"
	"github.com/fwojciec/kbmigrate/salesforce"
	kbslog "github.com/fwojciec/kbmigrate/slog"
	"github.com/fwojciec/kbmigrate/sqlite"
	"github.com/fwojciec/kbmigrate/yaml"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run(). The config file's db_path
	// takes precedence.
	DBPath string

	// SQLite database used by the run ledger.
	DB *sqlite.DB

	// SessionLoader authenticates Salesforce requests. Defaults to the
	// Salesforce CLI session of the configured org.
	SessionLoader salesforce.SessionLoader
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("kbmigrate"),
		kong.Description("Migrate a MindTouch HTML export into Salesforce Knowledge."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'kbmigrate --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	deps.Logger = logger

	cfg := kbmigrate.DefaultConfig()
	if cli.Config != "" {
		if cfg, err = yaml.LoadConfig(cli.Config); err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
	}
	if cmd == "run" {
		cli.Run.apply(&cfg)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	deps.Config = cfg

	transformer := goquery.NewTransformer(fs.NewResolver(),
		goquery.WithAttachmentExtensions(cfg.AttachmentExtensions),
		goquery.WithLogger(logger),
	)
	deps.Transformer = kbslog.NewLoggingTransformer(transformer, logger)
	deps.Classifier = kbslog.NewLoggingClassifier(
		goquery.NewClassifier(goquery.WithMinContentLength(cfg.MinContentLength)),
		logger,
	)
	deps.Renderer = htmltomarkdown.NewRenderer()

	defer m.Close()

	switch cmd {
	case "run":
		if err := m.wireRun(ctx, deps, cli.Run.Resume, stderr); err != nil {
			return err
		}
	case "history":
		if err := m.openDB(cfg, stderr); err != nil {
			return err
		}
		deps.Results = sqlite.NewResultService(m.DB)
	}

	return kongCtx.Run(deps)
}

// wireRun builds the migrator for the run command.
func (m *Main) wireRun(ctx context.Context, deps *Dependencies, resume bool, stderr io.Writer) error {
	cfg := deps.Config
	logger := deps.Logger

	exportRoot := cfg.ExportRoot
	if exportRoot == "" {
		exportRoot = fs.DetectExportRoot(cfg.ArticlesRoot)
		if exportRoot == "" {
			logger.Warn("could not detect export root; cross-folder references will not resolve",
				"articles_root", cfg.ArticlesRoot)
		}
	}

	migrator := &migrate.Migrator{
		Transformer: deps.Transformer,
		Config:      cfg,
		ExportRoot:  exportRoot,
		Logger:      logger,
	}
	if cfg.SkipCategoryPages {
		migrator.Classifier = deps.Classifier
	}

	if !cfg.DryRun {
		loader := m.SessionLoader
		if loader == nil {
			loader = &salesforce.CLISessionLoader{TargetOrg: cfg.TargetOrg}
		}
		client := salesforce.NewClient(loader,
			salesforce.WithAPIVersion(cfg.APIVersion),
			salesforce.WithSchema(salesforce.SchemaFromConfig(cfg)),
			salesforce.WithRequestsPerSecond(cfg.RequestsPerSecond),
			salesforce.WithTimeout(cfg.RequestTimeout),
		)
		if _, err := client.Session(ctx); err != nil {
			fmt.Fprintln(stderr, "Hint: Authenticate with 'sf org login web' or use --dry-run")
			return fmt.Errorf("failed to get Salesforce session: %w", err)
		}
		migrator.Uploader = kbslog.NewLoggingUploader(client, logger)
		migrator.Articles = kbslog.NewLoggingArticleService(client, logger)
	}

	if !cfg.DryRun || resume {
		if err := m.openDB(cfg, stderr); err != nil {
			return err
		}
		results := sqlite.NewResultService(m.DB)
		deps.Results = results
		migrator.Results = results

		if resume {
			ledger, err := migrate.LoadLedger(ctx, results, 0)
			if err != nil {
				return fmt.Errorf("failed to load ledger: %w", err)
			}
			logger.Info("resuming", "migrated", ledger.Len())
			migrator.Ledger = ledger
		}
	}

	deps.Migrator = migrator
	deps.Reports = fs.NewReportStore(cfg.ArticlesRoot)
	return nil
}

func (m *Main) openDB(cfg kbmigrate.Config, stderr io.Writer) error {
	path := m.DBPath
	if cfg.DBPath != "" {
		path = cfg.DBPath
	}
	m.DB = sqlite.NewDB(path)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set KBMIGRATE_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", path, err)
	}
	return nil
}

func defaultDBPath() string {
	if path := os.Getenv("KBMIGRATE_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "kbmigrate.db"
	}
	dir := filepath.Join(home, ".kbmigrate")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "kbmigrate.db")
}
