package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"i18n-walker/internal/config"
	"i18n-walker/internal/extractor"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// Execute runs the CLI application.
func Execute() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{
		Out:     os.Stderr,
		NoColor: !isatty.IsTerminal(os.Stderr.Fd()),
	})

	if err := rootCmd().Execute(); err != nil {
		log.Error().Err(err).Msg("Run failed")
		os.Exit(1)
	}
}

// flags holds the raw command-line values. Only flags the user actually set
// are turned into overrides.
type flags struct {
	configFile       string
	verbose          bool
	sources          []string
	outputDir        string
	clean            bool
	recommend        bool
	dryRun           bool
	translators      []string
	htmlPatterns     []string
	exceptionObjects []string
	exceptionFuncs   []string
	defaultCatalog   string
}

func rootCmd() *cobra.Command {
	f := &flags{}

	cmd := &cobra.Command{
		Use:   "i18n-walker [flags] [source-glob...]",
		Short: "Extract translatable phrases and sync them into JSON locale catalogs",
		Long: `Scans JavaScript/TypeScript sources, HTML/handlebars templates and text files
for translator calls such as __('Hello'), and adds every phrase found to the
JSON catalogs in the output directory without touching existing translations.

With --recommend, string literals and bare markup text that look untranslated
are reported. With --clean, catalog keys that were not found are removed.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, f, args)
		},
	}

	fs := cmd.Flags()
	fs.StringVar(&f.configFile, "config", "", "Config file (default .i18n-walker.yaml in the working directory)")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "Enable debug logging")
	fs.StringArrayVarP(&f.sources, "src", "s", nil, "Source glob to scan, repeatable (positional arguments are added too)")
	fs.StringVarP(&f.outputDir, "out", "o", "", "Directory holding the JSON catalogs")
	fs.BoolVar(&f.clean, "clean", false, "Remove catalog keys that were not found")
	fs.BoolVar(&f.recommend, "recommend", false, "Report strings that look untranslated")
	fs.BoolVar(&f.dryRun, "dry-run", false, "Compute changes without writing catalogs")
	fs.StringSliceVar(&f.translators, "translator", nil, "Translator function names")
	fs.StringArrayVar(&f.htmlPatterns, "html-pattern", nil, "Regular expression with one capture group for template translator calls, repeatable")
	fs.StringSliceVar(&f.exceptionObjects, "exception-object", nil, "Objects whose method calls are never scanned")
	fs.StringSliceVar(&f.exceptionFuncs, "exception-function", nil, "Functions whose calls are never scanned")
	fs.StringVar(&f.defaultCatalog, "default-catalog", "", "File name of the catalog created when none exists")

	return cmd
}

func run(cmd *cobra.Command, f *flags, args []string) error {
	ctx, cancel := setupContext()
	defer cancel()

	if f.verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	opts, err := config.Load(f.configFile)
	if err != nil {
		return err
	}

	ex, err := extractor.New(opts, log.Logger)
	if err != nil {
		return err
	}
	if err := ex.Reconfigure(overrides(cmd, f, args)); err != nil {
		return err
	}

	if len(ex.Options().Sources) == 0 {
		return errors.New("no source patterns given: pass globs as arguments or with --src")
	}

	res, err := ex.Run(ctx)
	if err != nil {
		return err
	}

	log.Info().
		Int("files", res.Files).
		Int("phrases", res.Phrases.Len()).
		Int("added", len(res.Report.Added)).
		Int("removed", len(res.Report.Removed)).
		Bool("dry_run", ex.Options().DryRun).
		Msg("Extraction complete")

	return nil
}

// overrides turns the flags that were set on the command line into config
// overrides. Positional arguments are appended to --src.
func overrides(cmd *cobra.Command, f *flags, args []string) config.Overrides {
	var ov config.Overrides
	changed := cmd.Flags().Changed

	if changed("src") || len(args) > 0 {
		sources := append(append([]string(nil), f.sources...), args...)
		ov.Sources = &sources
	}
	if changed("out") {
		ov.OutputDir = &f.outputDir
	}
	if changed("clean") {
		ov.Clean = &f.clean
	}
	if changed("recommend") {
		ov.Recommend = &f.recommend
	}
	if changed("dry-run") {
		ov.DryRun = &f.dryRun
	}
	if changed("translator") {
		ov.TranslatorFunctions = &f.translators
	}
	if changed("html-pattern") {
		ov.HTMLTranslatorPatterns = &f.htmlPatterns
	}
	if changed("exception-object") {
		ov.ExceptionObjectNames = &f.exceptionObjects
	}
	if changed("exception-function") {
		ov.ExceptionFunctions = &f.exceptionFuncs
	}
	if changed("default-catalog") {
		ov.DefaultCatalog = &f.defaultCatalog
	}

	return ov
}

// setupContext creates a cancellable context with signal handling.
func setupContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		log.Warn().Msg("Received shutdown signal, cancelling...")
		cancel()
	}()

	return ctx, cancel
}
