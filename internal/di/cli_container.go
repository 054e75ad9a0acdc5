package di

import (
	"flag"

	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/szabol/invoice-sorter/internal/config"
	"github.com/szabol/invoice-sorter/internal/core"
	"github.com/szabol/invoice-sorter/internal/factory"
	"github.com/szabol/invoice-sorter/internal/logging"
)

// CLIFlags contains all command line flags for the extraction CLI
type CLIFlags struct {
	// Input flags: exactly one of these should be set
	EmlFile string
	PdfFile string

	// Extraction flags
	PreferPage int

	// Output flags
	Verbose bool
	JSONLog bool

	// Config file overrides the flag-built configuration
	ConfigFile string
}

// ParseFlags parses command line flags and returns a CLIFlags struct
func ParseFlags() *CLIFlags {
	flags := &CLIFlags{}

	flag.StringVar(&flags.EmlFile, "eml", "", "Email file (.eml) to run body extraction on")
	flag.StringVar(&flags.PdfFile, "pdf", "", "PDF file to run POD extraction on")
	flag.IntVar(&flags.PreferPage, "prefer-page", 2, "PDF page scanned first for the POD (0 disables)")
	flag.BoolVar(&flags.Verbose, "verbose", false, "Enable verbose logging")
	flag.BoolVar(&flags.JSONLog, "json-log", false, "Output logs in JSON format")
	flag.StringVar(&flags.ConfigFile, "config", "", "Path to config file (overrides command line flags)")

	flag.Parse()
	return flags
}

// BuildCLIContainer creates a dependency injection container for the
// extraction CLI.
func BuildCLIContainer(flags *CLIFlags) (*dig.Container, error) {
	container := dig.New()

	// Register flags
	if err := container.Provide(func() *CLIFlags { return flags }); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(func(flags *CLIFlags) (*zap.Logger, error) {
		return logging.InitConsoleLogger(flags.Verbose, flags.JSONLog)
	}); err != nil {
		return nil, err
	}

	// Register configuration
	if err := container.Provide(func(flags *CLIFlags, logger *zap.Logger) (*config.Config, error) {
		if flags.ConfigFile != "" {
			cfg, err := config.New()
			if err != nil {
				return nil, err
			}
			logger.Info("Loaded configuration from file", zap.String("file", cfg.GetViper().ConfigFileUsed()))
			return cfg, nil
		}
		return createConfigFromFlags(flags), nil
	}); err != nil {
		return nil, err
	}

	// Register PDF factory and provider
	if err := container.Provide(factory.NewPdfFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(func(f *factory.PdfFactory) core.PdfTextProvider {
		return f.CreatePdfTextProvider()
	}); err != nil {
		return nil, err
	}

	// Register the extractors the CLI drives directly
	if err := container.Provide(core.NewNormalizer); err != nil {
		return nil, err
	}
	if err := container.Provide(core.NewMetadataExtractor); err != nil {
		return nil, err
	}
	if err := container.Provide(core.NewDeliveryPointExtractor); err != nil {
		return nil, err
	}

	// Register router from config
	if err := container.Provide(func(cfg *config.Config) (*core.Router, error) {
		rules, err := cfg.GetPrefixRules()
		if err != nil {
			return nil, err
		}
		return core.NewRouter(rules, cfg.GetFolders()), nil
	}); err != nil {
		return nil, err
	}

	return container, nil
}

// createConfigFromFlags creates a configuration from command line flags
func createConfigFromFlags(flags *CLIFlags) *config.Config {
	v := config.NewEmptyViper()
	v.Set("pdf.prefer_page", flags.PreferPage)
	return config.NewFromViper(v)
}
