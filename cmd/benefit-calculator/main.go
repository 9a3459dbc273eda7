package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/iwvelando/benefit-calculator/internal/calculator"
	"github.com/iwvelando/benefit-calculator/internal/config"
	"github.com/iwvelando/benefit-calculator/internal/history"
	"github.com/iwvelando/benefit-calculator/internal/logging"
	"github.com/iwvelando/benefit-calculator/internal/wizard"
	"github.com/iwvelando/benefit-calculator/pkg/benefit"
	"github.com/iwvelando/benefit-calculator/pkg/constants"
	"github.com/iwvelando/benefit-calculator/pkg/format"
	"github.com/iwvelando/benefit-calculator/pkg/output"
	"github.com/iwvelando/benefit-calculator/pkg/validation"
)

// loadConfiguration reads the config file. A missing file is allowed when
// the purchase comes from somewhere else, in which case defaults are used.
func loadConfiguration(path string, allowMissing bool) (*config.Configuration, error) {
	if _, err := os.Stat(path); allowMissing && errors.Is(err, fs.ErrNotExist) {
		return config.LoadConfigurationFromReader(strings.NewReader(""))
	}
	return config.LoadConfiguration(path)
}

func main() {
	// Process command line flags first to get config location
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv, json")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	interactive := flag.Bool("interactive", false, "enter the purchase step by step instead of reading it from the config")
	effective := flag.Bool("effective", false, "compute the effective purchase amount from the effectiveAmount config section")
	save := flag.Bool("save", false, "save the calculation to history")
	showHistory := flag.Bool("history", false, "print saved calculations")
	clearHistory := flag.Bool("clear-history", false, "delete saved calculations")
	flag.Parse()

	// Environment overrides may come from a .env file; it is optional.
	_ = godotenv.Load()

	conf, err := loadConfiguration(*configLocation, *interactive || *showHistory || *clearHistory)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		os.Exit(1)
	}

	logger, err := logging.New(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	// Determine output format (CLI override takes precedence over config)
	outputFormat := conf.Output.Format
	if *outputFormatFlag != "" {
		outputFormat = *outputFormatFlag
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}
	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		logger.Fatal(err.Error(), zap.String("op", "main"))
	}

	formatter, err := format.NewFormatter(conf.Output.Currency, conf.Output.Locale)
	if err != nil {
		logger.Fatal("failed to initialize currency formatter",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	if err := run(context.Background(), logger, conf, formatter, outputFormat, runOptions{
		interactive:  *interactive,
		effective:    *effective,
		save:         *save,
		showHistory:  *showHistory,
		clearHistory: *clearHistory,
		in:           os.Stdin,
		out:          os.Stdout,
	}); err != nil {
		logger.Fatal("benefit calculation failed",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
}

type runOptions struct {
	interactive  bool
	effective    bool
	save         bool
	showHistory  bool
	clearHistory bool
	in           io.Reader
	out          io.Writer
}

func (o runOptions) needsHistory() bool {
	return o.save || o.showHistory || o.clearHistory
}

func run(ctx context.Context, logger *zap.Logger, conf *config.Configuration, formatter *format.Formatter, outputFormat string, opts runOptions) error {
	var hist *history.History
	if opts.needsHistory() {
		store, err := history.Open(conf.History)
		if err != nil {
			return err
		}
		if closer, ok := store.(io.Closer); ok {
			defer func() {
				_ = closer.Close()
			}()
		}
		hist = history.New(store, logger)
	}
	service := calculator.NewService(logger, hist, nil)

	if opts.effective {
		maxAmount, percentage, err := conf.EffectiveAmount.Values()
		if err != nil {
			return err
		}
		amount, ok := service.EffectiveAmount(ctx, maxAmount, percentage)
		if !ok {
			return validation.ErrMaxCashbackRequired
		}
		_, err = fmt.Fprintf(opts.out, "Effective purchase amount: %s\n", formatter.Currency(amount))
		return err
	}

	if opts.clearHistory {
		if err := hist.Clear(ctx); err != nil {
			return err
		}
		_, err := fmt.Fprintln(opts.out, "History cleared.")
		return err
	}
	if opts.showHistory {
		entries, err := hist.List(ctx)
		if err != nil {
			return err
		}
		return output.WriteHistory(opts.out, outputFormat, entries, formatter)
	}

	var (
		params   benefit.Params
		warnings []string
		err      error
	)
	if opts.interactive {
		session := wizard.New()
		params, err = wizard.NewPrompter(session, opts.in, opts.out).Run()
		warnings = session.Warnings()
	} else {
		params, err = conf.Purchase.CompletedParams()
		warnings = conf.ValidateConfiguration()
		for _, warning := range warnings {
			logger.Warn("Configuration warning: "+warning, zap.String("op", "main"))
		}
	}
	if err != nil {
		return err
	}

	var result benefit.Result
	if opts.save {
		entry, err := service.CalculateAndSave(ctx, params)
		if err != nil {
			return err
		}
		logger.Info("calculation saved to history",
			zap.String("op", "main"),
			zap.String("id", entry.ID),
		)
		result = entry.Result
	} else {
		result = service.Calculate(ctx, params)
	}

	return output.Write(opts.out, outputFormat, output.NewReport(params, result, formatter, warnings), formatter)
}
