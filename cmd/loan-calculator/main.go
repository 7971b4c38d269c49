package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/iwvelando/loan-calculator/internal/config"
	"github.com/iwvelando/loan-calculator/internal/logging"
	"github.com/iwvelando/loan-calculator/pkg/constants"
	"github.com/iwvelando/loan-calculator/pkg/format"
	"github.com/iwvelando/loan-calculator/pkg/loans"
	"github.com/iwvelando/loan-calculator/pkg/output"
	"github.com/iwvelando/loan-calculator/pkg/validation"
	"go.uber.org/zap"
)

// errReported marks failures that were already logged.
var errReported = errors.New("failure already reported")

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"%v\"}\n", err)
		}
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	flags := flag.NewFlagSet("loan-calculator", flag.ContinueOnError)
	configLocation := flags.String("config", constants.DefaultConfigFile, "path to loan description file")
	outputFormatFlag := flags.String("output-format", "", "type of output override: pretty, csv, json")
	logLevel := flags.String("log-level", "", "log level override (debug, info, warn, error)")
	summaryOnly := flags.Bool("summary", false, "omit the schedule table from pretty output")
	if err := flags.Parse(args); err != nil {
		return err
	}

	// Load the loan description to get logging configuration
	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		return fmt.Errorf("failed to load configuration at %s: %w", *configLocation, err)
	}

	logger, err := logging.New(conf.Logging, *logLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	// CLI override takes precedence over config
	outputFormat := conf.Output.Format
	if *outputFormatFlag != "" {
		outputFormat = *outputFormatFlag
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}
	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		logger.Error(err.Error(),
			zap.String("op", "main"),
		)
		return errReported
	}
	conf.Output.Format = outputFormat

	if err := conf.Validate(); err != nil {
		for _, e := range validation.Errors(err) {
			logger.Error("invalid loan description",
				zap.String("op", "main"),
				zap.Error(e),
			)
		}
		return errReported
	}

	for _, warning := range conf.ValidateConfiguration() {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	params, err := conf.ToParameters()
	if err != nil {
		logger.Error("failed to convert loan description",
			zap.String("op", "main"),
			zap.Error(err),
		)
		return errReported
	}

	result, err := loans.NewCalculator(logger).Calculate(params, conf.ToCosts())
	if err != nil {
		logger.Error("failed to calculate loan",
			zap.String("op", "main"),
			zap.Error(err),
		)
		return errReported
	}
	logger.Debug("loan calculated",
		zap.String("op", "main"),
		zap.Int("periods", len(result.Schedule)),
		zap.Float64("apr", result.APR),
		zap.Int("apr_iterations", result.APRSolution.Iterations),
	)

	switch outputFormat {
	case constants.OutputFormatPretty:
		formatter, err := format.New(conf.Output.Currency, conf.Output.Locale)
		if err != nil {
			logger.Error("invalid output settings",
				zap.String("op", "main"),
				zap.Error(err),
			)
			return errReported
		}
		err = output.PrettyFormat(stdout, result, output.Options{
			Formatter:   formatter,
			StartDate:   conf.Loan.StartDate,
			SummaryOnly: *summaryOnly,
		})
		if err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	case constants.OutputFormatCSV:
		if err := output.CsvFormat(stdout, result, conf.Loan.StartDate); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	case constants.OutputFormatJSON:
		if err := output.JSONFormat(stdout, result); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}

	return nil
}
