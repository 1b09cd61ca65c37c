package main

import (
	"fmt"
	"io"
	"os"

	"github.com/nihei9/minigo/config"
	"github.com/nihei9/minigo/driver"
	"github.com/nihei9/minigo/grammar"
	"github.com/spf13/cobra"
)

var checkFlags = struct {
	format         *string
	symbols        *bool
	tree           *bool
	logLevel       *string
	logFormat      *string
	maxDiagnostics *int
}{}

func init() {
	cmd := &cobra.Command{
		Use:   "check [<source file path>...]",
		Short: "Check source files",
		Example: `  minigo check main.go
  cat main.go | minigo check --format json`,
		RunE: runCheck,
	}
	checkFlags.format = cmd.Flags().StringP("format", "f", "", "report format: text, json, or yaml (default text)")
	checkFlags.symbols = cmd.Flags().Bool("symbols", false, "print the global declarations")
	checkFlags.tree = cmd.Flags().Bool("tree", false, "print the concrete syntax tree")
	checkFlags.logLevel = cmd.Flags().String("log-level", "", "log level: debug, info, warn, or error (default warn)")
	checkFlags.logFormat = cmd.Flags().String("log-format", "", "log format: text or json (default text)")
	checkFlags.maxDiagnostics = cmd.Flags().Int("max-diagnostics", 0, "stop after this many diagnostics (0 means no limit)")
	rootCmd.AddCommand(cmd)
}

func runCheck(cmd *cobra.Command, args []string) (retErr error) {
	defer recoverPanic(&retErr)

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if *checkFlags.format != "" {
		cfg.Report.Format = *checkFlags.format
	}
	if *checkFlags.logLevel != "" {
		cfg.Log.Level = *checkFlags.logLevel
	}
	if *checkFlags.logFormat != "" {
		cfg.Log.Format = *checkFlags.logFormat
	}
	if cmd.Flags().Changed("max-diagnostics") {
		cfg.Analysis.MaxDiagnostics = *checkFlags.maxDiagnostics
	}
	err = cfg.Validate()
	if err != nil {
		return err
	}

	format, err := driver.ParseReportFormat(cfg.Report.Format)
	if err != nil {
		return err
	}
	gram, err := cfg.LoadGrammar()
	if err != nil {
		return fmt.Errorf("Cannot read the grammar: %w", err)
	}

	if len(args) == 0 {
		ok, err := checkSource(os.Stdout, cfg, gram, format, "stdin", os.Stdin)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("the source was rejected")
		}
		return nil
	}

	rejected := 0
	for _, path := range args {
		ok, err := checkFile(os.Stdout, cfg, gram, format, path)
		if err != nil {
			return err
		}
		if !ok {
			rejected++
		}
	}
	if rejected > 0 {
		return fmt.Errorf("%v of %v source(s) rejected", rejected, len(args))
	}
	return nil
}

func checkFile(w io.Writer, cfg *config.Config, gram *grammar.Grammar, format driver.ReportFormat, path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, fmt.Errorf("Cannot open the source file %s: %w", path, err)
	}
	defer f.Close()

	return checkSource(w, cfg, gram, format, path, f)
}

func checkSource(w io.Writer, cfg *config.Config, gram *grammar.Grammar, format driver.ReportFormat, name string, src io.Reader) (bool, error) {
	logger, err := cfg.NewLogger(os.Stderr)
	if err != nil {
		return false, err
	}
	logger = logger.With("source", name)

	toks, err := driver.NewTokenStream(src)
	if err != nil {
		return false, err
	}
	opts := cfg.AnalyzerOptions()
	opts = append(opts, driver.Logger(logger))
	if *checkFlags.tree {
		opts = append(opts, driver.MakeCST())
	}
	a, err := driver.NewAnalyzer(toks, gram, opts...)
	if err != nil {
		return false, err
	}
	accepted, err := a.Analyze()
	if err != nil {
		return false, fmt.Errorf("%v: %w", name, err)
	}

	err = driver.WriteReport(w, format, driver.NewReport(name, a, accepted, *checkFlags.symbols))
	if err != nil {
		return false, err
	}
	if *checkFlags.tree && a.CST() != nil {
		driver.PrintTree(w, a.CST())
	}
	return accepted, nil
}
