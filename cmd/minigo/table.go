package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	verr "github.com/nihei9/minigo/error"
	"github.com/nihei9/minigo/grammar"
	"github.com/nihei9/minigo/semantic"
	"github.com/spf13/cobra"
)

var tableFlags = struct {
	output *string
	check  *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:   "table [<productions file path>]",
		Short: "Compute the LL(1) parse table of a production list",
		Long: `table computes the parse table from FIRST and FOLLOW of a production list
and writes it as CSV. Without a path, the configured or embedded production
list is used. Conflicting cells are reported and no table is written.`,
		Example: `  minigo table productions.csv -o parse_table.csv
  minigo table --check`,
		Args: cobra.MaximumNArgs(1),
		RunE: runTable,
	}
	tableFlags.output = cmd.Flags().StringP("output", "o", "", "output file path (default stdout)")
	tableFlags.check = cmd.Flags().Bool("check", false, "compare the computed table with the configured or embedded one instead of writing it")
	rootCmd.AddCommand(cmd)
}

func runTable(cmd *cobra.Command, args []string) (retErr error) {
	defer recoverPanic(&retErr)

	var prods []*grammar.Production
	var current *grammar.ParsingTable
	if len(args) > 0 {
		var err error
		prods, err = readProductions(args[0])
		if err != nil {
			return err
		}
	} else {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		gram, err := cfg.LoadGrammar()
		if err != nil {
			return fmt.Errorf("Cannot read the grammar: %w", err)
		}
		prods = gram.Productions
		current = gram.Table
	}

	g := &grammar.Grammar{
		Productions: prods,
	}
	err := g.CheckActions(len(semantic.Catalog()))
	if err != nil {
		return err
	}
	tab, err := grammar.BuildParsingTable(prods)
	if err != nil {
		var cErr *grammar.ConflictError
		if errors.As(err, &cErr) {
			return fmt.Errorf("The production list is not LL(1): %w", err)
		}
		return err
	}

	if *tableFlags.check {
		if current == nil {
			return fmt.Errorf("--check compares with the configured or embedded table; do not pass a path")
		}
		return compareTables(current, tab)
	}

	var w io.Writer = os.Stdout
	if *tableFlags.output != "" {
		f, err := os.OpenFile(*tableFlags.output, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
		if err != nil {
			return fmt.Errorf("Cannot open the output file %s: %w", *tableFlags.output, err)
		}
		defer f.Close()
		w = f
	}
	return grammar.WriteParsingTable(w, tab)
}

func readProductions(path string) ([]*grammar.Production, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("Cannot open the productions file %s: %w", path, err)
	}
	defer f.Close()

	prods, err := grammar.ReadProductions(f, path)
	if err != nil {
		var specErrs verr.SpecErrors
		if errors.As(err, &specErrs) {
			for _, e := range specErrs {
				e.FilePath = path
			}
		}
		return nil, err
	}
	return prods, nil
}

func compareTables(expected, actual *grammar.ParsingTable) error {
	var e, a bytes.Buffer
	err := grammar.WriteParsingTable(&e, expected)
	if err != nil {
		return err
	}
	err = grammar.WriteParsingTable(&a, actual)
	if err != nil {
		return err
	}
	if !bytes.Equal(e.Bytes(), a.Bytes()) {
		return fmt.Errorf("the parse table is out of date; regenerate it with `minigo table`")
	}
	fmt.Fprintln(os.Stdout, "the parse table is up to date")
	return nil
}
