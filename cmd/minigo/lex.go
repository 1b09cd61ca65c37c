package main

import (
	"fmt"
	"io"
	"os"

	"github.com/nihei9/minigo/driver"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "lex [<source file path>]",
		Short: "Print the tokens of a source",
		Example: `  minigo lex main.go
  echo 'var x int' | minigo lex`,
		Args: cobra.MaximumNArgs(1),
		RunE: runLex,
	}
	rootCmd.AddCommand(cmd)
}

func runLex(cmd *cobra.Command, args []string) (retErr error) {
	defer recoverPanic(&retErr)

	var src io.Reader = os.Stdin
	if len(args) > 0 {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("Cannot open the source file %s: %w", args[0], err)
		}
		defer f.Close()
		src = f
	}

	toks, lexErrs, err := driver.Tokenize(src)
	if err != nil {
		return err
	}
	printTokens(os.Stdout, toks, lexErrs)
	if len(lexErrs) > 0 {
		return fmt.Errorf("%v unknown lexeme(s) found", len(lexErrs))
	}
	return nil
}

func printTokens(w io.Writer, toks []*driver.Token, lexErrs []*driver.LexicalError) {
	for _, tok := range toks {
		fmt.Fprintln(w, tok)
	}
	for _, e := range lexErrs {
		fmt.Fprintln(w, e)
	}
}
