package main

import (
	"fmt"
	"io"
	"os"

	"github.com/nihei9/minigo/tester"
	"github.com/spf13/cobra"
)

var testFlags = struct {
	verbose *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "test <test file path>|<test directory path>",
		Short:   "Run checker test cases",
		Example: `  minigo test tester/testdata`,
		Args:    cobra.ExactArgs(1),
		RunE:    runTest,
	}
	testFlags.verbose = cmd.Flags().BoolP("verbose", "v", false, "print passed test cases too")
	rootCmd.AddCommand(cmd)
}

func runTest(cmd *cobra.Command, args []string) (retErr error) {
	defer recoverPanic(&retErr)

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	gram, err := cfg.LoadGrammar()
	if err != nil {
		return fmt.Errorf("Cannot read the grammar: %w", err)
	}

	cs := tester.ListTestCases(args[0])
	if len(cs) == 0 {
		return fmt.Errorf("no test case was found in %v", args[0])
	}
	t := &tester.Tester{
		Grammar: gram,
		Cases:   cs,
		Options: cfg.AnalyzerOptions(),
	}
	failed := printTestResults(os.Stdout, t.Run(), *testFlags.verbose)
	if failed > 0 {
		return fmt.Errorf("%v of %v test case(s) failed", failed, len(cs))
	}
	return nil
}

func printTestResults(w io.Writer, rs []*tester.TestResult, verbose bool) int {
	failed := 0
	for _, r := range rs {
		if r.Error != nil {
			failed++
		} else if !verbose {
			continue
		}
		fmt.Fprintln(w, r)
	}
	fmt.Fprintf(w, "%v passed, %v failed\n", len(rs)-failed, failed)
	return failed
}
