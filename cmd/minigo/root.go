package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/nihei9/minigo/config"
	"github.com/spf13/cobra"
)

var rootFlags = struct {
	config *string
}{}

var rootCmd = &cobra.Command{
	Use:   "minigo",
	Short: "Check programs written in a small Go-like language",
	Long: `minigo provides the following features:
- Checks the syntax and the static semantics of source files.
- Regenerates and describes the LL(1) tables driving the checker.
- Runs regression test cases for the checker.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func init() {
	rootFlags.config = rootCmd.PersistentFlags().StringP("config", "c", "", "config file path (default ./"+config.FileName+" if it exists)")
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return err
	}
	return nil
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Find(*rootFlags.config)
	if err != nil {
		return nil, fmt.Errorf("Cannot read the config file: %w", err)
	}
	return cfg, nil
}

// recoverPanic turns a panic into an error and prints its stack trace.
func recoverPanic(retErr *error) {
	v := recover()
	if v == nil {
		return
	}
	err, ok := v.(error)
	if !ok {
		err = fmt.Errorf("an unexpected error occurred: %v", v)
	}
	fmt.Fprintf(os.Stderr, "%v:\n%v", err, string(debug.Stack()))
	*retErr = err
}
