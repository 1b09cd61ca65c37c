// Package config reads minigo.toml.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/nihei9/minigo/driver"
	"github.com/nihei9/minigo/grammar"
)

// FileName is the configuration file looked up in the working directory
// when no path is given.
const FileName = "minigo.toml"

type Config struct {
	Grammar  GrammarConfig  `toml:"grammar"`
	Analysis AnalysisConfig `toml:"analysis"`
	Log      LogConfig      `toml:"log"`
	Report   ReportConfig   `toml:"report"`

	// Path is the file the configuration was read from. It is empty for the
	// defaults.
	Path string `toml:"-"`
}

// GrammarConfig replaces the embedded tables. An empty ParseTable makes the
// parse table be computed from Productions.
type GrammarConfig struct {
	Productions string `toml:"productions"`
	ParseTable  string `toml:"parse_table"`
}

type AnalysisConfig struct {
	// MaxDiagnostics stops an analysis after that many diagnostics. 0 means
	// no limit.
	MaxDiagnostics int `toml:"max_diagnostics"`

	// StrictLookahead disables the empty derivation of a nullable
	// non-terminal on a lookahead the parse table has no entry for.
	StrictLookahead bool `toml:"strict_lookahead"`
}

type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

type ReportConfig struct {
	Format string `toml:"format"`
}

func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Find loads path when it is not empty. Otherwise it loads FileName from the
// working directory if present and falls back to the defaults.
func Find(path string) (*Config, error) {
	if path != "" {
		return Load(path)
	}
	_, err := os.Stat(FileName)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}
	return Load(FileName)
}

// Load reads a configuration file. Relative table paths are resolved against
// the directory of the file.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open the config file: %w", err)
	}
	defer f.Close()

	cfg, err := Read(f, filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("%v: %w", path, err)
	}
	cfg.Path = path
	return cfg, nil
}

// Read decodes a configuration. dir is the base of relative table paths.
func Read(src io.Reader, dir string) (*Config, error) {
	var cfg Config
	md, err := toml.NewDecoder(src).Decode(&cfg)
	if err != nil {
		var perr toml.ParseError
		if errors.As(err, &perr) {
			return nil, fmt.Errorf("%v", perr.ErrorWithPosition())
		}
		return nil, err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("unknown keys: %v", strings.Join(keys, ", "))
	}

	cfg.applyDefaults()
	cfg.resolvePaths(dir)

	err = cfg.Validate()
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Log.Level == "" {
		c.Log.Level = "warn"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	if c.Report.Format == "" {
		c.Report.Format = string(driver.ReportFormatText)
	}
}

func (c *Config) resolvePaths(dir string) {
	if dir == "" {
		return
	}
	if c.Grammar.Productions != "" && !filepath.IsAbs(c.Grammar.Productions) {
		c.Grammar.Productions = filepath.Join(dir, c.Grammar.Productions)
	}
	if c.Grammar.ParseTable != "" && !filepath.IsAbs(c.Grammar.ParseTable) {
		c.Grammar.ParseTable = filepath.Join(dir, c.Grammar.ParseTable)
	}
}

func (c *Config) Validate() error {
	if c.Grammar.ParseTable != "" && c.Grammar.Productions == "" {
		return fmt.Errorf("grammar.parse_table requires grammar.productions")
	}
	if c.Analysis.MaxDiagnostics < 0 {
		return fmt.Errorf("analysis.max_diagnostics must be 0 or greater: %v", c.Analysis.MaxDiagnostics)
	}
	_, err := ParseLogLevel(c.Log.Level)
	if err != nil {
		return err
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format: %v (text or json is available)", c.Log.Format)
	}
	_, err = driver.ParseReportFormat(c.Report.Format)
	if err != nil {
		return err
	}
	return nil
}

func ParseLogLevel(s string) (slog.Level, error) {
	var lv slog.Level
	err := lv.UnmarshalText([]byte(s))
	if err != nil {
		return 0, fmt.Errorf("unknown log level: %v (debug, info, warn, or error is available)", s)
	}
	return lv, nil
}

// LoadGrammar returns the tables the configuration names, or the embedded
// ones.
func (c *Config) LoadGrammar() (*grammar.Grammar, error) {
	if c.Grammar.Productions == "" {
		return grammar.Default()
	}
	return grammar.Load(c.Grammar.Productions, c.Grammar.ParseTable)
}

// NewLogger builds a logger writing to w at the configured level.
func (c *Config) NewLogger(w io.Writer) (*slog.Logger, error) {
	lv, err := ParseLogLevel(c.Log.Level)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{
		Level: lv,
	}
	switch c.Log.Format {
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	case "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	}
	return nil, fmt.Errorf("unknown log format: %v", c.Log.Format)
}

// AnalyzerOptions translates the analysis section into driver options.
func (c *Config) AnalyzerOptions() []driver.AnalyzerOption {
	var opts []driver.AnalyzerOption
	if c.Analysis.MaxDiagnostics > 0 {
		opts = append(opts, driver.MaxDiagnostics(c.Analysis.MaxDiagnostics))
	}
	if c.Analysis.StrictLookahead {
		opts = append(opts, driver.StrictLookahead())
	}
	return opts
}
