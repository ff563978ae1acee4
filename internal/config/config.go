package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/bblfsh/uastclient/codec"
	"github.com/bblfsh/uastclient/internal/exit"
	"github.com/bblfsh/uastclient/uast"
)

var (
	ErrNoArguments   = errors.New("no arguments provided")
	ErrNoInputFiles  = errors.New("no input files specified")
	ErrQueryAndOrder = errors.New("query and order are mutually exclusive")
	ErrNegativeLimit = errors.New("limit cannot be negative")
	ErrUnknownFormat = errors.New("cannot infer input format")
)

// Config is the resolved configuration of one uastq invocation.
type Config struct {
	Files []string

	Query string
	Order uast.Order

	// Input is the format of every input file; nil means infer from the
	// file extension.
	Input  *codec.Format
	Output codec.Format
	Array  bool
	Types  bool
	Limit  int // 0 = unlimited
	Debug  bool
}

// fileConfig is the YAML document accepted by -config. Flags given on the
// command line take precedence over it.
type fileConfig struct {
	Query  string `yaml:"query"`
	Order  string `yaml:"order"`
	Input  string `yaml:"input"`
	Output string `yaml:"output"`
	Array  bool   `yaml:"array"`
	Types  bool   `yaml:"types"`
	Limit  int    `yaml:"limit"`
	Debug  bool   `yaml:"debug"`
}

func defaults() fileConfig {
	return fileConfig{Output: "yaml"}
}

// InputFormat returns the codec for filename.
func (c *Config) InputFormat(filename string) (codec.Format, error) {
	if c.Input != nil {
		return *c.Input, nil
	}
	return FormatForFile(filename)
}

// FormatForFile infers a codec from the file extension.
func FormatForFile(filename string) (codec.Format, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".uast", ".bin":
		return codec.Binary, nil
	case ".yaml", ".yml":
		return codec.YAML, nil
	case ".json":
		return codec.JSON, nil
	}
	return 0, fmt.Errorf("%w for %s, use -input", ErrUnknownFormat, filename)
}

// Validate checks the configuration; input files must exist.
func (c *Config) Validate() error {
	if len(c.Files) == 0 {
		return ErrNoInputFiles
	}
	for _, file := range c.Files {
		if _, err := os.Stat(file); err != nil {
			return fmt.Errorf("input file %s not found: %w", file, err)
		}
	}
	if c.Limit < 0 {
		return ErrNegativeLimit
	}
	return nil
}

// Parse parses command-line arguments and returns a validated Config.
// If parsing fails or help is requested, returns nil config and exit result.
func Parse(args []string) (*Config, *exit.Result) {
	if len(args) == 0 {
		return nil, exit.Usagef(Usage(), "%v", ErrNoArguments)
	}

	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)
	fs.Usage = func() {}
	fs.SetOutput(io.Discard)

	var (
		configFile = fs.String("config", "", "YAML file with default settings")
		query      = fs.String("query", "", "XPath query, or JSONPath when starting with $")
		order      = fs.String("order", "", "Traversal order when no query is given")
		input      = fs.String("input", "", "Input format: binary, yaml or json")
		output     = fs.String("output", "", "Output format: yaml or json")
		array      = fs.Bool("array", false, "Print all results of a file as one sequence")
		types      = fs.Bool("types", false, "Print node types instead of whole nodes")
		limit      = fs.Int("limit", 0, "Maximum results per file (0 for unlimited)")
		debug      = fs.Bool("debug", false, "Enable debug logging")
	)
	fs.StringVar(query, "q", "", "Shorthand for -query")

	if err := fs.Parse(args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, exit.Success(Usage())
		}
		return nil, exit.Usagef(Usage(), "failed to parse arguments: %v", err)
	}

	settings := defaults()
	if *configFile != "" {
		if err := loadConfigFile(*configFile, &settings); err != nil {
			return nil, exit.Usagef(Usage(), "failed to load config file: %v", err)
		}
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "query", "q":
			settings.Query = *query
		case "order":
			settings.Order = *order
		case "input":
			settings.Input = *input
		case "output":
			settings.Output = *output
		case "array":
			settings.Array = *array
		case "types":
			settings.Types = *types
		case "limit":
			settings.Limit = *limit
		case "debug":
			settings.Debug = *debug
		}
	})

	cfg, err := settings.resolve(fs.Args())
	if err != nil {
		return nil, exit.Usagef(Usage(), "%v", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, exit.Usagef(Usage(), "%v", err)
	}
	return cfg, nil
}

func (s fileConfig) resolve(files []string) (*Config, error) {
	cfg := &Config{
		Files: files,
		Query: s.Query,
		Order: uast.PreOrder,
		Array: s.Array,
		Types: s.Types,
		Limit: s.Limit,
		Debug: s.Debug,
	}

	if s.Order != "" {
		o, err := uast.ParseOrder(s.Order)
		if err != nil {
			return nil, err
		}
		if s.Query != "" {
			return nil, ErrQueryAndOrder
		}
		cfg.Order = o
	}

	if s.Input != "" {
		f, err := codec.ParseFormat(s.Input)
		if err != nil {
			return nil, err
		}
		cfg.Input = &f
	}

	out, err := codec.ParseFormat(s.Output)
	if err != nil {
		return nil, err
	}
	if out == codec.Binary {
		return nil, fmt.Errorf("output format %s is not printable", out)
	}
	cfg.Output = out

	return cfg, nil
}

func loadConfigFile(filename string, into *fileConfig) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	if err := yaml.UnmarshalWithOptions(data, into, yaml.DisallowUnknownField()); err != nil {
		return fmt.Errorf("invalid config %s: %w", filename, err)
	}
	return nil
}

// Usage returns a usage string for the CLI tool.
func Usage() string {
	return `uastq - query and walk UAST files

Usage: uastq [options] <file1> [file2] ...

Options:
  --query, -q EXPR      XPath query, or JSONPath when EXPR starts with $
  --order NAME          Walk the tree: pre-order, post-order, level-order,
                        position-order, children or any (default: pre-order)
  --input FORMAT        Input format: binary, yaml or json (default: by extension)
  --output FORMAT       Output format: yaml or json (default: yaml)
  --array               Print all results of a file as one sequence
  --types               Print node types instead of whole nodes
  --limit N             Maximum results per file (0 for unlimited)
  --config FILE         YAML file with default settings
  --debug               Enable debug logging
  -h, --help            Show this help message

Examples:
  uastq -q '//uast:Identifier' tree.uast     # All identifiers
  uastq -q 'count(//*)' tree.json           # Number of elements
  uastq -q '$..Name' tree.yaml              # JSONPath
  uastq --order position-order --types a.uast`
}
