package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/yakcss/css/literal"
	"github.com/yakcss/css/stylesheet"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "yakcss:", err)
		os.Exit(1)
	}
}

// run extracts the literal body read from a file or stdin and writes the
// resulting stylesheet to stdout.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("yakcss", flag.ContinueOnError)
	fs.SetOutput(stderr)
	kind := fs.String("kind", "styled", "literal kind: styled, mixin or keyframes")
	name := fs.String("name", "yak", "class, mixin or animation name")
	banner := fs.Bool("banner", false, "prefix the output with a YAK banner comment")
	check := fs.Bool("check", false, "check that the output is well formed")
	verbose := fs.Bool("v", false, "enable debug logging")
	configPath := fs.String("config", "", "read default flag values from a TOML file")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: yakcss [flags] [file]")
		fmt.Fprintln(stderr)
		fmt.Fprintln(stderr, "Reads the body of a template literal and prints the extracted CSS.")
		fmt.Fprintln(stderr)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if *configPath != "" {
		config, err := readConfig(*configPath)
		if err != nil {
			return err
		}
		set := make(map[string]bool)
		fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
		if !set["kind"] && config.Kind != "" {
			*kind = config.Kind
		}
		if !set["name"] && config.Name != "" {
			*name = config.Name
		}
		if !set["banner"] {
			*banner = config.Banner
		}
		if !set["check"] {
			*check = config.Check
		}
	}

	k, err := literal.ParseKind(*kind)
	if err != nil {
		return err
	}

	log := newLogger(stderr, *verbose)
	defer func() { _ = log.Sync() }()

	body, err := readInput(fs.Arg(0), stdin)
	if err != nil {
		return err
	}

	l := literal.New(*name, body)
	log.Debug("split literal",
		zap.String("kind", k.String()),
		zap.Int("chunks", len(l.Chunks)),
		zap.Int("exprs", len(l.Exprs)))

	r := literal.NewExtractor(log).Extract(l, k.State(*name))
	for _, expr := range r.Dropped {
		log.Warn("expression cannot be extracted", zap.String("expr", expr))
	}
	for _, v := range r.Variables {
		log.Debug("css variable", zap.String("name", v.Name), zap.String("expr", v.Expr))
	}

	var s stylesheet.Stylesheet
	switch {
	case !*banner:
		s.Append("", r.Declarations)
	case k == literal.Mixin:
		s.Append(stylesheet.ExportedMixinBanner(strings.Split(*name, ".")...), literal.Unwrap(r.Declarations))
	default:
		s.Append(stylesheet.ExtractedBanner, r.Declarations)
	}

	if *check {
		if err := stylesheet.Check(s.String()); err != nil {
			return fmt.Errorf("check: %w", err)
		}
	}

	if _, err := s.WriteTo(stdout); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	_, err = io.WriteString(stdout, "\n")
	return err
}

// readInput reads the named file, or stdin if path is empty or "-".
func readInput(path string, stdin io.Reader) (string, error) {
	if path == "" || path == "-" {
		b, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(b), nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Config holds flag defaults read from a TOML file. Flags given on the
// command line take precedence.
type Config struct {
	Kind   string `toml:"kind"`
	Name   string `toml:"name"`
	Banner bool   `toml:"banner"`
	Check  bool   `toml:"check"`
}

func readConfig(path string) (Config, error) {
	var config Config
	data, err := os.ReadFile(path)
	if err != nil {
		return config, err
	}
	if err := toml.Unmarshal(data, &config); err != nil {
		return config, fmt.Errorf("parse %s: %w", path, err)
	}
	return config, nil
}

// newLogger returns a development logger in verbose mode and a production
// logger that only reports warnings otherwise. Both write to w.
func newLogger(w io.Writer, verbose bool) *zap.Logger {
	if verbose {
		enc := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
		return zap.New(zapcore.NewCore(enc, zapcore.AddSync(w), zapcore.DebugLevel))
	}
	enc := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	return zap.New(zapcore.NewCore(enc, zapcore.AddSync(w), zapcore.WarnLevel))
}
