package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/text/unicode/norm"

	"github.com/aglyzov/pathtrie-ds/pathtrie"
)

func main() {
	configPath := flag.String("config", "", "path to a config file")
	flag.Parse()

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if flag.NArg() > 0 {
		cfg.Input = flag.Arg(0)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger := newLogger(cfg.Log)

	if err := run(cfg, logger, os.Stdout); err != nil {
		logger.Fatal().Err(err).Msg("failed")
	}
}

func newLogger(cfg LogConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var out io.Writer = os.Stderr
	if cfg.Pretty {
		out = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	}

	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

func run(cfg *Config, logger zerolog.Logger, out io.Writer) error {
	var in io.Reader = os.Stdin
	if cfg.Input != "" {
		f, err := os.Open(cfg.Input)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}

	tr, err := ingest(in, cfg, logger)
	if err != nil {
		return err
	}
	logger.Info().Int("values", tr.Len()).Str("input", cfg.Input).Msg("trie built")

	if cfg.Dump {
		tr.Fdump(out)
	}

	for path, line := range tr.All() {
		fmt.Fprintf(out, "%s%s => line %d\n", cfg.Separator, strings.Join(path, cfg.Separator), line)
	}

	data, err := tr.Encode()
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}

	decoded, err := pathtrie.Decode[string, int](data)
	if err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	if decoded.Len() != tr.Len() {
		return fmt.Errorf("round trip lost values: %d != %d", decoded.Len(), tr.Len())
	}
	logger.Info().Int("bytes", len(data)).Msg("round trip ok")

	return nil
}

// ingest builds a trie from separator-delimited paths, one per line, mapping
// each path to its line number. Blank lines are skipped, repeated paths are
// logged and ignored.
func ingest(r io.Reader, cfg *Config, logger zerolog.Logger) (*pathtrie.Trie[string, int], error) {
	var (
		tr      = pathtrie.New[string, int]()
		scanner = bufio.NewScanner(r)
		lineNo  int
	)

	for scanner.Scan() {
		lineNo++

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		path := splitPath(line, cfg.Separator, cfg.Normalize)

		if err := tr.Insert(path, lineNo); err != nil {
			prev, _ := tr.Fetch(path)
			logger.Warn().Err(err).Int("line", lineNo).Int("first", prev).Msg("duplicate path")
			continue
		}
		logger.Debug().Int("line", lineNo).Strs("path", path).Msg("inserted")
	}

	return tr, scanner.Err()
}

// splitPath turns "/a//b/" into [a b]. With normalize set, each segment is
// converted to NFC so that canonically equivalent keys share a node.
func splitPath(line, sep string, normalize bool) []string {
	var path []string
	for _, seg := range strings.Split(line, sep) {
		if seg == "" {
			continue
		}
		if normalize {
			seg = norm.NFC.String(seg)
		}
		path = append(path, seg)
	}
	return path
}
