package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/cognicore/sieve/pkg/sieve"
	"github.com/cognicore/sieve/pkg/sieve/config"
	"github.com/cognicore/sieve/pkg/sieve/export"
)

// settings holds command-line values that may override the config file
type settings struct {
	configPath    string
	minChars      int
	asciiOnly     bool
	excludeParens bool
	outDir        string
	dbPath        string
	table         string
}

func main() {
	var s settings
	flag.StringVar(&s.configPath, "config", "", "YAML config file (optional)")
	input := flag.String("input", "", "PDF, HTML or text file to extract (required)")
	flag.IntVar(&s.minChars, "min-chars", 0, "Minimum sentence length in characters")
	flag.BoolVar(&s.asciiOnly, "ascii-only", false, "Drop sentences with non-ASCII characters")
	flag.BoolVar(&s.excludeParens, "exclude-parens", false, "Drop sentences containing parentheses")
	flag.StringVar(&s.outDir, "out", "", "Directory for the sentence file")
	flag.StringVar(&s.dbPath, "db", "", "SQLite database path (overrides the config store)")
	flag.StringVar(&s.table, "table", "", "Table name for stored text")
	noFile := flag.Bool("no-file", false, "Skip writing the sentence file")
	flag.Parse()

	if *input == "" {
		log.Fatal("--input required")
	}

	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	cfg, err := resolveConfig(s, set)
	if err != nil {
		log.Fatal("Failed to load configuration: ", err)
	}

	ctx := context.Background()
	sv, cleanup, err := buildSieve(ctx, cfg)
	if err != nil {
		log.Fatal("Failed to initialize: ", err)
	}
	defer cleanup()

	inputs := append([]string{*input}, flag.Args()...)
	if !*noFile {
		if dups := duplicateOutputs(inputs); len(dups) > 0 {
			log.Fatalf("inputs would overwrite each other's sentence file: %s", strings.Join(dups, ", "))
		}
	}
	failed := 0
	for _, path := range inputs {
		if err := extract(ctx, sv, path, !*noFile, cfg.Store.Enabled()); err != nil {
			log.Printf("Failed to process %s: %v", path, err)
			failed++
		}
	}
	if failed > 0 {
		cleanup()
		os.Exit(1)
	}
}

// resolveConfig loads the config file, if any, and applies the flags in set.
func resolveConfig(s settings, set map[string]bool) (*config.Config, error) {
	cfg := &config.Config{}
	if s.configPath != "" {
		loaded, err := config.Load(s.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if set["min-chars"] {
		cfg.Filter.SetMinChars(s.minChars)
	}
	if set["ascii-only"] {
		cfg.Filter.ASCIIOnly = s.asciiOnly
	}
	if set["exclude-parens"] {
		cfg.Filter.ExcludeParens = s.excludeParens
	}
	if set["out"] {
		cfg.Output.Dir = s.outDir
	}
	if set["db"] {
		cfg.Store = config.Store{Driver: config.DriverSQLite, Path: s.dbPath, Table: cfg.Store.Table}
	}
	if set["table"] {
		cfg.Store.Table = s.table
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// buildSieve opens the configured store and constructs the facade
func buildSieve(ctx context.Context, cfg *config.Config) (*sieve.Sieve, func(), error) {
	fc, err := cfg.Filter.Chain()
	if err != nil {
		return nil, nil, err
	}

	st, err := cfg.Store.Open(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("open store: %w", err)
	}

	sv, err := sieve.New(sieve.Options{
		Filter: fc,
		Store:  st,
		Table:  cfg.Store.TableName(),
		OutDir: cfg.Output.Dir,
	})
	if err != nil {
		if st != nil {
			st.Close()
		}
		return nil, nil, err
	}

	closed := false
	cleanup := func() {
		if closed {
			return
		}
		closed = true
		if err := sv.Close(); err != nil {
			log.Printf("WARNING: close store: %v", err)
		}
	}
	return sv, cleanup, nil
}

// duplicateOutputs returns the sentence file names shared by more than one input.
func duplicateOutputs(inputs []string) []string {
	seen := make(map[string]int)
	var dups []string
	for _, in := range inputs {
		name := export.FileName(in)
		seen[name]++
		if seen[name] == 2 {
			dups = append(dups, name)
		}
	}
	return dups
}

func extract(ctx context.Context, sv *sieve.Sieve, path string, toFile, toStore bool) error {
	doc, err := sv.Extract(ctx, path)
	if err != nil {
		return err
	}

	log.Printf("Processed %s: %d pages, %s", path, doc.PageCount, doc.Stats)
	for _, w := range doc.Warnings {
		log.Printf("WARNING: unreadable page skipped: %v", w)
	}
	if doc.Empty() {
		log.Printf("WARNING: no sentences were accepted from %s", path)
	}

	if toFile {
		out, err := sv.WriteFile(doc)
		if err != nil {
			return err
		}
		log.Printf("Wrote %d sentences to %s", doc.Count(), out)
	}
	if toStore {
		if _, err := sv.WriteStore(ctx, doc); err != nil {
			return err
		}
		log.Printf("Added %d sentences from %s to table %s", doc.Count(), path, sv.Table())
	}
	return nil
}
