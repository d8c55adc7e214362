package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/cognicore/sieve/internal/scraped"
	"github.com/cognicore/sieve/pkg/sieve"
	"github.com/cognicore/sieve/pkg/sieve/config"
)

func main() {
	var (
		configPath = flag.String("config", "", "YAML config file (optional)")
		dataPath   = flag.String("data", "", "Input JSONL file of scraped speeches (required)")
		minChars   = flag.Int("min-chars", 0, "Minimum sentence length in characters")
		asciiOnly  = flag.Bool("ascii-only", false, "Drop sentences with non-ASCII characters")
		dbPath     = flag.String("db", "", "SQLite database path (overrides the config store)")
		table      = flag.String("table", "", "Table name for stored text")
		outDir     = flag.String("out", "", "Write a sentence file per speech to this directory")
	)
	flag.Parse()

	if *dataPath == "" {
		log.Fatal("--data required")
	}

	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	cfg := &config.Config{}
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatal("Failed to load configuration: ", err)
		}
		cfg = loaded
	}
	if set["min-chars"] {
		cfg.Filter.SetMinChars(*minChars)
	}
	if set["ascii-only"] {
		cfg.Filter.ASCIIOnly = *asciiOnly
	}
	if set["db"] {
		cfg.Store = config.Store{Driver: config.DriverSQLite, Path: *dbPath, Table: cfg.Store.Table}
	}
	if set["table"] {
		cfg.Store.Table = *table
	}
	if set["out"] {
		cfg.Output.Dir = *outDir
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal("Invalid configuration: ", err)
	}
	if !cfg.Store.Enabled() {
		log.Fatal("a store is required: set --db or store.driver in the config")
	}

	ctx := context.Background()

	fc, _ := cfg.Filter.Chain()
	st, err := cfg.Store.Open(ctx)
	if err != nil {
		log.Fatal("Failed to open store: ", err)
	}

	sv, err := sieve.New(sieve.Options{
		Filter: fc,
		Store:  st,
		Table:  cfg.Store.TableName(),
		OutDir: cfg.Output.Dir,
	})
	if err != nil {
		st.Close()
		log.Fatal("Failed to initialize: ", err)
	}
	defer sv.Close()

	items, err := scraped.LoadFromJSONL(*dataPath)
	if err != nil {
		log.Fatal("Failed to load speeches: ", err)
	}
	log.Printf("Loaded %d speeches from %s", len(items), *dataPath)

	sum := process(ctx, sv, items, cfg.Output.Dir != "", time.Now)
	log.Printf("✓ Cleaning complete: %d stored, %d failed, %d sentences kept", sum.stored, sum.failed, sum.sentences)
}

type summary struct {
	stored    int
	failed    int
	sentences int
}

// process cleans each speech and stores it under its published date,
// falling back to now when the date is missing or unparseable.
func process(ctx context.Context, sv *sieve.Sieve, items []scraped.Item, toFile bool, now func() time.Time) summary {
	var sum summary
	taken := make(map[string]bool)
	for i, item := range items {
		name := speechName(item, i, taken)

		date, ok := item.PublishedAt()
		if !ok {
			log.Printf("WARNING: speech %d (%s) has no usable date %q, using today", i, name, item.Date)
			date = now()
		}

		doc := sv.Clean(name, date, item.Body)
		sum.sentences += doc.Count()
		if doc.Empty() {
			log.Printf("WARNING: no sentences were accepted from %s", name)
		}

		if toFile {
			if _, err := sv.WriteFile(doc); err != nil {
				log.Printf("Failed to write sentences for %s: %v", name, err)
				sum.failed++
				continue
			}
		}
		if _, err := sv.WriteStore(ctx, doc); err != nil {
			log.Printf("Failed to store %s: %v", name, err)
			sum.failed++
			continue
		}
		sum.stored++

		if (i+1)%10 == 0 {
			log.Printf("Cleaned %d/%d speeches", i+1, len(items))
		}
	}
	return sum
}

// speechName returns a name for item that no earlier item in the batch has
// used. Items without URL or title are named by their position.
func speechName(item scraped.Item, i int, taken map[string]bool) string {
	base := item.Name()
	if base == "" {
		base = fmt.Sprintf("speech-%d", i+1)
	}
	name := base
	for n := 2; taken[name]; n++ {
		name = fmt.Sprintf("%s-%d", base, n)
	}
	taken[name] = true
	return name
}
