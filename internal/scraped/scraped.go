package scraped

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path"
	"strings"
	"time"
)

// Item is one scraped speech or report, as written by the site scrapers
type Item struct {
	URL     string `json:"url"`
	Title   string `json:"title"`
	Speaker string `json:"speaker"`
	Date    string `json:"date"`
	Body    string `json:"text"`
}

// dateLayouts are the date formats seen in scraper output
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"January 2, 2006",
	"Jan 2, 2006",
	"02 January 2006",
	"2 January 2006",
}

// PublishedAt parses the item date. ok is false when the date is missing or unrecognized.
func (it Item) PublishedAt() (t time.Time, ok bool) {
	d := strings.TrimSpace(it.Date)
	if d == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, d); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Name returns a short identifier for the item: the last URL path element
// without extension, else the title. It is empty when the item has neither.
func (it Item) Name() string {
	if it.URL != "" {
		base := path.Base(strings.TrimRight(it.URL, "/"))
		base = strings.TrimSuffix(base, path.Ext(base))
		if base != "" && base != "." && base != "/" {
			return base
		}
	}
	return strings.TrimSpace(it.Title)
}

// LoadFromJSONL loads items from a JSONL file with proper error handling
func LoadFromJSONL(path string) ([]Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file %s: %w", path, err)
	}

	var items []Item
	lines := strings.Split(string(data), "\n")

	for i, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		var item Item
		if err := json.Unmarshal([]byte(line), &item); err != nil {
			log.Printf("Warning: skipping malformed JSON at line %d in %s: %v", i+1, path, err)
			continue
		}
		items = append(items, item)
	}

	if len(items) == 0 {
		return nil, fmt.Errorf("no valid items found in %s", path)
	}

	return items, nil
}
