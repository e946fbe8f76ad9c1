// Package thumbs provides the static mouse-thumbnail lookup table.
package thumbs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
)

// Table maps a mouse identifier to its thumbnail URL.
type Table map[string]string

// record matches the static data feed: [{"type": ..., "thumb": ...}, ...].
type record struct {
	Type  string `json:"type"`
	Thumb string `json:"thumb"`
}

// Lookup returns the thumbnail URL for a mouse identifier.
func (t Table) Lookup(mouse string) (string, bool) {
	url, ok := t[mouse]
	return url, ok
}

// Load reads the thumbnail table from a local JSON file.
func Load(path string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return decode(data)
}

// Fetch loads the thumbnail table from the static data endpoint. It is
// fire-once and fail-silent: any failure is logged and yields an empty
// table, so entries simply render without thumbnails.
func Fetch(ctx context.Context, client *resty.Client, url string, log zerolog.Logger) Table {
	resp, err := client.R().SetContext(ctx).Get(url)
	if err != nil {
		log.Warn().Err(err).Str("url", url).Msg("thumbnail fetch failed")
		return Table{}
	}
	if resp.IsError() {
		log.Warn().Int("status", resp.StatusCode()).Str("url", url).Msg("thumbnail fetch failed")
		return Table{}
	}

	table, err := decode(resp.Body())
	if err != nil {
		log.Warn().Err(err).Str("url", url).Msg("thumbnail data malformed")
		return Table{}
	}

	return table
}

func decode(data []byte) (Table, error) {
	var records []record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode thumbnail data: %w", err)
	}

	table := make(Table, len(records))
	for _, r := range records {
		if r.Type == "" || r.Thumb == "" {
			continue
		}
		table[r.Type] = r.Thumb
	}

	return table, nil
}
