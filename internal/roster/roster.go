// Package roster loads the campaign recipients file. The loader is
// deliberately lenient: a missing or malformed file degrades to an empty
// roster with the problem logged, so the run still produces its summary and
// admin notification instead of crashing over a bad input.
package roster

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/allpackers/campaign/internal/models"
)

// ErrNotArray is returned when the recipients file holds something other than
// a top-level JSON array.
var ErrNotArray = errors.New("recipients file should contain a JSON array")

// Load reads the recipients file at path and returns its raw records in file
// order.
func Load(path string, logger zerolog.Logger) []models.RawRecipient {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Error().Str("path", path).Msg("recipients file not found")
		} else {
			logger.Error().Err(err).Str("path", path).Msg("failed to read recipients file")
		}
		return nil
	}

	recipients, err := Parse(data)
	if err != nil {
		logger.Error().Err(err).Str("path", path).Msg("failed to parse recipients file")
		return nil
	}

	logger.Info().Int("count", len(recipients)).Str("path", path).Msg("recipients loaded")
	return recipients
}

// Parse decodes a JSON array of recipient records. Numbers decode as
// json.Number so a numeric trip_cost stays distinguishable from a string one
// until validation.
func Parse(data []byte) ([]models.RawRecipient, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var root any
	if err := dec.Decode(&root); err != nil {
		return nil, fmt.Errorf("roster: decode: %w", err)
	}
	if dec.More() {
		return nil, errors.New("roster: unexpected data after JSON array")
	}

	entries, ok := root.([]any)
	if !ok {
		return nil, ErrNotArray
	}

	recipients := make([]models.RawRecipient, 0, len(entries))
	for i, entry := range entries {
		record, ok := entry.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("roster: entry %d is not a JSON object", i)
		}
		recipients = append(recipients, models.RawRecipient(record))
	}

	return recipients, nil
}
