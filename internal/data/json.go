package data

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"investeasy/internal/model"
)

// LoadObservationsJSON reads a saved SGS response (a JSON array of observations).
func LoadObservationsJSON(path string) ([]model.Observation, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var obs []model.Observation
	if err := json.Unmarshal(raw, &obs); err != nil {
		return nil, parseErrorf("%s: %v", path, err)
	}
	return obs, nil
}

// SaveObservationsJSON writes observations in the same shape the SGS API returns.
func SaveObservationsJSON(path string, obs []model.Observation) error {
	raw, err := json.MarshalIndent(obs, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal observations: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("failed to write observations file: %w", err)
	}
	return nil
}

// FileSource serves observations from a saved SGS response instead of the network.
// It lets the CLI run the full fetch/parse/cache pipeline offline.
type FileSource struct {
	Path string
}

func (s FileSource) FetchLatest(ctx context.Context, q SeriesQuery) ([]model.Observation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	obs, err := LoadObservationsJSON(s.Path)
	if err != nil {
		return nil, err
	}
	wanted := make(map[int]bool, len(q.SeriesIDs))
	for _, id := range q.SeriesIDs {
		wanted[id] = true
	}
	out := make([]model.Observation, 0, len(obs))
	for _, o := range obs {
		if len(wanted) == 0 || wanted[o.SeriesID] {
			out = append(out, o)
		}
	}
	return out, nil
}
