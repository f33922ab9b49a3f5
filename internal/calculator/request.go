package calculator

import (
	"encoding/json"
	"log/slog"
)

// UnmarshalJSON implements json.Unmarshaler.
//
// Each category decodes on its own. A category whose JSON does not fit its
// shape is logged and left nil, so it prices at zero while the others still
// compute. Only a body that is not a JSON object is an error.
func (r *QuoteRequest) UnmarshalJSON(data []byte) error {
	var raw struct {
		Villa   json.RawMessage `json:"villa"`
		Vehicle json.RawMessage `json:"vehicle"`
		Golf    json.RawMessage `json:"golf"`
		EcoGirl json.RawMessage `json:"ecoGirl"`
		Guide   json.RawMessage `json:"guide"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*r = QuoteRequest{
		Villa:   decodeCategory[VillaRequest]("villa", raw.Villa),
		Vehicle: decodeCategory[VehicleRequest]("vehicle", raw.Vehicle),
		Golf:    decodeCategory[GolfRequest]("golf", raw.Golf),
		EcoGirl: decodeCategory[EcoGirlRequest]("ecoGirl", raw.EcoGirl),
		Guide:   decodeCategory[GuideRequest]("guide", raw.Guide),
	}
	return nil
}

// UnmarshalJSON implements json.Unmarshaler. Malformed selections are dropped.
func (v *VehicleRequest) UnmarshalJSON(data []byte) error {
	var raw struct {
		Enabled    bool              `json:"enabled"`
		Selections []json.RawMessage `json:"selections"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	v.Enabled = raw.Enabled
	v.Selections = decodeSelections[VehicleSelection]("vehicle", raw.Selections)
	return nil
}

// UnmarshalJSON implements json.Unmarshaler. Malformed selections are dropped.
func (g *GolfRequest) UnmarshalJSON(data []byte) error {
	var raw struct {
		Enabled    bool              `json:"enabled"`
		Selections []json.RawMessage `json:"selections"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	g.Enabled = raw.Enabled
	g.Selections = decodeSelections[GolfSelection]("golf", raw.Selections)
	return nil
}

func isAbsent(data json.RawMessage) bool {
	return len(data) == 0 || string(data) == "null"
}

func decodeCategory[T any](category string, data json.RawMessage) *T {
	if isAbsent(data) {
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		slog.Warn("Quote category malformed, skipping", "category", category, "error", err)
		return nil
	}
	return &v
}

func decodeSelections[T any](category string, items []json.RawMessage) []T {
	out := make([]T, 0, len(items))
	for i, item := range items {
		if isAbsent(item) {
			continue
		}
		var v T
		if err := json.Unmarshal(item, &v); err != nil {
			slog.Warn("Quote selection malformed, skipping",
				"category", category,
				"index", i,
				"error", err,
			)
			continue
		}
		out = append(out, v)
	}
	return out
}
