// Package utils holds small text helpers shared across the engine: lenient
// JSON decoding for model output and markdown cleanup for commentary.
package utils

import (
	"encoding/json"
	"fmt"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
	hjson "github.com/hjson/hjson-go/v4"
)

// RepairJSON fixes the usual model-output JSON defects: unquoted keys,
// single quotes, trailing commas, unclosed brackets and surrounding
// markdown fences.
func RepairJSON(malformed string) (string, error) {
	repaired, err := jsonrepair.RepairJSON(malformed)
	if err != nil {
		return "", fmt.Errorf("repairing json: %w", err)
	}
	return repaired, nil
}

// DecodeLenient unmarshals model output into schema, trying progressively
// more forgiving strategies: strict JSON, repaired JSON, then Hjson.
func DecodeLenient(input string, schema interface{}) error {
	if err := json.Unmarshal([]byte(input), schema); err == nil {
		return nil
	}
	if repaired, err := RepairJSON(input); err == nil {
		if err := json.Unmarshal([]byte(repaired), schema); err == nil {
			return nil
		}
	}
	if err := hjson.Unmarshal([]byte(input), schema); err == nil {
		return nil
	}
	return fmt.Errorf("no parsing strategy could decode the input")
}
