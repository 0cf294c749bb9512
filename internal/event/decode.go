package event

import (
	"encoding/json"
	"fmt"
)

// DecodePayload returns the payload as T. In-process publishes carry the
// struct itself; payloads read back from JSON (dead letters, event log) are
// maps and go through a marshal round trip.
func DecodePayload[T any](input interface{}) (T, error) {
	if v, ok := input.(T); ok {
		return v, nil
	}
	if p, ok := input.(*T); ok && p != nil {
		return *p, nil
	}

	var result T
	data, err := json.Marshal(input)
	if err != nil {
		return result, fmt.Errorf("failed to marshal payload: %w", err)
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return result, fmt.Errorf("failed to decode payload: %w", err)
	}
	return result, nil
}
