package batch

import (
	"encoding/json"
	"fmt"
)

// payloadGroup collects every update ID that shares one payload value.
type payloadGroup struct {
	Data map[string]any
	IDs  []int
}

// groupByPayload buckets updates by structural equality of their Data.
// Equality is decided on a canonical serialization: encoding/json
// marshals map keys in sorted order, so two payloads with the same
// key/value pairs always produce the same bytes regardless of insertion
// order. Groups come back in first-appearance order, IDs in input order.
func groupByPayload(updates []UpdateItem) ([]payloadGroup, error) {
	index := make(map[string]int)
	var groups []payloadGroup

	for _, u := range updates {
		key, err := canonicalPayload(u.Data)
		if err != nil {
			return nil, err
		}
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, payloadGroup{Data: u.Data})
		}
		groups[i].IDs = append(groups[i].IDs, u.ID)
	}

	return groups, nil
}

// canonicalPayload returns a deterministic serialization of the payload.
func canonicalPayload(data map[string]any) (string, error) {
	b, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("serialize payload: %w", err)
	}
	return string(b), nil
}
