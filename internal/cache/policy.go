// Package cache holds the caching policy for the optimized query layer
// and the stores that back it. The policy side (Key, TTL, ShouldCache) is
// pure — no I/O, fully deterministic — so route-level caching decisions
// are trivially testable. The store side has two implementations: an
// in-process sturdyc store and a Redis store for multi-instance deploys.
package cache

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"
)

// Query types recognized by the caching policy.
const (
	QueryTripComplete = "tripComplete"
	QueryTripList     = "tripList"
	QueryShips        = "ships"
	QueryLocations    = "locations"
	QueryPartyThemes  = "partyThemes"
	QueryTalent       = "talent"
	QuerySearch       = "search"
	QueryDashboard    = "dashboardStats"
)

// DefaultTTL applies to query types without an entry in the TTL table.
const DefaultTTL = 300 * time.Second

// maxCacheableRows is the hard cap on cacheable result sizes. Results
// larger than this are never cached regardless of query type.
const maxCacheableRows = 1000

// keyTemplates builds the cache key for each known query type from its
// named parameters. Identical parameters always produce the identical
// key — cache hits depend on it.
var keyTemplates = map[string]func(params map[string]string) string{
	QueryTripComplete: func(p map[string]string) string { return "trip:complete:" + p["slug"] },
	QueryTripList:     func(p map[string]string) string { return "trip:list" },
	QueryShips:        func(p map[string]string) string { return "lookup:ships" },
	QueryLocations:    func(p map[string]string) string { return "lookup:locations" },
	QueryPartyThemes:  func(p map[string]string) string { return "lookup:party-themes" },
	QueryTalent:       func(p map[string]string) string { return "lookup:talent" },
	QuerySearch: func(p map[string]string) string {
		return fmt.Sprintf("search:%s:%s:%s", p["term"], p["types"], p["limit"])
	},
	QueryDashboard: func(p map[string]string) string { return "stats:dashboard" },
}

// ttlTable gives each query type its seconds-to-live. Fast-changing
// aggregates sit at 5 minutes, reference data at an hour, search at a
// minute, and dashboard stats at 30 seconds.
var ttlTable = map[string]time.Duration{
	QueryTripComplete: 300 * time.Second,
	QueryTripList:     300 * time.Second,
	QueryShips:        3600 * time.Second,
	QueryLocations:    3600 * time.Second,
	QueryPartyThemes:  3600 * time.Second,
	QueryTalent:       3600 * time.Second,
	QuerySearch:       60 * time.Second,
	QueryDashboard:    30 * time.Second,
}

// cacheable is the allow-list of query types worth caching at all.
var cacheable = map[string]bool{
	QueryTripComplete: true,
	QueryTripList:     true,
	QueryShips:        true,
	QueryLocations:    true,
	QueryPartyThemes:  true,
	QueryTalent:       true,
	QuerySearch:       true,
	QueryDashboard:    true,
}

// Key builds the deterministic cache key for a query type and its
// parameters. Unknown query types fall back to "<type>:<sorted params>"
// so they still key deterministically.
func Key(queryType string, params map[string]string) string {
	if tmpl, ok := keyTemplates[queryType]; ok {
		return tmpl(params)
	}
	return queryType + ":" + canonicalParams(params)
}

// TTL returns the time-to-live for a query type, falling back to
// DefaultTTL for unrecognized types.
func TTL(queryType string) time.Duration {
	if ttl, ok := ttlTable[queryType]; ok {
		return ttl
	}
	return DefaultTTL
}

// ShouldCache reports whether a result of resultSize rows for the given
// query type is worth caching: never above the row cap, and only for
// allow-listed query types.
func ShouldCache(queryType string, resultSize int) bool {
	if resultSize > maxCacheableRows {
		return false
	}
	return cacheable[queryType]
}

// canonicalParams serializes params with sorted keys so the fallback key
// is insensitive to map iteration order.
func canonicalParams(params map[string]string) string {
	if len(params) == 0 {
		return "{}"
	}
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	sb.WriteString("{")
	for i, k := range keys {
		if i > 0 {
			sb.WriteString(",")
		}
		kb, _ := json.Marshal(k)
		vb, _ := json.Marshal(params[k])
		sb.Write(kb)
		sb.WriteString(":")
		sb.Write(vb)
	}
	sb.WriteString("}")
	return sb.String()
}
