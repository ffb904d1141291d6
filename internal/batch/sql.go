package batch

import (
	"fmt"
	"sort"
	"strings"
)

// allowedColumns whitelists every table and column the generic batch
// operations may name. Batch SQL is assembled from caller-supplied
// identifiers, so anything not listed here is rejected before it gets
// near a statement.
var allowedColumns = map[string]map[string]bool{
	"trips": {
		"id": true, "slug": true, "name": true, "description": true,
		"status": true, "ship_id": true, "start_date": true, "end_date": true,
	},
	"itinerary_stops": {
		"id": true, "trip_id": true, "date": true, "order_index": true,
		"location_id": true, "arrival_time": true, "departure_time": true, "notes": true,
	},
	"events": {
		"id": true, "trip_id": true, "date": true, "start_time": true,
		"title": true, "event_type": true, "venue": true, "party_theme_id": true,
		"talent_ids": true,
	},
	"info_sections": {
		"id": true, "trip_id": true, "title": true, "content": true, "order_index": true,
	},
	"party_themes": {
		"id": true, "name": true, "theme": true, "venue_type": true, "usage_count": true,
	},
	"talent": {
		"id": true, "name": true, "category": true, "bio": true,
	},
	"locations": {
		"id": true, "name": true, "country": true, "description": true,
	},
	"ships": {
		"id": true, "name": true, "cruise_line": true, "capacity": true, "description": true,
	},
}

// validateTable rejects table names outside the allowlist.
func validateTable(table string) error {
	if _, ok := allowedColumns[table]; !ok {
		return fmt.Errorf("table %q is not batch-writable", table)
	}
	return nil
}

// validateColumns rejects any column not allowlisted for the table.
func validateColumns(table string, cols []string) error {
	allowed, ok := allowedColumns[table]
	if !ok {
		return fmt.Errorf("table %q is not batch-writable", table)
	}
	for _, c := range cols {
		if !allowed[c] {
			return fmt.Errorf("column %q is not batch-writable on %q", c, table)
		}
	}
	return nil
}

// buildInsert assembles one multi-row INSERT ... ON CONFLICT DO UPDATE.
// Column order is the sorted union of all records' keys; records missing
// a column contribute NULL for it.
func buildInsert(table string, records []map[string]any, conflictColumn string) (string, []any, error) {
	seen := make(map[string]bool)
	var cols []string
	for _, rec := range records {
		for c := range rec {
			if !seen[c] {
				seen[c] = true
				cols = append(cols, c)
			}
		}
	}
	sort.Strings(cols)

	if err := validateColumns(table, append([]string{conflictColumn}, cols...)); err != nil {
		return "", nil, err
	}

	var (
		sb   strings.Builder
		args []any
	)
	fmt.Fprintf(&sb, "INSERT INTO %s (%s) VALUES ", table, strings.Join(cols, ", "))

	for i, rec := range records {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("(")
		for j, c := range cols {
			if j > 0 {
				sb.WriteString(", ")
			}
			args = append(args, rec[c])
			fmt.Fprintf(&sb, "$%d", len(args))
		}
		sb.WriteString(")")
	}

	fmt.Fprintf(&sb, " ON CONFLICT (%s) DO UPDATE SET ", conflictColumn)
	wrote := false
	for _, c := range cols {
		if c == conflictColumn {
			continue
		}
		if wrote {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%s = EXCLUDED.%s", c, c)
		wrote = true
	}
	if !wrote {
		// Conflict column is the only column; force RETURNING to fire on
		// conflict the same way the no-op DO UPDATE trick does for tags.
		fmt.Fprintf(&sb, "%s = EXCLUDED.%s", conflictColumn, conflictColumn)
	}
	sb.WriteString(" RETURNING *")

	return sb.String(), args, nil
}

// buildUpdate assembles one UPDATE ... WHERE id = ANY($n) for a group of
// IDs sharing the same payload. Payload columns are applied in sorted
// order so the statement text is deterministic for a given payload.
func buildUpdate(table string, data map[string]any, ids []int) (string, []any, error) {
	cols := make([]string, 0, len(data))
	for c := range data {
		cols = append(cols, c)
	}
	sort.Strings(cols)

	if len(cols) == 0 {
		return "", nil, fmt.Errorf("empty update payload")
	}
	if err := validateColumns(table, cols); err != nil {
		return "", nil, err
	}

	var (
		sb   strings.Builder
		args []any
	)
	fmt.Fprintf(&sb, "UPDATE %s SET ", table)
	for i, c := range cols {
		if i > 0 {
			sb.WriteString(", ")
		}
		args = append(args, data[c])
		fmt.Fprintf(&sb, "%s = $%d", c, len(args))
	}

	args = append(args, ids)
	fmt.Fprintf(&sb, " WHERE id = ANY($%d) RETURNING *", len(args))

	return sb.String(), args, nil
}
