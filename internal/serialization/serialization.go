// Package serialization handles persona registry export/import between
// SQLite and JSON, for backups and for moving a registry between hosts.
package serialization

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"
)

const (
	Version       = "0.1.0"
	ExportVersion = 1
)

// personaColumns defines the column order for the personas table.
var personaColumns = []string{
	"node", "variant", "node_id",
	"node_idx", "node_salt", "seq_idx", "seq_salt", "seq_offset",
	"created_at", "rotated_at",
}

// ExportOptions configures what to export.
type ExportOptions struct {
	// Nodes restricts the export to the named nodes; empty means all.
	Nodes []string
}

// ImportOptions configures how to import.
type ImportOptions struct {
	// Replace deletes existing rows before inserting. Without it, rows for
	// already-registered nodes are skipped.
	Replace bool
}

// ImportResult holds the result of an import operation.
type ImportResult struct {
	Imported int
	Skipped  int
	Warnings []string
}

// ExportRegistry exports persona records from SQLite to a JSON string.
func ExportRegistry(dbPath string, opts *ExportOptions) (string, error) {
	if opts == nil {
		opts = &ExportOptions{}
	}

	db, err := sql.Open("sqlite", dbPath+"?mode=ro")
	if err != nil {
		return "", fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	schemaVersion := getSchemaVersion(db)
	now := time.Now().UTC().Format("2006-01-02T15:04:05.000Z")

	result := map[string]any{
		"chronoid_export": map[string]any{
			"version":        ExportVersion,
			"exported_at":    now,
			"schema_version": schemaVersion,
			"source":         "go/" + Version,
		},
	}

	query := fmt.Sprintf("SELECT %s FROM personas", strings.Join(personaColumns, ", "))
	var args []any
	if len(opts.Nodes) > 0 {
		placeholders := make([]string, len(opts.Nodes))
		for i, n := range opts.Nodes {
			placeholders[i] = "?"
			args = append(args, n)
		}
		query += fmt.Sprintf(" WHERE node IN (%s)", strings.Join(placeholders, ", "))
	}
	query += " ORDER BY node"

	rows, err := db.Query(query, args...)
	if err != nil {
		return "", fmt.Errorf("querying personas: %w", err)
	}
	defer rows.Close()

	personas := make([]map[string]any, 0)
	for rows.Next() {
		values := make([]any, len(personaColumns))
		ptrs := make([]any, len(personaColumns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return "", fmt.Errorf("scanning persona row: %w", err)
		}

		row := make(map[string]any, len(personaColumns))
		for i, col := range personaColumns {
			row[col] = convertValue(values[i])
		}
		personas = append(personas, row)
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("iterating personas: %w", err)
	}

	result["personas"] = personas
	return marshalSorted(result)
}

// ImportRegistry imports persona records from a JSON string into SQLite.
// The target database must already have the registry schema.
func ImportRegistry(dbPath string, jsonStr string, opts *ImportOptions) (*ImportResult, error) {
	if opts == nil {
		opts = &ImportOptions{}
	}

	var data map[string]any
	if err := json.Unmarshal([]byte(jsonStr), &data); err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}

	envelope, _ := data["chronoid_export"].(map[string]any)
	version, _ := envelope["version"].(float64)
	if version < 1 || version > ExportVersion {
		return nil, fmt.Errorf("unsupported export version: %v", version)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	result := &ImportResult{}

	rowList, _ := data["personas"].([]any)

	tx, err := db.Begin()
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}

	if opts.Replace {
		if _, err := tx.Exec("DELETE FROM personas"); err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("deleting personas: %w", err)
		}
	}

	colNames := strings.Join(personaColumns, ", ")
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(personaColumns)), ", ")
	verb := "INSERT OR IGNORE"
	if opts.Replace {
		verb = "INSERT"
	}
	query := fmt.Sprintf("%s INTO personas (%s) VALUES (%s)", verb, colNames, placeholders)

	for _, rawRow := range rowList {
		rowMap, ok := rawRow.(map[string]any)
		if !ok {
			result.Skipped++
			continue
		}

		values := make([]any, len(personaColumns))
		for i, col := range personaColumns {
			values[i] = rowMap[col]
		}

		res, err := tx.Exec(query, values...)
		if err != nil {
			result.Skipped++
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Skipped persona row: %v", err))
			continue
		}
		affected, _ := res.RowsAffected()
		if affected > 0 {
			result.Imported++
		} else {
			result.Skipped++
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing transaction: %w", err)
	}

	return result, nil
}

func getSchemaVersion(db *sql.DB) int {
	var version int
	err := db.QueryRow("SELECT version FROM schema_version ORDER BY version DESC LIMIT 1").Scan(&version)
	if err != nil {
		return 1
	}
	return version
}

func convertValue(val any) any {
	if val == nil {
		return nil
	}
	// sql driver may return []byte for TEXT columns.
	if b, ok := val.([]byte); ok {
		return string(b)
	}
	return val
}

// marshalSorted produces JSON with sorted keys, 2-space indent.
func marshalSorted(data map[string]any) (string, error) {
	b, err := json.MarshalIndent(sortedMap(data), "", "  ")
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// sortedMap is a map that marshals with sorted keys.
type sortedMap map[string]any

func (m sortedMap) MarshalJSON() ([]byte, error) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	buf := []byte{'{'}
	for i, k := range keys {
		if i > 0 {
			buf = append(buf, ',')
		}
		keyBytes, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf = append(buf, keyBytes...)
		buf = append(buf, ':')

		valBytes, err := marshalValue(m[k])
		if err != nil {
			return nil, err
		}
		buf = append(buf, valBytes...)
	}
	buf = append(buf, '}')
	return buf, nil
}

func marshalValue(v any) ([]byte, error) {
	switch val := v.(type) {
	case map[string]any:
		return sortedMap(val).MarshalJSON()
	case []any:
		buf := []byte{'['}
		for i, elem := range val {
			if i > 0 {
				buf = append(buf, ',')
			}
			b, err := marshalValue(elem)
			if err != nil {
				return nil, err
			}
			buf = append(buf, b...)
		}
		buf = append(buf, ']')
		return buf, nil
	default:
		return json.Marshal(v)
	}
}
