package serialization

import (
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dilipvamsi/chrono-id/internal/registry"
)

// scriptedEntropy returns incrementing words for deterministic personas.
type scriptedEntropy struct {
	n uint64
}

func (s *scriptedEntropy) Uint64() uint64 {
	s.n += 0x1111111111111111
	return s.n
}

// newSeededRegistry creates a registry database with the given node names
// registered and returns its path. The store stays open for the test's
// lifetime so WAL content is visible to other connections.
func newSeededRegistry(t *testing.T, nodes ...string) string {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "registry.db")
	store, err := registry.Open(dbPath)
	if err != nil {
		t.Fatalf("registry.Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	src := &scriptedEntropy{}
	for _, node := range nodes {
		if _, err := store.LoadOrCreate(context.Background(), node, "UChrono64ms", src); err != nil {
			t.Fatalf("LoadOrCreate(%q): %v", node, err)
		}
	}
	return dbPath
}

// newEmptyRegistry creates a registry database with the schema but no rows.
func newEmptyRegistry(t *testing.T) string {
	return newSeededRegistry(t)
}

func TestExportEnvelope(t *testing.T) {
	dbPath := newSeededRegistry(t, "api-1", "api-2")

	out, err := ExportRegistry(dbPath, nil)
	if err != nil {
		t.Fatalf("ExportRegistry: %v", err)
	}

	var data map[string]any
	if err := json.Unmarshal([]byte(out), &data); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}

	envelope, ok := data["chronoid_export"].(map[string]any)
	if !ok {
		t.Fatal("export missing chronoid_export envelope")
	}
	if envelope["version"].(float64) != ExportVersion {
		t.Errorf("envelope version = %v, want %d", envelope["version"], ExportVersion)
	}
	if envelope["exported_at"] == "" {
		t.Error("envelope missing exported_at")
	}

	personas, ok := data["personas"].([]any)
	if !ok {
		t.Fatal("export missing personas array")
	}
	if len(personas) != 2 {
		t.Fatalf("exported %d personas, want 2", len(personas))
	}

	// Ordered by node name.
	first := personas[0].(map[string]any)
	if first["node"] != "api-1" {
		t.Errorf("first node = %v, want api-1", first["node"])
	}
	for _, col := range personaColumns {
		if _, ok := first[col]; !ok {
			t.Errorf("exported persona missing column %q", col)
		}
	}
}

func TestExportNodeFilter(t *testing.T) {
	dbPath := newSeededRegistry(t, "api-1", "api-2", "worker-1")

	out, err := ExportRegistry(dbPath, &ExportOptions{Nodes: []string{"api-2"}})
	if err != nil {
		t.Fatalf("ExportRegistry: %v", err)
	}

	var data map[string]any
	json.Unmarshal([]byte(out), &data)
	personas := data["personas"].([]any)
	if len(personas) != 1 {
		t.Fatalf("exported %d personas, want 1", len(personas))
	}
	if personas[0].(map[string]any)["node"] != "api-2" {
		t.Errorf("node = %v, want api-2", personas[0].(map[string]any)["node"])
	}
}

func TestExportSortedKeysDeterministic(t *testing.T) {
	dbPath := newSeededRegistry(t, "api-1")

	first, err := ExportRegistry(dbPath, nil)
	if err != nil {
		t.Fatalf("ExportRegistry: %v", err)
	}
	second, err := ExportRegistry(dbPath, nil)
	if err != nil {
		t.Fatalf("ExportRegistry: %v", err)
	}

	// Identical aside from the export timestamp.
	stripTS := func(s string) string {
		var data map[string]any
		json.Unmarshal([]byte(s), &data)
		delete(data["chronoid_export"].(map[string]any), "exported_at")
		out, _ := marshalSorted(data)
		return out
	}
	if stripTS(first) != stripTS(second) {
		t.Error("repeated exports differ beyond the timestamp")
	}
	if strings.Index(first, `"chronoid_export"`) > strings.Index(first, `"personas"`) {
		t.Error("top-level keys not sorted")
	}
}

func TestImportRoundTrip(t *testing.T) {
	srcPath := newSeededRegistry(t, "api-1", "api-2")
	dstPath := newEmptyRegistry(t)

	out, err := ExportRegistry(srcPath, nil)
	if err != nil {
		t.Fatalf("ExportRegistry: %v", err)
	}

	result, err := ImportRegistry(dstPath, out, nil)
	if err != nil {
		t.Fatalf("ImportRegistry: %v", err)
	}
	if result.Imported != 2 {
		t.Errorf("Imported = %d, want 2", result.Imported)
	}
	if result.Skipped != 0 {
		t.Errorf("Skipped = %d, want 0", result.Skipped)
	}

	// The source store's records must survive the trip intact.
	srcStore, err := registry.Open(srcPath)
	if err != nil {
		t.Fatalf("registry.Open(src): %v", err)
	}
	defer srcStore.Close()
	dstStore, err := registry.Open(dstPath)
	if err != nil {
		t.Fatalf("registry.Open(dst): %v", err)
	}
	defer dstStore.Close()

	for _, node := range []string{"api-1", "api-2"} {
		want, err := srcStore.Get(context.Background(), node)
		if err != nil || want == nil {
			t.Fatalf("source Get(%q): %+v, %v", node, want, err)
		}
		got, err := dstStore.Get(context.Background(), node)
		if err != nil {
			t.Fatalf("dest Get(%q): %v", node, err)
		}
		if got == nil {
			t.Fatalf("node %q missing after import", node)
		}
		if got.Persona != want.Persona || got.NodeID != want.NodeID || got.Variant != want.Variant {
			t.Errorf("node %q: got %+v, want %+v", node, got, want)
		}
	}
}

func TestImportSkipsExistingWithoutReplace(t *testing.T) {
	srcPath := newSeededRegistry(t, "api-1")
	dstPath := newSeededRegistry(t, "api-1")

	out, err := ExportRegistry(srcPath, nil)
	if err != nil {
		t.Fatalf("ExportRegistry: %v", err)
	}

	result, err := ImportRegistry(dstPath, out, nil)
	if err != nil {
		t.Fatalf("ImportRegistry: %v", err)
	}
	if result.Imported != 0 {
		t.Errorf("Imported = %d, want 0", result.Imported)
	}
	if result.Skipped != 1 {
		t.Errorf("Skipped = %d, want 1", result.Skipped)
	}
}

func TestImportReplaceOverwrites(t *testing.T) {
	srcPath := newSeededRegistry(t, "api-1")
	dstPath := newSeededRegistry(t, "api-1", "stale-node")

	out, err := ExportRegistry(srcPath, nil)
	if err != nil {
		t.Fatalf("ExportRegistry: %v", err)
	}

	result, err := ImportRegistry(dstPath, out, &ImportOptions{Replace: true})
	if err != nil {
		t.Fatalf("ImportRegistry: %v", err)
	}
	if result.Imported != 1 {
		t.Errorf("Imported = %d, want 1", result.Imported)
	}

	dstStore, err := registry.Open(dstPath)
	if err != nil {
		t.Fatalf("registry.Open(dst): %v", err)
	}
	defer dstStore.Close()

	stale, err := dstStore.Get(context.Background(), "stale-node")
	if err != nil {
		t.Fatalf("Get(stale-node): %v", err)
	}
	if stale != nil {
		t.Error("replace import kept a row not present in the export")
	}
}

func TestImportRejectsUnsupportedVersion(t *testing.T) {
	dstPath := newEmptyRegistry(t)

	payload := `{"chronoid_export":{"version":99},"personas":[]}`
	if _, err := ImportRegistry(dstPath, payload, nil); err == nil {
		t.Fatal("expected error for unsupported export version")
	}
}

func TestImportRejectsInvalidJSON(t *testing.T) {
	dstPath := newEmptyRegistry(t)

	if _, err := ImportRegistry(dstPath, "{not json", nil); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}
