package meta

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestSaveLoad(t *testing.T) {
	dir := t.TempDir()
	path := MetaPath(filepath.Join(dir, "island.terra"))

	rec := NewTerrainRecord(600, time.Now())
	rec = rec.WithPayload(TerrainMeta{Size: 600}.WithSplat(SlotR, "rock"))

	if err := Save(path, rec); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	assertHeader(t, got, rec)

	m, _ := got.Terrain()
	if m.Size != 600 || m.Splats[SlotR] != "rock" {
		t.Errorf("unexpected terrain payload %+v", m)
	}

	// no temp files left behind
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected exactly the meta file in %s, found %d entries", dir, len(entries))
	}
}

func TestSave_ClearedSlotIsAbsent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "t.terra.meta")

	rec := NewTerrainRecord(DefaultTerrainSize, time.Now())
	m, _ := rec.Terrain()
	rec = rec.WithPayload(m.WithSplat(SlotG, "grass"))
	if err := Save(path, rec); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	rec = rec.WithPayload(m.WithSplat(SlotG, ""))
	if err := Save(path, rec); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if strings.Contains(string(data), KeyTerrainSplatG) {
		t.Errorf("cleared slot still written:\n%s", data)
	}
}

func TestSave_InvalidRecordLeavesFileUntouched(t *testing.T) {
	path := filepath.Join(t.TempDir(), "m.obj.meta")

	good := NewRecord(ModelMeta{}, time.Now())
	if err := Save(path, good); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	before, _ := os.ReadFile(path)

	bad := good
	bad.UUID = ""
	if err := Save(path, bad); err == nil {
		t.Fatal("expected error saving record without uuid")
	}

	after, _ := os.ReadFile(path)
	if string(before) != string(after) {
		t.Error("failed save modified the existing file")
	}
}

func TestSave_MissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "x.meta")
	err := Save(path, NewRecord(TextureMeta{}, time.Now()))
	if !errors.Is(err, ErrIO) {
		t.Errorf("expected ErrIO, got %v", err)
	}
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load("/nonexistent/path/asset.meta")
	if !errors.Is(err, ErrIO) {
		t.Errorf("expected ErrIO, got %v", err)
	}
	if errors.Is(err, ErrParse) {
		t.Error("missing file should not be a parse failure")
	}
}

func TestNewRecord(t *testing.T) {
	now := time.Now()
	r := NewRecord(ModelMeta{}, now)

	if r.Version != CurrentVersion {
		t.Errorf("expected version %d, got %d", CurrentVersion, r.Version)
	}
	if _, err := uuid.Parse(r.UUID); err != nil {
		t.Errorf("expected a valid uuid, got %q: %v", r.UUID, err)
	}
	if r.Type() != TypeModel {
		t.Errorf("expected MODEL, got %v", r.Type())
	}
	if err := r.Validate(); err != nil {
		t.Errorf("fresh record should validate: %v", err)
	}
	if other := NewRecord(ModelMeta{}, now); other.UUID == r.UUID {
		t.Error("two records share a uuid")
	}
}

func TestRecordValidate(t *testing.T) {
	base := NewTerrainRecord(100, time.Now())

	tests := []struct {
		name   string
		mutate func(Record) Record
	}{
		{"no payload", func(r Record) Record { r.Payload = nil; return r }},
		{"zero version", func(r Record) Record { r.Version = 0; return r }},
		{"future version", func(r Record) Record { r.Version = CurrentVersion + 1; return r }},
		{"no uuid", func(r Record) Record { r.UUID = ""; return r }},
		{"zero time", func(r Record) Record { r.LastModified = time.Time{}; return r }},
		{"zero terrain size", func(r Record) Record { return r.WithPayload(TerrainMeta{}) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.mutate(base).Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestMetaPaths(t *testing.T) {
	p := MetaPath("assets/island.terra")
	if p != "assets/island.terra.meta" {
		t.Errorf("MetaPath: got %s", p)
	}
	if AssetPath(p) != "assets/island.terra" {
		t.Errorf("AssetPath: got %s", AssetPath(p))
	}
	if !IsMetaFile(p) || IsMetaFile("assets/island.terra") {
		t.Error("IsMetaFile mismatch")
	}
}
