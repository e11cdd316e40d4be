package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestResolveDefaultsWithoutFile(t *testing.T) {
	t.Setenv("GOOGLE_CLOUD_PROJECT", "")
	t.Setenv("FIRESTORE_DATABASE", "")

	r, err := Resolve(filepath.Join(t.TempDir(), FileName), Overrides{})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if r.SourceKind != SourceMemory {
		t.Errorf("SourceKind = %q, want %q", r.SourceKind, SourceMemory)
	}
	if r.Collection != "messages" {
		t.Errorf("Collection = %q", r.Collection)
	}
	if !r.ClipToTop {
		t.Error("ClipToTop should default to true")
	}
	if r.RowLines != 1 || r.DemoInitial != 20 || r.DemoInterval != 750*time.Millisecond {
		t.Errorf("unexpected defaults %+v", r)
	}
	if r.Database != "(default)" {
		t.Errorf("Database = %q", r.Database)
	}
}

func TestResolveFile(t *testing.T) {
	t.Setenv("GOOGLE_CLOUD_PROJECT", "")
	t.Setenv("FIRESTORE_DATABASE", "")
	path := writeConfig(t, `
source:
  kind: Firestore
  project: demo-project
  collection: /rooms/lobby/messages/
  order_by: sent
  descending: true
  limit: 50
list:
  clip_to_top: false
  row_lines: 2
  cache_lines: 4
demo:
  interval: 250ms
  seed: 7
  initial: 0
`)

	r, err := Resolve(path, Overrides{})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	want := Resolved{
		Path:         path,
		SourceKind:   SourceFirestore,
		Project:      "demo-project",
		Database:     "(default)",
		Collection:   "rooms/lobby/messages",
		OrderBy:      "sent",
		Descending:   true,
		Limit:        50,
		ClipToTop:    false,
		RowLines:     2,
		CacheLines:   4,
		DemoInterval: 250 * time.Millisecond,
		DemoBurst:    1,
		DemoSeed:     7,
		DemoInitial:  0,
		DemoMax:      100,
	}
	if *r != want {
		t.Errorf("Resolve() =\n%+v\nwant\n%+v", *r, want)
	}
}

func TestResolveEnvAndOverrides(t *testing.T) {
	t.Setenv("GOOGLE_CLOUD_PROJECT", "env-project")
	t.Setenv("FIRESTORE_DATABASE", "chat")
	path := writeConfig(t, "source:\n  project: file-project\n")

	r, err := Resolve(path, Overrides{SourceKind: "firestore", Collection: "rooms"})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if r.Project != "env-project" || r.Database != "chat" {
		t.Errorf("env not applied: project=%q database=%q", r.Project, r.Database)
	}
	if r.SourceKind != SourceFirestore || r.Collection != "rooms" {
		t.Errorf("overrides not applied: %+v", r)
	}

	r, err = Resolve(path, Overrides{SourceKind: "firestore", Project: "flag-project"})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if r.Project != "flag-project" {
		t.Errorf("Project = %q, want flag-project", r.Project)
	}
}

func TestResolveErrors(t *testing.T) {
	t.Setenv("GOOGLE_CLOUD_PROJECT", "")
	tests := []struct {
		name string
		body string
	}{
		{"unknown kind", "source:\n  kind: redis\n"},
		{"firestore without project", "source:\n  kind: firestore\n"},
		{"negative limit", "source:\n  limit: -1\n"},
		{"negative initial", "demo:\n  initial: -3\n"},
		{"bad yaml", "source: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Resolve(writeConfig(t, tt.body), Overrides{}); err == nil {
				t.Error("expected an error")
			}
		})
	}
}
