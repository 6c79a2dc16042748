package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"hover_reader/domain/entities"
)

func TestLoadReportMissingFile(t *testing.T) {
	store, err := NewReportStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewReportStore: %v", err)
	}

	report, err := store.LoadReport()
	if err != nil {
		t.Fatalf("LoadReport: %v", err)
	}
	if len(report.Elements) != 0 || report.Source != "" {
		t.Errorf("expected empty report, got %+v", report)
	}
}

func TestSaveAndLoadReport(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	store, err := NewReportStore(dir)
	if err != nil {
		t.Fatalf("NewReportStore: %v", err)
	}

	want := entities.ScanReport{
		Source:    "page.html",
		ScannedAt: time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC),
		Elements: []entities.ReadableSummary{{
			Index:           0,
			Tag:             "DIV",
			Label:           "div#intro",
			Excerpt:         "Some text",
			Bounds:          entities.NewElementBounds(10, 20, 100, 50),
			FirstLineHeight: 24,
		}},
	}
	if err := store.SaveReport(want); err != nil {
		t.Fatalf("SaveReport: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, reportFile)); err != nil {
		t.Fatalf("report file not written: %v", err)
	}

	got, err := store.LoadReport()
	if err != nil {
		t.Fatalf("LoadReport: %v", err)
	}
	if got.Source != want.Source || !got.ScannedAt.Equal(want.ScannedAt) {
		t.Errorf("header = %q %v, want %q %v", got.Source, got.ScannedAt, want.Source, want.ScannedAt)
	}
	if len(got.Elements) != 1 || got.Elements[0] != want.Elements[0] {
		t.Errorf("elements = %+v, want %+v", got.Elements, want.Elements)
	}
}

func TestLoadReportCorrupt(t *testing.T) {
	dir := t.TempDir()
	store, err := NewReportStore(dir)
	if err != nil {
		t.Fatalf("NewReportStore: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, reportFile), []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := store.LoadReport(); err == nil {
		t.Error("expected error for corrupt report")
	}
}
