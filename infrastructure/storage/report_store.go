package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"hover_reader/domain/entities"
	"hover_reader/domain/interfaces"
)

const reportFile = "scan.json"

type reportStore struct {
	reportPath string
}

// NewReportStore - creates a report store under dir, creating it if needed
func NewReportStore(dir string) (interfaces.ReportStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}
	return &reportStore{reportPath: filepath.Join(dir, reportFile)}, nil
}

// SaveReport - saves the scan report to file
func (s *reportStore) SaveReport(report entities.ScanReport) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.reportPath, data, 0644)
}

// LoadReport - loads the scan report, empty if none was saved yet
func (s *reportStore) LoadReport() (entities.ScanReport, error) {
	data, err := os.ReadFile(s.reportPath)
	if err != nil {
		if os.IsNotExist(err) {
			return entities.ScanReport{}, nil
		}
		return entities.ScanReport{}, err
	}

	var report entities.ScanReport
	if err := json.Unmarshal(data, &report); err != nil {
		return entities.ScanReport{}, fmt.Errorf("corrupt report %s: %w", s.reportPath, err)
	}
	return report, nil
}
