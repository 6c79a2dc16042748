package interfaces

import "hover_reader/domain/entities"

// ReportStore persists scan reports
type ReportStore interface {
	// SaveReport saves the latest scan report
	SaveReport(report entities.ScanReport) error

	// LoadReport loads the latest scan report
	LoadReport() (entities.ScanReport, error)
}
