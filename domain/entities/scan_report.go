package entities

import "time"

// ScanReport is an exportable summary of one page scan
type ScanReport struct {
	Source    string            `json:"source"`
	ScannedAt time.Time         `json:"scanned_at"`
	Elements  []ReadableSummary `json:"elements"`
}

// ReadableSummary describes a single top-level readable element
type ReadableSummary struct {
	Index           int           `json:"index"`
	Tag             string        `json:"tag"`
	Label           string        `json:"label"`
	Excerpt         string        `json:"excerpt"`
	Bounds          ElementBounds `json:"bounds"`
	FirstLineHeight float64       `json:"first_line_height"`
}
