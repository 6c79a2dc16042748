package interfaces

import "context"

// Browser defines the live rendering environment
type Browser interface {
	// Navigate navigates to a URL
	Navigate(ctx context.Context, url string) error

	// Document returns the live document of the current page
	Document() Document

	// Pointer returns the pointer-move source of the current page
	Pointer() PointerSource

	// SaveState persists cookies and local storage
	SaveState() error

	// Close closes the browser
	Close() error
}
