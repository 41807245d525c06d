// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package word exposes the handful of Microsoft Word automation calls the
// COM driver needs: open, save as PDF, close, quit.
package word

// Application is a handle on one running Word instance. It is owned by the
// goroutine that attached it and must not be shared.
type Application interface {
	// Open opens the document at path.
	Open(path string) (Document, error)

	// Quit closes the Word instance.
	Quit() error

	// Release frees the automation handle. It does not quit Word.
	Release()
}

// Document is an open Word document.
type Document interface {
	// SaveAsPDF exports the document to path, overwriting any existing file.
	SaveAsPDF(path string) error

	// Close closes the document, discarding unsaved changes.
	Close() error
}

// AttachFunc returns a handle on a Word instance for the given COM ProgID.
type AttachFunc func(progID string) (Application, error)

const (
	// wdFormatPDF is the WdSaveFormat value for PDF export.
	wdFormatPDF = 17
	// wdDoNotSaveChanges is the WdSaveOptions value for Close.
	wdDoNotSaveChanges = 0
)
