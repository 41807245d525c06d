// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the values shared between the resolver, the platform
// drivers and the command surface.
package types

const (
	// DocxExt is the source document extension, matched case-insensitively.
	DocxExt = ".docx"
	// PDFExt is the extension of conversion products.
	PDFExt = ".pdf"
)

// Descriptor is a resolved, validated conversion request. It is built once
// by the resolver and read by exactly one driver call.
type Descriptor struct {
	// Batch is true when Input is a directory whose documents are all converted.
	Batch bool `json:"batch" yaml:"batch"`

	// Input is the absolute path of the source directory (batch) or document.
	Input string `json:"input" yaml:"input"`

	// Output is the absolute destination directory (batch) or PDF file path.
	Output string `json:"output" yaml:"output"`
}
