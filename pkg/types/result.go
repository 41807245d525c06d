// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Result summarises one conversion call. It is returned alongside any error
// so callers can see how far a failed batch got.
type Result struct {
	// Driver names the platform driver that ran ("com" or "script").
	Driver string `json:"driver" yaml:"driver"`

	// Batch mirrors Descriptor.Batch.
	Batch bool `json:"batch" yaml:"batch"`

	// Total is the number of documents expected to convert, counted before
	// the driver starts.
	Total int `json:"total" yaml:"total"`

	// Converted is the number of documents reported as converted.
	Converted int `json:"converted" yaml:"converted"`

	// Outputs lists the PDFs reported as written, in completion order.
	Outputs []string `json:"outputs,omitempty" yaml:"outputs,omitempty"`
}

// Complete reports whether every expected document was converted.
func (r Result) Complete() bool {
	return r.Converted >= r.Total
}
