// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package resolve turns a user-supplied input/output pair into a
// types.Descriptor and enumerates the documents of a batch directory.
// It only queries filesystem metadata; nothing is created or opened.
package resolve

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pdiddy/docx2pdf/pkg/types"
)

// lockPrefix starts the names of transient owner files Word writes next to
// open documents.
const lockPrefix = "~"

// Resolve validates input and the optional output and returns the
// descriptor for one conversion call. An empty output means "derive it".
func Resolve(input, output string) (types.Descriptor, error) {
	if strings.TrimSpace(input) == "" {
		return types.Descriptor{}, fmt.Errorf("%w: input path is required", types.ErrInvalidArgument)
	}
	in, err := filepath.Abs(input)
	if err != nil {
		return types.Descriptor{}, fmt.Errorf("%w: resolving input %s: %v", types.ErrInvalidArgument, input, err)
	}
	var out string
	if output != "" {
		out, err = filepath.Abs(output)
		if err != nil {
			return types.Descriptor{}, fmt.Errorf("%w: resolving output %s: %v", types.ErrInvalidArgument, output, err)
		}
	}

	if isDir(in) {
		return resolveBatch(in, out)
	}
	return resolveSingle(in, out)
}

func resolveBatch(in, out string) (types.Descriptor, error) {
	if out == "" {
		out = in
	} else if !isDir(out) {
		return types.Descriptor{}, fmt.Errorf("%w: output %s must be an existing directory when input is a directory", types.ErrInvalidArgument, out)
	}
	return types.Descriptor{Batch: true, Input: in, Output: out}, nil
}

func resolveSingle(in, out string) (types.Descriptor, error) {
	if !hasExt(in, types.DocxExt) {
		return types.Descriptor{}, fmt.Errorf("%w: input %s is not a %s document", types.ErrInvalidArgument, in, types.DocxExt)
	}
	switch {
	case out == "":
		out = PDFPath(filepath.Dir(in), in)
	case isDir(out):
		out = PDFPath(out, in)
	case !hasExt(out, types.PDFExt):
		return types.Descriptor{}, fmt.Errorf("%w: output %s must have a %s extension", types.ErrInvalidArgument, out, types.PDFExt)
	}
	return types.Descriptor{Batch: false, Input: in, Output: out}, nil
}

// PDFPath returns outDir/<stem>.pdf for the document at docPath.
func PDFPath(outDir, docPath string) string {
	base := filepath.Base(docPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(outDir, stem+types.PDFExt)
}

// Documents lists the convertible documents directly inside dir, sorted by
// filename. Word lock files (names starting with "~") and subdirectories
// are skipped. Returned paths are absolute when dir is.
func Documents(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("listing documents in %s: %w", dir, err)
	}

	var names []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, lockPrefix) || !hasExt(name, types.DocxExt) {
			continue
		}
		if entry.IsDir() {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	docs := make([]string, len(names))
	for i, name := range names {
		docs[i] = filepath.Join(dir, name)
	}
	return docs, nil
}

func hasExt(path, ext string) bool {
	return strings.EqualFold(filepath.Ext(path), ext)
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
