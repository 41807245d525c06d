//go:build mage

// Package main contains Mage build targets for docx2pdf developer tooling.
package main

import (
	"bufio"
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binDir     = "bin"
	binName    = "docx2pdf"
	cmdPkg     = "./cmd/docx2pdf"
	versionVar = "github.com/pdiddy/docx2pdf/internal/version.Version"
)

// targets are the platforms docx2pdf has a driver for.
var targets = []struct{ goos, goarch, ext string }{
	{"windows", "amd64", ".exe"},
	{"darwin", "arm64", ""},
	{"darwin", "amd64", ""},
}

// Build compiles the CLI binary for the host into bin/.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	out := filepath.Join(binDir, binName)
	if err := sh.RunV("go", "build", "-ldflags", ldflags(), "-o", out, cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", out)
	return nil
}

// Release cross-compiles the CLI for every supported platform.
func Release() error {
	for _, t := range targets {
		out := filepath.Join(binDir, fmt.Sprintf("%s-%s-%s%s", binName, t.goos, t.goarch, t.ext))
		env := map[string]string{"GOOS": t.goos, "GOARCH": t.goarch, "CGO_ENABLED": "0"}
		if err := sh.RunWithV(env, "go", "build", "-ldflags", ldflags(), "-o", out, cmdPkg); err != nil {
			return fmt.Errorf("building %s/%s: %w", t.goos, t.goarch, err)
		}
		fmt.Printf("Built %s\n", out)
	}
	return nil
}

// Test runs the unit tests.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Check vets the module and runs the tests.
func Check() error {
	if err := sh.RunV("go", "vet", "./..."); err != nil {
		return err
	}
	mg.Deps(Test)
	return nil
}

// Stats prints non-blank Go line counts for production code and tests.
func Stats() error {
	prod, test, err := countGoLines(".")
	if err != nil {
		return err
	}
	fmt.Printf("%-12s %6d\n", "production", prod)
	fmt.Printf("%-12s %6d\n", "tests", test)
	return nil
}

// ldflags stamps the version from $VERSION or `git describe`.
func ldflags() string {
	v := os.Getenv("VERSION")
	if v == "" {
		if out, err := sh.Output("git", "describe", "--tags", "--always", "--dirty"); err == nil {
			v = out
		}
	}
	if v == "" {
		return "-s -w"
	}
	return fmt.Sprintf("-s -w -X '%s=%s'", versionVar, v)
}

// countGoLines returns the non-blank line counts of production and test
// Go files under root. Vendored reference trees are skipped.
func countGoLines(root string) (prod, test int, err error) {
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if name := d.Name(); name == "_examples" || name == ".git" || name == binDir {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(path, ".go") {
			return nil
		}
		n, err := nonBlankLines(path)
		if err != nil {
			return err
		}
		if strings.HasSuffix(path, "_test.go") {
			test += n
		} else {
			prod += n
		}
		return nil
	})
	return prod, test, err
}

func nonBlankLines(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	n := 0
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if len(bytes.TrimSpace(sc.Bytes())) > 0 {
			n++
		}
	}
	if err := sc.Err(); err != nil {
		return 0, fmt.Errorf("reading %s: %w", path, err)
	}
	return n, nil
}
