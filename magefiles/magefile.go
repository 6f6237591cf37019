//go:build mage

// Package main contains Mage build targets for esg-scan developer tooling.
package main

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binDir  = "bin"
	binName = "esg-scan"
	cmdPkg  = "./cmd/esg-scan"

	dictionaryDir = "dictionary"
	documentsDir  = "documents"
	taxonomyFile  = "taxonomy.json"
)

// Default target when mage runs without arguments.
var Default = Build

// starterTaxonomy is written by Init when no taxonomy exists yet.
const starterTaxonomy = `{
  "Environmental": {
    "Climate Change": {
      "GHG Emissions": ["greenhouse gas", "GHG", "CO2", "carbon dioxide", "scope 1", "scope 2", "scope 3"],
      "Targets": {
        "Net Zero": ["net zero", "carbon neutral"],
        "Science Based": ["science based targets", "SBTi"]
      }
    },
    "Resources": {
      "Water": ["water withdrawal", "water consumption", "water stress"]
    }
  },
  "Social": {
    "Human Capital": {
      "Health and Safety": ["lost time injury", "LTIFR", "fatalities"],
      "Diversity": ["gender pay gap", "diversity", "inclusion"]
    }
  },
  "Governance": {
    "Board": {
      "Independence": ["independent director", "board independence"],
      "Ethics": ["anti-corruption", "whistleblower", "code of conduct"]
    }
  }
}
`

// Init creates the dictionary/ and documents/ directories and a starter taxonomy.
func Init() error {
	for _, dir := range []string{dictionaryDir, documentsDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
		fmt.Println("  ", dir)
	}

	path := filepath.Join(dictionaryDir, taxonomyFile)
	if _, err := os.Stat(path); err == nil {
		fmt.Printf("Keeping existing %s\n", path)
		return nil
	}
	if err := os.WriteFile(path, []byte(starterTaxonomy), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	fmt.Printf("Wrote starter taxonomy to %s\n", path)
	return nil
}

// Build compiles the CLI binary into bin/.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	out := filepath.Join(binDir, binName)
	if err := sh.RunV("go", "build", "-o", out, cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", out)
	return nil
}

// Test runs the unit tests.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Vet runs go vet over all packages.
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Check runs vet and the tests.
func Check() {
	mg.SerialDeps(Vet, Test)
}

// Validate checks dictionary/taxonomy.json with the built binary.
func Validate() error {
	mg.Deps(Build)
	return sh.RunV(filepath.Join(binDir, binName), "taxonomy", "validate",
		"--taxonomy", filepath.Join(dictionaryDir, taxonomyFile))
}

// Scan builds the binary and scans documents/ with the default taxonomy.
func Scan() error {
	mg.Deps(Build)
	return sh.RunV(filepath.Join(binDir, binName), "scan",
		"--taxonomy", filepath.Join(dictionaryDir, taxonomyFile), documentsDir)
}

// Clean removes build output.
func Clean() error {
	return sh.Rm(binDir)
}

// Stats prints non-blank Go line counts for production and test code.
func Stats() error {
	var prod, test int
	err := filepath.WalkDir(".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), "_") || d.Name() == ".git" || d.Name() == binDir {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".go" {
			return nil
		}
		n, err := countLines(path)
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
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	fmt.Printf("Lines of code (Go, production): %d\n", prod)
	fmt.Printf("Lines of code (Go, tests):      %d\n", test)
	return nil
}

// countLines counts non-blank lines in the file at path.
func countLines(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", path, err)
	}
	n := 0
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		if strings.TrimSpace(sc.Text()) != "" {
			n++
		}
	}
	return n, sc.Err()
}
