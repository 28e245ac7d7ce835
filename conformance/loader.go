package conformance

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Loaded pairs a case with its source suite.
type Loaded struct {
	File  string
	Suite string
	Case  Case
}

// LoadDir reads every .yaml suite under dir and flattens the cases.
func LoadDir(dir string) ([]Loaded, error) {
	var loaded []Loaded

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || filepath.Ext(path) != ".yaml" {
			return nil
		}

		suite, err := loadFile(path)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}

		rel, _ := filepath.Rel(dir, path)
		for _, c := range suite.Tests {
			loaded = append(loaded, Loaded{File: rel, Suite: suite.Name, Case: c})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return loaded, nil
}

func loadFile(path string) (Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Suite{}, err
	}

	var suite Suite
	if err := yaml.Unmarshal(data, &suite); err != nil {
		return Suite{}, err
	}
	if suite.Name == "" {
		return Suite{}, fmt.Errorf("suite has no name")
	}
	for _, c := range suite.Tests {
		if c.Name == "" || c.Code == "" {
			return Suite{}, fmt.Errorf("case %q is missing a name or code", c.Name)
		}
		if (c.Expect.Asm == "") == (c.Expect.Error == "") {
			return Suite{}, fmt.Errorf("case %q must expect exactly one of asm or error", c.Name)
		}
	}

	return suite, nil
}
