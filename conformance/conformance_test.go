package conformance

import "testing"

func TestConformance(t *testing.T) {
	tests, err := LoadDir("testdata")
	if err != nil {
		t.Fatalf("loading suites: %v", err)
	}
	if len(tests) == 0 {
		t.Fatal("no suites loaded")
	}

	byFile := make(map[string][]Loaded)
	var order []string
	for _, test := range tests {
		if _, ok := byFile[test.File]; !ok {
			order = append(order, test.File)
		}
		byFile[test.File] = append(byFile[test.File], test)
	}

	for _, file := range order {
		t.Run(file, func(t *testing.T) {
			for _, test := range byFile[file] {
				t.Run(test.Case.Name, func(t *testing.T) {
					if test.Case.Skip != "" {
						t.Skip(test.Case.Skip)
					}
					if result := Run(test.Case); !result.Passed {
						t.Errorf("%s: %s", test.Case.Code, result.Detail)
					}
				})
			}
		})
	}
}

func TestLoadDir(t *testing.T) {
	tests, err := LoadDir("testdata")
	if err != nil {
		t.Fatalf("loading suites: %v", err)
	}

	files := make(map[string]bool)
	for _, test := range tests {
		files[test.File] = true
		if test.Suite == "" {
			t.Errorf("case %q has no suite name", test.Case.Name)
		}
	}
	if len(files) < 3 {
		t.Errorf("expected at least 3 suite files, found %d", len(files))
	}
}
