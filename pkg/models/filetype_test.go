package models

import "testing"

func TestClassifierClassify(t *testing.T) {
	c := NewClassifier(nil)

	tests := []struct {
		name string
		path string
		want string
	}{
		{"TypeScript file", "src/index.ts", "TypeScript"},
		{"TSX file", "src/App.tsx", "TypeScript"},
		{"Python file", "scripts/build.py", "Python"},
		{"Unknown extension", "data/report.xyz", FileTypeOther},
		{"No extension", "LICENSE", FileTypeOther},
		{"Case insensitive", "INDEX.TS", "TypeScript"},
		{"Uppercase path", "SRC/MAIN.PY", "Python"},
		{"Go file", "internal/app/app.go", "Go"},
		{"Go test wins over Go", "internal/app/app_test.go", "Test"},
		{"TS spec wins over TS", "src/app.spec.ts", "Test"},
		{"TS test wins over TS", "src/app.test.ts", "Test"},
		{"Markdown", "docs/README.md", "Markdown"},
		{"YAML", ".github/workflows/ci.yml", "YAML"},
		{"Lockfile", "yarn.lock", "Lockfile"},
		{"Dockerfile", "Dockerfile", "Build"},
		{"Makefile", "Makefile", "Build"},
		{"PNG is binary", "assets/logo.png", FileTypeBinary},
		{"Uppercase binary", "ASSETS/LOGO.PNG", FileTypeBinary},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Classify(tt.path); got != tt.want {
				t.Errorf("Classify(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestClassifierCustomTable(t *testing.T) {
	c := NewClassifier(map[string]string{
		".FOO":    "Foo",
		".bar.go": "Bar",
		".go":     "Go",
	})

	if got := c.Classify("a/b/x.foo"); got != "Foo" {
		t.Errorf("Classify(x.foo) = %q, want Foo", got)
	}
	if got := c.Classify("a/b/x.bar.go"); got != "Bar" {
		t.Errorf("Classify(x.bar.go) = %q, want Bar (longest suffix)", got)
	}
	if got := c.Classify("a/b/x.go"); got != "Go" {
		t.Errorf("Classify(x.go) = %q, want Go", got)
	}
	if got := c.Classify("a/b/x.ts"); got != FileTypeOther {
		t.Errorf("Classify(x.ts) = %q, want Other with custom table", got)
	}
}

func TestClassifierIsBinary(t *testing.T) {
	c := NewClassifier(nil)
	if !c.IsBinary("img/icon.ico") {
		t.Error("IsBinary(icon.ico) = false, want true")
	}
	if c.IsBinary("src/icon.go") {
		t.Error("IsBinary(icon.go) = true, want false")
	}
}

func TestCategoriesFromStrings(t *testing.T) {
	got := CategoriesFromStrings(map[string]string{
		"Go":       "application",
		"Test":     "TEST",
		"Markdown": "documentation",
		"Weird":    "nonsense",
	})

	if got["Go"] != CategoryApplication {
		t.Errorf("Go category = %q, want application", got["Go"])
	}
	if got["Test"] != CategoryTest {
		t.Errorf("Test category = %q, want test (case-insensitive)", got["Test"])
	}
	if _, ok := got["Weird"]; ok {
		t.Error("unknown category name should be dropped")
	}

	defaults := CategoriesFromStrings(nil)
	if defaults["TypeScript"] != CategoryApplication {
		t.Errorf("default TypeScript category = %q, want application", defaults["TypeScript"])
	}
	if defaults["Test"] != CategoryTest {
		t.Errorf("default Test category = %q, want test", defaults["Test"])
	}
}
