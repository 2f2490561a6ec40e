package paths

import "testing"

func TestNormalize(t *testing.T) {
	if got := Normalize(`src\api\handlers.py`); got != "src/api/handlers.py" {
		t.Errorf("Normalize = %q, want forward slashes", got)
	}
}

func TestIsTestFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"tests/test_parse.py", true},
		{"pkg/config/config_test.go", true},
		{"src/__tests__/app.js", true},
		{"spec/models_spec.rb", true},
		{"src/utils.test.ts", true},
		{"src/utils.spec.ts", true},
		{"app/testdata/fixture.json", true},
		{"test_runner.py", true},
		{"src/api/handlers.py", false},
		{"src/contest/entry.py", false},
		{"src/latest.py", false},
		{"attestation.go", false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := IsTestFile(tt.path); got != tt.want {
				t.Errorf("IsTestFile(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestInScope(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		patterns []string
		want     bool
	}{
		{"empty pattern list matches all", "src/a.py", nil, true},
		{"bare double star matches all", "src/a.py", []string{"**"}, true},
		{"exact match", "src/a.py", []string{"src/a.py"}, true},
		{"single star stays in segment", "src/a.py", []string{"src/*.py"}, true},
		{"single star does not cross segments", "src/sub/a.py", []string{"src/*.py"}, false},
		{"double star crosses segments", "src/sub/deep/a.py", []string{"src/**/*.py"}, true},
		{"double star matches zero segments", "src/a.py", []string{"src/**/*.py"}, true},
		{"question mark", "src/a.py", []string{"src/?.py"}, true},
		{"any pattern suffices", "lib/x.py", []string{"src/**", "lib/**"}, true},
		{"no pattern matches", "docs/readme.md", []string{"src/**", "lib/**"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := InScope(tt.path, tt.patterns); got != tt.want {
				t.Errorf("InScope(%q, %v) = %v, want %v", tt.path, tt.patterns, got, tt.want)
			}
		})
	}
}

func TestDir(t *testing.T) {
	tests := []struct {
		path, want string
	}{
		{"src/api/handlers.py", "src/api"},
		{"handlers.py", "."},
		{`src\api\h.py`, "src/api"},
	}
	for _, tt := range tests {
		if got := Dir(tt.path); got != tt.want {
			t.Errorf("Dir(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestTopDir(t *testing.T) {
	tests := []struct {
		path, want string
	}{
		{"src/api/handlers.py", "src"},
		{"handlers.py", "."},
	}
	for _, tt := range tests {
		if got := TopDir(tt.path); got != tt.want {
			t.Errorf("TopDir(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
