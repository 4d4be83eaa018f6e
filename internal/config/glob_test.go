package config

import "testing"

func TestMatchesGlob(t *testing.T) {
	include := []string{"src/**/*.ts"}
	tests := []struct {
		name    string
		path    string
		include []string
		exclude []string
		want    bool
	}{
		{"top level", "src/index.ts", include, nil, true},
		{"nested", "src/a/b/c.ts", include, nil, true},
		{"relative prefix", "lib/index.ts", include, nil, false},
		{"prefix inside segment", "mysrc/index.ts", include, nil, false},
		{"prefix below root", "packages/ui/src/index.ts", include, nil, true},
		{"other extension", "src/index.tsx", include, nil, false},
		{"excluded", "src/a.test.ts", include, []string{"**/*.test.ts"}, false},
		{"bare basename", "deep/dir/index.ts", []string{"index.ts"}, nil, true},
		{"exact", "src/index.ts", []string{"src/index.ts"}, nil, true},
		{"trailing doublestar", "src/any/file.md", []string{"src/**"}, nil, true},
		{"no includes", "src/index.ts", nil, nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MatchesGlob(tt.path, tt.include, tt.exclude); got != tt.want {
				t.Errorf("MatchesGlob(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestMatchesNamePattern(t *testing.T) {
	tests := []struct {
		name     string
		patterns []string
		want     bool
	}{
		{"_cache", []string{"_*"}, true},
		{"cache", []string{"_*"}, false},
		{"UserDto", []string{"*Dto"}, true},
		{"id", []string{"i?"}, true},
		{"label", nil, false},
	}
	for _, tt := range tests {
		if got := MatchesNamePattern(tt.name, tt.patterns); got != tt.want {
			t.Errorf("MatchesNamePattern(%q, %v) = %v, want %v", tt.name, tt.patterns, got, tt.want)
		}
	}
}
