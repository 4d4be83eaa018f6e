package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// setupProject copies the button snapshot into a temp project with a config
// file and changes into it.
func setupProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	data, err := os.ReadFile(filepath.Join("testdata", "button.snapshot.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "types.yaml"), data, 0o644); err != nil {
		t.Fatal(err)
	}
	config := "snapshot: types.yaml\noutput: dist/surface.json\ninclude: [\"src/**/*.ts\"]\nlogLevel: error\n"
	if err := os.WriteFile(filepath.Join(dir, "typesurface.yaml"), []byte(config), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Chdir(dir)
	return dir
}

func testApp(t *testing.T) (*app, *bytes.Buffer) {
	t.Helper()
	stderr, err := os.Create(filepath.Join(t.TempDir(), "stderr.log"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { stderr.Close() })
	var stdout bytes.Buffer
	return &app{stdout: &stdout, stderr: stderr}, &stdout
}

func execute(t *testing.T, a *app, args ...string) error {
	t.Helper()
	cmd := newRootCmd(a)
	cmd.SetArgs(args)
	return cmd.ExecuteContext(context.Background())
}

func TestExtractWritesSurface(t *testing.T) {
	dir := setupProject(t)
	a, _ := testApp(t)

	if err := execute(t, a, "extract"); err != nil {
		t.Fatalf("extract: %v", err)
	}

	out := filepath.Join(dir, "dist", "surface.json")
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	s := string(data)
	for _, want := range []string{`"src/button.ts"`, `"ButtonProps"`, `"Props"`, `"label"`, `"Props of the button."`} {
		if !strings.Contains(s, want) {
			t.Errorf("expected output to contain %s", want)
		}
	}
	if _, err := os.Stat(filepath.Join(dir, "dist", ".surface.typesurface-cache")); err != nil {
		t.Errorf("expected cache file: %v", err)
	}
}

func TestExtractSkipsWhenCached(t *testing.T) {
	dir := setupProject(t)
	a, _ := testApp(t)
	out := filepath.Join(dir, "dist", "surface.json")

	if err := execute(t, a, "extract"); err != nil {
		t.Fatalf("extract: %v", err)
	}
	// A stale marker survives a cached run but not a forced one
	os.WriteFile(out, []byte("{}"), 0o644)

	if err := execute(t, a, "extract"); err != nil {
		t.Fatalf("second extract: %v", err)
	}
	if data, _ := os.ReadFile(out); string(data) != "{}" {
		t.Error("expected cached run to leave the output alone")
	}

	if err := execute(t, a, "extract", "--force"); err != nil {
		t.Fatalf("forced extract: %v", err)
	}
	if data, _ := os.ReadFile(out); string(data) == "{}" {
		t.Error("expected forced run to rewrite the output")
	}

	// Changing the snapshot invalidates the cache too
	os.WriteFile(out, []byte("{}"), 0o644)
	snap := filepath.Join(dir, "types.yaml")
	data, _ := os.ReadFile(snap)
	os.WriteFile(snap, append(data, []byte("\n# touched\n")...), 0o644)
	if err := execute(t, a, "extract"); err != nil {
		t.Fatalf("extract after change: %v", err)
	}
	if data, _ := os.ReadFile(out); string(data) == "{}" {
		t.Error("expected a snapshot change to trigger extraction")
	}
}

func TestExtractToStdout(t *testing.T) {
	setupProject(t)
	a, stdout := testApp(t)

	if err := execute(t, a, "extract", "--out", "-"); err != nil {
		t.Fatalf("extract: %v", err)
	}
	if out := stdout.String(); !strings.Contains(out, `"program"`) || !strings.Contains(out, `"ButtonProps"`) {
		t.Errorf("expected program JSON on stdout, got %q", stdout.String())
	}
}

func TestExtractErrors(t *testing.T) {
	setupProject(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"missing snapshot", []string{"extract", "--snapshot", "nope.yaml"}, "reading snapshot"},
		{"missing config", []string{"extract", "--config", "other.yaml"}, "failed to read config file"},
		{"bad log level", []string{"--log-level", "loud", "extract"}, "invalid log level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, _ := testApp(t)
			err := execute(t, a, tt.args...)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestLoadOrDiscoverConfig(t *testing.T) {
	dir := t.TempDir()

	res, err := loadOrDiscoverConfig("", dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Path != "" || res.Config == nil || res.Dir != dir {
		t.Errorf("expected defaults with no config, got %+v", res)
	}
	if got := res.resolvePath("types.yaml"); got != filepath.Join(dir, "types.yaml") {
		t.Errorf("resolvePath = %q", got)
	}
	if got := res.resolvePath("-"); got != "-" {
		t.Errorf("resolvePath(-) = %q", got)
	}

	sub := filepath.Join(dir, "conf")
	os.MkdirAll(sub, 0o755)
	os.WriteFile(filepath.Join(sub, "typesurface.yml"), []byte("snapshot: s.yaml\n"), 0o644)
	res, err = loadOrDiscoverConfig("conf/typesurface.yml", dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Dir != sub || res.Config.Snapshot != "s.yaml" {
		t.Errorf("unexpected result: %+v", res)
	}
}

func TestVersion(t *testing.T) {
	a, stdout := testApp(t)
	if err := execute(t, a, "version"); err != nil {
		t.Fatal(err)
	}
	if got := stdout.String(); got != "typesurface "+version+"\n" {
		t.Errorf("unexpected version output %q", got)
	}
}

func TestExtractRunsFollowUpCommand(t *testing.T) {
	dir := setupProject(t)
	a, _ := testApp(t)

	if err := execute(t, a, "extract", "--exec", "touch hooked"); err != nil {
		t.Fatalf("extract: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "hooked")); err != nil {
		t.Errorf("expected follow-up command to run: %v", err)
	}

	err := execute(t, a, "extract", "--force", "--exec", "false")
	if err == nil {
		t.Error("expected the failing follow-up command to fail the run")
	}
}
