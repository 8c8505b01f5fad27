package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"testing"

	"github.com/fsnotify/fsnotify"

	"github.com/kamal-hamza/svgcheck/internal/core/services"
)

// TestCommandStructure verifies that all commands are properly registered
func TestCommandStructure(t *testing.T) {
	commands := []string{
		"check", "watch", "doctor", "sizes", "inspect", "chart", "init", "config", "version",
	}

	for _, cmdName := range commands {
		t.Run(cmdName, func(t *testing.T) {
			cmd, _, err := rootCmd.Find([]string{cmdName})
			if err != nil {
				t.Fatalf("Command '%s' not found: %v", cmdName, err)
			}
			if cmd == nil {
				t.Fatalf("Command '%s' is nil", cmdName)
			}
			if cmd.Use == "" {
				t.Errorf("Command '%s' has no Use field", cmdName)
			}
		})
	}
}

// TestRootCommandExists verifies the root command is properly configured
func TestRootCommandExists(t *testing.T) {
	if rootCmd.Use != "svgcheck" {
		t.Errorf("Expected root command Use to be 'svgcheck', got '%s'", rootCmd.Use)
	}
	if rootCmd.Short == "" {
		t.Error("Root command Short description is empty")
	}
	if rootCmd.RunE == nil {
		t.Error("Root command should run the checks by default")
	}
}

// TestCommandsHaveHelp verifies all commands have help text
func TestCommandsHaveHelp(t *testing.T) {
	for _, cmd := range rootCmd.Commands() {
		t.Run(cmd.Name(), func(t *testing.T) {
			if cmd.Short == "" {
				t.Errorf("Command '%s' has no Short description", cmd.Name())
			}
		})
	}
}

// --- end-to-end helpers ---

type testProject struct {
	root string
	svg  string
}

func newTestProject(t *testing.T, readmeRows []string, icons map[string]int) *testProject {
	t.Helper()

	root := t.TempDir()
	svgDir := filepath.Join(root, "images", "svg")
	if err := os.MkdirAll(svgDir, 0755); err != nil {
		t.Fatalf("failed to create svg dir: %v", err)
	}

	readme := "# Icons\n\n<table>\n<tr>\n" + strings.Join(readmeRows, "\n") + "\n</tr>\n</table>\n"
	if err := os.WriteFile(filepath.Join(root, "README.md"), []byte(readme), 0644); err != nil {
		t.Fatalf("failed to write README: %v", err)
	}

	for name, size := range icons {
		content := []byte(strings.Repeat("x", size))
		if err := os.WriteFile(filepath.Join(svgDir, name), content, 0644); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}

	return &testProject{root: root, svg: svgDir}
}

func row(name string, size int) string {
	return `<td><img src="images/svg/` + name + `"><br>` + strconv.Itoa(size) + ` bytes</td>`
}

// fakeValidator writes a java stand-in and an empty jar, returning their paths
func fakeValidator(t *testing.T, body string) (java, jar string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts are not executable on windows")
	}

	dir := t.TempDir()
	java = filepath.Join(dir, "java")
	if err := os.WriteFile(java, []byte("#!/bin/sh\n"+body+"\n"), 0755); err != nil {
		t.Fatalf("failed to write fake java: %v", err)
	}
	jar = filepath.Join(dir, "vnu.jar")
	if err := os.WriteFile(jar, []byte("jar"), 0644); err != nil {
		t.Fatalf("failed to write fake jar: %v", err)
	}
	return java, jar
}

// executeCommand runs the root command with args and captures its output.
// Flag variables are package globals, so they are reset before every run.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	rootDir, configFile, javaFlag, vnuJarFlag = ".", "", "", ""
	checkSkipValidation, checkQuiet = false, false
	watchSkipValidation, watchQuiet = false, false
	sizesProblems, sizesCopy = false, false
	inspectValidate, initForce = false, false
	chartOutput = "icon-sizes.html"

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.ExecuteContext(context.Background())
	return buf.String(), err
}

func TestCheck_AllPass(t *testing.T) {
	p := newTestProject(t, []string{row("check.svg", 600)}, map[string]int{"check.svg": 600})
	java, jar := fakeValidator(t, "exit 0")

	out, err := executeCommand(t, "--root", p.root, "--java", java, "--vnu-jar", jar, "check")
	if err != nil {
		t.Fatalf("expected success, got %v\n%s", err, out)
	}

	for _, want := range []string{
		"Getting file sizes from README",
		"Validating SVGs with the W3C validator (vnu)",
		"Running tests",
		"check.svg",
		"should be under 1KB",
		"should be included in readme",
		"should match readme size",
		"should be validated by the w3c validator",
		"all files in readme should exist",
		"0 failed",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q\n%s", want, out)
		}
	}
}

func TestCheck_RootRunsChecks(t *testing.T) {
	p := newTestProject(t, []string{row("check.svg", 600)}, map[string]int{"check.svg": 600})

	out, err := executeCommand(t, "--root", p.root, "--skip-validation")
	if err != nil {
		t.Fatalf("expected success, got %v\n%s", err, out)
	}
	if !strings.Contains(out, "W3C validation was skipped") {
		t.Errorf("expected skipped warning\n%s", out)
	}
}

func TestCheck_OverBudgetAndOrphan(t *testing.T) {
	p := newTestProject(t,
		[]string{row("big.svg", 2048), row("ghost.svg", 100)},
		map[string]int{"big.svg": 2048, "notes.txt": 5},
	)

	out, err := executeCommand(t, "--root", p.root, "check", "--skip-validation")
	if !errors.Is(err, errChecksFailed) {
		t.Fatalf("expected errChecksFailed, got %v\n%s", err, out)
	}

	if !strings.Contains(out, "2048 bytes, must be under 1024") {
		t.Errorf("expected budget failure detail\n%s", out)
	}
	if !strings.Contains(out, "{ghost.svg: 100}") {
		t.Errorf("expected orphan listing\n%s", out)
	}
	if strings.Contains(out, "notes.txt") {
		t.Errorf("non-svg files should be ignored\n%s", out)
	}
	if !strings.Contains(out, "2 failed") {
		t.Errorf("expected 2 failures\n%s", out)
	}
}

func TestCheck_ValidationError(t *testing.T) {
	p := newTestProject(t,
		[]string{row("broken.svg", 300), row("fine.svg", 200)},
		map[string]int{"broken.svg": 300, "fine.svg": 200},
	)
	line := `"file:` + p.svg + `/broken.svg":1.1-1.20: error: bad element`
	java, jar := fakeValidator(t, "echo '"+line+"' >&2\nexit 1")

	out, err := executeCommand(t, "--root", p.root, "--java", java, "--vnu-jar", jar, "check", "--quiet")
	if !errors.Is(err, errChecksFailed) {
		t.Fatalf("expected errChecksFailed, got %v\n%s", err, out)
	}

	if !strings.Contains(out, `broken.svg":1.1-1.20: error: bad element`) {
		t.Errorf("expected validator message in output\n%s", out)
	}
	if strings.Contains(out, "fine.svg") {
		t.Errorf("quiet mode should hide passing files\n%s", out)
	}
	if strings.Contains(out, "Running tests") {
		t.Errorf("quiet mode should hide progress\n%s", out)
	}
	if !strings.Contains(out, "1 failed") {
		t.Errorf("expected exactly one failure\n%s", out)
	}
}

func TestCheck_MissingValidatorIsFatal(t *testing.T) {
	p := newTestProject(t, []string{row("check.svg", 600)}, map[string]int{"check.svg": 600})

	out, err := executeCommand(t, "--root", p.root, "--java", filepath.Join(p.root, "no-java"), "check")
	if err == nil || errors.Is(err, errChecksFailed) {
		t.Fatalf("expected a setup error, got %v\n%s", err, out)
	}
	if strings.Contains(out, "should be under 1KB") {
		t.Errorf("no report should be printed on setup error\n%s", out)
	}
}

func TestCheck_MissingReadmeIsFatal(t *testing.T) {
	p := newTestProject(t, nil, map[string]int{"check.svg": 600})
	if err := os.Remove(filepath.Join(p.root, "README.md")); err != nil {
		t.Fatalf("failed to remove README: %v", err)
	}

	_, err := executeCommand(t, "--root", p.root, "check", "--skip-validation")
	if err == nil || errors.Is(err, errChecksFailed) {
		t.Fatalf("expected a setup error, got %v", err)
	}
}

func TestSizes(t *testing.T) {
	p := newTestProject(t,
		[]string{row("check.svg", 600), row("close.svg", 400), row("ghost.svg", 100)},
		map[string]int{"check.svg": 600, "close.svg": 412, "new.svg": 90},
	)

	out, err := executeCommand(t, "--root", p.root, "sizes", "--problems")
	if err != nil {
		t.Fatalf("unexpected error: %v\n%s", err, out)
	}

	for _, want := range []string{"close.svg", "mismatch", "ghost.svg", "orphan", "new.svg", "undocumented"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q\n%s", want, out)
		}
	}
	if strings.Contains(out, "check.svg") {
		t.Errorf("--problems should hide matching icons\n%s", out)
	}
}

func TestSizes_ProblemsWhenAllMatch(t *testing.T) {
	p := newTestProject(t, []string{row("check.svg", 600)}, map[string]int{"check.svg": 600})

	out, err := executeCommand(t, "--root", p.root, "sizes", "--problems")
	if err != nil {
		t.Fatalf("unexpected error: %v\n%s", err, out)
	}
	if !strings.Contains(out, "All README sizes match") {
		t.Errorf("expected all-match message\n%s", out)
	}
	if strings.Contains(out, "No icons found") {
		t.Errorf("icons exist, output should not say none were found\n%s", out)
	}
}

func TestSizes_EmptyProject(t *testing.T) {
	p := newTestProject(t, nil, nil)

	out, err := executeCommand(t, "--root", p.root, "sizes")
	if err != nil {
		t.Fatalf("unexpected error: %v\n%s", err, out)
	}
	if !strings.Contains(out, "No icons found") {
		t.Errorf("expected no-icons warning\n%s", out)
	}
}

func TestInit_WritesConfig(t *testing.T) {
	p := newTestProject(t, nil, nil)

	out, err := executeCommand(t, "--root", p.root, "init")
	if err != nil {
		t.Fatalf("unexpected error: %v\n%s", err, out)
	}

	data, err := os.ReadFile(filepath.Join(p.root, ".svgcheck.yaml"))
	if err != nil {
		t.Fatalf("config was not written: %v", err)
	}
	if !strings.Contains(string(data), "size_budget: 1024") {
		t.Errorf("unexpected config content:\n%s", data)
	}

	out, err = executeCommand(t, "--root", p.root, "init")
	if err != nil {
		t.Fatalf("unexpected error on second init: %v", err)
	}
	if !strings.Contains(out, "already exists") {
		t.Errorf("expected existing config warning\n%s", out)
	}
}

func TestConfig_UsesFileValues(t *testing.T) {
	p := newTestProject(t, []string{row("big.svg", 2048)}, map[string]int{"big.svg": 2048})
	cfg := "size_budget: 4096\nskip_validation: true\n"
	if err := os.WriteFile(filepath.Join(p.root, ".svgcheck.yaml"), []byte(cfg), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	out, err := executeCommand(t, "--root", p.root, "check")
	if err != nil {
		t.Fatalf("expected success with raised budget, got %v\n%s", err, out)
	}

	out, err = executeCommand(t, "--root", p.root, "config")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "size_budget: 4096") {
		t.Errorf("expected effective config to show budget\n%s", out)
	}
}

func TestChart_WritesHTML(t *testing.T) {
	p := newTestProject(t, []string{row("check.svg", 600)}, map[string]int{"check.svg": 600})

	out, err := executeCommand(t, "--root", p.root, "chart", "--out", "sizes.html")
	if err != nil {
		t.Fatalf("unexpected error: %v\n%s", err, out)
	}

	data, err := os.ReadFile(filepath.Join(p.root, "sizes.html"))
	if err != nil {
		t.Fatalf("chart was not written: %v", err)
	}
	if !strings.Contains(string(data), "check.svg") {
		t.Error("expected chart to mention check.svg")
	}
}

func TestWriteChart(t *testing.T) {
	rows := []services.InventoryRow{
		{Filename: "check.svg", Size: 600, Declared: 600, OnDisk: true, InReadme: true},
	}
	bar := buildSizeChart(rows, 1024)

	path := filepath.Join(t.TempDir(), "chart.html")
	if err := writeChart(bar, path); err != nil {
		t.Fatalf("writeChart() error: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("chart was not written: %v", err)
	}
	if info.Size() == 0 {
		t.Error("chart file is empty")
	}

	missing := filepath.Join(t.TempDir(), "no-such-dir", "chart.html")
	if err := writeChart(bar, missing); err == nil {
		t.Error("expected error writing into a missing directory")
	}
}

func TestChart_ReportsWriteFailure(t *testing.T) {
	p := newTestProject(t, []string{row("check.svg", 600)}, map[string]int{"check.svg": 600})

	out, err := executeCommand(t, "--root", p.root, "chart", "--out", filepath.Join("missing", "sizes.html"))
	if err == nil {
		t.Fatalf("expected error, got success\n%s", out)
	}
	if strings.Contains(out, "Chart written to") {
		t.Errorf("should not report success on failure\n%s", out)
	}
}

func TestInspect_ByName(t *testing.T) {
	p := newTestProject(t, []string{row("check.svg", 600)}, map[string]int{"check.svg": 600})

	out, err := executeCommand(t, "--root", p.root, "inspect", "check")
	if err != nil {
		t.Fatalf("unexpected error: %v\n%s", err, out)
	}
	for _, want := range []string{"check.svg", "600 bytes", "Headroom", "424 bytes", "ok"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q\n%s", want, out)
		}
	}

	if _, err := executeCommand(t, "--root", p.root, "inspect", "missing"); err == nil {
		t.Error("expected error for unknown icon")
	}
}

func TestDoctor_ReportsMissingJar(t *testing.T) {
	p := newTestProject(t, []string{row("check.svg", 600)}, map[string]int{"check.svg": 600})

	out, err := executeCommand(t, "--root", p.root, "--vnu-jar", filepath.Join(p.root, "missing.jar"), "doctor")
	if !errors.Is(err, errChecksFailed) {
		t.Fatalf("expected doctor to report problems, got %v\n%s", err, out)
	}
	if !strings.Contains(out, "vnu.jar (W3C Validator)") || !strings.Contains(out, "missing.jar") {
		t.Errorf("expected missing jar in output\n%s", out)
	}
}

func TestIsWatchedEvent(t *testing.T) {
	readme := "/project/README.md"
	svgDir := "/project/images/svg"

	tests := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{"svg write", fsnotify.Event{Name: "/project/images/svg/check.svg", Op: fsnotify.Write}, true},
		{"svg removed", fsnotify.Event{Name: "/project/images/svg/check.svg", Op: fsnotify.Remove}, true},
		{"readme saved", fsnotify.Event{Name: "/project/README.md", Op: fsnotify.Write}, true},
		{"chmod only", fsnotify.Event{Name: "/project/images/svg/check.svg", Op: fsnotify.Chmod}, false},
		{"other file", fsnotify.Event{Name: "/project/images/svg/notes.txt", Op: fsnotify.Write}, false},
		{"editor swap", fsnotify.Event{Name: "/project/images/svg/.check.svg.swp", Op: fsnotify.Create}, false},
		{"svg outside dir", fsnotify.Event{Name: "/project/logo.svg", Op: fsnotify.Write}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isWatchedEvent(tt.event, readme, svgDir); got != tt.want {
				t.Errorf("isWatchedEvent(%v) = %v, want %v", tt.event, got, tt.want)
			}
		})
	}
}

func TestReadmeCells(t *testing.T) {
	rows := []services.InventoryRow{
		{Filename: "check.svg", Size: 600, Declared: 600, OnDisk: true, InReadme: true},
		{Filename: "close.svg", Size: 412, Declared: 400, OnDisk: true, InReadme: true},
		{Filename: "new.svg", Size: 90, OnDisk: true},
		{Filename: "ghost.svg", Declared: 100, InReadme: true},
	}

	cells := readmeCells(rows, "images/svg/")
	if len(cells) != 2 {
		t.Fatalf("expected 2 cells, got %d: %v", len(cells), cells)
	}
	if !strings.Contains(cells[0], "images/svg/close.svg") || !strings.Contains(cells[0], "<br>412 bytes") {
		t.Errorf("unexpected cell %q", cells[0])
	}
	if !strings.Contains(cells[1], "images/svg/new.svg") || !strings.Contains(cells[1], "<br>90 bytes") {
		t.Errorf("unexpected cell %q", cells[1])
	}
}

func TestBuildSizeChart(t *testing.T) {
	rows := []services.InventoryRow{
		{Filename: "check.svg", Size: 600, Declared: 600, OnDisk: true, InReadme: true},
		{Filename: "ghost.svg", Declared: 100, InReadme: true},
	}

	var buf bytes.Buffer
	if err := buildSizeChart(rows, 1024).Render(&buf); err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	html := buf.String()
	if !strings.Contains(html, "check.svg") {
		t.Error("expected chart to include check.svg")
	}
	if strings.Contains(html, "ghost.svg") {
		t.Error("icons missing from disk should not be charted")
	}
}
