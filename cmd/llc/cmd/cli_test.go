package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/spf13/cobra"
)

func writeSource(t *testing.T, source string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "input.llc")
	if err := os.WriteFile(path, []byte(source), 0o644); err != nil {
		t.Fatalf("writing fixture source: %v", err)
	}
	return path
}

func runCommand(t *testing.T, run func(*cobra.Command, []string) error, args []string) (string, string, error) {
	t.Helper()
	cmd := &cobra.Command{}
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	err := run(cmd, args)
	return out.String(), errOut.String(), err
}

const greeterSource = `
struct Greeter { name: uint8[] }
function greet(g: Greeter): uint8[] {
	return g.name;
}
`

func TestRunCheckOnWellTypedProgram(t *testing.T) {
	path := writeSource(t, greeterSource)
	out, errOut, err := runCommand(t, runCheck, []string{path})
	if err != nil {
		t.Fatalf("runCheck failed: %v (stderr: %s)", err, errOut)
	}
	snaps.MatchSnapshot(t, "stdout", out)
}

func TestRunCheckOnIllTypedProgramReportsError(t *testing.T) {
	path := writeSource(t, `
		function f(): int32 {
			return 1.0;
		}
	`)
	_, errOut, err := runCommand(t, runCheck, []string{path})
	if err == nil {
		t.Fatal("expected runCheck to return an error for an ill-typed program")
	}
	snaps.MatchSnapshot(t, "stderr", errOut)
}

func TestRunPrintDefaultsToCheckTypes(t *testing.T) {
	path := writeSource(t, greeterSource)
	printPassName = "check_types"
	out, errOut, err := runCommand(t, runPrint, []string{path})
	if err != nil {
		t.Fatalf("runPrint failed: %v (stderr: %s)", err, errOut)
	}
	snaps.MatchSnapshot(t, "stdout", out)
}

func TestRunPrintParseStage(t *testing.T) {
	path := writeSource(t, greeterSource)
	printPassName = "parse"
	out, errOut, err := runCommand(t, runPrint, []string{path})
	if err != nil {
		t.Fatalf("runPrint failed: %v (stderr: %s)", err, errOut)
	}
	snaps.MatchSnapshot(t, "stdout", out)
}

func TestRunPrintUnknownPassRejected(t *testing.T) {
	path := writeSource(t, greeterSource)
	printPassName = "not_a_real_pass"
	defer func() { printPassName = "check_types" }()
	_, _, err := runCommand(t, runPrint, []string{path})
	if err == nil {
		t.Fatal("expected an error for an unknown --pass value")
	}
}

func TestRunTypesListsDeclaredTypesSorted(t *testing.T) {
	path := writeSource(t, `
		struct Box { value: int64 }
		struct Ant { legs: int64 }
	`)
	out, errOut, err := runCommand(t, runTypes, []string{path})
	if err != nil {
		t.Fatalf("runTypes failed: %v (stderr: %s)", err, errOut)
	}
	snaps.MatchSnapshot(t, "stdout", out)
}

func TestReadSourceMissingFileErrors(t *testing.T) {
	_, _, err := readSource([]string{filepath.Join(t.TempDir(), "missing.llc")})
	if err == nil {
		t.Fatal("expected an error reading a nonexistent file")
	}
}

func TestReadSourceNoArgsErrors(t *testing.T) {
	if _, _, err := readSource(nil); err == nil {
		t.Fatal("expected an error with no file argument")
	}
}

func TestWantColorNoColorFlagWins(t *testing.T) {
	flagNoColor = true
	defer func() { flagNoColor = false }()
	if wantColor() {
		t.Error("wantColor() should be false when --no-color is set")
	}
}

func TestWantColorConfigOverridesTerminalDetection(t *testing.T) {
	flagNoColor = false
	on := true
	loadedConfig = &Config{Color: &on}
	defer func() { loadedConfig = nil }()
	if !wantColor() {
		t.Error("wantColor() should follow .llcrc.yaml when set and --no-color is absent")
	}
}

func TestLoadConfigMissingFileIsNotAnError(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd failed: %v", err)
	}
	defer os.Chdir(wd)
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir failed: %v", err)
	}

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Color != nil {
		t.Error("Color should be nil with no .llcrc.yaml present")
	}
}

func TestLoadConfigParsesColorField(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd failed: %v", err)
	}
	defer os.Chdir(wd)
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir failed: %v", err)
	}
	if err := os.WriteFile(configFileName, []byte("color: false\n"), 0o644); err != nil {
		t.Fatalf("writing .llcrc.yaml: %v", err)
	}

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Color == nil || *cfg.Color {
		t.Error("Color should be false per the written .llcrc.yaml")
	}
}
