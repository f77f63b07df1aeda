package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/faizmokh/mdstatus/internal/config"
	"github.com/faizmokh/mdstatus/internal/files"
	"github.com/faizmokh/mdstatus/internal/report"
	"github.com/faizmokh/mdstatus/internal/section"
)

const workNotes = `# Work
## Deploy pipeline *WIP*
(2024/03/01 10:00) started
(2024/03/05 18:20) canary green
## Vendor reply *WAIT*
(2024/02/11 09:15)
## Shipped *DONE*
(2024/01/20 12:00)
`

const homeNotes = `intro text that belongs to no section

# Home
## Taxes *TODO*
(2024/04/01 08:00)
## Repaint fence *DONT*
`

func TestRootCommandPrintsDigest(t *testing.T) {
	base := newWorkspace(t)

	out := executeCommand(t, newTestCommand(t, base), "work.md", "home.md")

	want := strings.Join([]string{
		"WAIT items:",
		"  work.md:L5: 240211_0915 Work / Vendor reply ",
		"",
		"WIP items:",
		"  work.md:L2: 240301_1000 Work / Deploy pipeline ",
		"",
		"TODO items:",
		"  home.md:L4: 240401_0800 Home / Taxes ",
		"",
	}, "\n")
	if out != want {
		t.Fatalf("output = %q, want %q", out, want)
	}
}

func TestRootCommandShowClosedFromEnv(t *testing.T) {
	base := newWorkspace(t)
	t.Setenv(config.ShowClosedEnv, "true")

	out := executeCommand(t, newTestCommand(t, base), "work.md", "home.md")
	assertContains(t, out, "DONT items:\n  home.md:L6: 000101_0000 Home / Repaint fence \n")
	assertContains(t, out, "DONE items:\n  work.md:L7: 240120_1200 Work / Shipped \n")
}

func TestRootCommandShowClosedEnvRequiresLiteralTrue(t *testing.T) {
	base := newWorkspace(t)
	t.Setenv(config.ShowClosedEnv, "yes")

	out := executeCommand(t, newTestCommand(t, base), "work.md")
	assertNotContains(t, out, "DONE items:")
}

func TestRootCommandFlagOverridesEnv(t *testing.T) {
	base := newWorkspace(t)
	t.Setenv(config.ShowClosedEnv, "true")

	out := executeCommand(t, newTestCommand(t, base), "--show-closed=false", "work.md")
	assertNotContains(t, out, "DONE items:")
}

func TestRootCommandAppliesConfigFile(t *testing.T) {
	base := newWorkspace(t)
	cfgPath := filepath.Join(base, "mdstatus.json")
	writeFile(t, cfgPath, `{
	// compact columns
	"basename_width": 4,
	"line_width": 3,
}`)

	out := executeCommand(t, newTestCommand(t, base), "--config", cfgPath, "work.md")
	assertContains(t, out, "  work:L2  : 240301_1000 Work / Deploy pipeline \n")
}

func TestRootCommandRequiresDocuments(t *testing.T) {
	base := newWorkspace(t)

	err := executeCommandErr(t, newTestCommand(t, base))
	if !errors.Is(err, ErrNoDocuments) {
		t.Fatalf("Execute error = %v, want ErrNoDocuments", err)
	}
	assertContains(t, err.Error(), usageLine)
}

func TestRootCommandAbortsOnMissingDocument(t *testing.T) {
	base := newWorkspace(t)

	cmd := newTestCommand(t, base)
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"work.md", "missing.md"})

	err := cmd.Execute()
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("Execute error = %v, want os.ErrNotExist", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("partial output written: %q", buf.String())
	}
}

func TestRootCommandFailsOnInvalidTimestamp(t *testing.T) {
	base := newWorkspace(t)
	writeFile(t, filepath.Join(base, "bad.md"), "# Broken *TODO*\n(2024/13/40 99:99)\n")

	err := executeCommandErr(t, newTestCommand(t, base), "work.md", "bad.md")
	if !errors.Is(err, section.ErrInvalidTimestamp) {
		t.Fatalf("Execute error = %v, want ErrInvalidTimestamp", err)
	}
}

func TestRootCommandStrictChecksEveryTimestamp(t *testing.T) {
	base := newWorkspace(t)
	// The invalid value is neither reported nor earliest, so only --strict catches it.
	writeFile(t, filepath.Join(base, "late.md"), "# Closed *DONE*\n(2024/01/01 00:00)\n(2024/02/30 10:00)\n")

	executeCommand(t, newTestCommand(t, base), "late.md")

	err := executeCommandErr(t, newTestCommand(t, base), "--strict", "late.md")
	if !errors.Is(err, section.ErrInvalidTimestamp) {
		t.Fatalf("Execute --strict error = %v, want ErrInvalidTimestamp", err)
	}
}

func TestRootCommandJSON(t *testing.T) {
	base := newWorkspace(t)

	out := executeCommand(t, newTestCommand(t, base), "--json", "work.md", "home.md")

	var categories []report.Category
	if err := json.Unmarshal([]byte(out), &categories); err != nil {
		t.Fatalf("Unmarshal: %v\n%s", err, out)
	}
	if len(categories) != 3 {
		t.Fatalf("categories = %d, want 3", len(categories))
	}
	todo := categories[2]
	if todo.Name != "TODO" || len(todo.Entries) != 1 || todo.Entries[0].Basename != "home.md" {
		t.Fatalf("TODO category = %+v", todo)
	}
}

func TestRootCommandWritesOutputFile(t *testing.T) {
	base := newWorkspace(t)

	out := executeCommand(t, newTestCommand(t, base), "--output", "reports/digest.txt", "work.md")
	if out != "" {
		t.Fatalf("stdout = %q, want empty when --output is set", out)
	}

	got, err := os.ReadFile(filepath.Join(base, "reports", "digest.txt"))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	assertContains(t, string(got), "WIP items:\n  work.md:L2: 240301_1000 Work / Deploy pipeline \n")
}

func TestRootCommandVerboseLogsToStderr(t *testing.T) {
	base := newWorkspace(t)

	cmd := newTestCommand(t, base)
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs([]string{"--verbose", "work.md"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	assertContains(t, stderr.String(), "built sections")
	assertNotContains(t, stdout.String(), "built sections")
}

func TestRootCommandColorMode(t *testing.T) {
	base := newWorkspace(t)
	t.Setenv("NO_COLOR", "")

	styled := executeCommand(t, newTestCommand(t, base), "--color", "always", "work.md")
	assertContains(t, styled, "\x1b[")

	plain := executeCommand(t, newTestCommand(t, base), "--color", "never", "work.md")
	assertNotContains(t, plain, "\x1b[")
	assertContains(t, plain, "WAIT items:\n")

	err := executeCommandErr(t, newTestCommand(t, base), "--color", "rainbow", "work.md")
	if !errors.Is(err, report.ErrInvalidColorMode) {
		t.Fatalf("error = %v, want ErrInvalidColorMode", err)
	}
}

func newWorkspace(t *testing.T) string {
	t.Helper()
	t.Setenv("MDSTATUS_CONFIG", "")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv(config.ShowClosedEnv, "")
	os.Unsetenv(config.ShowClosedEnv)

	base := t.TempDir()
	writeFile(t, filepath.Join(base, "work.md"), workNotes)
	writeFile(t, filepath.Join(base, "home.md"), homeNotes)
	return base
}

func newTestCommand(t *testing.T, base string) *cobra.Command {
	t.Helper()
	mgr, err := files.NewManager(base)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	return NewRootCommand(context.Background(), mgr)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}

func executeCommand(t *testing.T, cmd *cobra.Command, args ...string) string {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("cmd.Execute(%q): %v\n%s", args, err, buf.String())
	}
	return buf.String()
}

func executeCommandErr(t *testing.T, cmd *cobra.Command, args ...string) error {
	t.Helper()
	if args == nil {
		// cobra falls back to os.Args when given nil.
		args = []string{}
	}
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	if err == nil {
		t.Fatalf("cmd.Execute(%q) succeeded, want error", args)
	}
	return err
}

func assertContains(t *testing.T, output, want string) {
	t.Helper()
	if !strings.Contains(output, want) {
		t.Fatalf("output %q missing substring %q", output, want)
	}
}

func assertNotContains(t *testing.T, output, want string) {
	t.Helper()
	if strings.Contains(output, want) {
		t.Fatalf("output %q unexpectedly contained substring %q", output, want)
	}
}
