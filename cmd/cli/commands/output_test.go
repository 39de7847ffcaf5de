package commands

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.interactor.dev/cfndep/decode"
)

func TestWriteOutput_TargetIsDirectory(t *testing.T) {
	dir := t.TempDir()

	err := writeOutput(dir, "content")
	var outErr *OutputError
	if !errors.As(err, &outErr) {
		t.Fatalf("error = %v, want *OutputError", err)
	}
	if outErr.Kind != OutputIsDirectory {
		t.Errorf("kind = %v, want OutputIsDirectory", outErr.Kind)
	}
	if got := ExitCode(err); got != ExitOutputIsDirectory {
		t.Errorf("exit code = %d, want %d", got, ExitOutputIsDirectory)
	}

	entries, readErr := os.ReadDir(dir)
	if readErr != nil {
		t.Fatal(readErr)
	}
	if len(entries) != 0 {
		t.Errorf("directory must stay untouched, found %v", entries)
	}
}

func TestWriteOutput_ParentMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "out.md")

	err := writeOutput(path, "content")
	var outErr *OutputError
	if !errors.As(err, &outErr) {
		t.Fatalf("error = %v, want *OutputError", err)
	}
	if outErr.Kind != OutputDirNotFound {
		t.Errorf("kind = %v, want OutputDirNotFound", outErr.Kind)
	}
	if got := ExitCode(err); got != ExitOutputDirNotFound {
		t.Errorf("exit code = %d, want %d", got, ExitOutputDirNotFound)
	}
}

func TestWriteOutput_PermissionDenied(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("running as root, permission checks do not apply")
	}

	dir := t.TempDir()
	if err := os.Chmod(dir, 0o500); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chmod(dir, 0o700) })

	err := writeOutput(filepath.Join(dir, "out.md"), "content")
	var outErr *OutputError
	if !errors.As(err, &outErr) {
		t.Fatalf("error = %v, want *OutputError", err)
	}
	if outErr.Kind != OutputPermissionDenied {
		t.Errorf("kind = %v, want OutputPermissionDenied", outErr.Kind)
	}
	if got := ExitCode(err); got != ExitOutputPermissionDenied {
		t.Errorf("exit code = %d, want %d", got, ExitOutputPermissionDenied)
	}
}

func TestWriteOutput_Truncates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.md")
	if err := writeOutput(path, "old content, much longer than the new one"); err != nil {
		t.Fatal(err)
	}
	if err := writeOutput(path, "new"); err != nil {
		t.Fatal(err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(content) != "new" {
		t.Errorf("content = %q, want %q", content, "new")
	}
}

func TestExitCode(t *testing.T) {
	if got := ExitCode(nil); got != ExitOK {
		t.Errorf("ExitCode(nil) = %d, want %d", got, ExitOK)
	}
	if got := ExitCode(errors.New("boom")); got != ExitFailure {
		t.Errorf("generic error = %d, want %d", got, ExitFailure)
	}
	parseErr := &decode.ParseError{Path: "t.yaml", Err: errors.New("bad")}
	if got := ExitCode(parseErr); got != ExitFailure {
		t.Errorf("parse error = %d, want %d", got, ExitFailure)
	}
}

func TestReport_ParseError(t *testing.T) {
	buf := &bytes.Buffer{}
	Report(buf, &decode.ParseError{Path: "t.yaml", Err: errors.New("bad indent")})
	want := "[ERROR] Failed to parse YAML in t.yaml : bad indent"
	if !strings.Contains(buf.String(), want) {
		t.Errorf("report = %q, want %q", buf.String(), want)
	}
}

func TestReport_OutputErrors(t *testing.T) {
	cases := []struct {
		kind OutputKind
		want string
	}{
		{OutputIsDirectory, "[ERROR] Is a directory: out"},
		{OutputDirNotFound, "[ERROR] Output directory not found: out"},
		{OutputPermissionDenied, "[ERROR] Permission denied when writing to: out"},
	}
	for _, c := range cases {
		buf := &bytes.Buffer{}
		Report(buf, &OutputError{Path: "out", Kind: c.kind})
		if !strings.Contains(buf.String(), c.want) {
			t.Errorf("report for kind %v = %q, want %q", c.kind, buf.String(), c.want)
		}
	}
}
