package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestRun_RoundTrip(t *testing.T) {
	color.NoColor = true
	dir := t.TempDir()
	source := filepath.Join(dir, "notes.txt")
	content := []byte(strings.Repeat("AAAAAAAABBBBCCD", 20))
	if err := os.WriteFile(source, content, 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	var stdout, stderr bytes.Buffer
	if code := run([]string{"huf", "-ar", "--progress=false", source}, &stdout, &stderr); code != 0 {
		t.Fatalf("compress exited with %d:\n%s%s", code, stdout.String(), stderr.String())
	}
	if !strings.Contains(stdout.String(), "Archivation done.") {
		t.Errorf("missing success message:\n%s", stdout.String())
	}

	stdout.Reset()
	if code := run([]string{"huf", "--decompress", "--progress=false", "--delete", source + ".huf"}, &stdout, &stderr); code != 0 {
		t.Fatalf("decompress exited with %d:\n%s%s", code, stdout.String(), stderr.String())
	}
	actual, err := os.ReadFile(filepath.Join(dir, "ORIGINAL_notes.txt"))
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if !bytes.Equal(content, actual) {
		t.Errorf("wrong output:\n\texpect: %q\n\tactual: %q", content, actual)
	}
	if _, err := os.Stat(source + ".huf"); !os.IsNotExist(err) {
		t.Errorf("expected the archive to be deleted, got %v", err)
	}
	if want := "[INFO] Removed " + source + ".huf"; !strings.Contains(stderr.String(), want) {
		t.Errorf("missing %q in stderr:\n%s", want, stderr.String())
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestRun_OutputFailure(t *testing.T) {
	color.NoColor = true
	dir := t.TempDir()
	archive := filepath.Join(dir, "a.txt.huf")
	if err := os.WriteFile(archive, []byte("1{a1;}}\x00"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	var stderr bytes.Buffer
	if code := run([]string{"huf", "--inspect", archive}, failingWriter{}, &stderr); code == 0 {
		t.Errorf("expected a non-zero exit code")
	}
	if want := "[ERROR] could not print " + archive + ": disk full"; !strings.Contains(stderr.String(), want) {
		t.Errorf("missing %q in stderr:\n%s", want, stderr.String())
	}
}

func TestRun_Errors(t *testing.T) {
	color.NoColor = true
	dir := t.TempDir()
	plain := filepath.Join(dir, "plain.txt")
	if err := os.WriteFile(plain, []byte("plain"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	type testRow struct {
		name string
		args []string
		want string
	}
	testData := [...]testRow{
		{name: "no-args", args: []string{"huf"}, want: "Please provide commands"},
		{name: "two-commands", args: []string{"huf", "--compress", "--decompress", plain}, want: "Specify a single command"},
		{name: "missing-file", args: []string{"huf", "--compress", filepath.Join(dir, "absent")}, want: "Could not open the provided file"},
		{name: "not-archive", args: []string{"huf", "-de", plain}, want: "is not a Huffman archive"},
		{name: "no-file", args: []string{"huf", "--compress"}, want: "No file provided for compress"},
	}
	for _, row := range testData {
		t.Run(row.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			if code := run(row.args, &stdout, &stderr); code == 0 {
				t.Errorf("expected a non-zero exit code")
			}
			if out := stdout.String() + stderr.String(); !strings.Contains(out, row.want) {
				t.Errorf("missing %q in output:\n%s", row.want, out)
			}
		})
	}
}

func TestCollectFiles(t *testing.T) {
	expect := []string{"a.txt", "b.txt", "c.txt"}
	actual := collectFiles([]string{"a.txt, b.txt", "c.txt", ","})
	if !reflect.DeepEqual(expect, actual) {
		t.Errorf("wrong files:\n\texpect: %v\n\tactual: %v", expect, actual)
	}
}

func TestCommandName(t *testing.T) {
	for arg, expect := range map[string]string{"-ar": "compress", "-de": "decompress", "--benchmark": "benchmark", "-inspect": "inspect"} {
		if actual := commandName(arg); actual != expect {
			t.Errorf("wrong command for %s: expect %s, actual %s", arg, expect, actual)
		}
	}
}
