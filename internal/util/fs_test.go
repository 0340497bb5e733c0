package util

import (
	"os"
	"path/filepath"
	"testing"
)

func TestBaseName(t *testing.T) {
	cases := map[string]string{
		"poliza.pdf":               "poliza.pdf",
		"C:\\Users\\ana\\sctr.pdf": "sctr.pdf",
		"../../etc/passwd":         "passwd",
		"":                         "",
		"dir/with\x00nul/file.pdf": "file.pdf",
	}
	for in, want := range cases {
		if got := BaseName(in); got != want {
			t.Fatalf("BaseName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestWriteJSONAtomic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "report.json")
	if err := WriteJSONAtomic(path, map[string]string{"título": "Póliza #1"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(b) != "{\n  \"título\": \"Póliza #1\"\n}\n" {
		t.Fatalf("unexpected content: %q", b)
	}
}
