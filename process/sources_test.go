package process

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDiscover(t *testing.T) {
	tmp := t.TempDir()
	writeFile(t, filepath.Join(tmp, "styles", "b10.css"), "")
	writeFile(t, filepath.Join(tmp, "styles", "b9.CSS"), "")
	writeFile(t, filepath.Join(tmp, "styles", "sub", "a.css"), "")
	writeFile(t, filepath.Join(tmp, "styles", "readme.md"), "")
	writeFile(t, filepath.Join(tmp, "extra.scss"), "")

	got, err := discover([]string{
		filepath.Join(tmp, "extra.scss"),
		filepath.Join(tmp, "styles"),
		filepath.Join(tmp, "styles", "b9.CSS"),
	})
	if err != nil {
		t.Fatalf("discover() error = %v", err)
	}

	want := []string{
		filepath.Join(tmp, "extra.scss"),
		filepath.Join(tmp, "styles", "b9.CSS"),
		filepath.Join(tmp, "styles", "b10.css"),
		filepath.Join(tmp, "styles", "sub", "a.css"),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("files mismatch (-want +got):\n%s", diff)
	}
}

func TestLineDiff(t *testing.T) {
	was := "a\nb\nc\n"
	now := "a\nB\nc\nd"

	got := lineDiff([]byte(was), []byte(now))
	for _, line := range []string{" a\n", "-b\n", "+B\n", " c\n", "+d\n"} {
		if !strings.Contains(got, line) {
			t.Errorf("expected %q in diff:\n%s", line, got)
		}
	}
}
