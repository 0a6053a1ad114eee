package process

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap/zaptest"
	"golang.org/x/text/encoding/charmap"

	"nsx/common"
	"nsx/config"
	"nsx/convert/native"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func newJob(t *testing.T, sources ...string) *job {
	t.Helper()
	return &job{
		sources: sources,
		cfg:     config.ExtractorConfig{Platform: "native"},
		remBase: native.DefaultRemBase,
		log:     zaptest.NewLogger(t),
		stdout:  &bytes.Buffer{},
	}
}

func TestJob_WritesModule(t *testing.T) {
	tmp := t.TempDir()
	src := filepath.Join(tmp, "app.css")
	writeFile(t, src, `.p-4 { padding: 1rem } @media (min-width: 640px) { .p-4 { padding-top: 2rem } }`)

	j := newJob(t, src)
	j.cfg.Output = filepath.Join(tmp, "out", "styles.js")

	if err := j.run(context.Background()); err != nil {
		t.Fatalf("run() error = %v", err)
	}

	got, err := os.ReadFile(j.cfg.Output)
	if err != nil {
		t.Fatalf("output not written: %v", err)
	}
	want := "module.exports = {\n  platform: 'native',\n" +
		`  styles: {"p-4":{"paddingTop":16,"paddingRight":16,"paddingBottom":16,"paddingLeft":16},"p-4.0":{"paddingTop":32}},` + "\n" +
		`  media: {"p-4":["(min-width: 640px)"]}` + "\n}"
	if diff := cmp.Diff(want, string(got)); diff != "" {
		t.Errorf("module mismatch (-want +got):\n%s", diff)
	}
}

func TestJob_Stdout(t *testing.T) {
	src := filepath.Join(t.TempDir(), "a.css")
	writeFile(t, src, `.a { opacity: 1 }`)

	j := newJob(t, src)
	j.cfg.Platform = "android"

	if err := j.run(context.Background()); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	out := j.stdout.(*bytes.Buffer).String()
	if !strings.Contains(out, "platform: 'android'") || !strings.HasSuffix(out, "}\n") {
		t.Errorf("unexpected stdout: %q", out)
	}
}

func TestJob_DirectoryNaturalOrder(t *testing.T) {
	tmp := t.TempDir()
	writeFile(t, filepath.Join(tmp, "part10.css"), `.a { color: red }`)
	writeFile(t, filepath.Join(tmp, "part2.css"), `.a { color: blue; opacity: 1 }`)
	writeFile(t, filepath.Join(tmp, "notes.txt"), `.a { color: green }`)

	j := newJob(t, tmp)

	if err := j.run(context.Background()); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	// part2 is read before part10, so red wins
	want := `styles: {"a":{"color":"red","opacity":1}}`
	if out := j.stdout.(*bytes.Buffer).String(); !strings.Contains(out, want) {
		t.Errorf("expected %s in\n%s", want, out)
	}
}

func TestJob_ErrorPolicy(t *testing.T) {
	tmp := t.TempDir()
	src := filepath.Join(tmp, "a.css")
	writeFile(t, src, `.a { color: red; transform: none; height: 100vh }`)

	t.Run("warn", func(t *testing.T) {
		j := newJob(t, src)
		if err := j.run(context.Background()); err != nil {
			t.Errorf("run() error = %v", err)
		}
	})

	t.Run("fail", func(t *testing.T) {
		j := newJob(t, src)
		j.cfg.Errors = common.ErrorPolicyFail
		j.cfg.Output = filepath.Join(tmp, "fail.js")

		err := j.run(context.Background())
		if err == nil {
			t.Fatal("expected error")
		}
		if !errors.Is(err, native.ErrUnsupportedProperty) || !errors.Is(err, native.ErrUnsupportedUnit) {
			t.Errorf("expected both conversion errors, got %v", err)
		}
		if !strings.Contains(err.Error(), "2 declaration(s)") {
			t.Errorf("unexpected message: %v", err)
		}
		// module is still produced
		if _, err := os.Stat(j.cfg.Output); err != nil {
			t.Errorf("output not written: %v", err)
		}
	})
}

func TestJob_Check(t *testing.T) {
	tmp := t.TempDir()
	src := filepath.Join(tmp, "a.css")
	writeFile(t, src, `.a { color: red }`)
	out := filepath.Join(tmp, "styles.js")

	j := newJob(t, src)
	j.cfg.Output = out
	j.check = true

	if err := j.run(context.Background()); !errors.Is(err, ErrOutdated) {
		t.Fatalf("expected ErrOutdated for missing output, got %v", err)
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Error("check must not write output")
	}

	j.check = false
	if err := j.run(context.Background()); err != nil {
		t.Fatalf("run() error = %v", err)
	}

	j.check = true
	if err := j.run(context.Background()); err != nil {
		t.Errorf("expected up to date module, got %v", err)
	}

	writeFile(t, src, `.a { color: blue }`)
	if err := j.run(context.Background()); !errors.Is(err, ErrOutdated) {
		t.Errorf("expected ErrOutdated after change, got %v", err)
	}

	j.cfg.Output = ""
	if err := j.run(context.Background()); err == nil || errors.Is(err, ErrOutdated) {
		t.Errorf("expected configuration error without output, got %v", err)
	}
}

func TestJob_Encoding(t *testing.T) {
	tmp := t.TempDir()

	encoded, err := charmap.Windows1251.NewEncoder().String(`.a { font-family: "Шрифт" }`)
	if err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(tmp, "cp.css"), encoded)
	writeFile(t, filepath.Join(tmp, "bom.css"), "\uFEFF.b { color: red }")

	t.Run("code page", func(t *testing.T) {
		j := newJob(t, filepath.Join(tmp, "cp.css"))
		j.codePage = charmap.Windows1251
		if err := j.run(context.Background()); err != nil {
			t.Fatalf("run() error = %v", err)
		}
		if out := j.stdout.(*bytes.Buffer).String(); !strings.Contains(out, `"fontFamily":"Шрифт"`) {
			t.Errorf("text not decoded: %s", out)
		}
	})

	t.Run("bom", func(t *testing.T) {
		// BOM wins over requested code page
		j := newJob(t, filepath.Join(tmp, "bom.css"))
		j.codePage = charmap.Windows1251
		if err := j.run(context.Background()); err != nil {
			t.Fatalf("run() error = %v", err)
		}
		if out := j.stdout.(*bytes.Buffer).String(); !strings.Contains(out, `styles: {"b":{"color":"red"}}`) {
			t.Errorf("unexpected module: %s", out)
		}
	})
}

func TestJob_Report(t *testing.T) {
	tmp := t.TempDir()
	src := filepath.Join(tmp, "a.css")
	writeFile(t, src, `.a { color: red }`)

	conf := config.ReporterConfig{Destination: filepath.Join(tmp, "report.zip")}
	rpt, err := conf.Prepare()
	if err != nil {
		t.Fatal(err)
	}

	j := newJob(t, src)
	j.rpt = rpt
	if err := j.run(context.Background()); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if err := rpt.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if info, err := os.Stat(conf.Destination); err != nil || info.Size() == 0 {
		t.Errorf("report not written: %v", err)
	}
}

func TestJob_MissingSource(t *testing.T) {
	j := newJob(t, filepath.Join(t.TempDir(), "none.css"))
	if err := j.run(context.Background()); err == nil {
		t.Error("expected error")
	}

	j = newJob(t, t.TempDir())
	if err := j.run(context.Background()); err == nil {
		t.Error("expected error for directory without stylesheets")
	}
}

func TestJob_Canceled(t *testing.T) {
	src := filepath.Join(t.TempDir(), "a.css")
	writeFile(t, src, `.a { color: red }`)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := newJob(t, src).run(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestJob_Watch(t *testing.T) {
	tmp := t.TempDir()
	src := filepath.Join(tmp, "a.css")
	out := filepath.Join(tmp, "out", "styles.js")
	writeFile(t, src, `.a { color: red }`)

	j := newJob(t, src)
	j.cfg.Output = out

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- j.watch(ctx) }()

	waitFor := func(want string) {
		t.Helper()
		deadline := time.Now().Add(10 * time.Second)
		for time.Now().Before(deadline) {
			if data, err := os.ReadFile(out); err == nil && strings.Contains(string(data), want) {
				return
			}
			time.Sleep(50 * time.Millisecond)
		}
		t.Fatalf("output never contained %q", want)
	}

	waitFor(`"color":"red"`)
	writeFile(t, src, `.a { color: blue }`)
	waitFor(`"color":"blue"`)

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("watch() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}
}
