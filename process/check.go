package process

import (
	"bytes"
	"errors"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// ErrOutdated is returned in check mode when existing module differs from
// generated one.
var ErrOutdated = errors.New("generated module is out of date")

// lineDiff returns unified-like line diff between two texts, unchanged lines
// are prefixed with space, removed with '-' and added with '+'.
func lineDiff(was, now []byte) string {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(string(was), string(now))
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var buf bytes.Buffer
	for _, d := range diffs {
		prefix := " "
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			buf.WriteString(prefix)
			buf.WriteString(line)
			if !strings.HasSuffix(line, "\n") {
				buf.WriteByte('\n')
			}
		}
	}
	return buf.String()
}
