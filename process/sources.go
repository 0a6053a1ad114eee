package process

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/maruel/natural"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// discover expands sources into list of stylesheet files. Directories are
// searched recursively for *.css files which are taken in natural order, so
// "part2.css" precedes "part10.css". Files named explicitly are used as is,
// regardless of extension. Every file is listed once.
func discover(sources []string) ([]string, error) {
	var (
		files []string
		seen  = make(map[string]bool)
	)
	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}

	for _, src := range sources {
		abs, err := filepath.Abs(src)
		if err != nil {
			return nil, err
		}
		info, err := os.Stat(abs)
		if err != nil {
			return nil, fmt.Errorf("input source was not found (%s): %w", src, err)
		}
		if !info.IsDir() {
			if !info.Mode().IsRegular() {
				return nil, fmt.Errorf("unexpected path mode for (%s)", src)
			}
			add(abs)
			continue
		}

		found, err := stylesheetsIn(abs)
		if err != nil {
			return nil, fmt.Errorf("unable to read directory (%s): %w", src, err)
		}
		for _, f := range found {
			add(f)
		}
	}

	if len(files) == 0 {
		return nil, errors.New("no stylesheets found")
	}
	return files, nil
}

func stylesheetsIn(dir string) ([]string, error) {
	var found []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() && strings.EqualFold(filepath.Ext(path), ".css") {
			found = append(found, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(found, func(i, j int) bool {
		return natural.Less(filepath.ToSlash(found[i]), filepath.ToSlash(found[j]))
	})
	return found, nil
}

// readSource reads stylesheet converting it to UTF-8. Byte order mark, if
// present, overrides requested code page.
func readSource(path string, cp encoding.Encoding) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var fallback transform.Transformer = encoding.Nop.NewDecoder()
	if cp != nil {
		fallback = cp.NewDecoder()
	}
	out, _, err := transform.Bytes(unicode.BOMOverride(fallback), data)
	if err != nil {
		return nil, fmt.Errorf("unable to decode %s: %w", filepath.Base(path), err)
	}
	return out, nil
}
