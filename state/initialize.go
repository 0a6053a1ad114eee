package state

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
)

// newLocalEnv creates a new LocalEnv instance with default values
func newLocalEnv() *LocalEnv {
	return &LocalEnv{start: time.Now()}
}

// SelectCodePage sets input encoding by its IANA name. Empty name and any of
// UTF-8 aliases select UTF-8, which needs no decoding.
func (e *LocalEnv) SelectCodePage(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		e.CodePage = nil
		return nil
	}
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return fmt.Errorf("unknown input encoding %q: %w", name, err)
	}
	if enc == nil {
		return fmt.Errorf("input encoding %q is not supported", name)
	}
	if enc == unicode.UTF8 {
		enc = nil
	}
	e.CodePage = enc
	return nil
}
