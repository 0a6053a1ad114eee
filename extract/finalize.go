package extract

import (
	"bytes"
	"fmt"
	"io"
	"strings"
)

// DefaultPlatform is written to the module when platform is not specified.
const DefaultPlatform = "native"

// FinalizeOptions controls delivery of a finished walk.
type FinalizeOptions struct {
	Done     func(res *Result) // called once with finished result
	Output   io.Writer         // receives rendered module
	Platform string
}

// Finalize delivers walk result to the callback and then writes module to
// output. Either may be absent.
func Finalize(res *Result, opts FinalizeOptions) error {
	if opts.Done != nil {
		opts.Done(res)
	}
	if opts.Output == nil {
		return nil
	}
	if err := WriteModule(opts.Output, opts.Platform, res); err != nil {
		return fmt.Errorf("unable to write module: %w", err)
	}
	return nil
}

// WriteModule writes result as a CommonJS module exporting platform, styles
// and media.
func WriteModule(w io.Writer, platform string, res *Result) error {
	if platform == "" {
		platform = DefaultPlatform
	}
	styles, err := res.Styles.MarshalJSON()
	if err != nil {
		return fmt.Errorf("unable to serialize styles: %w", err)
	}
	media, err := res.Media.MarshalJSON()
	if err != nil {
		return fmt.Errorf("unable to serialize media: %w", err)
	}

	_, err = fmt.Fprintf(w, "module.exports = {\n  platform: '%s',\n  styles: %s,\n  media: %s\n}",
		quoteSingle.Replace(platform), styles, media)
	return err
}

// RenderModule returns module text for result.
func RenderModule(platform string, res *Result) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteModule(&buf, platform, res); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

var quoteSingle = strings.NewReplacer(`\`, `\\`, `'`, `\'`, "\n", `\n`)
