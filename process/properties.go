package process

import (
	"context"
	"fmt"
	"strings"

	cli "github.com/urfave/cli/v3"

	"nsx/convert/native"
)

// Properties is the action of the properties command: it lists CSS properties
// converter understands, optionally filtered by name prefixes given as
// arguments. Shorthands are marked with "*".
func Properties(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	prefixes := cmd.Args().Slice()
	out := cmd.Root().Writer

	for _, name := range native.SupportedProperties() {
		if len(prefixes) > 0 && !hasAnyPrefix(name, prefixes) {
			continue
		}
		mark := ""
		if native.IsShorthandProperty(name) {
			mark = " *"
		}
		if _, err := fmt.Fprintf(out, "%s -> %s%s\n", name, native.NativeName(name), mark); err != nil {
			return fmt.Errorf("unable to write property list: %w", err)
		}
	}
	return nil
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}
