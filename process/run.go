// Package process implements "extract" command: it reads stylesheets, converts
// their rules to native styles and writes resulting module.
package process

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"nsx/common"
	"nsx/state"
)

// Flags returns command line flags of the extract command.
func Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "write module to `FILE` instead of STDOUT"},
		&cli.StringFlag{Name: "platform", Usage: "`NAME` stored in the platform field of the module"},
		&cli.StringFlag{Name: "important", Usage: "`MODE`: true, false or scope selector removed from selector keys (for example '#app')"},
		&cli.StringFlag{Name: "errors",
			Usage: "what to do with declarations which cannot be converted: `POLICY` (" + strings.Join(common.ErrorPolicyNames(), ", ") + ")"},
		&cli.StringFlag{Name: "encoding", Usage: "input `ENCODING` (see IANA.org for character set names), UTF-8 if absent"},
		&cli.BoolFlag{Name: "check", Usage: "do not write module, fail if existing output differs from what would be generated"},
		&cli.BoolFlag{Name: "watch", Aliases: []string{"w"}, Usage: "keep running, regenerate module whenever sources change"},
	}
}

// Run is the action of the extract command.
func Run(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("extract")

	sources := cmd.Args().Slice()
	if len(sources) == 0 {
		return errors.New("no input source has been specified")
	}

	// command line overrides configuration
	ecfg := &env.Cfg.Extractor
	if cmd.IsSet("output") {
		ecfg.Output = cmd.String("output")
	}
	if cmd.IsSet("platform") {
		ecfg.Platform = cmd.String("platform")
	}
	if cmd.IsSet("important") {
		ecfg.Important = common.ParseImportant(cmd.String("important"))
	}
	if cmd.IsSet("errors") {
		policy, err := common.ParseErrorPolicy(cmd.String("errors"))
		if err != nil {
			return fmt.Errorf("bad --errors value: %w", err)
		}
		ecfg.Errors = policy
	}
	if cmd.IsSet("encoding") {
		ecfg.Encoding = cmd.String("encoding")
	}
	if err := env.SelectCodePage(ecfg.Encoding); err != nil {
		return err
	}

	env.Check, env.Watch = cmd.Bool("check"), cmd.Bool("watch")
	if env.Check && env.Watch {
		return errors.New("--check and --watch cannot be used together")
	}

	if ecfg.Output == "" && !env.Check {
		// module goes to STDOUT together with console log
		log = log.WithOptions(zap.IncreaseLevel(zapcore.ErrorLevel))
	}

	j := &job{
		sources:  sources,
		cfg:      *ecfg,
		remBase:  env.Cfg.Converter.RemBase,
		codePage: env.CodePage,
		check:    env.Check,
		rpt:      env.Rpt,
		log:      log,
		stdout:   cmd.Root().Writer,
	}

	log.Info("Processing starting",
		zap.Strings("sources", sources),
		zap.String("output", ecfg.Output),
		zap.Stringer("important", ecfg.Important),
		zap.Stringer("errors", ecfg.Errors))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	if env.Watch {
		return j.watch(ctx)
	}
	return j.run(ctx)
}
