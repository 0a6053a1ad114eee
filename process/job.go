package process

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/text/encoding"

	"nsx/common"
	"nsx/config"
	"nsx/convert/native"
	"nsx/css"
	"nsx/extract"
)

// job is a single extraction: read and parse all sources, walk resulting
// stylesheet and deliver module. It does not depend on command line.
type job struct {
	sources  []string // as given by user, files or directories
	cfg      config.ExtractorConfig
	remBase  float64
	codePage encoding.Encoding
	check    bool

	rpt    *config.Report
	log    *zap.Logger
	stdout io.Writer // receives module when no output file is configured
}

func (j *job) run(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	files, err := discover(j.sources)
	if err != nil {
		return err
	}

	sheet, err := j.parse(ctx, files)
	if err != nil {
		return err
	}

	conv := native.NewConverter(j.log, native.WithRemBase(j.remBase))
	ex := extract.NewExtractor(j.log, conv, j.cfg.Important)

	var (
		module   bytes.Buffer
		failures []error
	)
	err = extract.Finalize(ex.Walk(sheet), extract.FinalizeOptions{
		Done:     func(res *extract.Result) { failures = j.reportResult(res) },
		Output:   &module,
		Platform: j.cfg.Platform,
	})
	if err != nil {
		return err
	}
	j.rpt.StoreData("module.js", module.Bytes())

	if j.check {
		err = j.compare(module.Bytes())
	} else {
		err = j.write(module.Bytes())
	}
	if err != nil {
		return err
	}

	if len(failures) > 0 && j.cfg.Errors == common.ErrorPolicyFail {
		return fmt.Errorf("%d declaration(s) could not be converted: %w", len(failures), multierr.Combine(failures...))
	}
	return nil
}

// parse reads all files and concatenates them into single stylesheet in
// order.
func (j *job) parse(ctx context.Context, files []string) (*css.Stylesheet, error) {
	parser := css.NewParser(j.log)
	sheet := &css.Stylesheet{}

	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		data, err := readSource(path, j.codePage)
		if err != nil {
			return nil, fmt.Errorf("unable to read stylesheet: %w", err)
		}
		j.rpt.StoreData(filepath.ToSlash(filepath.Join("input", filepath.Base(path))), data)

		parsed := parser.Parse(data, path)
		for _, w := range parsed.Warnings {
			j.log.Warn("Stylesheet problem", zap.String("file", path), zap.String("warning", w))
		}
		if imports := parsed.Imports(); len(imports) > 0 {
			j.log.Debug("Imports are not followed", zap.String("file", path), zap.Strings("imports", imports))
		}
		sheet.Append(parsed)
	}

	j.rpt.StoreData("parsed.css", []byte(sheet.String()))
	j.log.Debug("Stylesheets parsed", zap.Int("files", len(files)), zap.Int("rules", len(sheet.Rules())))
	return sheet, nil
}

// reportResult logs walk outcome and returns conversion failures.
func (j *job) reportResult(res *extract.Result) []error {
	for _, err := range res.Errors {
		var ce *native.ConversionError
		if errors.As(err, &ce) {
			j.log.Warn("Declaration skipped",
				zap.String("property", ce.Property), zap.String("value", ce.Value), zap.NamedError("reason", ce.Err))
			continue
		}
		j.log.Warn("Declaration skipped", zap.Error(err))
	}
	j.log.Info("Styles extracted",
		zap.Int("styles", res.Styles.Len()),
		zap.Int("media", res.Media.Len()),
		zap.Int("skipped", len(res.Errors)))
	return res.Errors
}

func (j *job) write(module []byte) error {
	if j.cfg.Output == "" {
		out := j.stdout
		if out == nil {
			out = os.Stdout
		}
		if _, err := out.Write(append(module, '\n')); err != nil {
			return fmt.Errorf("unable to write module: %w", err)
		}
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(j.cfg.Output), 0755); err != nil {
		return fmt.Errorf("unable to create output directory: %w", err)
	}
	if err := os.WriteFile(j.cfg.Output, module, 0644); err != nil {
		return fmt.Errorf("unable to write module: %w", err)
	}
	j.log.Info("Module written", zap.String("file", j.cfg.Output))
	return nil
}

// compare checks that existing output matches generated module.
func (j *job) compare(module []byte) error {
	if j.cfg.Output == "" {
		return errors.New("check requires output file to be specified")
	}

	existing, err := os.ReadFile(j.cfg.Output)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s does not exist", ErrOutdated, j.cfg.Output)
	}
	if err != nil {
		return fmt.Errorf("unable to read existing module: %w", err)
	}

	if bytes.Equal(existing, module) {
		j.log.Info("Module is up to date", zap.String("file", j.cfg.Output))
		return nil
	}
	j.log.Warn("Module differs from generated", zap.String("file", j.cfg.Output), zap.String("diff", lineDiff(existing, module)))
	return fmt.Errorf("%w: %s", ErrOutdated, j.cfg.Output)
}
