// Package convert ties parsing and synthesis together: one DTSX file in,
// a directory of Python artifacts plus a JSON summary out.
package convert

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/dtsx2py/dtsx2py/internal/diag"
	"github.com/dtsx2py/dtsx2py/internal/dtsx"
	"github.com/dtsx2py/dtsx2py/internal/rules"
	"github.com/dtsx2py/dtsx2py/internal/synth"
)

// Options controls one conversion run.
type Options struct {
	OutputDir string
	Overwrite bool
	// Parallel converts batch documents concurrently. Documents are
	// independent by construction, so this only changes wall time.
	Parallel bool
	// Recursive descends into subdirectories when enumerating a batch.
	Recursive bool
	Decryptor dtsx.Decryptor
	Logger    *zap.SugaredLogger
}

// Result reports what one package conversion produced.
type Result struct {
	Source      string
	Paths       []string
	Diagnostics diag.Summary
}

// Converter drives parse, synthesis and writeout.
type Converter struct {
	opts Options
	log  *zap.SugaredLogger
}

func New(opts Options) *Converter {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	if opts.OutputDir == "" {
		opts.OutputDir = "output"
	}
	return &Converter{opts: opts, log: log}
}

// ConvertFile converts a single .dtsx document. Parse-level fatals
// (missing file, wrong extension, malformed XML) surface as an error;
// anything softer becomes diagnostics in the result.
func (c *Converter) ConvertFile(path string) (*Result, error) {
	dc := diag.NewCollector(c.log)
	parser := dtsx.NewParser(dc, c.opts.Decryptor)

	pkg, err := parser.ParseFile(path)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	c.log.Infow("parsed package",
		"source", path,
		"package", pkg.Name,
		"connections", len(pkg.Connections),
		"variables", len(pkg.Variables),
		"components", len(pkg.Components),
		"tasks", len(pkg.Tasks),
	)

	syn := synth.NewSynthesizer(rules.NewRegistry(), dc)
	artifacts := syn.Generate(pkg)

	paths, err := synth.WriteArtifacts(c.opts.OutputDir, artifacts, c.opts.Overwrite)
	if err != nil {
		return nil, err
	}

	summary := synth.Summarize(pkg, artifacts, dc, timeNow())
	summaryPath := filepath.Join(c.opts.OutputDir, synth.SummaryName(pkg))
	if err := os.WriteFile(summaryPath, synth.MarshalSummary(summary), 0o644); err != nil {
		return nil, fmt.Errorf("write summary: %w", err)
	}
	paths = append(paths, summaryPath)

	c.log.Infow("conversion complete",
		"source", path,
		"artifacts", len(paths),
		"diagnostics", dc.Len(),
	)
	return &Result{
		Source:      path,
		Paths:       paths,
		Diagnostics: dc.Summarize(),
	}, nil
}

// BatchResult aggregates a directory conversion.
type BatchResult struct {
	Results   []*Result
	Succeeded int
	Failed    int
}

// ConvertDir converts every .dtsx file under dir (direct children only,
// unless Recursive is set). Documents fail independently; the returned
// error folds the individual failures together and is nil only when every
// document converted. A directory with no matching files is an empty
// batch, not an error.
func (c *Converter) ConvertDir(dir string) (*BatchResult, error) {
	files, err := c.findPackages(dir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		c.log.Warnw("no .dtsx files found", "dir", dir)
		return &BatchResult{}, nil
	}

	batch := &BatchResult{}
	var errs error
	if c.opts.Parallel {
		var mu sync.Mutex
		var wg sync.WaitGroup
		for _, f := range files {
			wg.Add(1)
			go func(f string) {
				defer wg.Done()
				res, err := c.ConvertFile(f)
				mu.Lock()
				defer mu.Unlock()
				if err != nil {
					c.log.Errorw("conversion failed", "source", f, "error", err)
					batch.Failed++
					errs = multierr.Append(errs, err)
					return
				}
				batch.Succeeded++
				batch.Results = append(batch.Results, res)
			}(f)
		}
		wg.Wait()
	} else {
		for _, f := range files {
			res, err := c.ConvertFile(f)
			if err != nil {
				c.log.Errorw("conversion failed", "source", f, "error", err)
				batch.Failed++
				errs = multierr.Append(errs, err)
				continue
			}
			batch.Succeeded++
			batch.Results = append(batch.Results, res)
		}
	}
	c.log.Infow("batch complete",
		"dir", dir,
		"succeeded", batch.Succeeded,
		"failed", batch.Failed,
		"total", len(files),
	)
	return batch, errs
}

// findPackages enumerates the .dtsx files of a batch. The extension match
// is case-insensitive; anything else is ignored.
func (c *Converter) findPackages(dir string) ([]string, error) {
	var files []string
	if c.opts.Recursive {
		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".dtsx") {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk dir %s: %w", dir, err)
		}
		return files, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", dir, err)
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(e.Name()), ".dtsx") {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	return files, nil
}
