package imageopt

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/lapisvisuals/lapis/concurrency/worker"
	"github.com/lapisvisuals/lapis/logging/logger"
	"github.com/lapisvisuals/lapis/validation/validator"
	"github.com/sirupsen/logrus"
)

// OptimizeDir optimizes every image under inDir into outDir, keeping the
// relative layout. Subdirectories are walked only with opts.Recursive.
// Per-file failures are reported in the results; the error is for failures
// to read inDir itself.
func OptimizeDir(ctx context.Context, pool *worker.Pool, inDir, outDir string, opts Options) ([]Result, error) {
	files, err := collect(inDir, outDir, opts.Recursive)
	if err != nil {
		return nil, err
	}

	var (
		mu      sync.Mutex
		results = make([]Result, 0, len(files))
	)
	record := func(r Result) {
		mu.Lock()
		results = append(results, r)
		mu.Unlock()
	}

	batch := pool.NewBatch(ctx)
	for _, rel := range files {
		batch.Go(func(ctx context.Context) {
			record(optimizeFile(ctx, inDir, outDir, rel, opts))
		}, func(err error) {
			record(Result{File: rel, Error: err.Error()})
		})
	}
	batch.Wait()

	sort.Slice(results, func(i, j int) bool { return results[i].File < results[j].File })
	return results, nil
}

func optimizeFile(ctx context.Context, inDir, outDir, rel string, opts Options) Result {
	res := Result{File: rel}
	if err := ctx.Err(); err != nil {
		res.Error = err.Error()
		return res
	}

	name, err := OutputName(rel, opts.Format)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	out := filepath.Join(outDir, name)
	if err := Optimize(filepath.Join(inDir, rel), out, opts); err != nil {
		logger.WithFields(ctx, logrus.Fields{"file": rel, logrus.ErrorKey: err}).Warn("optimize image")
		res.Error = err.Error()
		return res
	}
	res.OutputPath = out
	res.Success = true
	return res
}

// collect lists image files under root relative to it. skip is left out,
// so an output directory nested in root is not read back.
func collect(root, skip string, recursive bool) ([]string, error) {
	skip = filepath.Clean(skip)
	var files []string
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path == root {
				return nil
			}
			if !recursive || filepath.Clean(path) == skip {
				return filepath.SkipDir
			}
			return nil
		}
		if !validator.IsImageFile(d.Name()) {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		files = append(files, rel)
		return nil
	})
	return files, err
}
