package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/coreforensics/hashcore/hashengine"
	"github.com/coreforensics/hashcore/hashtypes"
	"github.com/coreforensics/hashcore/internal/cliprogress"
	"github.com/coreforensics/hashcore/internal/resultcache"
	"github.com/coreforensics/hashcore/progress"
	"github.com/coreforensics/hashcore/storageprofiler"
	"github.com/coreforensics/hashcore/threadplanner"
)

// hashOptions holds CLI flags for the hash command.
type hashOptions struct {
	algorithm      string
	workers        uint32
	noProgress     bool
	cacheFile      string
	explainThreads bool
}

func newHashCmd() *cobra.Command {
	opts := &hashOptions{algorithm: "sha256"}

	cmd := &cobra.Command{
		Use:   "hash [paths...]",
		Short: "Compute digests for files or directory trees",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runHash(args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.algorithm, "algorithm", "a", opts.algorithm, "Digest algorithm (sha256, sha1, md5)")
	cmd.Flags().Uint32VarP(&opts.workers, "workers", "w", 0, "Force worker count, skipping storage profiling (0 = auto)")
	cmd.Flags().BoolVar(&opts.noProgress, "no-progress", false, "Disable the progress bar")
	cmd.Flags().StringVar(&opts.cacheFile, "cache-file", "", "Path to digest cache file (enables caching across runs)")
	cmd.Flags().BoolVar(&opts.explainThreads, "explain-threads", false, "Print the thread-count rationale before hashing")

	return cmd
}

func runHash(paths []string, opts *hashOptions) error {
	algorithm, err := parseAlgorithm(opts.algorithm)
	if err != nil {
		return err
	}

	cache, err := resultcache.Open(opts.cacheFile)
	if err != nil {
		return fmt.Errorf("open cache: %w", err)
	}
	defer func() { _ = cache.Close() }()

	files, err := hashengine.Discover(paths)
	if err != nil {
		return fmt.Errorf("hash: %w", err)
	}

	cached, toHash := splitByCache(files, algorithm, cache)

	if opts.explainThreads {
		printThreadRationale(toHash, opts.workers)
	}

	bar := cliprogress.New(!opts.noProgress)
	sink := progress.NewThrottledSink(bar.Callback())

	hashOpts := hashengine.DefaultHashOptions()
	hashOpts.Progress = sink.Report
	if opts.workers > 0 {
		w := opts.workers
		hashOpts.MaxWorkersOverride = &w
	}

	results := hashtypes.HashResultSet{}
	for path, hex := range cached {
		results[path] = hashtypes.HashResult{FilePath: path, RelativePath: path, Algorithm: algorithm, HashHex: hex}
	}

	if len(toHash) > 0 {
		freshResults, hashErr := hashengine.HashFiles(toHash, algorithm, storageprofiler.New(), hashOpts)
		sink.Flush()
		if hashErr != nil {
			bar.Finish("hashing failed")
			return fmt.Errorf("hash: %w", hashErr)
		}
		for path, result := range freshResults {
			results[path] = result
			if result.Success() {
				if info, statErr := os.Stat(path); statErr == nil {
					cache.Store(path, info.Size(), info.ModTime(), algorithm, result.HashHex)
				}
			}
		}
	}
	bar.Finish(fmt.Sprintf("hashed %d files (%d from cache)", len(results), len(cached)))

	for path, result := range results {
		if !result.Success() {
			fmt.Fprintf(os.Stderr, "error: %s: %v\n", path, result.Err)
			continue
		}
		fmt.Printf("%s  %s\n", result.HashHex, path)
	}

	return nil
}

// splitByCache partitions files into ones already covered by a cache hit
// and ones that still need hashing.
func splitByCache(files []string, algorithm hashtypes.Algorithm, cache *resultcache.Cache) (cached map[string]string, toHash []string) {
	cached = make(map[string]string)
	for _, path := range files {
		info, err := os.Stat(path)
		if err != nil {
			toHash = append(toHash, path)
			continue
		}
		if hex, ok := cache.Lookup(path, info.Size(), info.ModTime(), algorithm); ok {
			cached[path] = hex
			continue
		}
		toHash = append(toHash, path)
	}
	return cached, toHash
}

// printThreadRationale prints the rule that would fire for the given file
// set without actually hashing anything, for --explain-threads.
func printThreadRationale(files []string, override uint32) {
	if override > 0 {
		fmt.Fprintf(os.Stderr, "threads: %d (forced via --workers)\n", override)
		return
	}
	if len(files) == 0 {
		fmt.Fprintln(os.Stderr, "threads: 1 (nothing left to hash)")
		return
	}
	info := storageprofiler.New().Analyze(files[0])
	rationale := threadplanner.Explain(&info, nil, uint64(len(files)), threadplanner.Hash)
	fmt.Fprintln(os.Stderr, rationale)
}
