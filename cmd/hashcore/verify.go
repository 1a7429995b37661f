package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/coreforensics/hashcore/hashengine"
	"github.com/coreforensics/hashcore/hashtypes"
	"github.com/coreforensics/hashcore/internal/cliprogress"
	"github.com/coreforensics/hashcore/progress"
	"github.com/coreforensics/hashcore/storageprofiler"
)

// verifyOptions holds CLI flags for the verify command.
type verifyOptions struct {
	algorithm  string
	noProgress bool
	verbose    bool
}

func newVerifyCmd() *cobra.Command {
	opts := &verifyOptions{algorithm: "sha256"}

	cmd := &cobra.Command{
		Use:   "verify <source> <target>",
		Short: "Compare two file trees by digest",
		Long: `Hashes both trees concurrently and compares results by relative path.

Exit status is non-zero when any file mismatches or is missing on either
side; use --verbose to list every differing path.`,
		Args: cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			return runVerify(args[0], args[1], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.algorithm, "algorithm", "a", opts.algorithm, "Digest algorithm (sha256, sha1, md5)")
	cmd.Flags().BoolVar(&opts.noProgress, "no-progress", false, "Disable the progress bar")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "List every mismatched or missing file")

	return cmd
}

func runVerify(source, target string, opts *verifyOptions) error {
	algorithm, err := parseAlgorithm(opts.algorithm)
	if err != nil {
		return err
	}

	bar := cliprogress.New(!opts.noProgress)
	sink := progress.NewThrottledSink(bar.Callback())

	hashOpts := hashengine.DefaultHashOptions()
	hashOpts.Progress = sink.Report

	report, err := hashengine.Verify([]string{source}, []string{target}, algorithm, storageprofiler.New(), hashOpts)
	sink.Flush()
	if err != nil {
		bar.Finish("verification failed")
		return fmt.Errorf("verify: %w", err)
	}

	bar.Finish("verification complete")
	fmt.Println(hashengine.Summarize(report))

	mismatched := false
	for rel, outcome := range report.Outcomes {
		switch outcome.Kind {
		case hashtypes.HashMismatch:
			mismatched = true
			if opts.verbose {
				fmt.Printf("MISMATCH  %s (%s)\n", rel, outcome.Note)
			}
		case hashtypes.MissingTarget:
			mismatched = true
			if opts.verbose {
				fmt.Printf("MISSING TARGET  %s\n", rel)
			}
		case hashtypes.MissingSource:
			mismatched = true
			if opts.verbose {
				fmt.Printf("MISSING SOURCE  %s\n", rel)
			}
		}
	}

	if mismatched {
		os.Exit(1)
	}
	return nil
}
