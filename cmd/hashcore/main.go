package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/coreforensics/hashcore/internal/obslog"
)

var (
	version = "dev"
	commit  = "none"
)

func main() {
	os.Exit(run())
}

func run() int {
	var logLevel, logFormat string

	root := &cobra.Command{
		Use:     "hashcore",
		Short:   "Hash and verify files with storage-aware parallelism",
		Version: version + " (" + commit + ")",
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			obslog.Init(logLevel, logFormat, os.Stderr)
		},
	}

	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&logFormat, "log-format", "text", "Log format (text, json)")

	root.AddCommand(newHashCmd())
	root.AddCommand(newVerifyCmd())

	if err := root.Execute(); err != nil {
		return 1
	}
	return 0
}
