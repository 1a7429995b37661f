package main

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/coreforensics/hashcore/hashtypes"
)

// parseAlgorithm maps a CLI --algorithm flag value to an Algorithm,
// wrapping the error with the flag name for a clearer CLI message.
func parseAlgorithm(s string) (hashtypes.Algorithm, error) {
	alg, err := hashtypes.ParseAlgorithm(s)
	if err != nil {
		return 0, fmt.Errorf("--algorithm: %w", err)
	}
	return alg, nil
}

// formatThroughput renders a MB/s figure the way the rest of the CLI
// renders byte sizes, via go-humanize.
func formatThroughput(mbps float64) string {
	return humanize.Bytes(uint64(mbps*1e6)) + "/s"
}
