// Package hashtypes holds the data model shared by every hashcore
// component: the digest algorithm tag, storage classification, hash
// results, and the verification outcome variants. Nothing in this package
// performs I/O.
package hashtypes

import (
	"fmt"
	"strings"
)

// Algorithm is the closed set of digest functions hashcore supports.
type Algorithm int

const (
	SHA256 Algorithm = iota
	SHA1
	MD5
)

// String renders the algorithm's canonical lowercase name.
func (a Algorithm) String() string {
	switch a {
	case SHA256:
		return "sha256"
	case SHA1:
		return "sha1"
	case MD5:
		return "md5"
	default:
		return fmt.Sprintf("algorithm(%d)", int(a))
	}
}

// Size returns the digest length in bytes for this algorithm.
func (a Algorithm) Size() int {
	switch a {
	case SHA256:
		return 32
	case SHA1:
		return 20
	case MD5:
		return 16
	default:
		return 0
	}
}

// ParseAlgorithm maps a canonical name (case-insensitive) to an Algorithm.
func ParseAlgorithm(name string) (Algorithm, error) {
	switch strings.ToLower(name) {
	case "sha256", "sha-256":
		return SHA256, nil
	case "sha1", "sha-1":
		return SHA1, nil
	case "md5":
		return MD5, nil
	default:
		return 0, fmt.Errorf("hashtypes: unknown algorithm %q", name)
	}
}
