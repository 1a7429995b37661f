package hashtypes

import "time"

// HashResult is the outcome of hashing a single file.
type HashResult struct {
	FilePath     string
	RelativePath string
	Algorithm    Algorithm
	HashHex      string
	FileSize     uint64
	Duration     time.Duration
	Err          error // nil on success
}

// Success reports whether the file was hashed without error.
func (r HashResult) Success() bool {
	return r.Err == nil
}

// SpeedMBPS derives the throughput achieved hashing this file. Returns 0
// when the size or duration is non-positive, matching spec's
// zero-else-divide convention rather than propagating NaN/Inf.
func (r HashResult) SpeedMBPS() float64 {
	secs := r.Duration.Seconds()
	if r.FileSize == 0 || secs <= 0 {
		return 0
	}
	mib := float64(r.FileSize) / (1 << 20)
	return mib / secs
}

// HashResultSet maps absolute path to its HashResult. Keys are unique;
// insertion order carries no meaning.
type HashResultSet map[string]HashResult

// Successful returns the subset of results that hashed without error.
func (s HashResultSet) Successful() HashResultSet {
	out := make(HashResultSet, len(s))
	for k, v := range s {
		if v.Success() {
			out[k] = v
		}
	}
	return out
}

// Failed returns the subset of results that carry an error.
func (s HashResultSet) Failed() HashResultSet {
	out := make(HashResultSet, len(s))
	for k, v := range s {
		if !v.Success() {
			out[k] = v
		}
	}
	return out
}

// HashOperationMetrics is the running-counter bundle a batch operation
// mutates as it progresses, then freezes into the returned report.
type HashOperationMetrics struct {
	Start          time.Time
	End            time.Time
	TotalFiles     uint64
	ProcessedFiles uint64
	FailedFiles    uint64
	TotalBytes     uint64
	ProcessedBytes uint64
	CurrentFile    string
}

// Duration is the wall-clock span covered by these metrics. Zero while
// End is unset.
func (m HashOperationMetrics) Duration() time.Duration {
	if m.End.IsZero() {
		return 0
	}
	return m.End.Sub(m.Start)
}

// ProgressPercent is the integer completion percentage in [0, 100].
func (m HashOperationMetrics) ProgressPercent() uint8 {
	if m.TotalFiles == 0 {
		return 0
	}
	pct := float64(m.ProcessedFiles) / float64(m.TotalFiles) * 100
	if pct > 100 {
		pct = 100
	}
	return uint8(pct)
}

// AverageSpeedMBPS is the overall throughput across the operation so far.
func (m HashOperationMetrics) AverageSpeedMBPS() float64 {
	secs := m.Duration().Seconds()
	if m.ProcessedBytes == 0 || secs <= 0 {
		return 0
	}
	mib := float64(m.ProcessedBytes) / (1 << 20)
	return mib / secs
}
