// Package storageprofiler classifies the storage device backing a
// filesystem path through a layered, best-effort detection pipeline. Every
// detector degrades gracefully; Analyze never fails, it only ever returns
// increasingly conservative verdicts.
package storageprofiler

import (
	"os"
	"sync"
	"time"

	"github.com/coreforensics/hashcore/hashtypes"
	"github.com/coreforensics/hashcore/internal/obslog"
)

// memoTTL bounds how long a verdict for a given mount root is reused before
// the pipeline re-runs. This is the profiler's only long-lived shared
// mutable state, scoped to one Profiler instance, never process-wide.
const memoTTL = 5 * time.Minute

type cacheEntry struct {
	info    hashtypes.StorageInfo
	expires time.Time
}

// Profiler runs the layered device-classification pipeline and memoizes
// verdicts by mount root for a short TTL.
type Profiler struct {
	mu    sync.Mutex
	cache map[string]cacheEntry
}

// New constructs a Profiler with an empty memoization cache.
func New() *Profiler {
	return &Profiler{cache: make(map[string]cacheEntry)}
}

// Analyze classifies the device backing path. It never returns an error;
// any detector failure is logged at debug and treated as a miss, falling
// through to the next layer and ultimately the conservative fallback.
func (p *Profiler) Analyze(path string) hashtypes.StorageInfo {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			obslog.Debug("storageprofiler: path does not exist", "path", path)
			return hashtypes.ConservativeFallback(driveLetterOf(path), "path_not_found")
		}
	}

	root := mountRoot(path)

	p.mu.Lock()
	if entry, ok := p.cache[root]; ok && time.Now().Before(entry.expires) {
		p.mu.Unlock()
		return entry.info
	}
	p.mu.Unlock()

	info := p.detect(path, root)

	p.mu.Lock()
	p.cache[root] = cacheEntry{info: info, expires: time.Now().Add(memoTTL)}
	p.mu.Unlock()

	return info
}

func (p *Profiler) detect(path, root string) hashtypes.StorageInfo {
	driveLetter := driveLetterOf(path)
	removable := isRemovable(path)

	if info, ok, reason := detectSeekPenalty(driveLetter); ok {
		obslog.Debug("storageprofiler: seek-penalty probe succeeded", "path", path)
		info.IsRemovable = removable
		return info
	} else {
		obslog.Debug("storageprofiler: seek-penalty probe missed", "path", path, "reason", reason)
	}

	if info, ok := detectPerformance(path, removable); ok {
		obslog.Debug("storageprofiler: performance heuristic succeeded", "path", path)
		info.DriveLetter = driveLetter
		return info
	}
	obslog.Debug("storageprofiler: performance heuristic missed, falling through", "path", path)

	if !removable {
		if info, ok := detectOSQuery(driveLetter); ok {
			obslog.Debug("storageprofiler: OS device-property query succeeded", "path", path)
			info.DriveLetter = driveLetter
			info.IsRemovable = removable
			return info
		}
		obslog.Debug("storageprofiler: OS device-property query missed, falling through", "path", path)
	}

	obslog.Warn("storageprofiler: all detectors missed, using conservative fallback", "path", path)
	return hashtypes.ConservativeFallback(driveLetter, "all_methods_failed")
}
