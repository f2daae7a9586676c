package uploader

import (
	"fmt"
	"time"
)

// Stats are the throughput figures of a completed sequential upload.
type Stats struct {
	Elapsed        time.Duration
	Files          int
	SizeMB         float64
	FilesPerSecond float64
	MBPerSecond    float64
}

// ComputeStats derives throughput for count files of totalBytes uploaded in elapsed.
// A non-positive elapsed time yields zero rates.
func ComputeStats(count int, totalBytes int64, elapsed time.Duration) Stats {
	stats := Stats{
		Elapsed: elapsed,
		Files:   count,
		SizeMB:  float64(totalBytes) / bytesPerMB,
	}

	seconds := elapsed.Seconds()
	if seconds > 0 {
		stats.FilesPerSecond = float64(count) / seconds
		stats.MBPerSecond = stats.SizeMB / seconds
	}
	return stats
}

func (s Stats) String() string {
	return fmt.Sprintf("Time: %.2fs | Files/sec: %.2f | Speed: %.2f MB/s (%.2f MB total)",
		s.Elapsed.Seconds(), s.FilesPerSecond, s.MBPerSecond, s.SizeMB)
}
