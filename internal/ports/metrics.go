package ports

import "time"

// Metrics receives pipeline measurements.
type Metrics interface {
	ObserveStage(stage string, d time.Duration, err error)
	ThumbnailResult(result string)
}
