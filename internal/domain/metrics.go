package domain

import "time"

type MetricsCollector interface {
	RecordPublication(duration time.Duration, err error)
	RecordRelease()
	RecordLaunch(err error)
	RecordGameExit(exitCode int)
}
