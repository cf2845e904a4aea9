package cmd

import "time"

var start = time.Now()

// clockNow backs the `clock()` native (internal/builtins): seconds since
// the process started, as a float64.
func clockNow() float64 {
	return time.Since(start).Seconds()
}
