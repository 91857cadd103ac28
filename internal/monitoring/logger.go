// Package monitoring holds the process-wide diagnostic logger shared by the
// encounter tools.
package monitoring

import "log"

// Logf writes one diagnostic line. It defaults to log.Printf; generation
// runs report their model, seed and outputs through it so a result stays
// reproducible from the log alone.
var Logf func(format string, v ...any) = log.Printf

// SetLogger replaces the package logger. A nil f mutes logging.
func SetLogger(f func(format string, v ...any)) {
	if f == nil {
		Logf = func(string, ...any) {}
		return
	}
	Logf = f
}
