package report

import (
	"io"
	"os"
	"sync"
	"time"
)

// Reporter is responsible for reporting errors, warnings, and other kinds of
// messages to the user during program execution.  The reporter respects the set
// log level and is synchronized: its methods can be safely called from multiple
// goroutines.
type Reporter struct {
	// The mutex used to synchonize different error method calls.
	m *sync.Mutex

	// The selected log level of the reporter.  This must be one of the
	// enumerated log levels below.
	logLevel int

	// The number of errors reported so far.
	errorCount int

	// The writer all messages are displayed to.
	out io.Writer

	// The time at which the reporter was initialized: used to display the
	// total compilation time.
	startTime time.Time
}

// Enumeration of the different possible log levels.
const (
	LogLevelSilent  = iota // Displays no output.
	LogLevelError          // Displays only errors to the user.
	LogLevelWarn           // Displays only warnings and errors to the user.
	LogLevelVerbose        // Displays all compilation messages to the user (default).
)

// LogLevelNames maps the names accepted on the command line and in build
// profiles to their log levels.
var LogLevelNames = map[string]int{
	"silent":  LogLevelSilent,
	"error":   LogLevelError,
	"warn":    LogLevelWarn,
	"verbose": LogLevelVerbose,
}

// rep is the global reporter instance.
var rep = &Reporter{
	m:         &sync.Mutex{},
	logLevel:  LogLevelError,
	out:       os.Stderr,
	startTime: time.Now(),
}

// InitReporter initializes the global error reporter to the given log level.
// Any previously counted errors are discarded.
func InitReporter(logLevel int) {
	rep.m.Lock()
	defer rep.m.Unlock()

	rep.logLevel = logLevel
	rep.errorCount = 0
	rep.startTime = time.Now()
}

// SetOutput changes the writer the reporter displays to.  By default, this is
// standard error so that standard out remains free for compiler output.
func SetOutput(w io.Writer) {
	rep.m.Lock()
	defer rep.m.Unlock()

	rep.out = w
}
