package report

import (
	"fmt"
	"time"
)

// NOTE: All report functions will only display if the appropriate log level is
// set.  Most report functions will simply fail silently if below their
// appropriate log level.

// ReportICE reports an internal compiler error.  These are errors that
// specifically result for a bug or unexpected condition occurring with the
// compiler: they are not intended to ever happen.  These errors are always
// displayed regardless of log level.
func ReportICE(message string, args ...interface{}) {
	rep.m.Lock()
	defer rep.m.Unlock()

	rep.errorCount++
	displayICE(fmt.Sprintf(message, args...))
}

// ReportFatal reports a fatal error.  These are errors that should cause all
// compilation to stop immediately.  However, they are expected errors that
// generally result from invalid configuration of some form: a missing input
// file, a malformed build profile, etc.
func ReportFatal(message string, args ...interface{}) {
	rep.m.Lock()
	defer rep.m.Unlock()

	rep.errorCount++
	if rep.logLevel > LogLevelSilent {
		displayFatal(fmt.Sprintf(message, args...))
	}
}

// ReportCompileError reports a compilation error: ie. erroneous input code. The
// reprPath is the path to the erroneous source file as it should be displayed
// to the user, and src is that file's source text: it is used to display the
// erroneous source excerpt.
func ReportCompileError(reprPath, src string, cerr CompileError) {
	rep.m.Lock()
	defer rep.m.Unlock()

	rep.errorCount++
	if rep.logLevel > LogLevelSilent {
		displayCompileMessage(cerr.Kind()+" Error", true, reprPath, src, cerr.Pos(), cerr.Error())
	}
}

// ReportCompileWarning reports a compilation warning.  The arguments are of
// the same form as those to ReportCompileError.
func ReportCompileWarning(reprPath, src string, span TextSpan, message string, args ...interface{}) {
	rep.m.Lock()
	defer rep.m.Unlock()

	if rep.logLevel >= LogLevelWarn {
		displayCompileMessage("Warning", false, reprPath, src, span, fmt.Sprintf(message, args...))
	}
}

// ReportStdError reports a non-fatal, standard Go error.
func ReportStdError(reprPath string, err error) {
	rep.m.Lock()
	defer rep.m.Unlock()

	rep.errorCount++
	if rep.logLevel > LogLevelSilent {
		displayStdError(reprPath, err)
	}
}

// ReportWarning reports a warning which is not associated with any source text:
// eg. a build profile written for a different compiler version.
func ReportWarning(message string, args ...interface{}) {
	rep.m.Lock()
	defer rep.m.Unlock()

	if rep.logLevel >= LogLevelWarn {
		displayWarning(fmt.Sprintf(message, args...))
	}
}

// -----------------------------------------------------------------------------
// Below are all the "aesthetic" reporting functions that will only run if the
// log level is to verbose.  These provide additional information about the
// compilation process to the user.

// ReportCompileHeader reports the pre-compilation header: information about the
// compiler's current configuration (version and target).
func ReportCompileHeader(version, target string) {
	rep.m.Lock()
	defer rep.m.Unlock()

	if rep.logLevel == LogLevelVerbose {
		displayCompileHeader(version, target)
	}
}

// ReportPhaseDone reports that a compilation phase finished successfully along
// with how long it took.
func ReportPhaseDone(phase string, elapsed time.Duration) {
	rep.m.Lock()
	defer rep.m.Unlock()

	if rep.logLevel == LogLevelVerbose {
		displayPhaseDone(phase, elapsed)
	}
}

// ReportCompilationFinished reports the concluding message for compilation.
func ReportCompilationFinished(outputPath string) {
	rep.m.Lock()
	defer rep.m.Unlock()

	if rep.logLevel == LogLevelVerbose {
		displayCompilationFinished(rep.errorCount == 0, outputPath, time.Since(rep.startTime))
	}
}

// -----------------------------------------------------------------------------

// AnyErrors returns whether or not any errors were detected.
func AnyErrors() bool {
	rep.m.Lock()
	defer rep.m.Unlock()

	return rep.errorCount > 0
}

// ErrorCount returns the number of errors reported since the reporter was last
// initialized.
func ErrorCount() int {
	rep.m.Lock()
	defer rep.m.Unlock()

	return rep.errorCount
}
