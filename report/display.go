package report

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/pterm/pterm"
)

var (
	SuccessColorFG = pterm.FgLightGreen
	SuccessStyleBG = pterm.NewStyle(pterm.BgLightGreen, pterm.FgBlack)
	WarnColorFG    = pterm.FgYellow
	WarnStyleBG    = pterm.NewStyle(pterm.BgYellow, pterm.FgBlack)
	ErrorColorFG   = pterm.FgRed
	ErrorStyleBG   = pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
	InfoColorFG    = pterm.FgLightCyan
)

// SetColor enables or disables colored diagnostic output.
func SetColor(enabled bool) {
	if enabled {
		pterm.EnableColor()
	} else {
		pterm.DisableColor()
	}
}

// write writes to the reporter's output.  The caller must hold the lock.
func write(a ...interface{}) {
	fmt.Fprint(rep.out, a...)
}

// writeln writes a line to the reporter's output.  The caller must hold the
// lock.
func writeln(a ...interface{}) {
	fmt.Fprintln(rep.out, a...)
}

// -----------------------------------------------------------------------------

// displayICE displays an internal compiler error message.
func displayICE(message string) {
	write(ErrorStyleBG.Sprint("Internal Error"), " ")
	writeln(ErrorColorFG.Sprint(message))
	writeln("This error was not supposed to happen: it is a bug in the compiler.")
	writeln()
}

// displayFatal displays a fatal error message.
func displayFatal(message string) {
	write(ErrorStyleBG.Sprint("Fatal Error"), " ")
	writeln(ErrorColorFG.Sprint(message))
	writeln()
}

// displayWarning displays a warning with no associated source text.
func displayWarning(message string) {
	write(WarnStyleBG.Sprint("Warning"), " ")
	writeln(WarnColorFG.Sprint(message))
	writeln()
}

// displayStdError displays a standard Go error.
func displayStdError(reprPath string, err error) {
	write(ErrorStyleBG.Sprint("Error"), " ")
	writeln(ErrorColorFG.Sprint(reprPath + ": " + err.Error()))
	writeln()
}

// displayCompileMessage displays a compilation error or warning.  The label is
// the banner to prefix the message with: eg. "Syntax Error".
func displayCompileMessage(label string, isError bool, reprPath, src string, span TextSpan, message string) {
	if isError {
		write(ErrorStyleBG.Sprint(label), " ")
	} else {
		write(WarnStyleBG.Sprint(label), " ")
	}

	writeln(InfoColorFG.Sprintf("%s:%d:%d:", reprPath, span.StartLine+1, span.StartCol+1), message)

	if src != "" {
		displaySourceText(src, span, isError)
	}

	writeln()
}

// displaySourceText displays a segment of source text defined by a text span
// with the selected text underlined by carrets.
func displaySourceText(src string, span TextSpan, isError bool) {
	// Collect all the source lines containing the given source text.
	var lines []string
	for ln, line := range strings.Split(src, "\n") {
		if span.StartLine <= ln && ln <= span.EndLine {
			line = strings.TrimRight(line, "\r")
			lines = append(lines, strings.ReplaceAll(line, "\t", "    "))
		}
	}

	if len(lines) == 0 {
		return
	}

	// Calculate the minimum line indentation.
	minIndent := math.MaxInt
	for _, line := range lines {
		lineIndent := len(line) - len(strings.TrimLeft(line, " "))
		if lineIndent < minIndent {
			minIndent = lineIndent
		}
	}

	carretColor := ErrorColorFG
	if !isError {
		carretColor = WarnColorFG
	}

	maxLineNumLen := len(strconv.Itoa(span.EndLine + 1))
	lineNumFmtStr := "%-" + strconv.Itoa(maxLineNumLen) + "v | "

	for i, line := range lines {
		write(InfoColorFG.Sprintf(lineNumFmtStr, i+span.StartLine+1))
		writeln(line[minIndent:])

		write(strings.Repeat(" ", maxLineNumLen), " | ")

		// Underlining begins at the start column on the first line and at the
		// trimmed indent on every line after it.
		start := minIndent
		if i == 0 {
			start = clamp(span.StartCol, minIndent, len(line))
		}

		// Underlining runs to the end of every line but the last.
		end := len(line)
		if i == len(lines)-1 {
			end = clamp(span.EndCol, start, len(line))
		}

		if end == start {
			end = start + 1
		}

		write(strings.Repeat(" ", start-minIndent))
		writeln(carretColor.Sprint(strings.Repeat("^", end-start)))
	}
}

// clamp restricts n to the range [lo, hi].
func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	} else if n > hi {
		return hi
	}

	return n
}

// -----------------------------------------------------------------------------

// displayCompileHeader displays all the compiler information before starting
// compilation.
func displayCompileHeader(version, target string) {
	write("sprigc ", InfoColorFG.Sprint("v"+version))
	writeln(" -- target:", InfoColorFG.Sprint(target))
}

// displayPhaseDone displays the end of a compilation phase.
func displayPhaseDone(phase string, elapsed time.Duration) {
	write(SuccessStyleBG.Sprint("Done"), " ")
	writeln(fmt.Sprintf("%-10s", phase), fmt.Sprintf("(%.3fs)", elapsed.Seconds()))
}

// displayCompilationFinished displays the closing message for compilation.
func displayCompilationFinished(success bool, outputPath string, elapsed time.Duration) {
	if success {
		write(SuccessColorFG.Sprint("All done! "))
		writeln(fmt.Sprintf("(%.3fs)", elapsed.Seconds()))

		if outputPath != "" {
			writeln("Output written to:", InfoColorFG.Sprint(outputPath))
		}
	} else {
		writeln(ErrorColorFG.Sprint("Compilation failed."))
	}
}
