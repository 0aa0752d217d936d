package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pterm/pterm"
)

var (
	SuccessColorFG = pterm.FgLightGreen
	SuccessStyleBG = pterm.NewStyle(pterm.BgLightGreen, pterm.FgBlack)
	WarnColorFG    = pterm.FgYellow
	WarnStyleBG    = pterm.NewStyle(pterm.BgYellow, pterm.FgBlack)
	ErrorColorFG   = pterm.FgRed
	ErrorStyleBG   = pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
	InfoColorFG    = SuccessColorFG
	InfoStyleBG    = SuccessStyleBG
)

// PrintErrorMessage prints a standard Go error to the console.
func PrintErrorMessage(tag string, err error) {
	if !logEnabled(LogLevelError) {
		return
	}

	ErrorStyleBG.Print(tag)
	ErrorColorFG.Println(" " + err.Error())
}

// PrintWarningMessage prints a warning message to the console.
func PrintWarningMessage(tag, msg string) {
	if !logEnabled(LogLevelWarning) {
		return
	}

	WarnStyleBG.Print(tag)
	WarnColorFG.Println(" " + msg)
}

// PrintInfoMessage prints an informational message to the user.
func PrintInfoMessage(tag, msg string) {
	if !logEnabled(LogLevelVerbose) {
		return
	}

	InfoStyleBG.Print(tag)
	InfoColorFG.Println(" " + msg)
}

// -----------------------------------------------------------------------------

// Display prints a compilation error with a banner and, when both a span and
// the unit's source text are available, the offending source lines with caret
// underlining.  Source units are frequently in-memory strings (eg. operation
// bodies pulled out of larger records), so the source text is passed in
// rather than re-read from disk.  Passing an empty src suppresses the code
// excerpt.
func Display(e *Error, src string) {
	if !logEnabled(LogLevelError) {
		return
	}

	displayBanner(e)
	fmt.Println(e.Message)

	if e.Span != nil && src != "" {
		displayCodeSelection(e.Span, src)
	}

	if e.Kind == KindInternal && len(e.Backtrace) > 0 {
		fmt.Println()
		fmt.Println(string(e.Backtrace))
	}
}

// displayBanner displays the banner on top of a compilation error.
func displayBanner(e *Error) {
	fmt.Print("\n\n-- ")

	kindStr := strings.Title(e.Kind.String())
	ErrorStyleBG.Print(kindStr)

	fmt.Print(" ")

	bannerLen := pterm.GetTerminalWidth() / 2
	if bannerLen > 50 {
		bannerLen = 50
	}

	dashCount := bannerLen - len(e.Unit) - len(kindStr) - 1
	if dashCount < 3 {
		dashCount = 3
	}

	fmt.Print(strings.Repeat("-", dashCount) + " ")
	InfoColorFG.Println(e.Unit)
}

// displayCodeSelection displays the erroneous code (with line numbers) and
// underlines the spanned region.
func displayCodeSelection(span *TextSpan, src string) {
	fmt.Println()

	// Collect the source lines covered by the span.
	var lines []string
	for ln, line := range strings.Split(src, "\n") {
		if span.StartLine <= ln && ln <= span.EndLine {
			lines = append(lines, strings.ReplaceAll(line, "\t", "    "))
		}
	}

	if len(lines) == 0 {
		return
	}

	// Calculate the minimum leading indentation so it can be trimmed.
	minIndent := -1
	for _, line := range lines {
		indent := 0
		for _, c := range line {
			if c == ' ' {
				indent++
			} else {
				break
			}
		}

		if minIndent == -1 || indent < minIndent {
			minIndent = indent
		}
	}

	maxLineNumLen := len(strconv.Itoa(span.EndLine + 1))
	lineNumFmtStr := "%-" + strconv.Itoa(maxLineNumLen) + "v | "

	for i, line := range lines {
		InfoColorFG.Print(fmt.Sprintf(lineNumFmtStr, i+span.StartLine+1))
		fmt.Println(line[minIndent:])

		fmt.Print(strings.Repeat(" ", maxLineNumLen), " | ")

		// Carets start at the span's start column on the first line and at
		// the line start on every continuation line; they run to the span's
		// end column on the last line and to the end of the line otherwise.
		prefix := 0
		if i == 0 {
			prefix = span.StartCol - minIndent
		}

		suffix := 0
		if i == len(lines)-1 {
			suffix = len(line) - span.EndCol
		}

		count := len(line) - suffix - prefix - minIndent
		if count < 1 {
			count = 1
		}

		fmt.Print(strings.Repeat(" ", prefix))
		ErrorColorFG.Println(strings.Repeat("^", count))
	}

	fmt.Println()
}
