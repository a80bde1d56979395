package main

import (
	"bytes"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ssatama/rescue-dog-aggregator-sub008/internal/ui"
)

// Patterns used to colorize Cobra's default help output.
var (
	// Section headers: unindented line ending with ":" (e.g. "Listing:", "Flags:").
	reGroupHeader = regexp.MustCompile(`(?m)^([A-Z][^\n]*:)\s*$`)

	// Command names: two-space indent, a word, then two or more spaces.
	reCommand = regexp.MustCompile(`(?m)^(  )(\S+)(  )`)

	// Flag type annotations: e.g. "--org string", "--every duration".
	reFlagType = regexp.MustCompile(`(--?\S+\s+)(string|int|duration|strings|stringArray)`)

	reDefault = regexp.MustCompile(`\(default "?[^")]*"?\)`)
)

// colorizedHelpFunc returns a Cobra help function that post-processes the
// default help text with ANSI colors when stdout supports it.
func colorizedHelpFunc() func(*cobra.Command, []string) {
	return func(cmd *cobra.Command, args []string) {
		orig := cmd.OutOrStdout()
		f, ok := orig.(*os.File)
		if !ok || !ui.ShouldUseColor(f) {
			_ = cmd.Usage()
			return
		}

		var buf bytes.Buffer
		cmd.SetOut(&buf)
		_ = cmd.Usage()
		cmd.SetOut(orig)

		fmt.Fprint(orig, colorizeHelpOutput(buf.String(), ui.NewStyles(true)))
	}
}

// colorizeHelpOutput applies styling to Cobra's plain-text help.
func colorizeHelpOutput(s string, st *ui.Styles) string {
	s = reGroupHeader.ReplaceAllStringFunc(s, func(match string) string {
		if strings.TrimSpace(match) == "Usage:" {
			return match
		}
		return st.Accent(strings.TrimSpace(match))
	})

	s = reCommand.ReplaceAllStringFunc(s, func(match string) string {
		parts := reCommand.FindStringSubmatch(match)
		if len(parts) == 4 {
			return parts[1] + st.Command(parts[2]) + parts[3]
		}
		return match
	})

	s = reFlagType.ReplaceAllStringFunc(s, func(match string) string {
		parts := reFlagType.FindStringSubmatch(match)
		if len(parts) == 3 {
			return parts[1] + st.Muted(parts[2])
		}
		return match
	})

	return reDefault.ReplaceAllStringFunc(s, st.Muted)
}
