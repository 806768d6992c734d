package cli

import (
	"errors"
	"strings"

	eberrors "github.com/ainnoce10/ebf-console/internal/errors"
)

// ExitCode returns the exit code for any error, mapping the shared
// error kinds to their documented codes.
func ExitCode(err error) int {
	var shared *eberrors.Error
	if errors.As(err, &shared) {
		return shared.CLIExitCode()
	}
	return ExitGeneralError
}

// FormatErrorMessage returns a formatted error with its suggestion if
// one is available.
func FormatErrorMessage(err error) string {
	var b strings.Builder
	b.WriteString("Error: ")
	b.WriteString(err.Error())

	var shared *eberrors.Error
	if errors.As(err, &shared) && shared.Suggestion != "" {
		b.WriteString("\n\nSuggestion: ")
		b.WriteString(shared.Suggestion)
	}
	return b.String()
}
