// Package exit carries the message and status uastq terminates with.
package exit

import (
	"fmt"
	"io"
	"os"
)

const (
	CodeOK    = 0
	CodeError = 1 // processing failed
	CodeUsage = 2 // bad flags or configuration
)

type Result struct {
	Output   io.Writer
	ExitCode int
	Message  string
}

// Print writes the message, adding a final newline when missing.
func (r *Result) Print() {
	if r.Message == "" {
		return
	}
	fmt.Fprint(r.Output, r.Message)
	if r.Message[len(r.Message)-1] != '\n' {
		fmt.Fprintln(r.Output)
	}
}

func Success(message string) *Result {
	return &Result{
		Output:   os.Stdout,
		ExitCode: CodeOK,
		Message:  message,
	}
}

func Error(message string) *Result {
	return &Result{
		Output:   os.Stderr,
		ExitCode: CodeError,
		Message:  message,
	}
}

func Errorf(format string, a ...any) *Result {
	return Error(fmt.Sprintf(format, a...))
}

// Usagef reports invalid invocation followed by usage text.
func Usagef(usage, format string, a ...any) *Result {
	return &Result{
		Output:   os.Stderr,
		ExitCode: CodeUsage,
		Message:  fmt.Sprintf("Error: "+format+"\n\n", a...) + usage,
	}
}
