package cmd

import "fmt"

// consoleWriter is used to print command output, tests replace it to capture the output.
var consoleWriter consoleWrapper = &stdoutWrapper{}

type (
	consoleWrapper interface {
		Println(a ...any)
		Print(a ...any)
		Printf(format string, a ...any)
	}

	stdoutWrapper struct{}
)

func (w *stdoutWrapper) Println(a ...any) {
	fmt.Println(a...)
}

func (w *stdoutWrapper) Print(a ...any) {
	fmt.Print(a...)
}

func (w *stdoutWrapper) Printf(format string, a ...any) {
	fmt.Printf(format, a...)
}
