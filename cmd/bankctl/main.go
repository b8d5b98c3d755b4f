// Command bankctl drives the banking backend from a terminal.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"bank-mediator/pkg/bank"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := execute(ctx, os.Stdout, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", errorMessage(err))
		stop()
		os.Exit(exitCode(err))
	}
}

// execute runs one bankctl invocation and releases whatever it acquired,
// whether or not the command succeeded.
func execute(ctx context.Context, out io.Writer, args []string) error {
	a := &app{out: out}
	defer a.teardown()

	root := newRootCmd(a)
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

func errorMessage(err error) string {
	var be *bank.Error
	if errors.As(err, &be) {
		return be.UserMessage()
	}
	return err.Error()
}

// exitCode maps an error kind to a process exit status so scripts can tell
// bad input from an unreachable backend.
func exitCode(err error) int {
	var be *bank.Error
	switch {
	case !errors.As(err, &be):
		return 1
	case bank.IsValidation(err):
		return 2
	case bank.IsTransport(err):
		return 3
	default:
		return 4
	}
}
