package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/goto/ticketsearch/cli"
)

const (
	exitOK    = 0
	exitError = 1
)

var usageErrPrefixes = []string{"unknown command", "unknown flag", "unknown shorthand flag"}

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := cli.LoadConfig()
	if err != nil {
		// a missing or broken config file still lets config init and help run
		fmt.Fprintln(os.Stderr, err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cmd, err := cli.New(cfg).ExecuteContextC(ctx)
	if err == nil {
		return exitOK
	}

	fmt.Fprintln(os.Stderr, err)
	if !isUsageError(err) {
		return exitError
	}

	if !strings.HasSuffix(err.Error(), "\n") {
		fmt.Println()
	}
	fmt.Println(cmd.UsageString())
	return exitOK
}

func isUsageError(err error) bool {
	for _, prefix := range usageErrPrefixes {
		if strings.HasPrefix(err.Error(), prefix) {
			return true
		}
	}
	return false
}
