package cli

import (
	"errors"

	"github.com/MakeNowJust/heredoc"
)

var (
	ErrConfigNotFound = errors.New(heredoc.Doc(`
	Config file not found. Loading from defaults...

	Run "ticketsearch config init" to initialize a new configuration file
	Run "ticketsearch help environment" for more information.

	Alternatively, make a "ticketsearch.yaml" file in the current directory from the example given
`))

	errWorkerDisabled = errors.New("worker is disabled")
	errNoQueue        = errors.New("index mode realtime does not use the job queue")
)
