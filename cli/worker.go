package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/MakeNowJust/heredoc"
	"github.com/goto/salt/printer"
	"github.com/goto/salt/term"
	"github.com/spf13/cobra"
)

func workerCommand(cfg *Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "worker <command>",
		Short: "Run and inspect the index worker",
		Long:  "Worker management commands.",
		Example: heredoc.Doc(`
			$ ticketsearch worker start
			$ ticketsearch worker start -c ./config.yaml
			$ ticketsearch worker dead-jobs list
		`),
	}

	cmd.AddCommand(
		workerStartCommand(cfg),
		deadJobsCommand(cfg),
	)
	return cmd
}

func workerStartCommand(cfg *Config) *cobra.Command {
	return &cobra.Command{
		Use:     "start",
		Short:   "Process queued index jobs until interrupted",
		Example: "ticketsearch worker start",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := runWorker(cmd.Context(), cfg); err != nil {
				return fmt.Errorf("run worker: %w", err)
			}
			return nil
		},
	}
}

func runWorker(ctx context.Context, cfg *Config) error {
	if !cfg.Worker.Enabled {
		return errWorkerDisabled
	}

	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.close()

	if a.manager == nil {
		return errNoQueue
	}

	a.logger.Info("ticketsearch worker starting",
		"version", Version,
		"index_mode", cfg.Search.IndexMode,
		"workers", cfg.Worker.WorkerCount,
	)
	return a.manager.Run(ctx)
}

func deadJobsCommand(cfg *Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dead-jobs <command>",
		Short: "Inspect jobs that ran out of attempts",
		Example: heredoc.Doc(`
			$ ticketsearch worker dead-jobs list --size 20
			$ ticketsearch worker dead-jobs resurrect 01HF0Y4ZQ7 01HF0Y55N2
			$ ticketsearch worker dead-jobs clear 01HF0Y4ZQ7
		`),
	}

	cmd.AddCommand(
		deadJobsListCommand(cfg),
		deadJobsActionCommand(cfg, "resurrect", "Queue dead jobs again with a fresh attempt budget"),
		deadJobsActionCommand(cfg, "clear", "Delete dead jobs"),
	)
	return cmd
}

func deadJobsListCommand(cfg *Config) *cobra.Command {
	var size, offset int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List dead jobs, most recent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer a.close()

			if a.manager == nil {
				return errNoQueue
			}

			return a.run(cmd.Context(), "cli/worker/dead-jobs/list", func(ctx context.Context) error {
				jobs, err := a.manager.DeadJobs(ctx, size, offset)
				if err != nil {
					return err
				}

				report := [][]string{{"ID", "TYPE", "ATTEMPTS", "LAST ATTEMPT", "LAST ERROR"}}
				for _, j := range jobs {
					report = append(report, []string{
						j.ID.String(),
						term.Bluef(j.Type),
						strconv.Itoa(j.AttemptsDone),
						j.LastAttemptAt.Format(time.RFC3339),
						j.LastError,
					})
				}
				printer.Table(os.Stdout, report)
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&size, "size", "s", 20, "page size")
	cmd.Flags().IntVar(&offset, "offset", 0, "number of jobs to skip")
	return cmd
}

func deadJobsActionCommand(cfg *Config, action, short string) *cobra.Command {
	return &cobra.Command{
		Use:   action + " <job-id>...",
		Short: short,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer a.close()

			if a.manager == nil {
				return errNoQueue
			}

			return a.run(cmd.Context(), "cli/worker/dead-jobs/"+action, func(ctx context.Context) error {
				var err error
				switch action {
				case "resurrect":
					err = a.manager.Resurrect(ctx, args)
				case "clear":
					err = a.manager.ClearDeadJobs(ctx, args)
				}
				if err != nil {
					return fmt.Errorf("%s dead jobs: %w", action, err)
				}
				fmt.Println(term.Greenf("%d jobs done: %s", len(args), action))
				return nil
			})
		},
	}
}
