package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/MakeNowJust/heredoc"
	"github.com/goto/salt/printer"
	"github.com/goto/salt/term"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

func indexCommand(cfg *Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "index <command>",
		Short: "Maintain the search indexes",
		Annotations: map[string]string{
			"group": "core",
		},
		Example: heredoc.Doc(`
			$ ticketsearch index rebuild
			$ ticketsearch index rebuild --clear
			$ ticketsearch index update 1042
			$ ticketsearch index remove 1042 --mailbox 3
		`),
	}

	cmd.AddCommand(
		indexRebuildCommand(cfg),
		indexUpdateCommand(cfg),
		indexRemoveCommand(cfg),
	)
	return cmd
}

func indexRebuildCommand(cfg *Config) *cobra.Command {
	var clear bool
	cmd := &cobra.Command{
		Use:   "rebuild",
		Short: "Rebuild every index from the live records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer a.close()

			return a.run(cmd.Context(), "cli/index/rebuild", func(ctx context.Context) error {
				if clear {
					fmt.Println(term.Yellow("Clearing existing index..."))
					if err := a.clearIndexes(ctx); err != nil {
						return err
					}
				}

				var (
					bar  *progressbar.ProgressBar
					prev int
				)
				// every index reports its own progress, one after the other
				indexed := a.service.RebuildIndex(ctx, func(current, total int) {
					if bar == nil || current < prev {
						if bar != nil {
							_ = bar.Finish()
						}
						bar = printer.Progress(total, "Indexing records")
					}
					prev = current
					_ = bar.Set(current)
				})
				if bar != nil {
					_ = bar.Finish()
					fmt.Println()
				}

				fmt.Println(term.Greenf("Indexed %d records", indexed))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&clear, "clear", false, "clear the existing index before rebuilding")
	return cmd
}

func indexUpdateCommand(cfg *Config) *cobra.Command {
	return &cobra.Command{
		Use:   "update <record-id>",
		Short: "Reindex one record after it changed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			recordID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid record id %q", args[0])
			}

			a, err := newApp(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer a.close()

			return a.run(cmd.Context(), "cli/index/update", func(ctx context.Context) error {
				a.service.RecordSaved(ctx, recordID)
				fmt.Println("Record", term.Greenf("%d", recordID), "dispatched for indexing, mode", a.cfg.Search.IndexMode)
				return nil
			})
		},
	}
}

func indexRemoveCommand(cfg *Config) *cobra.Command {
	var mailboxID int64
	cmd := &cobra.Command{
		Use:   "remove <record-id>",
		Short: "Remove a deleted record from the indexes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			recordID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid record id %q", args[0])
			}

			a, err := newApp(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer a.close()

			return a.run(cmd.Context(), "cli/index/remove", func(ctx context.Context) error {
				a.service.RecordDeleted(ctx, recordID, mailboxID)
				fmt.Println("Record", term.Redf("%d", recordID), "dispatched for removal, mode", a.cfg.Search.IndexMode)
				return nil
			})
		},
	}

	cmd.Flags().Int64Var(&mailboxID, "mailbox", 0, "mailbox the record belonged to")
	return cmd
}

func cacheCommand(cfg *Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache <command>",
		Short: "Manage the result cache",
		Example: heredoc.Doc(`
			$ ticketsearch cache clear
			$ ticketsearch cache clear --mailbox 3 --mailbox 4
		`),
	}

	var mailboxIDs []int64
	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Drop cached result pages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer a.close()

			return a.run(cmd.Context(), "cli/cache/clear", func(ctx context.Context) error {
				before := a.cache.Len()
				a.service.ClearCache(ctx, mailboxIDs...)
				fmt.Println(term.Greenf("Dropped %d cached pages", before-a.cache.Len()))
				return nil
			})
		},
	}
	clearCmd.Flags().Int64SliceVar(&mailboxIDs, "mailbox", nil, "only drop pages scoped to these mailboxes")

	cmd.AddCommand(clearCmd)
	return cmd
}

func statsCommand(cfg *Config) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show search usage and index statistics",
		Annotations: map[string]string{
			"group": "core",
		},
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer a.close()

			return a.run(cmd.Context(), "cli/stats", func(ctx context.Context) error {
				stats := a.service.GetStatistics(ctx)
				if output == "json" {
					fmt.Println(term.Bluef(prettyPrint(stats)))
					return nil
				}

				printer.Table(os.Stdout, [][]string{
					{"Total searches", strconv.FormatInt(stats.TotalSearches, 10)},
					{"Unique queries", strconv.FormatInt(stats.UniqueQueries, 10)},
					{"Searches today", strconv.FormatInt(stats.SearchesToday, 10)},
					{"Indexed records", strconv.FormatInt(stats.IndexedCount, 10)},
				})

				report := [][]string{{"TOP QUERY", "COUNT"}}
				for _, q := range stats.TopQueries {
					report = append(report, []string{term.Bluef(q.Query), strconv.FormatInt(q.Count, 10)})
				}
				printer.Table(os.Stdout, report)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "table", "output format, table or json")
	return cmd
}
