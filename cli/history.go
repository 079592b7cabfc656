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
	"github.com/goto/ticketsearch/core/history"
	"github.com/goto/ticketsearch/core/search"
	"github.com/spf13/cobra"
)

func historyCommand(cfg *Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history <command>",
		Short: "Manage the search history of a user",
		Annotations: map[string]string{
			"group": "core",
		},
		Example: heredoc.Doc(`
			$ ticketsearch history list --user 12
			$ ticketsearch history clear --user 12
		`),
	}

	cmd.AddCommand(
		historyListCommand(cfg),
		historyClearCommand(cfg),
	)
	return cmd
}

func historyListCommand(cfg *Config) *cobra.Command {
	var (
		userID int64
		limit  int
		output string
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the most recent searches of a user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer a.close()

			return a.run(cmd.Context(), "cli/history/list", func(ctx context.Context) error {
				entries := a.service.History(ctx, search.User{ID: userID}, limit)
				if output == "json" {
					fmt.Println(term.Bluef(prettyPrint(entries)))
					return nil
				}
				printHistory(entries)
				return nil
			})
		},
	}

	cmd.Flags().Int64VarP(&userID, "user", "u", 0, "user id")
	cmd.Flags().IntVarP(&limit, "limit", "l", history.DefaultListSize, "maximum number of entries")
	cmd.Flags().StringVarP(&output, "output", "o", "table", "output format, table or json")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

func printHistory(entries []history.Entry) {
	report := [][]string{{"QUERY", "RESULTS", "SEARCHED AT"}}
	for _, e := range entries {
		report = append(report, []string{
			term.Bluef(e.Query),
			strconv.Itoa(e.ResultCount),
			e.CreatedAt.Format(time.RFC3339),
		})
	}
	printer.Table(os.Stdout, report)
}

func historyClearCommand(cfg *Config) *cobra.Command {
	var userID int64
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete the search history of a user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer a.close()

			return a.run(cmd.Context(), "cli/history/clear", func(ctx context.Context) error {
				a.service.ClearHistory(ctx, search.User{ID: userID})
				fmt.Println("Search history of user", term.Greenf("%d", userID), "cleared")
				return nil
			})
		},
	}

	cmd.Flags().Int64VarP(&userID, "user", "u", 0, "user id")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}
