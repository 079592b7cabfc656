package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/MakeNowJust/heredoc"
	"github.com/goto/salt/printer"
	"github.com/goto/salt/term"
	"github.com/goto/ticketsearch/core/search"
	"github.com/spf13/cobra"
)

var errNoResults = errors.New("search is not available for this query, the caller should fall back to its own search")

func searchCommand(cfg *Config) *cobra.Command {
	var (
		flags  filterFlags
		userID int64
		output string
	)
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search helpdesk records",
		Long: heredoc.Doc(`
			Search the records visible to a user. The query accepts free text,
			quoted phrases and operators such as from:, to:, status:, after:,
			before:, last:, has:attachment and assigned:.
		`),
		Annotations: map[string]string{
			"group": "core",
		},
		Args: cobra.ExactArgs(1),
		Example: heredoc.Doc(`
			$ ticketsearch search invoice --user 12
			$ ticketsearch search '"payment failed" status:active last:7d' --user 12
			$ ticketsearch search refund --user 12 --sort date_desc -o json
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			flt, err := flags.filters(time.Now())
			if err != nil {
				return err
			}

			a, err := newApp(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer a.close()

			spinner := printer.Spin("")
			defer spinner.Stop()

			return a.run(cmd.Context(), "cli/search", func(ctx context.Context) error {
				user := search.User{ID: userID}
				page, ok := a.service.PerformSearch(ctx, args[0], flt, user)
				spinner.Stop()
				if !ok {
					return errNoResults
				}
				a.service.TrackHistory(ctx, args[0], user, int(page.TotalCount))

				if output == "json" {
					fmt.Println(term.Bluef(prettyPrint(page)))
					return nil
				}
				printResultPage(page)
				return nil
			})
		},
	}

	flags.bind(cmd)
	cmd.Flags().Int64VarP(&userID, "user", "u", 0, "id of the user searching")
	cmd.Flags().StringVarP(&output, "output", "o", "table", "output format, table or json")
	return cmd
}

func printResultPage(page search.ResultPage) {
	report := [][]string{{"NUMBER", "SUBJECT", "CUSTOMER", "STATUS", "UPDATED", "SCORE"}}
	for _, item := range page.Items {
		rec := item.Record
		report = append(report, []string{
			strconv.FormatInt(rec.Number, 10),
			term.Bluef(rec.Subject),
			rec.Customer.Display(),
			rec.Status.String(),
			rec.UpdatedAt.Format(time.RFC3339),
			strconv.FormatFloat(item.Score, 'f', 2, 64),
		})
	}
	printer.Table(os.Stdout, report)

	fmt.Println(term.Cyanf("%d records, page %d, served by %s", page.TotalCount, page.Page, page.Backend))
	fmt.Println(term.Cyanf("To view all the data in JSON format, use flag `-o json`"))
}

func suggestCommand(cfg *Config) *cobra.Command {
	var (
		userID int64
		limit  int
	)
	cmd := &cobra.Command{
		Use:   "suggest <prefix>",
		Short: "Autocomplete a search prefix",
		Annotations: map[string]string{
			"group": "core",
		},
		Args: cobra.ExactArgs(1),
		Example: heredoc.Doc(`
			$ ticketsearch suggest jo --user 12
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer a.close()

			return a.run(cmd.Context(), "cli/suggest", func(ctx context.Context) error {
				suggestions := a.service.GetSuggestions(ctx, args[0], search.User{ID: userID}, limit)
				if len(suggestions) == 0 {
					fmt.Println(term.Yellow("no suggestions"))
					return nil
				}
				fmt.Println(strings.Join(suggestions, "\n"))
				return nil
			})
		},
	}

	cmd.Flags().Int64VarP(&userID, "user", "u", 0, "id of the user typing")
	cmd.Flags().IntVarP(&limit, "limit", "l", 5, "maximum number of suggestions")
	return cmd
}
