package cli

import (
	"github.com/MakeNowJust/heredoc"
	"github.com/goto/salt/cmdx"
	"github.com/spf13/cobra"
)

var envHelp = map[string]string{
	"short": "List of supported environment variables",
	"long": heredoc.Doc(`
		Every configuration key can be overridden with an environment variable
		prefixed with TICKETSEARCH_. Nested keys are joined with an underscore.

		TICKETSEARCH_LOG_LEVEL: log level, one of debug, info, warn, error.

		TICKETSEARCH_DB_HOST, TICKETSEARCH_DB_PORT, TICKETSEARCH_DB_NAME,
		TICKETSEARCH_DB_USER, TICKETSEARCH_DB_PASSWORD: helpdesk database.

		TICKETSEARCH_SEARCH_ENGINE: direct-scan, indexed-fulltext or external-index.

		TICKETSEARCH_SEARCH_INDEX_MODE: realtime, queue or scheduled.

		TICKETSEARCH_ELASTICSEARCH_BROKERS: comma separated cluster addresses.

		TICKETSEARCH_WORKER_ENABLED: allow "worker start" to process jobs.
	`),
}

func New(cfg *Config) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "ticketsearch <command> <subcommand> [flags]",
		Short:         "Helpdesk record search",
		Long:          "Search, autocomplete and index maintenance for helpdesk records.",
		SilenceErrors: true,
		SilenceUsage:  false,
		Example: heredoc.Doc(`
		$ ticketsearch migrate
		$ ticketsearch search "invoice status:active" --user 12
		$ ticketsearch suggest jo --user 12
		$ ticketsearch index rebuild
		$ ticketsearch worker start
		`),
		Annotations: map[string]string{
			"group": "core",
			"help:learn": heredoc.Doc(`
				Use 'ticketsearch <command> --help' for info about a command.
			`),
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return loadConfigFromFlag(cmd, cfg)
		},
	}

	rootCmd.AddCommand(
		migrateCommand(cfg),
		searchCommand(cfg),
		suggestCommand(cfg),
		historyCommand(cfg),
		indexCommand(cfg),
		cacheCommand(cfg),
		statsCommand(cfg),
		workerCommand(cfg),
		configCommand(cfg),
		versionCmd(),
	)

	// Help topics
	rootCmd.AddCommand(cmdx.SetCompletionCmd(appName))
	rootCmd.AddCommand(cmdx.SetRefCmd(rootCmd))
	rootCmd.AddCommand(cmdx.SetHelpTopicCmd("environment", envHelp))
	cmdx.SetHelp(rootCmd)

	rootCmd.PersistentFlags().StringP(configFlag, "c", "", "Override config file")

	return rootCmd
}
