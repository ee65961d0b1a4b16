package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	a := &app{}
	var opts globalOptions

	rootCmd := &cobra.Command{
		Use:           "jirani",
		Short:         "JiraniSmart marketplace client for the terminal",
		Long:          "jirani signs you in to the JiraniSmart marketplace and draws the dashboard for your role: buyers browse nearby sellers and send SOS requests, sellers manage stock and link orders to bikers, bikers run delivery jobs, assistants answer rescue requests and agents watch their region.",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.wire(cmd.Context(), opts, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level: trace, debug, info, warn, error (default from JIRANI_LOG_LEVEL)")
	flags.BoolVar(&opts.plain, "plain", false, "Print dashboards without colors or spinners")
	flags.IntVar(&opts.width, "width", 0, "Truncate dashboard lines to this many cells (default: terminal width)")

	rootCmd.AddCommand(
		newVersionCmd(),
		newAuthCmd(a),
		newDashCmd(a),
		newUICmd(a),
		newBuyerCmd(a),
		newSellerCmd(a),
		newBikerCmd(a),
		newAssistantCmd(a),
		newAgentCmd(a),
		newDiagCmd(a),
	)

	return rootCmd
}
