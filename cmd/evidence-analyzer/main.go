package main

import (
	"fmt"
	"os"
	"strings"

	"evidencelens/adapters/tabular"
	"evidencelens/internal"
	"evidencelens/internal/config"
	"evidencelens/internal/input"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "evidence-analyzer",
		Short:         "Analyze diagnostic evidence files and report their usefulness",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		newAnalyzeCmd(),
		newFormatsCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newAnalyzeCmd() *cobra.Command {
	var pretty bool

	cmd := &cobra.Command{
		Use:   "analyze [path-or-content] [filename] [config]",
		Short: "Analyze one evidence file and print the result as JSON",
		Long: `Analyze one evidence file. The first argument is either a path to an
existing file or the file content itself. The filename decides the format.
The optional config is YAML or JSON, for example '{"evidenceCategory": "Vibration"}'.

Example: evidence-analyzer analyze ./motor.csv motor.csv`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("pretty") {
				cfg.Output.Pretty = pretty
			}

			rawConfig := ""
			if len(args) == 3 {
				rawConfig = args[2]
			}

			req := analyzeRequest{
				Argument:  args[0],
				Filename:  args[1],
				RawConfig: rawConfig,
			}
			return runAnalyze(cmd.OutOrStdout(), cfg, input.NewOsResolver(cfg.Input.MaxContentBytes), req)
		},
	}

	cmd.Flags().BoolVar(&pretty, "pretty", true, "Indent the JSON result")

	return cmd
}

func newFormatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List the registered evidence readers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			readers := tabular.NewDefaultDataReader(internal.NewNopLogger())
			_, err := fmt.Fprintln(cmd.OutOrStdout(), strings.Join(readers.RegisteredReaders(), "\n"))
			return err
		},
	}
}
