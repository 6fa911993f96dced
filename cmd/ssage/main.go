// Package main provides the ssage CLI entry point.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/ngerold/shellsage/cli"
	"github.com/ngerold/shellsage/render"
)

var opts = cli.DefaultOptions()

func main() {
	// Load .env file if present (ignore "file not found" errors)
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "Warning: failed to load .env file: %v\n", err)
		}
	}

	rootCmd := &cobra.Command{
		Use:   "ssage [query...]",
		Short: "ShellSage - AI help for shell commands, right in your terminal",
		Long: `ShellSage sends your question, optionally enriched with tmux history and
piped input, to an LLM and renders the answer as Markdown.

Examples:
  ssage "why did my last command fail?"
  cat error.log | ssage "what does this mean?"
  ssage --sassy "how do I exit vim"
  ssage --pane all -n 500 "summarize what's happening in my panes"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return cli.Run(context.Background(), strings.Join(args, " "), opts)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&opts.Provider, "provider", "p", opts.Provider, "LLM provider (anthropic, openai, deepseek, gemini)")
	rootCmd.Flags().StringVarP(&opts.Model, "model", "m", "", "Model identifier (defaults per provider)")
	rootCmd.Flags().StringVar(&opts.Pane, "pane", opts.Pane, "Tmux pane to capture ('current', 'all', or a pane ID)")
	rootCmd.Flags().IntVarP(&opts.HistoryLines, "lines", "n", 0, "Number of terminal history lines to include")
	rootCmd.Flags().BoolVarP(&opts.Sassy, "sassy", "s", false, "Enable sassy mode")
	rootCmd.Flags().StringVar(&opts.Theme, "theme", "", "Markdown theme (auto, dark, light, dracula, ...)")
	rootCmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Show verbose output (token usage, context warnings)")
	rootCmd.Flags().BoolVar(&opts.Stream, "stream", false, "Stream the reply as it is generated")
	rootCmd.Flags().BoolVar(&opts.LogUsage, "log-usage", false, "Record token usage to the usage history")

	rootCmd.AddCommand(setupCmd())
	rootCmd.AddCommand(usageCmd())
	rootCmd.AddCommand(modelsCmd())

	if err := rootCmd.Execute(); err != nil {
		render.Errorf("%v", err)
		os.Exit(1)
	}
}

func setupCmd() *cobra.Command {
	var apiKey string

	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Store an API key in the credential file",
		Long: `Store an API key in the ShellSage credential file
($XDG_CONFIG_HOME/shellsage/credentials.json, owner-only permissions).

The environment variable for the provider (e.g. ANTHROPIC_API_KEY) still
takes precedence when set.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			key := apiKey
			if key == "" {
				fmt.Printf("Enter %s API key: ", opts.Provider)
				scanner := bufio.NewScanner(os.Stdin)
				if scanner.Scan() {
					key = scanner.Text()
				}
			}
			return cli.Setup(opts.Provider, key)
		},
	}

	cmd.Flags().StringVar(&apiKey, "key", "", "API key (prompted for when omitted)")

	return cmd
}

func usageCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "usage",
		Short: "Show recorded token usage and estimated cost",
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return cli.ShowUsage(context.Background(), limit)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Number of recent invocations to show")

	return cmd
}

func modelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List known model identifiers",
		Run: func(cmd *cobra.Command, args []string) {
			cli.ListModels()
		},
	}
}
