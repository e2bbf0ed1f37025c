package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/viniciusth/kwic"
	"github.com/viniciusth/kwic/internal/config"
	"github.com/viniciusth/kwic/internal/corpus"
)

type app struct {
	configPath string
	flags      *config.Flags
	cfg        config.Config
	logger     *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{logger: zap.NewNop()}

	rootCmd := &cobra.Command{
		Use:           "kwic",
		Short:         "Keyword-in-context search over whitespace-separated records",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			a.cfg, err = config.Load(a.configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			a.flags.Apply(&a.cfg)
			a.logger, err = a.cfg.Logger()
			if err != nil {
				return fmt.Errorf("failed to create logger: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}
	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "TOML configuration file")
	a.flags = config.BindFlags(rootCmd.PersistentFlags())

	queryCmd := &cobra.Command{
		Use:   "query QUERY...",
		Short: "Print the records matching each query",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, _ := cmd.Flags().GetStringSlice("file")
			distinct, _ := cmd.Flags().GetInt("distinct")
			width, _ := cmd.Flags().GetInt("context")
			if len(files) == 0 {
				return fmt.Errorf("at least one --file is required")
			}

			records, err := corpus.ReadFiles(files...)
			if err != nil {
				return fmt.Errorf("failed to read records: %w", err)
			}
			k, err := a.cfg.Builder(records, a.logger).Build()
			if err != nil {
				return fmt.Errorf("failed to build index: %w", err)
			}
			a.logger.Info("index ready", zap.Strings("files", files), zap.Int("records", len(records)))

			out := cmd.OutOrStdout()
			for _, q := range args {
				if err := runQuery(out, k, q, distinct, width); err != nil {
					return err
				}
			}
			return nil
		},
	}
	queryCmd.Flags().StringSliceP("file", "f", nil, "record file, may be repeated")
	queryCmd.Flags().IntP("distinct", "k", 0, "print up to k distinct records instead of every occurrence")
	queryCmd.Flags().IntP("context", "c", 0, "print occurrences with this many bytes of context")

	demoCmd := &cobra.Command{
		Use:   "demo",
		Short: "Run the built-in sample queries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, tc := range []struct{ sample, query string }{
				{"input0.txt", "cwd"},
				{"input1.txt", "er"},
			} {
				records, err := corpus.Sample(tc.sample)
				if err != nil {
					return err
				}
				k, err := a.cfg.Builder(records, a.logger).Build()
				if err != nil {
					return fmt.Errorf("failed to build index for %s: %w", tc.sample, err)
				}
				ids, err := k.Find(tc.query)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), formatIDs(ids))
			}
			return nil
		},
	}

	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(demoCmd)
	return rootCmd
}

func runQuery(out io.Writer, k *kwic.KWIC, q string, distinct, width int) error {
	if width > 0 {
		contexts, err := k.Contexts(q, width)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s: %d\n", q, len(contexts))
		for _, c := range contexts {
			fmt.Fprintf(out, "%6d  %s\n", c.Record, c)
		}
		return nil
	}

	var (
		ids []int
		err error
	)
	if distinct > 0 {
		ids, err = k.FindKMatches(q, distinct)
	} else {
		ids, err = k.Find(q)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%s: %s\n", q, formatIDs(ids))
	return nil
}

func formatIDs(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprint(id)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
