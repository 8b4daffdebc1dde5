package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/josexy/hosts-whitelist/filter"
	"github.com/josexy/hosts-whitelist/util/logger"
	"github.com/josexy/logx"
	"github.com/spf13/cobra"
)

var (
	inputFile        string
	outputFile       string
	standardSort     bool
	hierarchicalSort bool
)

var filterCmd = &cobra.Command{
	Use:     "filter",
	Short:   "filter a hosts file or domain list",
	Example: "  hosts-whitelist filter -f hosts.txt -o clean.txt -w my.list -m --hierarchical-sort",
	Run: func(cmd *cobra.Command, args []string) {
		defer func() {
			if err := recover(); err != nil {
				if e, ok := err.(error); ok {
					logger.Logger.FatalBy(e)
				}
			}
		}()
		if inputFile == "" {
			cmd.Help()
			return
		}
		if err := runFilter(cmd.Context()); err != nil {
			logger.Logger.FatalBy(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(filterCmd)
	filterCmd.Flags().StringVarP(&inputFile, "file", "f", "", "the file or url to filter")
	filterCmd.Flags().StringVarP(&outputFile, "output", "o", "", "write the survivors to this file instead of stdout")
	filterCmd.Flags().BoolVarP(&cfg.Filter.Parallel, "multiprocessing", "m", false, "check lines with a pool of workers")
	filterCmd.Flags().IntVarP(&cfg.Filter.Workers, "processes", "p", cfg.Filter.Workers, "number of workers")
	filterCmd.Flags().BoolVar(&standardSort, "standard-sort", false, "sort the survivors alphabetically")
	filterCmd.Flags().BoolVar(&hierarchicalSort, "hierarchical-sort", false, "sort the survivors by domain hierarchy")
	filterCmd.MarkFlagsMutuallyExclusive("standard-sort", "hierarchical-sort")
}

func sortMode() (filter.SortMode, error) {
	switch {
	case standardSort:
		return filter.SortStandard, nil
	case hierarchicalSort:
		return filter.SortHierarchical, nil
	}
	return filter.ParseSortMode(cfg.Filter.Sort)
}

func runFilter(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	mode, err := sortMode()
	if err != nil {
		return err
	}

	candidates, err := newFetcher(cfg).Lines(ctx, inputFile)
	if err != nil {
		return err
	}
	if !cfg.Filter.AlreadyFormatted {
		formatLines(candidates)
	}

	idx, err := buildIndex(ctx, cfg)
	if err != nil {
		return err
	}
	survivors, err := filter.New(idx,
		filter.WithParallel(cfg.Filter.Parallel),
		filter.WithWorkers(cfg.Filter.Workers),
		filter.WithSort(mode),
	).Filter(candidates)
	if err != nil {
		return err
	}

	logger.Logger.Info("filtered",
		logx.String("input", inputFile),
		logx.Int("candidates", len(candidates)),
		logx.Int("removed", len(candidates)-len(survivors)),
		logx.Int("survivors", len(survivors)),
	)
	return writeLines(outputFile, survivors)
}

// writeLines writes the complete result at once, to path or stdout.
func writeLines(path string, lines []string) error {
	var data string
	if len(lines) > 0 {
		data = strings.Join(lines, "\n") + "\n"
	}
	if path == "" {
		_, err := os.Stdout.WriteString(data)
		return err
	}
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
