package cmd

import (
	"fmt"

	"github.com/josexy/hosts-whitelist/filter"
	"github.com/josexy/hosts-whitelist/util/hostsutil"
	"github.com/josexy/hosts-whitelist/util/logger"
	"github.com/spf13/cobra"
)

var hostsCmd = &cobra.Command{
	Use:     "hosts",
	Short:   "show which system hosts entries the whitelist keeps",
	Example: "  hosts-whitelist hosts --without-core -w my.list",
	Run: func(cmd *cobra.Command, args []string) {
		if err := runHosts(cmd); err != nil {
			logger.Logger.FatalBy(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(hostsCmd)
}

func runHosts(cmd *cobra.Command) error {
	candidates, err := hostsutil.SystemHosts()
	if err != nil {
		return fmt.Errorf("read system hosts: %w", err)
	}
	if !cfg.Filter.AlreadyFormatted {
		formatLines(candidates)
	}
	idx, err := buildIndex(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	survivors, err := filter.New(idx, filter.WithSort(filter.SortHierarchical)).Filter(candidates)
	if err != nil {
		return err
	}
	for _, line := range survivors {
		fmt.Fprintln(cmd.OutOrStdout(), line)
	}
	logger.Logger.Infof("system hosts: %d entries, %d whitelisted", len(candidates), len(candidates)-len(survivors))
	return nil
}
