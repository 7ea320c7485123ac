package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/assetforge/assetctl/internal/config"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the configuration and resolve every bundle",
	RunE: func(cmd *cobra.Command, _ []string) error {
		log := newLogger()

		root, err := config.Load(configPaths)
		if err != nil {
			return err
		}
		if len(root.Bundles) == 0 {
			return fmt.Errorf("configuration defines no bundles")
		}

		var failed []string
		for _, b := range root.SortedBundles() {
			if _, err := root.Resolve(b.Name); err != nil {
				log.Errorf("%v", err)
				failed = append(failed, b.Name)
			}
		}
		if len(failed) > 0 {
			return fmt.Errorf("invalid bundles: %s", strings.Join(failed, ", "))
		}

		fmt.Fprintf(cmd.OutOrStdout(), "configuration ok: %d bundle(s)\n", len(root.Bundles))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
