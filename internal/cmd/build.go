package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/thediveo/enumflag/v2"

	"github.com/assetforge/assetctl/internal/config"
	"github.com/assetforge/assetctl/internal/history"
	"github.com/assetforge/assetctl/internal/platform"
	"github.com/assetforge/assetctl/internal/report"
	"github.com/assetforge/assetctl/internal/service"
)

// Link method CLI enum for ad hoc builds.
type linkMethodFlag enumflag.Flag

const (
	linkCopy linkMethodFlag = iota
	linkSymlink
	linkHardlink
	linkJunction
)

var linkMethodNames = map[linkMethodFlag][]string{
	linkCopy:     {"copy"},
	linkSymlink:  {"symlink"},
	linkHardlink: {"hardlink"},
	linkJunction: {"junction"},
}

var linkMethodValues = map[linkMethodFlag]config.LinkMethod{
	linkCopy:     config.LinkCopy,
	linkSymlink:  config.LinkSymlink,
	linkHardlink: config.LinkHardlink,
	linkJunction: config.LinkJunction,
}

var buildFlags struct {
	target      string
	keepScratch bool
	scratchDir  string

	// ad hoc bundle flags; --dir switches build into ad hoc mode
	dir        string
	name       string
	tool       string
	include    []string
	exclude    []string
	output     string
	template   string
	targetless bool
	linkMethod linkMethodFlag
}

var buildCmd = &cobra.Command{
	Use:   "build [bundle...]",
	Short: "Build bundles from the configuration, or one ad hoc bundle via --dir",
	Long: `Build packages the named bundles (all configured bundles when none are
named). With --dir an ad hoc bundle is described entirely on the command
line; internally this is a one-entry batch and behaves identically.

The exit status is zero only if every bundle in the batch built
successfully.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		log := newLogger()

		var (
			root *config.Root
			err  error
		)
		if buildFlags.dir != "" {
			if len(args) > 0 {
				return fmt.Errorf("bundle arguments cannot be combined with --dir")
			}
			root = adHocRoot()
			args = nil
		} else {
			root, err = config.Load(configPaths)
			if err != nil {
				return err
			}
		}

		if t := buildFlags.target; t != "" && !platform.Known(t) {
			return fmt.Errorf("unknown target %q (recognized: %s)", t, strings.Join(platform.Recognized(), ", "))
		}

		batch := service.NewBatch(root).
			WithTargetOverride(buildFlags.target).
			WithKeepScratch(buildFlags.keepScratch).
			WithScratchDir(buildFlags.scratchDir).
			WithLogger(log)

		if root.History.Database != "" {
			store, err := history.Open(cmd.Context(), root.History.Database, log)
			if err != nil {
				log.Warnf("build history disabled: %v", err)
			} else {
				defer store.Close()
				batch = batch.WithHistory(store)
			}
		}

		n := len(args)
		if n == 0 {
			n = len(root.Bundles)
		}
		bar := progressbar.NewOptions(n,
			progressbar.OptionSetDescription("building"),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
		batch = batch.WithProgress(bar)

		rep, err := batch.Run(cmd.Context(), args)
		bar.Finish()
		if err != nil {
			return err
		}

		printReport(rep)

		if !rep.Ok() {
			return fmt.Errorf("failed bundles: %s", strings.Join(rep.FailedBundles(), ", "))
		}
		return nil
	},
}

// adHocRoot wraps the ad hoc flags into a single-bundle configuration, so the
// ad hoc path is the degenerate one-entry case of the batch model.
func adHocRoot() *config.Root {
	name := buildFlags.name
	if name == "" {
		name = "adhoc"
	}
	b := &config.Bundle{
		Name:          name,
		AssetDir:      buildFlags.dir,
		OutputDir:     buildFlags.output,
		IncludedFiles: buildFlags.include,
		ExcludedFiles: buildFlags.exclude,
		NameTemplate:  buildFlags.template,
		LinkMethod:    linkMethodValues[buildFlags.linkMethod],
	}
	if buildFlags.targetless {
		t := true
		b.Targetless = &t
	} else if buildFlags.target != "" {
		b.Targets = config.StringSet{buildFlags.target}
	}
	return &config.Root{
		Global:  config.Global{ToolPath: buildFlags.tool},
		Bundles: map[string]*config.Bundle{name: b},
	}
}

func printReport(rep *report.Report) {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header([]string{"BUNDLE", "TARGET", "STATUS", "OUTPUT"})
	for _, res := range rep.Results {
		status := "ok"
		out := res.Archive
		if !res.Ok {
			status = "failed"
			out = res.Err
		}
		target := res.Target
		if target == "" {
			target = "-"
		}
		table.Append([]string{res.Bundle, target, status, out})
	}
	table.Render()
}

func init() {
	buildCmd.Flags().StringVar(&buildFlags.target, "target", "", "restrict the batch to a single target")
	buildCmd.Flags().BoolVar(&buildFlags.keepScratch, "keep-scratch", false, "preserve scratch state for inspection")
	buildCmd.Flags().StringVar(&buildFlags.scratchDir, "scratch-dir", "", "override the scratch directory")

	buildCmd.Flags().StringVar(&buildFlags.dir, "dir", "", "ad hoc: asset source directory")
	buildCmd.Flags().StringVar(&buildFlags.name, "name", "", "ad hoc: bundle name")
	buildCmd.Flags().StringVar(&buildFlags.tool, "tool", "", "ad hoc: content-build tool path")
	buildCmd.Flags().StringSliceVar(&buildFlags.include, "include", nil, "ad hoc: include pattern (repeatable)")
	buildCmd.Flags().StringSliceVar(&buildFlags.exclude, "exclude", nil, "ad hoc: exclude pattern (repeatable)")
	buildCmd.Flags().StringVar(&buildFlags.output, "output", "", "ad hoc: output directory")
	buildCmd.Flags().StringVar(&buildFlags.template, "template", "", "ad hoc: output filename template")
	buildCmd.Flags().BoolVar(&buildFlags.targetless, "targetless", false, "ad hoc: build once, platform-independent")
	buildCmd.Flags().Var(
		enumflag.New(&buildFlags.linkMethod, "link-method", linkMethodNames, enumflag.EnumCaseInsensitive),
		"link-method", "ad hoc: staging link method (copy, symlink, hardlink, junction)")

	rootCmd.AddCommand(buildCmd)
}
