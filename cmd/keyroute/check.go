package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dshills/keyroute/internal/input/platform"
	"github.com/dshills/keyroute/internal/input/shortcut"
)

func newCheckCmd(flags *globalFlags) *cobra.Command {
	var allPlatforms bool
	var strict bool

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate the shortcut catalog",
		Long: `Parses every chord in the catalog and reports malformed ones.

Chords shared by shortcuts of equal priority are reported as conflicts; the
most recently registered one wins at dispatch time. Conflicts fail the
check only with --strict.

Exit code 0 if the catalog is clean, exit code 1 otherwise.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.load()
			if err != nil {
				return err
			}
			logger := stderrLogger(cfg).WithComponent("check")

			cat, err := loadCatalog(cfg)
			if err != nil {
				return err
			}
			logger.Debug("loaded %d shortcuts from %s", cat.Len(), cat.Source())

			platforms := []platform.Platform{cfg.ResolvedPlatform()}
			if allPlatforms {
				platforms = []platform.Platform{platform.Linux, platform.Mac, platform.Windows}
			}

			out := cmd.OutOrStdout()
			problems := 0
			for _, p := range platforms {
				invalid, conflicts := checkCatalog(cat, p)
				for _, line := range invalid {
					fmt.Fprintf(out, "%s: error: %s\n", p, line)
				}
				for _, line := range conflicts {
					fmt.Fprintf(out, "%s: conflict: %s\n", p, line)
				}
				problems += len(invalid)
				if strict {
					problems += len(conflicts)
				}
			}

			if problems > 0 {
				fmt.Fprintf(out, "%s: %d problem(s)\n", cat.Source(), problems)
				return errFailed
			}
			fmt.Fprintf(out, "%s: %d shortcuts OK\n", cat.Source(), cat.Len())
			return nil
		},
	}
	cmd.Flags().BoolVar(&allPlatforms, "all-platforms", false, "check every platform instead of the resolved one")
	cmd.Flags().BoolVar(&strict, "strict", false, "treat conflicts as errors")
	return cmd
}

// checkCatalog returns one line per malformed chord and per conflict.
func checkCatalog(cat *shortcut.Catalog, p platform.Platform) (invalid, conflicts []string) {
	if err := cat.Validate(p); err != nil {
		var verr *shortcut.ValidationError
		for _, e := range unjoin(err) {
			if errors.As(e, &verr) {
				invalid = append(invalid, verr.Error())
			}
		}
	}
	for _, c := range cat.Conflicts(p) {
		conflicts = append(conflicts, fmt.Sprintf("%s at priority %d: %s", c.Chord, c.Priority, strings.Join(c.IDs, ", ")))
	}
	return invalid, conflicts
}

func unjoin(err error) []error {
	if j, ok := err.(interface{ Unwrap() []error }); ok {
		return j.Unwrap()
	}
	return []error{err}
}
