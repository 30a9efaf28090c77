package cli

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gomdtable/internal/logging"
)

// resolved fills "dev" builds from the module build info, as written by
// go install.
func (b BuildInfo) resolved() BuildInfo {
	if b.Version != "" && b.Version != "dev" {
		return b
	}
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return b
	}
	if v := bi.Main.Version; v != "" && v != "(devel)" {
		b.Version = v
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			b.Commit = s.Value
		case "vcs.time":
			b.Date = s.Value
		}
	}
	return b
}

func newVersionCommand(info BuildInfo) *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			bi := info.resolved()
			if short {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), bi.Version)
				return err
			}
			logging.NewInteractive(cmd.OutOrStdout()).Info("gomdtable",
				logging.FieldVersion, bi.Version,
				logging.FieldCommit, bi.Commit,
				logging.FieldBuilt, bi.Date,
				"go", runtime.Version(),
			)
			return nil
		},
	}
	cmd.Flags().BoolVar(&short, "short", false, "print only the version")
	return cmd
}
