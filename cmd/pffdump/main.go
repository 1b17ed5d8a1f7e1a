// Command pffdump is a thin ambient CLI over pffcore's facade: it is glue
// for interactive inspection, not part of the core's decoding scope.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "pffdump",
	Short: "Inspect Outlook .msg/PFF containers via pffcore",
	Long: `pffdump is a small inspection tool built on pffcore's facade package.

It currently opens CFBF-based .msg containers (via internal/msgfmt) and
walks the resulting item tree; a full PST/OST NDB-paged container needs an
external.TableReader implementation this module does not ship, per
pffcore's scope (see DESIGN.md).`,
	Version: "0.1.0",
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "accepted; no command reads it, output is unchanged")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
