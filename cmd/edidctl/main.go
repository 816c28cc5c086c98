// Command edidctl decodes and checks EDIDs, computes CVT, GTF and OVT
// timings and manages the reports produced from decodes.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

// errNonConforming makes the process exit 1 after a FAIL verdict without
// printing anything further.
var errNonConforming = errors.New("EDID does not conform")

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "edidctl",
		Short:         "Decode and check EDID, CTA-861 and DisplayID data",
		Version:       fmt.Sprintf("%s (built %s)", version, buildDate),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newDecodeCmd(),
		newCVTCmd(),
		newGTFCmd(),
		newOVTCmd(),
		newListCmd(),
		newManifestCmd(),
		newVerifySignatureCmd(),
		newReportCmd(),
		newUndoCmd(),
		newBatchCmd(),
	)
	return root
}

func main() {
	err := newRootCmd().Execute()
	switch {
	case err == nil:
	case errors.Is(err, errNonConforming):
		os.Exit(1)
	default:
		fmt.Fprintln(os.Stderr, "edidctl:", err)
		os.Exit(2)
	}
}
