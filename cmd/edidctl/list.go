package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"example.com/edidgate/internal/edid"
)

var listings = map[string]func() string{
	"established": edid.ListEstablished,
	"dmts":        edid.ListDMTs,
	"vics":        edid.ListVICs,
	"hdmi-vics":   edid.ListHDMIVICs,
	"rids":        edid.ListRIDs,
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "list <established|dmts|vics|hdmi-vics|rids|rid-timings> [rid]",
		Short:     "List the timing registries",
		ValidArgs: []string{"established", "dmts", "vics", "hdmi-vics", "rids", "rid-timings"},
		Args:      cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if args[0] == "rid-timings" {
				rid := 0
				if len(args) == 2 {
					n, err := strconv.Atoi(args[1])
					if err != nil {
						return fmt.Errorf("rid: %w", err)
					}
					rid = n
				}
				io.WriteString(out, edid.ListRIDTimings(rid))
				return nil
			}
			fn, ok := listings[args[0]]
			if !ok || len(args) > 1 {
				return fmt.Errorf("unknown listing %q", args[0])
			}
			io.WriteString(out, fn())
			return nil
		},
	}
}
