package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"example.com/edidgate/internal/calc"
	"example.com/edidgate/internal/timings"
)

func printTiming(w io.Writer, typ string, t timings.Timings) {
	fmt.Fprintln(w, timings.FormatLine("", t, typ, "", false))
	fmt.Fprintln(w, timings.FormatDetail(len(typ)+2, t))
}

func parseDims(args []string) (int, int, float64, error) {
	w, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("width: %w", err)
	}
	h, err := strconv.Atoi(args[1])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("height: %w", err)
	}
	rate, err := strconv.ParseFloat(args[2], 64)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("rate: %w", err)
	}
	return w, h, rate, nil
}

func newCVTCmd() *cobra.Command {
	var (
		opts calc.CVTOptions
		rb   int
	)
	cmd := &cobra.Command{
		Use:   "cvt <width> <height> <refresh>",
		Short: "Compute a VESA CVT timing",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, h, rate, err := parseDims(args)
			if err != nil {
				return err
			}
			if opts.RB, err = calc.CVTReducedBlanking(rb); err != nil {
				return err
			}
			t, err := calc.CVT(w, h, rate, opts)
			if err != nil {
				return err
			}
			printTiming(cmd.OutOrStdout(), "CVT", t)
			return nil
		},
	}
	fs := cmd.Flags()
	fs.IntVar(&rb, "rb", 0, "reduced blanking version (0 = none, 1..3)")
	fs.BoolVar(&opts.Interlaced, "interlaced", false, "interlaced timing")
	fs.BoolVar(&opts.Margins, "margins", false, "add 1.8% margins")
	fs.BoolVar(&opts.Alt, "alt", false, "RBv2: video-optimized rate, RBv3: 160 pixel horizontal blank")
	fs.IntVar(&opts.RBHBlank, "hblank", 0, "RBv3 horizontal blank in pixels")
	fs.IntVar(&opts.RBVBlank, "vblank", 0, "RBv3 vertical blank in microseconds")
	fs.BoolVar(&opts.EarlyVSync, "early-vsync", false, "RBv3 early vsync")
	return cmd
}

func newGTFCmd() *cobra.Command {
	var (
		opts  calc.GTFOptions
		param string
	)
	opts.Curve = calc.DefaultCurve
	cmd := &cobra.Command{
		Use:   "gtf <width> <height> <freq>",
		Short: "Compute a VESA GTF timing",
		Long: "GTF computes a Generalized Timing Formula timing. The frequency is the\n" +
			"vertical rate in Hz, the horizontal rate in kHz or the pixel clock in\n" +
			"MHz, as selected by --param.",
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, h, freq, err := parseDims(args)
			if err != nil {
				return err
			}
			if opts.Param, err = calc.ParseGTFParam(param); err != nil {
				return err
			}
			t, err := calc.GTF(w, h, freq, opts)
			if err != nil {
				return err
			}
			printTiming(cmd.OutOrStdout(), "GTF", t)
			return nil
		},
	}
	fs := cmd.Flags()
	fs.StringVar(&param, "param", "vert", "meaning of <freq>: vert, hor or clk")
	fs.BoolVar(&opts.Interlaced, "interlaced", false, "interlaced timing")
	fs.BoolVar(&opts.Margins, "margins", false, "add 1.8% margins")
	fs.BoolVar(&opts.Secondary, "secondary", false, "use the secondary curve")
	fs.Float64Var(&opts.Curve.C, "C", calc.DefaultCurve.C, "secondary curve C")
	fs.Float64Var(&opts.Curve.M, "M", calc.DefaultCurve.M, "secondary curve M")
	fs.Float64Var(&opts.Curve.K, "K", calc.DefaultCurve.K, "secondary curve K")
	fs.Float64Var(&opts.Curve.J, "J", calc.DefaultCurve.J, "secondary curve J")
	return cmd
}

func newOVTCmd() *cobra.Command {
	var hRatio, vRatio int
	cmd := &cobra.Command{
		Use:   "ovt <width> <height> <refresh>",
		Short: "Compute a CTA-861 OVT timing",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, h, rate, err := parseDims(args)
			if err != nil {
				return err
			}
			if rate != float64(int(rate)) {
				return fmt.Errorf("%w: OVT needs an integer frame rate", calc.ErrInvalidInput)
			}
			t, err := calc.OVT(w, h, hRatio, vRatio, int(rate))
			if err != nil {
				return err
			}
			printTiming(cmd.OutOrStdout(), "OVT", t)
			return nil
		},
	}
	cmd.Flags().IntVar(&hRatio, "hratio", 0, "picture aspect ratio width (0 = derive)")
	cmd.Flags().IntVar(&vRatio, "vratio", 0, "picture aspect ratio height (0 = derive)")
	return cmd
}
