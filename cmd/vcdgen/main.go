// Command vcdgen writes a demo VCD trace: a clock, an 8-bit counter, a
// status string and a temperature real, useful for eyeballing the output in
// a waveform viewer.
package main

import (
	"fmt"
	"math"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/hwtrace/vcd"
	"github.com/hwtrace/vcd/vcdio"
)

var (
	output    string
	timescale string
	cycles    uint64
)

var rootCmd = &cobra.Command{
	Use:          "vcdgen",
	Short:        "generate a demo VCD trace",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return generate(output, timescale, cycles)
	},
}

func init() {
	rootCmd.Flags().StringVarP(&output, "output", "o", "demo.vcd", "output file (.gz for gzip)")
	rootCmd.Flags().StringVarP(&timescale, "timescale", "t", "1ns", "timescale, e.g. 1ns or 10us")
	rootCmd.Flags().Uint64VarP(&cycles, "cycles", "n", 16, "number of clock cycles")
}

func generate(path, ts string, cycles uint64) error {
	q, u, err := vcd.ParseTimescale(ts)
	if err != nil {
		return err
	}
	h, err := vcd.NewHeaderNow(q, u, "vcdgen demo trace", "vcdgen")
	if err != nil {
		return err
	}
	sink, err := vcdio.Create(path)
	if err != nil {
		return err
	}
	defer sink.Close()

	w, err := vcd.New(sink, h, 0)
	if err != nil {
		return err
	}
	clk, err := w.RegisterVar("tb.dut", "clk", vcd.VarWire, 1, "0")
	if err != nil {
		return err
	}
	count, err := w.RegisterVar("tb.dut", "count", vcd.VarReg, 8, "x")
	if err != nil {
		return err
	}
	state, err := w.RegisterVar("tb", "state", vcd.VarString, 0, "reset")
	if err != nil {
		return err
	}
	temp, err := w.RegisterVar("tb", "temp", vcd.VarReal, 0, "25.0")
	if err != nil {
		return err
	}

	for t := uint64(1); t <= 2*cycles; t++ {
		if _, err := w.ChangeVar(clk, t, bit(t%2 == 0)); err != nil {
			return err
		}
		if t%2 == 0 {
			c := t / 2 % 256
			if _, err := w.ChangeVar(count, t, strconv.FormatUint(c, 2)); err != nil {
				return err
			}
			v := 25.0 + 5.0*math.Sin(float64(c)/8)
			if _, err := w.ChangeVar(temp, t, strconv.FormatFloat(v, 'g', -1, 64)); err != nil {
				return err
			}
		}
		if t == 2 {
			if _, err := w.ChangeVar(state, t, "running"); err != nil {
				return err
			}
		}
	}
	if err := w.Close(); err != nil {
		return err
	}
	fmt.Printf("wrote %d cycles to %s\n", cycles, path)
	return nil
}

func bit(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
