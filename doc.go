/*
Package vcd implements a writer for Value Change Dump (VCD) files, the
line-oriented text format used by digital-logic simulators to record named
signal values over simulated time for inspection in waveform viewers such as
GTKWave.

A Writer goes through two phases. While registering, the caller declares
hierarchical scopes and variables; the first value change that advances the
timestamp finalizes registration, at which point the header, the nested scope
and variable declarations and a baseline $dumpvars block are rendered. From
then on the writer streams incremental change records, deduplicating values
that did not actually change and enforcing non-decreasing timestamps.

	h, _ := vcd.NewHeader(1, vcd.TimescaleNS, "", "simulation run", "")
	w, _ := vcd.New(sink, h, 0)
	clk, _ := w.RegisterVar("top.dut", "clk", vcd.VarWire, 1, "0")
	for t := uint64(1); t <= 10; t++ {
		w.ChangeVar(clk, t, tick(t))
	}
	w.Close()

This package only writes VCD; it does not parse it.
*/
package vcd
