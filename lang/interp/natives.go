package interp

import "time"

// processStart anchors clock()'s fixed epoch. Reading time.Since(processStart)
// rather than time.Now().UnixMilli() keeps the native monotonic: a wall-clock
// adjustment (NTP, DST) can never make consecutive clock() calls go backward.
var processStart = time.Now()

// defineNatives registers every native function in globals. Per spec.md §4.3
// the language ships exactly one: clock().
func defineNatives(globals *Environment) {
	globals.Define("clock", &Native{
		NameStr: "clock",
		ArityN:  0,
		Fn: func(_ *Interpreter, _ []Value) (Value, error) {
			return Number(time.Since(processStart).Milliseconds()), nil
		},
	})
}
