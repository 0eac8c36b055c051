// Package chart renders supply curves as PNG images.
//
// Charts show the curve against calendar dates, either in percent of the
// final supply or in coins, and mark the first point after the current date
// with a black dot labelled with its year.
//
//	s, _ := supplycurve.BuildCurve(start, blockTime, blocks)
//	opts := chart.DefaultOptions("Bitcoin")
//	p, err := chart.Plot(s, opts) // writes ../charts/Bitcoin.png
//
// The returned *plot.Plot can be further customized and saved again with [Save].
package chart
