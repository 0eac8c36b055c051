// Package supplycurve builds monetary base curves of crypto assets.
//
// A supply curve maps calendar time to the cumulative quantity of an asset
// issued so far. The package provides:
//   - Curve builders: turning a block indexed issuance schedule, or a constant
//     weekly supply, into a dated [Series] normalized to its final value.
//   - Resampling: reducing a [Series] to one row per calendar week, month or
//     year and exporting it as CSV, one file per coin and frequency.
//   - Supply sources: decoding block issuance schedules from CSV files or from
//     JSON documents through a JSONPath expression.
//
// Charts are rendered by the chart sub-package, and the mbase command line
// tool glues everything together, one coin at a time or in batch from a YAML
// file.
package supplycurve
