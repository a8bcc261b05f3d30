// Package capgains computes realized capital gains and the tax due on them
// from brokerage order exports.
//
// The core functionalities include:
//   - Money: exact decimal amounts with two fractional digits, rounded half to
//     even as soon as an operation produces more digits.
//   - Trade orders: the broker neutral record produced by loaders such as the
//     mbank package.
//   - Aggregation: a stateless engine that groups executed orders by instrument
//     and applies the average cost basis method to derive cost basis, net
//     proceeds, tax base, tax and net profit, plus a portfolio summary.
//   - Reports: tabular and JSON views of the result, consumed by the renderer
//     package and the `capgains` command-line tool.
package capgains
