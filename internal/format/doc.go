// Package format normalizes heterogeneous part inventories into canonical
// (DesignID, Quantity) records.
//
// Each adapter recognizes its input by an exact byte-prefix signature and
// parses it into raw (identity, quantity) rows; normalization is shared and
// adapter-independent: strip the identity down to its leading digit run,
// group by DesignID, sum quantities, sort ascending.
//
// A set number is not a file. The registry first runs the typed resolve step,
// which materializes the set's inventory JSON into the target path, and then
// dispatches that file through the regular adapters.
package format
