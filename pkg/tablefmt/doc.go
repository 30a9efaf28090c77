// Package tablefmt lays out GFM pipe tables and computes the minimal set of
// text patches that bring a table's source into canonical aligned form.
//
// The package works on read-only views of a table: a Table holds the source
// ranges of its rows and cells plus the alignment hints read from the
// delimiter row. Callers build the view from their own syntax tree, call
// Patches, and apply the result as one batch against the same source text.
//
// Nothing here logs, blocks, or returns errors. Input that cannot be
// resolved produces no patch for the smallest affected unit.
package tablefmt
