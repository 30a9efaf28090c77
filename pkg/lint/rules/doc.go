// Package rules provides the built-in lint rules for gomdtable.
//
// # Rules
//
//   - MD060: table-column-style - GFM tables should be aligned grids. Every
//     cell is padded to its column width, delimiter cells are filled with
//     dashes and alignment colons, and short rows are extended. Fixable;
//     each misaligned fragment gets its own diagnostic and edit, so cells
//     that are already correct are never rewritten.
//     Also known as markdown-consistent-table-width.
//
//   - MD056: table-column-count - Body rows should have as many cells as the
//     header. Report only.
//
// Both rules only run for the gfm flavor; CommonMark has no tables.
//
// # Registration
//
// Rules register themselves with lint.DefaultRegistry from init. Use
// RegisterAll and RegisterAliases to populate a custom registry.
package rules
