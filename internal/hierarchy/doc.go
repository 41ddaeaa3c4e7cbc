// Package hierarchy turns variable-depth taxonomy paths into a one-hot
// feature matrix for clustering.
//
// Column order is discovered breadth-first across depth: all depth-0 terms in
// record order, then all depth-1 terms, and so on, each distinct term
// appearing once. Broad categories therefore always precede specific ones.
// A cell is 1 when the column's term appears anywhere in the record's path,
// a membership test rather than a positional one.
package hierarchy
