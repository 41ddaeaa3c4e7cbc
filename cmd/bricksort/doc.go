// Command bricksort clusters a brick inventory into physical sorting bins.
//
// An inventory comes from a file (Rebrickable JSON/CSV, BrickStore XML, LDCad
// PBG) or a catalog set number. Parts are enriched with taxonomy breadcrumbs
// and images from a durable local cache, grouped by quantity-weighted k-means
// over their taxonomy, and rendered into a self-contained HTML sorting guide.
package main
