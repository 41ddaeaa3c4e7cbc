// Package brickarchitect fetches part taxonomy breadcrumbs and images from
// brickarchitect.com. The part page is HTML; the breadcrumb lives in a
// div.chapternav block whose anchors form the category path from broad to
// specific. Lookups may redirect to a canonical part ID, which callers must
// honor when caching.
package brickarchitect
