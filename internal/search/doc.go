// Package search runs directory searches through the external fd tool and
// filters results with fzf or an in-process fuzzy matcher.
//
// A search is described by [Params]: the ordered search paths, exclude
// patterns, and any extra fd arguments. Params also define the cache
// identity of a search via [DeriveKey], so two searches with the same
// values in the same order share cached results.
package search
