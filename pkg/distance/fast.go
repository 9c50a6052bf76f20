package distance

import "github.com/eskriett/strmet"

// FastLevenshtein backs the LEVENSHTEIN_FAST configuration variant, delegating
// to the C-optimized strmet implementation instead of the pure-Go table above.
func FastLevenshtein(s1, s2 string, max int) int {
	return strmet.Levenshtein(s1, s2, max)
}

// FastDamerauOSA backs the DAMERAU_OSA_FAST configuration variant.
func FastDamerauOSA(s1, s2 string, max int) int {
	return strmet.DamerauLevenshtein(s1, s2, max)
}
