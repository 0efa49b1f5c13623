package digest

import "golang.org/x/text/cases"

var foldCaser = cases.Fold()

// CaseFoldKey normalizes a record key for case-insensitive lookup, the way
// an ASCII-fold-insensitive Properties.GetFold would — used by callers that
// want forgiving key matching without changing how keys are stored or
// enumerated (enumeration order and casing are never altered by this).
func CaseFoldKey(key string) string {
	return foldCaser.String(key)
}
