// Package flux implements an immutable-snapshot state engine: façades that
// record mutations against a nested, JSON-like value tree without touching
// the tree itself, a traversal engine for walking façades and the plain
// containers reachable from them, and a snapshot engine that folds
// recorded patches into a new tree via structural sharing.
//
// Go has no language-level proxy trap, so the façade here is a
// hand-written accessor type over a small closed set of recognized shapes:
// *Object (an ordered record), []any (a sequence), or an opaque leaf value
// (anything else — including a façade-unaware struct with its own method
// set, which the engine never reaches into).
package flux
