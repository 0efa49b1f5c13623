package flux

// tombstoneType is the patch-map marker for "this own key has been deleted".
// It is distinct from any value a caller could plausibly store (including
// nil), so a tombstone patch can never be confused with a legitimately
// written nil.
type tombstoneType struct{}

// Tombstone marks a deleted own key in a façade's patch map. It is exported
// only so callers inspecting a façade's raw patches (diagnostics, tests) can
// recognize it; ordinary Get/Set/Delete callers never see it directly.
var Tombstone = tombstoneType{}

func (tombstoneType) String() string { return "flux.Tombstone" }
