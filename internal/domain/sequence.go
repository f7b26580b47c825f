package domain

// NumberSequence is the per-document-type counter behind human-readable
// document numbers. Created lazily on first allocation, mutated exactly once
// per allocation, never deleted. Gaps are fine; duplicates are not.
type NumberSequence struct {
	EntityType string
	Prefix     string
	NextNumber int64
}
