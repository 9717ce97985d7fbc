package domain

// Slot is a candidate appointment start time on a specific date.
// Ephemeral: valid only in the context of one (business, service, date)
// query, never persisted.
type Slot struct {
	StartMinute int
}

// Overlaps is the single half-open interval-overlap test shared by the
// slot generator's admissibility check and the conflict filter, so that
// "is this slot computable" and "is this slot still free" can never
// disagree. Intervals that merely touch do not overlap.
func Overlaps(startA, durationA, startB, durationB int) bool {
	return startA < startB+durationB && startA+durationA > startB
}
