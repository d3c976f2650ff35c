package engine

import "sort"

// HashStats accumulates hashing performance counters. Both counters are
// monotonic and include the work done during rehashes.
type HashStats struct {
	// TotalInsertions counts every placement of an entry into a slot.
	TotalInsertions uint64
	// TotalCollisions sums the absolute displacement of each placement.
	TotalCollisions uint64
}

func (s *HashStats) record(displacement int) {
	s.TotalInsertions++
	if displacement < 0 {
		displacement = -displacement
	}
	s.TotalCollisions += uint64(displacement)
}

// Stats returns the accumulated hashing counters.
func (t *Table) Stats() HashStats {
	return t.stats
}

// CollisionsPerInsertion returns the average absolute displacement paid
// per placement so far.
func (t *Table) CollisionsPerInsertion() float64 {
	if t.stats.TotalInsertions == 0 {
		return 0
	}
	return float64(t.stats.TotalCollisions) / float64(t.stats.TotalInsertions)
}

// Occupancy returns the used fraction of the slot array.
func (t *Table) Occupancy() float64 {
	return float64(t.size) / float64(len(t.entries))
}

// DisplacementSummary computes the mean and median of the absolute
// displacements of the entries currently in the table. Unlike the running
// counters this is an on-demand computation over the live entries.
func (t *Table) DisplacementSummary() (mean, median float64) {
	if t.size == 0 {
		return 0, 0
	}

	displs := make([]int, 0, t.size)
	sum := 0
	for _, slot := range t.alphaIdx {
		d := t.entries[slot].displacement
		if d < 0 {
			d = -d
		}
		displs = append(displs, d)
		sum += d
	}
	sort.Ints(displs)

	mean = float64(sum) / float64(len(displs))
	mid := len(displs) / 2
	if len(displs)%2 == 0 {
		median = float64(displs[mid-1]+displs[mid]) / 2
	} else {
		median = float64(displs[mid])
	}
	return mean, median
}
