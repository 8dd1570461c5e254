package scheduling

import (
	"sort"

	"calendra/models"
)

// Merge returns the canonical form of an interval collection: sorted
// ascending by start, with overlapping or touching intervals combined into
// one. The input is not modified. Merge is idempotent.
func Merge(intervals []models.Interval) []models.Interval {
	if len(intervals) == 0 {
		return nil
	}
	sorted := make([]models.Interval, len(intervals))
	copy(sorted, intervals)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Start.Equal(sorted[j].Start) {
			return sorted[i].End.Before(sorted[j].End)
		}
		return sorted[i].Start.Before(sorted[j].Start)
	})

	merged := make([]models.Interval, 0, len(sorted))
	merged = append(merged, sorted[0])
	for _, iv := range sorted[1:] {
		last := &merged[len(merged)-1]
		// a.end == b.start counts as contiguous: no zero-width gap is free.
		if !iv.Start.After(last.End) {
			if iv.End.After(last.End) {
				last.End = iv.End
			}
			continue
		}
		merged = append(merged, iv)
	}
	return merged
}

// Intersect returns the pairwise intersection of two merged interval
// sequences, itself merged and sorted. Empty when the inputs share nothing.
func Intersect(a, b []models.Interval) []models.Interval {
	var out []models.Interval
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		start := a[i].Start
		if b[j].Start.After(start) {
			start = b[j].Start
		}
		end := a[i].End
		if b[j].End.Before(end) {
			end = b[j].End
		}
		if start.Before(end) {
			out = append(out, models.Interval{Start: start, End: end})
		}
		if a[i].End.Before(b[j].End) {
			i++
		} else {
			j++
		}
	}
	return out
}

// Complement returns the free intervals within bound, i.e. bound minus every
// interval in busy. busy must be merged. An empty busy set yields [bound];
// full coverage yields nil.
func Complement(busy []models.Interval, bound models.Interval) []models.Interval {
	var free []models.Interval
	cursor := bound.Start
	for _, iv := range busy {
		if !iv.Start.Before(bound.End) {
			break
		}
		if !iv.End.After(cursor) {
			continue
		}
		if iv.Start.After(cursor) {
			free = append(free, models.Interval{Start: cursor, End: iv.Start})
		}
		cursor = iv.End
		if !cursor.Before(bound.End) {
			return free
		}
	}
	if cursor.Before(bound.End) {
		free = append(free, models.Interval{Start: cursor, End: bound.End})
	}
	return free
}

// Clip trims every interval to the bound, dropping intervals that fall
// entirely outside it. The result is not merged.
func Clip(intervals []models.Interval, bound models.Interval) []models.Interval {
	var out []models.Interval
	for _, iv := range intervals {
		if !iv.Overlaps(bound) {
			continue
		}
		start, end := iv.Start, iv.End
		if start.Before(bound.Start) {
			start = bound.Start
		}
		if end.After(bound.End) {
			end = bound.End
		}
		out = append(out, models.Interval{Start: start, End: end})
	}
	return out
}
