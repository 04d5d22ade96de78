package court

import (
	"fmt"
	"sort"
)

// Reconcile merges the raw slots of one fetch cycle and returns the single
// candidate interval to book: the free interval on the lowest-numbered court
// that fully contains the requested window. The boolean is false when no
// interval qualifies.
func Reconcile(slots []Slot, req Request) (FreeInterval, bool) {
	for _, iv := range merged(slots, req) {
		if iv.Covers(req.StartHour, req.EndHour) {
			return iv, true
		}
	}
	return FreeInterval{}, false
}

// Relevant returns every merged free interval that overlaps the requested
// window, in deterministic court order. Used for the notification overview.
func Relevant(slots []Slot, req Request) []FreeInterval {
	var out []FreeInterval
	for _, iv := range merged(slots, req) {
		if iv.Overlaps(req.StartHour, req.EndHour) {
			out = append(out, iv)
		}
	}
	return out
}

// merged filters slots to the requested date, drops any free slot contradicted
// by a non-free record for the same court and time range, then merges
// adjacent/overlapping free slots per court into intervals. Result is sorted
// by court number, then start time.
func merged(slots []Slot, req Request) []FreeInterval {
	// A slot the listing also reports as taken (or unknown) is never bookable.
	conflicted := make(map[string]bool)
	for _, s := range slots {
		if s.Date == req.Date && s.Status != StatusFree {
			conflicted[slotKey(s)] = true
		}
	}

	byCourt := make(map[int][]Slot)
	for _, s := range slots {
		if s.Date != req.Date || s.Status != StatusFree {
			continue
		}
		if conflicted[slotKey(s)] {
			continue
		}
		byCourt[s.Court] = append(byCourt[s.Court], s)
	}

	courts := make([]int, 0, len(byCourt))
	for c := range byCourt {
		courts = append(courts, c)
	}
	sort.Ints(courts)

	var out []FreeInterval
	for _, c := range courts {
		group := byCourt[c]
		sort.Slice(group, func(i, j int) bool {
			if group[i].Start != group[j].Start {
				return group[i].Start < group[j].Start
			}
			return group[i].End < group[j].End
		})

		cur := FreeInterval{Court: c, Start: group[0].Start, End: group[0].End}
		for _, s := range group[1:] {
			if s.Start <= cur.End {
				// Adjacent or overlapping: extend. Duplicates are a no-op.
				if s.End > cur.End {
					cur.End = s.End
				}
				continue
			}
			out = append(out, cur)
			cur = FreeInterval{Court: c, Start: s.Start, End: s.End}
		}
		out = append(out, cur)
	}
	return out
}

func slotKey(s Slot) string {
	return fmt.Sprintf("%d|%s|%d|%d", s.Court, s.Date, s.Start, s.End)
}
