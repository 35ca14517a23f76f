package timeslot

import (
	"errors"
	"sort"
	"time"
)

var ErrInvalidRange = errors.New("end must be after start")

// Slot is a half-open time range [Start, End).
type Slot struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func New(start, end time.Time) (Slot, error) {
	if !end.After(start) {
		return Slot{}, ErrInvalidRange
	}
	return Slot{Start: start, End: end}, nil
}

func (s Slot) Duration() time.Duration { return s.End.Sub(s.Start) }

// Hours returns the slot length in fractional hours.
func (s Slot) Hours() float64 { return s.End.Sub(s.Start).Hours() }

func (s Slot) Overlaps(other Slot) bool {
	return Overlaps(s.Start, s.End, other.Start, other.End)
}

// Overlaps is the one conflict predicate for the whole engine: two half-open
// ranges [s1,e1) and [s2,e2) conflict iff s1 < e2 && s2 < e1. A booking
// ending exactly when another starts does not conflict. Every other check —
// SQL overlap queries, drag-preview validation, admission control — must
// agree with this function.
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && s2.Before(e1)
}

// Set keeps non-overlapping slots ordered by start time and answers conflict
// probes by binary search instead of a full scan.
type Set struct {
	slots []Slot
}

func NewSet() *Set { return &Set{} }

func (set *Set) Len() int { return len(set.slots) }

func (set *Set) Slots() []Slot {
	out := make([]Slot, len(set.slots))
	copy(out, set.slots)
	return out
}

// Conflicts reports whether s overlaps any slot in the set. Only the
// neighbour that could reach s needs checking: the first slot whose end is
// after s.Start.
func (set *Set) Conflicts(s Slot) bool {
	i := sort.Search(len(set.slots), func(i int) bool {
		return set.slots[i].End.After(s.Start)
	})
	return i < len(set.slots) && set.slots[i].Start.Before(s.End)
}

// Insert adds s, keeping order. Returns false without mutating when s
// conflicts with an existing slot.
func (set *Set) Insert(s Slot) bool {
	if set.Conflicts(s) {
		return false
	}
	i := sort.Search(len(set.slots), func(i int) bool {
		return set.slots[i].Start.After(s.Start)
	})
	set.slots = append(set.slots, Slot{})
	copy(set.slots[i+1:], set.slots[i:])
	set.slots[i] = s
	return true
}

// Merge sorts busy slots, clamps them to [from, to) and coalesces
// overlapping or touching ranges.
func Merge(from, to time.Time, busy []Slot) []Slot {
	clamped := make([]Slot, 0, len(busy))
	for _, s := range busy {
		if !s.End.After(from) || !s.Start.Before(to) {
			continue
		}
		if s.Start.Before(from) {
			s.Start = from
		}
		if s.End.After(to) {
			s.End = to
		}
		if s.End.After(s.Start) {
			clamped = append(clamped, s)
		}
	}
	sort.Slice(clamped, func(i, j int) bool { return clamped[i].Start.Before(clamped[j].Start) })

	merged := make([]Slot, 0, len(clamped))
	for _, s := range clamped {
		if len(merged) == 0 {
			merged = append(merged, s)
			continue
		}
		last := &merged[len(merged)-1]
		if !s.Start.After(last.End) {
			if s.End.After(last.End) {
				last.End = s.End
			}
		} else {
			merged = append(merged, s)
		}
	}
	return merged
}

// Subtract returns the free ranges inside [from, to) not covered by busy.
func Subtract(from, to time.Time, busy []Slot) []Slot {
	merged := Merge(from, to, busy)

	cur := from
	out := make([]Slot, 0, len(merged)+1)
	for _, b := range merged {
		if b.Start.After(cur) {
			out = append(out, Slot{Start: cur, End: b.Start})
		}
		if b.End.After(cur) {
			cur = b.End
		}
		if !cur.Before(to) {
			break
		}
	}
	if cur.Before(to) {
		out = append(out, Slot{Start: cur, End: to})
	}
	return out
}
