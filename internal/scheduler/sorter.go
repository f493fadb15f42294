package scheduler

import (
	"sort"

	"github.com/alexanderramin/pilot/internal/domain"
)

// KindPriority orders items that share a start time (lower first).
func KindPriority(k domain.ItemKind) int {
	switch k {
	case domain.KindLunch:
		return 0
	case domain.KindTask:
		return 1
	case domain.KindFocus:
		return 2
	case domain.KindShortBreak, domain.KindLongBreak:
		return 3
	default:
		return 4
	}
}

// CanonicalSort sorts items by the deterministic canonical rules:
// 1. Start: earliest first
// 2. End: earliest first
// 3. Kind priority
// 4. Cycle number ascending
// 5. Label lexical ascending
func CanonicalSort(items []domain.ScheduleItem) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		if a.End != b.End {
			return a.End < b.End
		}
		if pa, pb := KindPriority(a.Kind), KindPriority(b.Kind); pa != pb {
			return pa < pb
		}
		if a.CycleNumber != b.CycleNumber {
			return a.CycleNumber < b.CycleNumber
		}
		return a.Label < b.Label
	})
}
