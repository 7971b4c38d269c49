package loans

import "github.com/iwvelando/loan-calculator/pkg/mathutil"

// MergeSchedules sums several schedules period by period. Schedules shorter
// than the longest contribute nothing past their end. The grace flag of each
// merged period comes from main alone, and the cumulative columns are rebuilt
// from the merged per-period values.
func MergeSchedules(schedules [][]ScheduleEntry, main []ScheduleEntry) []ScheduleEntry {
	length := 0
	for _, schedule := range schedules {
		if len(schedule) > length {
			length = len(schedule)
		}
	}

	merged := make([]ScheduleEntry, length)
	cumulativePrincipal := 0.0
	cumulativeInterest := 0.0

	for i := range merged {
		entry := ScheduleEntry{Period: i + 1}
		for _, schedule := range schedules {
			if i >= len(schedule) {
				continue
			}
			entry.Payment += schedule[i].Payment
			entry.Principal += schedule[i].Principal
			entry.Interest += schedule[i].Interest
			entry.RemainingBalance += schedule[i].RemainingBalance
		}
		if i < len(main) {
			entry.IsGracePeriod = main[i].IsGracePeriod
		}

		cumulativePrincipal += entry.Principal
		cumulativeInterest += entry.Interest
		entry.CumulativePrincipal = mathutil.RoundUnit(cumulativePrincipal)
		entry.CumulativeInterest = mathutil.RoundUnit(cumulativeInterest)

		merged[i] = entry
	}

	return merged
}
