package date

import "iter"

// Range represents an inclusive range of dates.
type Range struct{ From, To Date }

// NewRange returns the inclusive range [from, to].
func NewRange(from, to Date) Range { return Range{From: from, To: to} }

// IsValid reports whether the range is non-empty (From not after To).
func (r Range) IsValid() bool { return !r.From.After(r.To) }

// Contains reports whether day falls inside the range.
func (r Range) Contains(day Date) bool {
	return !day.Before(r.From) && !day.After(r.To)
}

// Days returns an iterator over every calendar day in the range, in order.
func (r Range) Days() iter.Seq[Date] {
	return func(yield func(Date) bool) {
		for day := r.From; !day.After(r.To); day = day.Add(1) {
			if !yield(day) {
				return
			}
		}
	}
}

// TradingDays returns an iterator over the weekdays in the range, in order.
// The sequence is finite and can be iterated multiple times.
func (r Range) TradingDays() iter.Seq[Date] {
	return func(yield func(Date) bool) {
		for day := range r.Days() {
			if !day.IsTradingDay() {
				continue
			}
			if !yield(day) {
				return
			}
		}
	}
}

// TradingDaysBack returns the n most recent trading days ending at or before
// end, in ascending order. It returns nil when n is not positive.
func TradingDaysBack(end Date, n int) []Date {
	if n <= 0 {
		return nil
	}
	days := make([]Date, n)
	day := end.NearestTradingDay()
	for i := n - 1; i >= 0; i-- {
		days[i] = day
		day = day.PreviousTradingDay()
	}
	return days
}
