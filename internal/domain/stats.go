package domain

// Summary aggregates the present values of a record list. Records with a
// nil value are excluded from every statistic.
type Summary struct {
	Count int
	Mean  float64
	Min   float64
	Max   float64
}

// Summarize computes count, mean, min, and max over the records that carry
// a value. The second return is false when no record has a present value.
func Summarize(records []Record) (Summary, bool) {
	var s Summary
	sum := 0.0
	for _, r := range records {
		v := r.Datum()
		if v == nil {
			continue
		}
		if s.Count == 0 {
			s.Min = *v
			s.Max = *v
		} else {
			if *v < s.Min {
				s.Min = *v
			}
			if *v > s.Max {
				s.Max = *v
			}
		}
		sum += *v
		s.Count++
	}
	if s.Count == 0 {
		return Summary{}, false
	}
	s.Mean = sum / float64(s.Count)
	return s, true
}
