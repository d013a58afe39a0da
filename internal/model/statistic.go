package model

// Statistic counts test results by outcome. It is the payload of the
// total widget and the unit stored per build in the history database.
type Statistic struct {
	Total   int `json:"total"`
	Passed  int `json:"passed"`
	Failed  int `json:"failed"`
	Broken  int `json:"broken"`
	Skipped int `json:"skipped"`
	Unknown int `json:"unknown"`
}

// Update counts one result with the given status.
func (s *Statistic) Update(status Status) {
	s.Total++
	switch status {
	case StatusPassed:
		s.Passed++
	case StatusFailed:
		s.Failed++
	case StatusBroken:
		s.Broken++
	case StatusSkipped:
		s.Skipped++
	default:
		s.Unknown++
	}
}

// Merge adds another statistic into this one.
func (s *Statistic) Merge(other Statistic) {
	s.Total += other.Total
	s.Passed += other.Passed
	s.Failed += other.Failed
	s.Broken += other.Broken
	s.Skipped += other.Skipped
	s.Unknown += other.Unknown
}

// SuccessRate returns the passed fraction in [0, 1].
// An empty statistic reports 0 rather than dividing by zero.
func (s *Statistic) SuccessRate() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Passed) / float64(s.Total)
}
