package metrics

// CanvasStats summarizes an intensity grid for API consumers.
type CanvasStats struct {
	Cells       int    `json:"cells"`
	InYearCells int    `json:"inYearCells"`
	Lit         int    `json:"lit"`
	Levels      [5]int `json:"levels"`
}

// Observe records one cell. Levels outside [0,4] are counted as the nearest bound.
func (s *CanvasStats) Observe(level int, inYear bool) {
	s.Cells++
	if inYear {
		s.InYearCells++
	}
	if level > 0 {
		s.Lit++
	}
	s.Levels[min(max(level, 0), len(s.Levels)-1)]++
}

// IsZero reports whether no cells were observed.
func (s CanvasStats) IsZero() bool {
	return s.Cells == 0
}

// Coverage is the share of in-year cells that are lit.
func (s CanvasStats) Coverage() float64 {
	if s.InYearCells == 0 {
		return 0
	}
	return float64(s.Lit) / float64(s.InYearCells)
}
