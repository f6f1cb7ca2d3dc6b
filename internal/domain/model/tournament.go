package model

// Distribution holds the population statistics of every percentile found in
// one tournament. It is computed once and reused to normalize placements.
type Distribution struct {
	Mean   float64
	StdDev float64
	N      int
}

// Tournament binds a table to its chronological position and distribution.
type Tournament struct {
	Seq          int // 0-based chronological index, the trend time axis
	Name         string
	Table        *Table
	Distribution Distribution
}
