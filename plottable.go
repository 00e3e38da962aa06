package mindhunter

// Plottable is the handle a plotting layer holds on an Analyzer. It borrows the
// analyzer and forwards every lookup to it, so statistics live in one place only.
type Plottable struct {
	analyzer *Analyzer
}

// NewPlottable wraps a. The Plottable does not own a and never releases it.
func NewPlottable(a *Analyzer) *Plottable {
	return &Plottable{analyzer: a}
}

// Analyzer returns the wrapped analyzer.
func (p *Plottable) Analyzer() *Analyzer {
	return p.analyzer
}

// Update points the Plottable at another analyzer.
func (p *Plottable) Update(a *Analyzer) {
	p.analyzer = a
}

// DataFrame returns a view of the analyzer's dataset; see Analyzer.DataFrame.
func (p *Plottable) DataFrame() *DataFrame {
	return p.analyzer.DataFrame()
}

// Stats returns the analyzer's cached statistics for column.
func (p *Plottable) Stats(column string) (ColumnStatistics, error) {
	return p.analyzer.StatsFor(column)
}

// DensityCurve returns the analyzer's density curve for column.
func (p *Plottable) DensityCurve(column string) (xs, ys []float64, err error) {
	return p.analyzer.DensityCurve(column)
}
