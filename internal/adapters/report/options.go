package report

// Option applies a configuration option to a Printer.
type Option func(*Printer)

// WithRunID prints id in the report header.
func WithRunID(id string) Option {
	return func(p *Printer) {
		p.runID = id
	}
}

// WithPrecision sets the number of decimals of printed statistics.
// A negative value prints the shortest exact representation.
func WithPrecision(digits int) Option {
	return func(p *Printer) {
		p.precision = digits
	}
}
