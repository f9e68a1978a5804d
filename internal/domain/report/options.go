package report

// Option applies a configuration option to the Catalog.
type Option func(*Catalog)

// WithStrikeRateMinBalls filters batsmen below the given number of
// deliveries faced out of the strike-rate ranking. Zero (the default)
// keeps every batsman in, matching the historical output.
func WithStrikeRateMinBalls(n int) Option {
	return func(c *Catalog) {
		if n > 0 {
			c.strikeRateMinBalls = n
		}
	}
}
