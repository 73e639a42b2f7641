package match

// Option configures a Matcher.
type Option func(*Matcher)

// WithFuzzyRatio sets the fraction of key patterns a fuzzy window must
// contain. Values outside (0, 1] are ignored.
func WithFuzzyRatio(ratio float64) Option {
	return func(m *Matcher) {
		if ratio > 0 && ratio <= 1 {
			m.ratio = ratio
		}
	}
}

// WithMinFuzzyScore sets the absolute minimum number of key patterns a
// fuzzy window must contain. Negative values are ignored.
func WithMinFuzzyScore(n int) Option {
	return func(m *Matcher) {
		if n >= 0 {
			m.minScore = n
		}
	}
}

// WithoutFuzzy disables the fuzzy pass.
func WithoutFuzzy() Option {
	return func(m *Matcher) {
		m.fuzzy = false
	}
}
