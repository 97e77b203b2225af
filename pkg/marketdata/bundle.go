package marketdata

import "fmt"

// Bundle is the ordered set of series fetched in one run. It is read-only:
// accessors hand out copies and iteration follows the instrument table order.
type Bundle struct {
	series []PriceSeries
	index  map[string]int
}

// NewBundle builds a bundle in the given order. Labels must be unique.
func NewBundle(series ...PriceSeries) (*Bundle, error) {
	b := &Bundle{
		series: make([]PriceSeries, 0, len(series)),
		index:  make(map[string]int, len(series)),
	}

	for _, s := range series {
		if _, dup := b.index[s.Label]; dup {
			return nil, fmt.Errorf("duplicate series label %q", s.Label)
		}

		b.index[s.Label] = len(b.series)
		b.series = append(b.series, copySeries(s))
	}

	return b, nil
}

// Len returns the number of series.
func (b *Bundle) Len() int {
	if b == nil {
		return 0
	}

	return len(b.series)
}

// Empty reports whether no instrument succeeded.
func (b *Bundle) Empty() bool {
	return b.Len() == 0
}

// Labels returns the series labels in order.
func (b *Bundle) Labels() []string {
	if b == nil {
		return nil
	}

	labels := make([]string, len(b.series))
	for i, s := range b.series {
		labels[i] = s.Label
	}

	return labels
}

// Get returns the series for a label.
func (b *Bundle) Get(label string) (PriceSeries, bool) {
	if b == nil {
		return PriceSeries{}, false
	}

	i, ok := b.index[label]
	if !ok {
		return PriceSeries{}, false
	}

	return copySeries(b.series[i]), true
}

// Series returns every series in order.
func (b *Bundle) Series() []PriceSeries {
	if b == nil {
		return nil
	}

	out := make([]PriceSeries, len(b.series))
	for i, s := range b.series {
		out[i] = copySeries(s)
	}

	return out
}

// ByAxis returns the series drawn against the given axis, in order.
func (b *Bundle) ByAxis(axis AxisGroup) []PriceSeries {
	var out []PriceSeries

	for _, s := range b.Series() {
		if s.Axis == axis {
			out = append(out, s)
		}
	}

	return out
}

func copySeries(s PriceSeries) PriceSeries {
	points := make([]Point, len(s.Points))
	copy(points, s.Points)
	s.Points = points

	return s
}
