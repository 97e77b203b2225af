package marketdata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSeries(label string, axis AxisGroup, values ...float64) PriceSeries {
	s := PriceSeries{Label: label, Axis: axis}
	for i, v := range values {
		s.Points = append(s.Points, Point{Date: date(2020, 1, 2+i), Value: v})
	}

	return s
}

func TestBundleOrderAndLookup(t *testing.T) {
	b, err := NewBundle(
		sampleSeries("USD to CNY", AxisPrimary, 6.9, 7.0),
		sampleSeries("Gold (USD/oz)", AxisSecondary, 1520, 1530),
		sampleSeries("EUR to CNY", AxisPrimary, 7.7),
	)
	require.NoError(t, err)

	assert.Equal(t, 3, b.Len())
	assert.False(t, b.Empty())
	assert.Equal(t, []string{"USD to CNY", "Gold (USD/oz)", "EUR to CNY"}, b.Labels())

	gold, ok := b.Get("Gold (USD/oz)")
	require.True(t, ok)
	assert.Equal(t, 2, gold.Len())

	_, ok = b.Get("JPY to CNY")
	assert.False(t, ok)

	primary := b.ByAxis(AxisPrimary)
	require.Len(t, primary, 2)
	assert.Equal(t, "USD to CNY", primary[0].Label)
	assert.Equal(t, "EUR to CNY", primary[1].Label)
	assert.Len(t, b.ByAxis(AxisSecondary), 1)
}

func TestBundleIsReadOnly(t *testing.T) {
	source := sampleSeries("USD to CNY", AxisPrimary, 6.9)
	b, err := NewBundle(source)
	require.NoError(t, err)

	source.Points[0].Value = 0
	got, _ := b.Get("USD to CNY")
	assert.Equal(t, 6.9, got.Points[0].Value)

	got.Points[0].Value = 1
	again, _ := b.Get("USD to CNY")
	assert.Equal(t, 6.9, again.Points[0].Value)
}

func TestBundleDuplicateLabel(t *testing.T) {
	_, err := NewBundle(sampleSeries("USD to CNY", AxisPrimary, 1), sampleSeries("USD to CNY", AxisPrimary, 2))
	assert.Error(t, err)
}

func TestEmptyBundle(t *testing.T) {
	b, err := NewBundle()
	require.NoError(t, err)
	assert.True(t, b.Empty())
	assert.Empty(t, b.Labels())

	var nilBundle *Bundle
	assert.True(t, nilBundle.Empty())
	assert.Nil(t, nilBundle.Series())
}
