package marketdata

import (
	"fmt"

	"github.com/rxtech-lab/fxgold/pkg/marketdata/provider"
)

// AxisGroup selects the chart axis a series is drawn against.
type AxisGroup int

const (
	// AxisPrimary is the left axis, used for exchange rates.
	AxisPrimary AxisGroup = iota
	// AxisSecondary is the right axis, used for the gold series.
	AxisSecondary
)

// Title returns the axis caption.
func (a AxisGroup) Title() string {
	switch a {
	case AxisSecondary:
		return "Gold Price"
	default:
		return "Exchange Rate"
	}
}

func (a AxisGroup) String() string {
	switch a {
	case AxisPrimary:
		return "primary"
	case AxisSecondary:
		return "secondary"
	default:
		return fmt.Sprintf("AxisGroup(%d)", int(a))
	}
}

// Instrument is a named quantity with one lookup code per provider.
type Instrument struct {
	Label string
	Codes map[provider.ProviderType]string
	Axis  AxisGroup
}

// Code returns the instrument's symbol for the provider, or "" when the
// provider does not offer it.
func (i Instrument) Code(providerType provider.ProviderType) string {
	return i.Codes[providerType]
}

// DefaultInstruments returns the fixed instrument table in display order.
// A fresh copy is returned on every call.
func DefaultInstruments() []Instrument {
	return []Instrument{
		{
			Label: "USD to CNY",
			Codes: map[provider.ProviderType]string{provider.ProviderPolygon: "C:USDCNY"},
			Axis:  AxisPrimary,
		},
		{
			Label: "EUR to CNY",
			Codes: map[provider.ProviderType]string{provider.ProviderPolygon: "C:EURCNY"},
			Axis:  AxisPrimary,
		},
		{
			Label: "GBP to CNY",
			Codes: map[provider.ProviderType]string{provider.ProviderPolygon: "C:GBPCNY"},
			Axis:  AxisPrimary,
		},
		{
			Label: "Gold (USD/oz)",
			Codes: map[provider.ProviderType]string{
				provider.ProviderPolygon: "C:XAUUSD",
				provider.ProviderBinance: "PAXGUSDT",
			},
			Axis: AxisSecondary,
		},
	}
}

// ValidateInstruments checks that labels are present and unique.
func ValidateInstruments(instruments []Instrument) error {
	seen := make(map[string]struct{}, len(instruments))

	for i, inst := range instruments {
		if inst.Label == "" {
			return fmt.Errorf("instrument %d has no label", i)
		}

		if _, dup := seen[inst.Label]; dup {
			return fmt.Errorf("duplicate instrument label %q", inst.Label)
		}

		seen[inst.Label] = struct{}{}
	}

	return nil
}
