package marketdata

import (
	"sort"

	"github.com/rxtech-lab/fxgold/pkg/errors"
	"github.com/rxtech-lab/fxgold/pkg/marketdata/provider"
)

// ProviderInfo contains metadata about a market data provider.
type ProviderInfo struct {
	Name         string   `json:"name"`
	DisplayName  string   `json:"displayName"`
	Description  string   `json:"description"`
	RequiresAuth bool     `json:"requiresAuth"`
	Instruments  []string `json:"instruments"`
}

// providerRegistry holds metadata about all supported providers.
var providerRegistry = map[provider.ProviderType]ProviderInfo{
	provider.ProviderPolygon: {
		Name:         string(provider.ProviderPolygon),
		DisplayName:  "Polygon.io",
		Description:  "Daily forex and metals aggregates, requires POLYGON_API_KEY",
		RequiresAuth: true,
	},
	provider.ProviderBinance: {
		Name:         string(provider.ProviderBinance),
		DisplayName:  "Binance",
		Description:  "Daily spot klines, gold is tracked through PAXG",
		RequiresAuth: false,
	},
}

// GetSupportedProviders returns all supported provider names, sorted.
func GetSupportedProviders() []string {
	providers := make([]string, 0, len(providerRegistry))
	for providerType := range providerRegistry {
		providers = append(providers, string(providerType))
	}

	sort.Strings(providers)

	return providers
}

// GetProviderInfo returns metadata for a provider, including the labels of
// the default instruments it can serve.
func GetProviderInfo(providerName string) (ProviderInfo, error) {
	providerType := provider.ProviderType(providerName)

	info, exists := providerRegistry[providerType]
	if !exists {
		return ProviderInfo{}, errors.Newf(errors.ErrCodeInvalidProvider, "unsupported provider: %s", providerName)
	}

	info.Instruments = nil

	for _, inst := range DefaultInstruments() {
		if inst.Code(providerType) != "" {
			info.Instruments = append(info.Instruments, inst.Label)
		}
	}

	return info, nil
}
