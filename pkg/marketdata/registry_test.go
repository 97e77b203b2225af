package marketdata

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/rxtech-lab/fxgold/pkg/errors"
)

type ProviderRegistryTestSuite struct {
	suite.Suite
}

func TestProviderRegistryTestSuite(t *testing.T) {
	suite.Run(t, new(ProviderRegistryTestSuite))
}

func (suite *ProviderRegistryTestSuite) TestGetSupportedProviders() {
	suite.Equal([]string{"binance", "polygon"}, GetSupportedProviders())
}

func (suite *ProviderRegistryTestSuite) TestGetProviderInfo_Polygon() {
	info, err := GetProviderInfo("polygon")

	suite.NoError(err)
	suite.Equal("Polygon.io", info.DisplayName)
	suite.True(info.RequiresAuth)
	suite.Equal([]string{"USD to CNY", "EUR to CNY", "GBP to CNY", "Gold (USD/oz)"}, info.Instruments)
}

func (suite *ProviderRegistryTestSuite) TestGetProviderInfo_Binance() {
	info, err := GetProviderInfo("binance")

	suite.NoError(err)
	suite.Equal("Binance", info.DisplayName)
	suite.False(info.RequiresAuth)
	suite.Equal([]string{"Gold (USD/oz)"}, info.Instruments)
}

func (suite *ProviderRegistryTestSuite) TestGetProviderInfo_InvalidProvider() {
	_, err := GetProviderInfo("yahoo")

	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidProvider))
}
