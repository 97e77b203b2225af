package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"
)

type ErrorTestSuite struct {
	suite.Suite
}

func TestErrorSuite(t *testing.T) {
	suite.Run(t, new(ErrorTestSuite))
}

func (suite *ErrorTestSuite) TestNewError() {
	err := New(ErrCodeInvalidDateRange, "start is after end")
	suite.NotNil(err)
	suite.Equal(ErrCodeInvalidDateRange, err.Code)
	suite.Equal("start is after end", err.Message)
	suite.Nil(err.Cause)
}

func (suite *ErrorTestSuite) TestNewfError() {
	err := Newf(ErrCodeSymbolNotOffered, "no code for instrument %s", "USD to CNY")
	suite.Equal(ErrCodeSymbolNotOffered, err.Code)
	suite.Equal("no code for instrument USD to CNY", err.Message)
}

func (suite *ErrorTestSuite) TestWrapError() {
	cause := errors.New("connection reset")
	err := Wrap(ErrCodeMarketDataFetchFailed, "transport failure", cause)
	suite.Equal(ErrCodeMarketDataFetchFailed, err.Code)
	suite.Equal(cause, err.Cause)
	suite.Equal(cause, err.Unwrap())
}

func (suite *ErrorTestSuite) TestWrapfError() {
	cause := errors.New("png encode failed")
	err := Wrapf(ErrCodeChartRenderFailed, cause, "render %s", "chart.png")
	suite.Equal("render chart.png", err.Message)
	suite.Equal(cause, err.Cause)
}

func (suite *ErrorTestSuite) TestErrorString() {
	suite.Equal("[120] start is after end", New(ErrCodeInvalidDateRange, "start is after end").Error())

	wrapped := Wrap(ErrCodeSessionNotConnected, "session not active", errors.New("401"))
	suite.Equal("[705] session not active: 401", wrapped.Error())
}

func (suite *ErrorTestSuite) TestGetCode() {
	suite.Equal(ErrCodeNoDataFound, GetCode(New(ErrCodeNoDataFound, "no data")))
	suite.Equal(ErrCodeUnknown, GetCode(errors.New("plain")))
	suite.Equal(ErrCodeUnknown, GetCode(nil))
}

func (suite *ErrorTestSuite) TestGetCodeFromWrapped() {
	inner := New(ErrCodeSessionNotConnected, "session not active")
	outer := Wrap(ErrCodeMarketDataFetchFailed, "fetch aborted", inner)
	// GetCode returns the outermost code
	suite.Equal(ErrCodeMarketDataFetchFailed, GetCode(outer))

	viaFmt := fmt.Errorf("run: %w", inner)
	suite.Equal(ErrCodeSessionNotConnected, GetCode(viaFmt))
}

func (suite *ErrorTestSuite) TestHasCode() {
	err := New(ErrCodeChartWriteFailed, "disk full")
	suite.True(HasCode(err, ErrCodeChartWriteFailed))
	suite.False(HasCode(err, ErrCodeChartRenderFailed))
}

func (suite *ErrorTestSuite) TestIsAndAs() {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeMarketDataFetchFailed, "query failed", cause)
	suite.True(Is(err, cause))

	var coded *Error
	suite.True(As(err, &coded))
	suite.Equal(ErrCodeMarketDataFetchFailed, coded.Code)
}

func (suite *ErrorTestSuite) TestErrorCodeValues() {
	suite.Equal(ErrorCode(1), ErrCodeUnknown)
	suite.Equal(ErrorCode(120), ErrCodeInvalidDateRange)
	suite.Equal(ErrorCode(204), ErrCodeNoDataFound)
	suite.Equal(ErrorCode(700), ErrCodeMarketDataFetchFailed)
	suite.Equal(ErrorCode(900), ErrCodeChartRenderFailed)
}
