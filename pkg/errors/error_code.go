package errors

// ErrorCode represents a unique error code for identifying different error types.
type ErrorCode int

const (
	// General errors (1-99)
	ErrCodeUnknown ErrorCode = 1

	// Validation errors (100-199)
	ErrCodeInvalidConfiguration ErrorCode = 101
	ErrCodeMissingParameter     ErrorCode = 109
	ErrCodeInvalidVersion       ErrorCode = 110
	ErrCodeInvalidDateRange     ErrorCode = 120
	ErrCodeInvalidMonth         ErrorCode = 121

	// Data/Resource errors (200-299)
	ErrCodeNoDataFound ErrorCode = 204

	// Market data errors (700-799)
	ErrCodeMarketDataFetchFailed ErrorCode = 700
	ErrCodeMarketDataParseFailed ErrorCode = 702
	ErrCodeInvalidProvider       ErrorCode = 704
	ErrCodeSessionNotConnected   ErrorCode = 705
	ErrCodeSymbolNotOffered      ErrorCode = 706

	// Chart errors (900-999)
	ErrCodeChartRenderFailed ErrorCode = 900
	ErrCodeChartWriteFailed  ErrorCode = 901
	ErrCodeViewerFailed      ErrorCode = 902
)
