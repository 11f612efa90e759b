package slack

// Export internal functions for testing
var (
	BuildReportMessage = buildReportMessage
	TruncateToMaxBytes = truncateToMaxBytes
)
