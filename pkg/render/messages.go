package render

// User-facing text.
const (
	MsgRequestFailed    = "An error occurred while performing the request"
	MsgRetryHint        = "Try another URL or check your internet connection."
	MsgNoProducts       = "Could not find any products on this page."
	MsgNoProductsHint   = "Try another URL or make sure this is a product listing page."
	MsgStatsUnavailable = "Statistics are not available yet"
	MsgNoHistory        = "Request history is not available yet"

	MsgNoticeRequestFailed = "An error occurred during the request"
	MsgNoticeErrorPrefix   = "Error: "
	MsgTestSetStarted      = "Test set creation started. This may take a few minutes."
	MsgBatchStarted        = "Batch processing started. This may take a while."

	LabelCreatingTestSet = "Creating..."
	LabelEvaluating      = "Evaluating..."
)

// ErrorNotice formats a server-reported failure for a notice.
func ErrorNotice(msg string) string {
	return MsgNoticeErrorPrefix + msg
}
