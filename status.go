package intervals

func isStatusSuccess(statusCode int) bool {
	return statusCode >= 200 && statusCode < 300
}

// Server-side failures may be transient; anything the caller sent wrong is not.
func isRetryable(statusCode int) bool {
	return statusCode >= 500
}
