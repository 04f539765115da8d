package llm

// Fixed user-facing fallback strings. Any gateway failure, regardless of
// reason, surfaces as the operation's fallback text; the underlying error
// goes to the diagnostic log only.
const (
	FallbackReport    = "Error generating report. Please verify your API configuration and try again."
	FallbackResources = "Unable to retrieve local safety resources right now. If you are in immediate danger, call 911."
	FallbackChat      = "Sorry, something went wrong on my end. Please try sending your message again."
)
