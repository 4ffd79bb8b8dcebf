package util

// Envelope is the JSON wrapper every RoamIO handler responds with; payloads
// sit under descriptive keys ("destination", "reviews", "meta") rather than
// at the top level.
type Envelope map[string]any

// Error shapes a failure message for the response body.
func Error(message string) Envelope {
	return Envelope{"error": message}
}
