package session

const (
	// HistoryWindow bounds the turns kept per session after each exchange.
	HistoryWindow = 20
)

// Trim keeps the newest limit turns, oldest dropped first. The returned slice
// never aliases the dropped prefix.
func Trim(messages []Turn, limit int) []Turn {
	if limit < 0 || len(messages) <= limit {
		return messages
	}
	out := make([]Turn, limit)
	copy(out, messages[len(messages)-limit:])
	return out
}
