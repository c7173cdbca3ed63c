package session

import "fmt"

// FormatRemaining renders seconds as HH:MM:SS when hours are present, else MM:SS.
func FormatRemaining(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	seconds = seconds % 60
	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

// StatusText returns the user-facing label for a state.
func StatusText(state State) string {
	switch state {
	case StateStudying:
		return "Currently Studying..."
	case StateOnBreak:
		return "Enjoy your Break!"
	case StatePaused:
		return "Paused"
	case StateComplete:
		return "Session Complete!"
	default:
		return "Ready to Focus?"
	}
}
