package portfolio

import "time"

const (
	GreetingMorning   = "dashboard.greeting.morning"
	GreetingAfternoon = "dashboard.greeting.afternoon"
	GreetingEvening   = "dashboard.greeting.evening"
)

// GreetingKey picks the translation key of the header greeting for the local
// hour of t
func GreetingKey(t time.Time) string {
	switch h := t.Hour(); {
	case h >= 5 && h < 12:
		return GreetingMorning
	case h >= 12 && h < 17:
		return GreetingAfternoon
	default:
		return GreetingEvening
	}
}
