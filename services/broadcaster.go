package services

// Event types pushed to live dashboard rooms.
const (
	EventScoreCreated  = "SCORE_CREATED"
	EventStatusChanged = "STATUS_CHANGED"
)

// Broadcaster fans events out to everyone watching a hackathon's live
// room. Implemented by the websocket hub; a nil Broadcaster is never
// passed, tests use a recording fake.
type Broadcaster interface {
	Publish(room string, eventType string, payload interface{})
}

// NopBroadcaster drops every event. Useful when live updates are
// disabled.
type NopBroadcaster struct{}

func (NopBroadcaster) Publish(string, string, interface{}) {}
