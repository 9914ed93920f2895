package domain

import "time"

const (
	SystemEntity    = "system"
	OccupancyEntity = "occupancy"

	ActionConnected = "connected"
	ActionPong      = "pong"
	ActionSnapshot  = "snapshot"

	TopicSystemConnected   = SystemEntity + "." + ActionConnected
	TopicSystemPong        = SystemEntity + "." + ActionPong
	TopicOccupancySnapshot = OccupancyEntity + "." + ActionSnapshot
)

// Message is the envelope pushed to dashboard viewers.
type Message struct {
	Topic     string            `json:"topic"`
	Entity    string            `json:"entity"`
	Action    string            `json:"action"`
	Metadata  map[string]string `json:"metadata,omitempty"`
	HTML      string            `json:"html,omitempty"`
	Data      any               `json:"data,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
}
