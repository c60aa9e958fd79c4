package events

import "github.com/samber/lo"

// SubscriberConfig is a cloudevents endpoint. Nodes limits delivery to
// events from the listed nodes, an empty list means every node.
type SubscriberConfig struct {
	Endpoint string   `yaml:"endpoint"`
	Nodes    []string `yaml:"nodes"`
}

func (s SubscriberConfig) wants(nodeID string) bool {
	return len(s.Nodes) == 0 || lo.Contains(s.Nodes, nodeID)
}

type Notification struct {
	ID          string             `yaml:"id"`
	Name        string             `yaml:"name"`
	Type        string             `yaml:"type"`
	Subscribers []SubscriberConfig `yaml:"subscribers"`
}

type Config struct {
	Notifications []Notification `yaml:"notifications"`
}
