package types

import "time"

type ReadingsCreated struct {
	NodeID    string    `json:"nodeID"`
	ZoneID    string    `json:"zoneID,omitempty"`
	Readings  []Reading `json:"readings"`
	Timestamp time.Time `json:"timestamp"`
}

func (r *ReadingsCreated) ContentType() string {
	return "application/json"
}
func (r *ReadingsCreated) TopicName() string {
	return "sensor.readingsCreated"
}

type NodeStatusChanged struct {
	NodeID    string    `json:"nodeID"`
	Status    string    `json:"status"`
	Previous  string    `json:"previous,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func (n *NodeStatusChanged) ContentType() string {
	return "application/json"
}
func (n *NodeStatusChanged) TopicName() string {
	return "node.statusChanged"
}
