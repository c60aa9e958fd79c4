package types

import "time"

// SensorData is the submission payload a greenhouse node posts over CoAP or HTTP.
type SensorData struct {
	NodeID            string         `json:"node_id,omitempty"`
	APIKey            string         `json:"api_key,omitempty"`
	ZoneID            string         `json:"zone_id,omitempty"`
	Timestamp         string         `json:"timestamp,omitempty"`
	Temperature       *float64       `json:"temperature,omitempty"`
	Humidity          *float64       `json:"humidity,omitempty"`
	SoilMoisture      *float64       `json:"soil_moisture,omitempty"`
	Light             *float64       `json:"light,omitempty"`
	PH                *float64       `json:"ph,omitempty"`
	EC                *float64       `json:"ec,omitempty"`
	BatteryPercentage *float64       `json:"battery_percentage,omitempty"`
	SignalStrength    *float64       `json:"signal_strength,omitempty"`
	Voltage           *float64       `json:"voltage,omitempty"`
	MetaData          map[string]any `json:"meta_data,omitempty"`
}

const (
	StatusSuccess string = "success"
	StatusError   string = "error"
)

type Response struct {
	Status          string    `json:"status"`
	Message         string    `json:"message"`
	ReadingsCreated *int      `json:"readings_created,omitempty"`
	Timestamp       time.Time `json:"timestamp"`
}

type Heartbeat struct {
	NodeID          string         `json:"node_id"`
	FirmwareVersion string         `json:"firmware_version,omitempty"`
	Configuration   map[string]any `json:"configuration,omitempty"`
}

type Reading struct {
	SensorID   string         `json:"sensor_id"`
	SensorKind string         `json:"sensor_type"`
	ZoneID     *string        `json:"zone_id,omitempty"`
	Value      string         `json:"value"`
	Unit       string         `json:"unit"`
	Quality    string         `json:"quality"`
	Time       time.Time      `json:"time"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}

type DiscoveryDocument struct {
	Service     string            `json:"service"`
	Version     string            `json:"version"`
	Endpoints   map[string]string `json:"endpoints"`
	Diagnostics []string          `json:"diagnostic_paths"`
	Auth        string            `json:"auth"`
	Payload     string            `json:"payload"`
}
