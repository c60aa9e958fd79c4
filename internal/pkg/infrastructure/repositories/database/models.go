package database

import (
	"time"

	"github.com/shopspring/decimal"
)

type NodeStatus string

const (
	NodeStatusActive      NodeStatus = "active"
	NodeStatusInactive    NodeStatus = "inactive"
	NodeStatusMaintenance NodeStatus = "maintenance"
	NodeStatusError       NodeStatus = "error"
)

var NodeStatuses = []NodeStatus{NodeStatusActive, NodeStatusInactive, NodeStatusMaintenance, NodeStatusError}

type Node struct {
	NodeID          string         `gorm:"primaryKey;column:node_id"`
	APIKey          string         `gorm:"uniqueIndex;not null;column:api_key"`
	Name            string         `gorm:"column:name"`
	Location        string         `gorm:"column:location"`
	FirmwareVersion string         `gorm:"column:firmware_version"`
	Status          NodeStatus     `gorm:"not null;default:active;column:status"`
	LastSeen        *time.Time     `gorm:"column:last_seen"`
	Configuration   map[string]any `gorm:"serializer:json;column:configuration"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type SensorKind string

const (
	Temperature       SensorKind = "temperature"
	Humidity          SensorKind = "humidity"
	SoilMoisture      SensorKind = "soil_moisture"
	Light             SensorKind = "light"
	PH                SensorKind = "ph"
	EC                SensorKind = "ec"
	BatteryPercentage SensorKind = "battery_percentage"
	SignalStrength    SensorKind = "signal_strength"
	Voltage           SensorKind = "voltage"
)

// SensorKinds lists the recognised kinds in the order submissions are processed.
var SensorKinds = []SensorKind{
	Temperature, Humidity, SoilMoisture, Light, PH, EC, BatteryPercentage, SignalStrength, Voltage,
}

func IsSensorKind(s string) bool {
	for _, k := range SensorKinds {
		if string(k) == s {
			return true
		}
	}
	return false
}

type Sensor struct {
	SensorID              string          `gorm:"primaryKey;column:sensor_id"`
	NodeID                string          `gorm:"index:idx_sensor_node_kind;not null;column:node_id"`
	ZoneID                *string         `gorm:"column:zone_id"`
	Kind                  SensorKind      `gorm:"index:idx_sensor_node_kind;not null;column:kind"`
	CalibrationOffset     decimal.Decimal `gorm:"type:numeric(18,6);column:calibration_offset"`
	CalibrationMultiplier decimal.Decimal `gorm:"type:numeric(18,6);column:calibration_multiplier"`
	Active                bool            `gorm:"column:active"`
}

// NewSensor returns an active sensor with an identity calibration.
func NewSensor(sensorID, nodeID string, kind SensorKind) Sensor {
	return Sensor{
		SensorID:              sensorID,
		NodeID:                nodeID,
		Kind:                  kind,
		CalibrationOffset:     decimal.Zero,
		CalibrationMultiplier: decimal.NewFromInt(1),
		Active:                true,
	}
}

type Quality string

const (
	QualityGood      Quality = "good"
	QualityUncertain Quality = "uncertain"
	QualityBad       Quality = "bad"
	QualityUnknown   Quality = "unknown"
)

type Reading struct {
	ID         uint            `gorm:"primaryKey"`
	Time       time.Time       `gorm:"index;not null;column:time"`
	NodeID     string          `gorm:"index;not null;column:node_id"`
	ZoneID     *string         `gorm:"column:zone_id"`
	SensorID   string          `gorm:"index;not null;column:sensor_id"`
	SensorKind SensorKind      `gorm:"not null;column:sensor_kind"`
	Value      decimal.Decimal `gorm:"type:numeric(18,6);column:value"`
	Unit       string          `gorm:"column:unit"`
	Quality    Quality         `gorm:"column:quality"`
	Metadata   map[string]any  `gorm:"serializer:json;column:metadata"`
}
