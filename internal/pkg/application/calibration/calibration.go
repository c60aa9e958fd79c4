package calibration

import (
	"github.com/diwise/iot-greenhouse-ingest/internal/pkg/infrastructure/repositories/database"
	"github.com/shopspring/decimal"
)

var units = map[database.SensorKind]string{
	database.Temperature:       "°C",
	database.Humidity:          "%",
	database.SoilMoisture:      "%",
	database.Light:             "lux",
	database.PH:                "pH",
	database.EC:                "μS/cm",
	database.BatteryPercentage: "%",
	database.SignalStrength:    "dBm",
	database.Voltage:           "V",
}

// UnitFor returns the unit of measure for a sensor kind, or "" for unknown kinds.
func UnitFor(kind database.SensorKind) string {
	return units[kind]
}

// Calibrate returns raw * multiplier + offset together with the unit of the sensor's kind.
func Calibrate(sensor database.Sensor, raw decimal.Decimal) (decimal.Decimal, string) {
	value := raw.Mul(sensor.CalibrationMultiplier).Add(sensor.CalibrationOffset)
	return value, UnitFor(sensor.Kind)
}
