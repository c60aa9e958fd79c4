package calibration

import (
	"testing"

	"github.com/diwise/iot-greenhouse-ingest/internal/pkg/infrastructure/repositories/database"
	"github.com/matryer/is"
	"github.com/shopspring/decimal"
)

func TestIdentityCalibration(t *testing.T) {
	is := is.New(t)

	s := database.NewSensor("t1", "greenhouse_001", database.Temperature)
	v, unit := Calibrate(s, decimal.RequireFromString("21.5"))

	is.True(v.Equal(decimal.RequireFromString("21.5")))
	is.Equal("°C", unit)
}

func TestOffsetAndMultiplier(t *testing.T) {
	is := is.New(t)

	s := database.NewSensor("h1", "greenhouse_001", database.Humidity)
	s.CalibrationOffset = decimal.RequireFromString("-2.5")
	s.CalibrationMultiplier = decimal.RequireFromString("1.1")

	v, unit := Calibrate(s, decimal.RequireFromString("60"))

	is.Equal("63.5", v.String())
	is.Equal("%", unit)
}

func TestDecimalArithmeticHasNoFloatDrift(t *testing.T) {
	is := is.New(t)

	s := database.NewSensor("v1", "greenhouse_001", database.Voltage)
	s.CalibrationOffset = decimal.RequireFromString("0.2")

	v, _ := Calibrate(s, decimal.RequireFromString("0.1"))

	is.Equal("0.3", v.String())
}

func TestCalibrationIsDeterministic(t *testing.T) {
	is := is.New(t)

	s := database.NewSensor("e1", "greenhouse_001", database.EC)
	s.CalibrationOffset = decimal.RequireFromString("3.3333")
	s.CalibrationMultiplier = decimal.RequireFromString("0.9876")

	first, _ := Calibrate(s, decimal.RequireFromString("1234.5678"))
	for i := 0; i < 10; i++ {
		v, _ := Calibrate(s, decimal.RequireFromString("1234.5678"))
		is.True(v.Equal(first))
	}
}

func TestUnits(t *testing.T) {
	is := is.New(t)

	is.Equal("lux", UnitFor(database.Light))
	is.Equal("pH", UnitFor(database.PH))
	is.Equal("μS/cm", UnitFor(database.EC))
	is.Equal("dBm", UnitFor(database.SignalStrength))
	is.Equal("V", UnitFor(database.Voltage))
	is.Equal("%", UnitFor(database.BatteryPercentage))
	is.Equal("", UnitFor(database.SensorKind("co2")))
}
