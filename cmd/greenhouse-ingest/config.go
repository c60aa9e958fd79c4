package main

import (
	"flag"
	"strconv"
	"strings"
	"time"

	"github.com/diwise/service-chassis/pkg/infrastructure/env"
	"github.com/rs/zerolog"
)

type flagType int
type flagMap map[flagType]string

const (
	listenAddress flagType = iota
	servicePort
	controlPort
	coapHost
	coapPort

	configurationFile
	sensorsFile

	apiKeyCacheTTL
	requestTimeout
	logRateInterval
	suppressProtocolWarnings
	nodeOfflineThreshold

	enableMessaging
	enableTracing
	devmode
)

func defaultFlags() flagMap {
	return flagMap{
		listenAddress: "0.0.0.0",
		servicePort:   "8080",
		controlPort:   "8000",
		coapHost:      "0.0.0.0",
		coapPort:      "5683",

		configurationFile: "/opt/diwise/config/greenhouse.yaml",
		sensorsFile:       "/opt/diwise/config/sensors.csv",

		apiKeyCacheTTL:           "300s",
		requestTimeout:           "10s",
		logRateInterval:          "60s",
		suppressProtocolWarnings: "false",
		nodeOfflineThreshold:     "10m",

		enableMessaging: "false",
		enableTracing:   "true",
		devmode:         "false",
	}
}

func parseExternalConfig(log zerolog.Logger, flags flagMap, args []string) flagMap {
	// Allow environment variables to override certain defaults
	envOrDef := func(name string, f flagType) {
		flags[f] = env.GetVariableOrDefault(log, name, flags[f])
	}

	envOrDef("LISTEN_ADDRESS", listenAddress)
	envOrDef("SERVICE_PORT", servicePort)
	envOrDef("CONTROL_PORT", controlPort)
	envOrDef("COAP_HOST", coapHost)
	envOrDef("COAP_PORT", coapPort)

	envOrDef("CONFIG_FILE", configurationFile)
	envOrDef("SENSORS_FILE", sensorsFile)

	envOrDef("API_KEY_CACHE_TTL", apiKeyCacheTTL)
	envOrDef("REQUEST_TIMEOUT", requestTimeout)
	envOrDef("LOG_RATE_INTERVAL", logRateInterval)
	envOrDef("COAP_SUPPRESS_PROTOCOL_WARNINGS", suppressProtocolWarnings)
	envOrDef("NODE_OFFLINE_THRESHOLD", nodeOfflineThreshold)

	envOrDef("ENABLE_MESSAGING", enableMessaging)
	envOrDef("ENABLE_TRACING", enableTracing)

	apply := func(f flagType) func(string) error {
		return func(value string) error {
			flags[f] = value
			return nil
		}
	}

	// Allow command line arguments to override defaults and environment variables
	fs := flag.NewFlagSet("greenhouse-ingest", flag.ExitOnError)
	fs.Func("config", "node registry and notification configuration file", apply(configurationFile))
	fs.Func("sensors", "semicolon separated list of sensors", apply(sensorsFile))
	fs.Func("coap-port", "udp port for the coap listener", apply(coapPort))
	fs.Func("devmode", "use an in-memory database", apply(devmode))
	fs.Parse(args)

	return flags
}

func (f flagMap) enabled(t flagType) bool {
	b, _ := strconv.ParseBool(f[t])
	return b
}

// duration reads a flag as a duration. Plain numbers are interpreted in the
// given unit so that values like REQUEST_TIMEOUT=10 keep working.
func (f flagMap) duration(t flagType, unit time.Duration) time.Duration {
	value := strings.TrimSpace(f[t])

	if n, err := strconv.ParseFloat(value, 64); err == nil {
		return time.Duration(n * float64(unit))
	}

	d, err := time.ParseDuration(value)
	if err != nil {
		return 0
	}

	return d
}

func (f flagMap) port(t flagType) int {
	p, _ := strconv.Atoi(f[t])
	return p
}
