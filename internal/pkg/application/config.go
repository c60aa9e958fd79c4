package application

import (
	"fmt"
	"io"

	"github.com/diwise/iot-greenhouse-ingest/internal/pkg/application/events"
	"github.com/diwise/iot-greenhouse-ingest/internal/pkg/infrastructure/repositories/database"
	"github.com/samber/lo"
	yaml "gopkg.in/yaml.v2"
)

type NodeConfig struct {
	NodeID          string         `yaml:"nodeID"`
	APIKey          string         `yaml:"apiKey"`
	Name            string         `yaml:"name"`
	Location        string         `yaml:"location"`
	FirmwareVersion string         `yaml:"firmwareVersion"`
	Status          string         `yaml:"status"`
	Configuration   map[string]any `yaml:"configuration"`
}

type Config struct {
	Nodes         []NodeConfig `yaml:"nodes"`
	events.Config `yaml:",inline"`
}

func LoadConfiguration(data io.Reader) (*Config, error) {
	buf, err := io.ReadAll(data)
	if err != nil {
		return nil, err
	}

	cfg := Config{}
	if err := yaml.Unmarshal(buf, &cfg); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c Config) validate() error {
	ids := map[string]bool{}
	keys := map[string]bool{}

	for i, n := range c.Nodes {
		if n.NodeID == "" || n.APIKey == "" {
			return fmt.Errorf("node %d must have both nodeID and apiKey", i)
		}
		if ids[n.NodeID] {
			return fmt.Errorf("duplicate node id %s", n.NodeID)
		}
		if keys[n.APIKey] {
			return fmt.Errorf("api key of node %s is already in use", n.NodeID)
		}
		if n.Status != "" && !lo.Contains(database.NodeStatuses, database.NodeStatus(n.Status)) {
			return fmt.Errorf("node %s has unknown status %s", n.NodeID, n.Status)
		}

		ids[n.NodeID] = true
		keys[n.APIKey] = true
	}

	return nil
}

// RegisteredNodes converts the configured nodes into registry rows.
func (c Config) RegisteredNodes() []database.Node {
	return lo.Map(c.Nodes, func(n NodeConfig, _ int) database.Node {
		return database.Node{
			NodeID:          n.NodeID,
			APIKey:          n.APIKey,
			Name:            n.Name,
			Location:        n.Location,
			FirmwareVersion: n.FirmwareVersion,
			Status:          database.NodeStatus(lo.Ternary(n.Status != "", n.Status, string(database.NodeStatusActive))),
			Configuration:   stringKeys(n.Configuration),
		}
	})
}

// stringKeys converts the map[interface{}]interface{} values yaml.v2 produces
// for nested mappings so that the configuration can be stored as JSON.
func stringKeys(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}

	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = normalize(v)
	}

	return out
}

func normalize(v any) any {
	switch t := v.(type) {
	case map[any]any:
		m := make(map[string]any, len(t))
		for k, val := range t {
			m[fmt.Sprint(k)] = normalize(val)
		}
		return m
	case map[string]any:
		return stringKeys(t)
	case []any:
		return lo.Map(t, func(item any, _ int) any { return normalize(item) })
	default:
		return v
	}
}
