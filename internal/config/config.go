package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

const (
	BackendGremlin  = "gremlin"
	BackendMemgraph = "memgraph"
)

type CosmosConfig struct {
	Endpoint string `toml:"endpoint"`
	Key      string `toml:"key"`
}

type GremlinConfig struct {
	Host      string `toml:"host"`
	Port      int    `toml:"port"`
	EnableTLS bool   `toml:"enable_tls"`
}

// URL is the WebSocket address of the Gremlin endpoint.
func (g GremlinConfig) URL() string {
	scheme := "ws"
	if g.EnableTLS {
		scheme = "wss"
	}
	return scheme + "://" + net.JoinHostPort(g.Host, strconv.Itoa(g.Port)) + "/"
}

type MemgraphConfig struct {
	URI      string `toml:"uri"`
	User     string `toml:"user"`
	Password string `toml:"password"`
}

// GraphConfig names the target graph and the shape of the generated elements.
type GraphConfig struct {
	Database          string `toml:"database"`
	Container         string `toml:"container"`
	PartitionKeyPath  string `toml:"partition_key_path"`
	PartitionKeyValue string `toml:"partition_key_value"`
	VertexLabel       string `toml:"vertex_label"`
	EdgeLabel         string `toml:"edge_label"`
	MaxFanOut         int    `toml:"max_fan_out"`
}

type RunConfig struct {
	Backend  string `toml:"backend"`
	Sampling string `toml:"sampling"`
	Seed     int64  `toml:"seed"`
	LogLevel string `toml:"log_level"`
}

type Config struct {
	Cosmos   CosmosConfig   `toml:"cosmos"`
	Gremlin  GremlinConfig  `toml:"gremlin"`
	Memgraph MemgraphConfig `toml:"memgraph"`
	Graph    GraphConfig    `toml:"graph"`
	Run      RunConfig      `toml:"run"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Gremlin: GremlinConfig{
			Port:      443,
			EnableTLS: true,
		},
		Memgraph: MemgraphConfig{
			URI: "bolt://localhost:7687",
		},
		Graph: GraphConfig{
			PartitionKeyPath:  "/partitionKey",
			PartitionKeyValue: "as",
			VertexLabel:       "person",
			EdgeLabel:         "knows",
			MaxFanOut:         8,
		},
		Run: RunConfig{
			Backend:  BackendGremlin,
			Sampling: "legacy",
			LogLevel: "info",
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	return cfg, nil
}

// ApplyEnv overrides file values with any environment variables that are set.
func (c *Config) ApplyEnv() error {
	setString := func(key string, dst *string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}

	setString("COSMOS_ENDPOINT", &c.Cosmos.Endpoint)
	setString("COSMOS_KEY", &c.Cosmos.Key)
	setString("GREMLIN_HOST", &c.Gremlin.Host)
	setString("GRAPH_DATABASE", &c.Graph.Database)
	setString("GRAPH_CONTAINER", &c.Graph.Container)
	setString("MEMGRAPH_URI", &c.Memgraph.URI)
	setString("MEMGRAPH_USER", &c.Memgraph.User)
	setString("MEMGRAPH_PASSWORD", &c.Memgraph.Password)
	setString("SOCIOGRAM_BACKEND", &c.Run.Backend)
	setString("SOCIOGRAM_SAMPLING", &c.Run.Sampling)
	setString("LOG_LEVEL", &c.Run.LogLevel)

	if v := os.Getenv("GREMLIN_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid GREMLIN_PORT %q: %w", v, err)
		}
		c.Gremlin.Port = port
	}
	if v := os.Getenv("SOCIOGRAM_SEED"); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid SOCIOGRAM_SEED %q: %w", v, err)
		}
		c.Run.Seed = seed
	}

	return nil
}

func (c *Config) Validate() error {
	switch strings.ToLower(c.Run.Backend) {
	case BackendGremlin:
		if c.Gremlin.Host == "" {
			return fmt.Errorf("gremlin.host is required for the %s backend", BackendGremlin)
		}
		if c.Gremlin.Port <= 0 {
			return fmt.Errorf("gremlin.port must be positive, got %d", c.Gremlin.Port)
		}
	case BackendMemgraph:
		if c.Memgraph.URI == "" {
			return fmt.Errorf("memgraph.uri is required for the %s backend", BackendMemgraph)
		}
	default:
		return fmt.Errorf("unsupported backend: %s", c.Run.Backend)
	}
	if c.Graph.MaxFanOut < 0 {
		return fmt.Errorf("graph.max_fan_out must not be negative")
	}
	return nil
}

// GremlinUsername is the resource path Cosmos DB expects as the Gremlin user name.
func (c *Config) GremlinUsername() string {
	return "/dbs/" + c.Graph.Database + "/colls/" + c.Graph.Container
}

// Provisioning reports whether a Cosmos account is configured for database/container creation.
func (c *Config) Provisioning() bool {
	return strings.EqualFold(c.Run.Backend, BackendGremlin) && c.Cosmos.Endpoint != "" && c.Cosmos.Key != ""
}
