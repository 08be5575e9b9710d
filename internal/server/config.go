package server

import (
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// ServerConfig represents the complete server configuration
type ServerConfig struct {
	Server ServerSettings `hcl:"server,block"`
	Rooms  RoomSettings   `hcl:"rooms,block"`
}

// ServerSettings contains server-level configuration
type ServerSettings struct {
	Address  string `hcl:"address,optional"`
	Port     int    `hcl:"port,optional"`
	LogLevel string `hcl:"log_level,optional"`
}

// RoomSettings contains room lifecycle configuration
type RoomSettings struct {
	TTLMinutes           int `hcl:"ttl_minutes,optional"`
	SweepIntervalMinutes int `hcl:"sweep_interval_minutes,optional"`
}

// DefaultServerConfig returns default server configuration
func DefaultServerConfig() *ServerConfig {
	return &ServerConfig{
		Server: ServerSettings{
			Address:  "localhost",
			Port:     3001,
			LogLevel: "info",
		},
		Rooms: RoomSettings{
			TTLMinutes:           240,
			SweepIntervalMinutes: 30,
		},
	}
}

// LoadServerConfig loads server configuration from an HCL file, falling back
// to defaults when the file does not exist
func LoadServerConfig(filename string) (*ServerConfig, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultServerConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config ServerConfig
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	// Apply defaults for missing values
	if config.Server.Address == "" {
		config.Server.Address = "localhost"
	}
	if config.Server.Port == 0 {
		config.Server.Port = 3001
	}
	if config.Server.LogLevel == "" {
		config.Server.LogLevel = "info"
	}
	if config.Rooms.TTLMinutes == 0 {
		config.Rooms.TTLMinutes = 240
	}
	if config.Rooms.SweepIntervalMinutes == 0 {
		config.Rooms.SweepIntervalMinutes = 30
	}

	return &config, nil
}

// Validate validates the server configuration
func (c *ServerConfig) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}
	if c.Rooms.TTLMinutes < 1 {
		return fmt.Errorf("room TTL must be positive, got %d", c.Rooms.TTLMinutes)
	}
	if c.Rooms.SweepIntervalMinutes < 1 {
		return fmt.Errorf("sweep interval must be positive, got %d", c.Rooms.SweepIntervalMinutes)
	}
	return nil
}

// GetServerAddress returns the full server address
func (c *ServerConfig) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Address, c.Server.Port)
}

// RoomTTL returns the room age ceiling as a duration
func (c *ServerConfig) RoomTTL() time.Duration {
	return time.Duration(c.Rooms.TTLMinutes) * time.Minute
}

// SweepInterval returns the sweep period as a duration
func (c *ServerConfig) SweepInterval() time.Duration {
	return time.Duration(c.Rooms.SweepIntervalMinutes) * time.Minute
}
