package config

import "github.com/btn0s/prototype-playground/internal/cmd"

// CLI is the root command line of the backbone binary.
type CLI struct {
	ConfigFile string    `name:"config" help:"Path to a JSON, YAML or TOML config file" type:"path" env:"BACKBONE_CONFIG"`
	Log        LogConfig `embed:"" prefix:"log."`

	Menu    cmd.Menu          `cmd:"" help:"Drive a menu with a gamepad" default:"withargs"`
	Monitor cmd.Monitor       `cmd:"" help:"Log every normalized input event"`
	Devices cmd.Devices       `cmd:"" help:"List connected gamepads"`
	Config  cmd.ConfigCommand `cmd:"" name:"config" help:"Configuration helpers"`
}

type LogConfig struct {
	Level   string `help:"Log level" enum:"trace,debug,info,warn,error" default:"info" env:"BACKBONE_LOG_LEVEL"`
	File    string `help:"Log file path (default: console)" env:"BACKBONE_LOG_FILE"`
	RawFile string `help:"Write one line per gamepad snapshot to this file" env:"BACKBONE_LOG_RAW_FILE"`
}
