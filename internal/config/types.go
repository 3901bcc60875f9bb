// Package config reads the optional tabv YAML config file.
package config

// Config mirrors config.yaml. Every field is optional; zero values mean
// "use the built-in default".
type Config struct {
	Theme    string   `yaml:"theme"`
	KeyMode  string   `yaml:"keymap"`
	Patterns []string `yaml:"patterns"`
	Where    string   `yaml:"where"`
	LogFile  string   `yaml:"log_file"`
	NoColor  *bool    `yaml:"no_color"`
}
