package config

// Config is the runtime configuration for both the server and the client.
// Values come from an optional YAML/JSON file overridden by environment
// variables.
type Config struct {
	// Server settings
	Port    int    `yaml:"port" json:"port"`
	Debug   bool   `yaml:"debug" json:"debug"`
	LogFile string `yaml:"log_file" json:"log_file"`

	// Storage settings
	StorageBackend string `yaml:"storage_backend" json:"storage_backend"`
	StorageBaseDir string `yaml:"storage_base_dir" json:"storage_base_dir"`
	MongoURI       string `yaml:"mongodb_uri" json:"mongodb_uri"`
	MongoDatabase  string `yaml:"mongodb_database" json:"mongodb_database"`
	RedisAddr      string `yaml:"redis_addr" json:"redis_addr"`
	RedisPassword  string `yaml:"redis_password" json:"redis_password"`
	RedisDB        int    `yaml:"redis_db" json:"redis_db"`
	RedisPrefix    string `yaml:"redis_prefix" json:"redis_prefix"`
	PostgresDSN    string `yaml:"postgres_dsn" json:"postgres_dsn"`

	// Rate limiting for the HTTP surface. Zero RPS disables it.
	RateLimitRPS   float64 `yaml:"rate_limit_rps" json:"rate_limit_rps"`
	RateLimitBurst int     `yaml:"rate_limit_burst" json:"rate_limit_burst"`

	// Client settings
	ServerURL string `yaml:"server_url" json:"server_url"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Port:           3000,
		StorageBackend: "file",
		StorageBaseDir: "./data",
		MongoDatabase:  "password_manager",
		RedisPrefix:    "passwords:",
		RateLimitBurst: 20,
		ServerURL:      "http://localhost:3000",
	}
}
