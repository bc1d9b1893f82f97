package database

// Config locates the results archive. An empty path disables it.
type Config struct {
	FilePath string `envconfig:"FISHBOWL_DB_PATH"`
}

func (c Config) Enabled() bool {
	return c.FilePath != ""
}
