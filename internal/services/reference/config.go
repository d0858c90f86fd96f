package reference

import "fmt"

type Config struct {
	CatalogPath string  // JSON file of label -> URL
	TopN        int     // Maximum number of links returned per answer
	MinScore    float64 // Minimum fraction of key tokens found in the answer
}

func DefaultConfig() *Config {
	return &Config{
		CatalogPath: "medsafe_source_links_cleaned.json",
		TopN:        DefaultTopN,
		MinScore:    0.5,
	}
}

func (c *Config) Validate() error {
	if c.TopN <= 0 {
		return fmt.Errorf("top_n must be positive")
	}
	if c.MinScore < 0 || c.MinScore > 1 {
		return fmt.Errorf("min_score must be between 0 and 1")
	}
	return nil
}

// Logger defines the logging interface used by the reference package
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Debug(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
}
