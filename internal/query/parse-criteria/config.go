// internal/query/parse-criteria/config.go
package parsecriteria

type Config struct {
	// MaxSearchLength caps the search text; longer input is rejected.
	MaxSearchLength int
}

func LoadConfig() *Config {
	return &Config{
		MaxSearchLength: 200,
	}
}
