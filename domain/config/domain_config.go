package config

// DomainConfig holds all configurable business rules and constraints
type DomainConfig struct {
	// Entity constraints
	MaxNameLength        int
	MaxDescriptionLength int

	// Relationship constraints
	MinConfidence          float64
	MaxConfidence          float64
	DefaultConfidence      float64
	AllowSelfRelationships bool

	// Query limits
	MaxSearchPageSize     int
	DefaultSearchPageSize int
}

// DefaultDomainConfig returns the default domain configuration
func DefaultDomainConfig() *DomainConfig {
	return &DomainConfig{
		MaxNameLength:        255,
		MaxDescriptionLength: 10000,

		MinConfidence:          0.0,
		MaxConfidence:          1.0,
		DefaultConfidence:      1.0,
		AllowSelfRelationships: true,

		MaxSearchPageSize:     100,
		DefaultSearchPageSize: 20,
	}
}

// Validate checks that the configured bounds are coherent
func (c *DomainConfig) Validate() error {
	if c.MaxNameLength <= 0 {
		return errInvalid("MaxNameLength must be positive")
	}
	if c.MinConfidence > c.MaxConfidence {
		return errInvalid("MinConfidence must not exceed MaxConfidence")
	}
	if c.DefaultConfidence < c.MinConfidence || c.DefaultConfidence > c.MaxConfidence {
		return errInvalid("DefaultConfidence must lie within [MinConfidence, MaxConfidence]")
	}
	if c.DefaultSearchPageSize <= 0 || c.DefaultSearchPageSize > c.MaxSearchPageSize {
		return errInvalid("DefaultSearchPageSize must lie within (0, MaxSearchPageSize]")
	}
	return nil
}

type configError string

func (e configError) Error() string { return "invalid domain config: " + string(e) }

func errInvalid(msg string) error { return configError(msg) }
