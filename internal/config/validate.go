package config

import (
	"errors"
	"fmt"
)

// Validate checks values cleanenv cannot express as tags.
func (c *Config) Validate() error {
	var errs []error

	switch c.Database.Driver {
	case "sqlite3", "postgres":
	default:
		errs = append(errs, fmt.Errorf("database.driver must be sqlite3 or postgres, got %q", c.Database.Driver))
	}
	if c.Database.DSN == "" {
		errs = append(errs, errors.New("database.dsn is required"))
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port out of range: %d", c.Server.Port))
	}
	if c.Quiz.PromotionThreshold < 1 {
		errs = append(errs, fmt.Errorf("quiz.promotion_threshold must be >= 1, got %d", c.Quiz.PromotionThreshold))
	}
	if c.Quiz.MaxCount < 0 {
		errs = append(errs, fmt.Errorf("quiz.max_count must be >= 0, got %d", c.Quiz.MaxCount))
	}
	if c.Quiz.OptionCount < 2 {
		errs = append(errs, fmt.Errorf("quiz.option_count must be >= 2, got %d", c.Quiz.OptionCount))
	}
	if c.Quiz.ActivityDays < 1 {
		errs = append(errs, fmt.Errorf("quiz.activity_days must be >= 1, got %d", c.Quiz.ActivityDays))
	}

	return errors.Join(errs...)
}
