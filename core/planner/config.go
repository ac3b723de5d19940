package planner

import "fmt"

// Config defines planning parameters loaded from configuration.
type Config struct {
	DayStart     string `json:"day_start"`     // "HH:MM"
	DayEnd       string `json:"day_end"`       // "HH:MM"
	BlockMinutes int    `json:"block_minutes"` // work block length
	BreakMinutes int    `json:"break_minutes"` // break after each work block, 0 disables
}

// SetDefaults applies the stock 50/10 cadence over a 9-to-17 day.
func (c *Config) SetDefaults() {
	if c.DayStart == "" {
		c.DayStart = "09:00"
	}
	if c.DayEnd == "" {
		c.DayEnd = "17:00"
	}
	if c.BlockMinutes == 0 {
		c.BlockMinutes = 50
	}
	if c.BreakMinutes == 0 {
		c.BreakMinutes = 10
	}
}

// Validate checks mandatory fields.
func (c Config) Validate() error {
	if c.BlockMinutes <= 0 {
		return fmt.Errorf("block_minutes must be positive")
	}
	if c.BreakMinutes < 0 {
		return fmt.Errorf("break_minutes must not be negative")
	}
	if _, err := parseClock(c.DayStart); err != nil {
		return fmt.Errorf("day_start: %w", err)
	}
	if _, err := parseClock(c.DayEnd); err != nil {
		return fmt.Errorf("day_end: %w", err)
	}
	return nil
}
