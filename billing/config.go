package billing

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"encore.dev/config"

	"trm.app/billing/business/task"
	"trm.app/billing/fee"
	"trm.app/billing/workflow"
)

type ScheduleConfig struct {
	Version string
	// Rates are percentages written as decimal strings, e.g. "12.5".
	TierRates   map[string]string
	DefaultRate string
	DunningRate string
	MinFee      int64
	MaxFee      int64
}

type InvoicingConfig struct {
	DueDays             int
	PayPerHireGraceDays int
	WarningWindowDays   int
}

type BatchConfig struct {
	Concurrency int
	SelectLimit int
	// Per item activity bounds. Zero keeps the workflow defaults.
	ItemTimeoutSeconds  int
	ItemDeadlineSeconds int
	ItemMaxAttempts     int
}

type TemporalConfig struct {
	HostPort  string
	Namespace string
	TaskQueue string
}

type Config struct {
	Currency  string
	Schedule  ScheduleConfig
	Invoicing InvoicingConfig
	Batch     BatchConfig
	Temporal  TemporalConfig
}

var cfg = config.Load[*Config]()

// feeSchedule converts the configured schedule once at startup.
func (c ScheduleConfig) feeSchedule() (fee.Schedule, error) {
	s := fee.Schedule{
		Version:   c.Version,
		TierRates: make(map[string]decimal.Decimal, len(c.TierRates)),
		MinFee:    c.MinFee,
		MaxFee:    c.MaxFee,
	}
	for tier, raw := range c.TierRates {
		rate, err := decimal.NewFromString(raw)
		if err != nil {
			return fee.Schedule{}, fmt.Errorf("tier %q rate %q: %w", tier, raw, err)
		}
		s.TierRates[tier] = rate
	}

	var err error
	if s.DefaultRate, err = decimal.NewFromString(c.DefaultRate); err != nil {
		return fee.Schedule{}, fmt.Errorf("default rate %q: %w", c.DefaultRate, err)
	}
	if s.DunningRate, err = decimal.NewFromString(c.DunningRate); err != nil {
		return fee.Schedule{}, fmt.Errorf("dunning rate %q: %w", c.DunningRate, err)
	}
	if err := s.Validate(); err != nil {
		return fee.Schedule{}, err
	}
	return s, nil
}

func days(n int) time.Duration {
	return time.Duration(n) * 24 * time.Hour
}

func (c InvoicingConfig) dueAfter() time.Duration {
	return days(c.DueDays)
}

func (c BatchConfig) itemLimits() workflow.ItemLimits {
	return workflow.ItemLimits{
		Timeout:     time.Duration(c.ItemTimeoutSeconds) * time.Second,
		Deadline:    time.Duration(c.ItemDeadlineSeconds) * time.Second,
		MaxAttempts: int32(c.ItemMaxAttempts),
	}
}

func (c *Config) taskConfig() task.Config {
	return task.Config{
		PayPerHireGrace: days(c.Invoicing.PayPerHireGraceDays),
		WarningWindow:   days(c.Invoicing.WarningWindowDays),
		SelectLimit:     int32(c.Batch.SelectLimit),
	}
}
