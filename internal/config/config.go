package config

import (
	"time"

	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Database
		Pricing
		History
		Archive
		Tasks
		Maintenance
		Global
	}

	HTTP struct {
		Port int32
		Host string
	}
	Database struct {
		Path string
	}
	// Pricing carries the membership price table and the student discount
	// percentage applied on top of it.
	Pricing struct {
		Monthly                float64
		Quarterly              float64
		Yearly                 float64
		StudentDiscountPercent float64
	}
	History struct {
		RetentionDays int // Days to keep operation log entries
	}
	Archive struct {
		Dir string // Directory for export archive files
	}
	Tasks struct {
		Enabled         bool
		Workers         int
		ReleaseAfter    time.Duration
		CleanupInterval time.Duration
	}
	Maintenance struct {
		Enabled  bool
		Schedule string // Cron format: "30 3 * * *" = nightly at 03:30
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8190)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("archive_dir", "./archive")

	// Membership price table defaults
	v.SetDefault("price_monthly", DefaultMonthlyPrice)
	v.SetDefault("price_quarterly", DefaultQuarterlyPrice)
	v.SetDefault("price_yearly", DefaultYearlyPrice)
	v.SetDefault("student_discount_percent", DefaultStudentDiscountPercent)

	// History defaults
	v.SetDefault("history_retention_days", 90)

	// Task queue defaults
	v.SetDefault("tasks_enabled", true)
	v.SetDefault("task_workers", 1)
	v.SetDefault("task_release_after", "15m")
	v.SetDefault("task_cleanup_interval", "1h")

	// Maintenance defaults
	v.SetDefault("maintenance_enabled", false)
	v.SetDefault("maintenance_schedule", "30 3 * * *") // Nightly at 03:30

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Database: Database{
			Path: v.GetString("DATABASE_PATH"),
		},
		Pricing: Pricing{
			Monthly:                v.GetFloat64("PRICE_MONTHLY"),
			Quarterly:              v.GetFloat64("PRICE_QUARTERLY"),
			Yearly:                 v.GetFloat64("PRICE_YEARLY"),
			StudentDiscountPercent: v.GetFloat64("STUDENT_DISCOUNT_PERCENT"),
		},
		History: History{
			RetentionDays: v.GetInt("HISTORY_RETENTION_DAYS"),
		},
		Archive: Archive{
			Dir: v.GetString("ARCHIVE_DIR"),
		},
		Tasks: Tasks{
			Enabled:         v.GetBool("TASKS_ENABLED"),
			Workers:         v.GetInt("TASK_WORKERS"),
			ReleaseAfter:    v.GetDuration("TASK_RELEASE_AFTER"),
			CleanupInterval: v.GetDuration("TASK_CLEANUP_INTERVAL"),
		},
		Maintenance: Maintenance{
			Enabled:  v.GetBool("MAINTENANCE_ENABLED"),
			Schedule: v.GetString("MAINTENANCE_SCHEDULE"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
	}
}
