package db

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"ulascansenturk/city-explorer/internal/telemetry"
)

const startTimeKey = "metrics:start_time"

// MetricsPlugin times every gorm statement into telemetry.DBQueryDuration.
type MetricsPlugin struct{}

func (p *MetricsPlugin) Name() string {
	return "metricsPlugin"
}

func (p *MetricsPlugin) Initialize(db *gorm.DB) error {
	return errors.Join(
		db.Callback().Create().Before("gorm:create").Register("metrics:before_create", beforeCallback),
		db.Callback().Create().After("gorm:create").Register("metrics:after_create", afterCallback("INSERT")),

		db.Callback().Query().Before("gorm:query").Register("metrics:before_query", beforeCallback),
		db.Callback().Query().After("gorm:query").Register("metrics:after_query", afterCallback("SELECT")),

		db.Callback().Update().Before("gorm:update").Register("metrics:before_update", beforeCallback),
		db.Callback().Update().After("gorm:update").Register("metrics:after_update", afterCallback("UPDATE")),

		db.Callback().Delete().Before("gorm:delete").Register("metrics:before_delete", beforeCallback),
		db.Callback().Delete().After("gorm:delete").Register("metrics:after_delete", afterCallback("DELETE")),

		db.Callback().Row().Before("gorm:row").Register("metrics:before_row", beforeCallback),
		db.Callback().Row().After("gorm:row").Register("metrics:after_row", afterCallback("ROW")),

		db.Callback().Raw().Before("gorm:raw").Register("metrics:before_raw", beforeCallback),
		db.Callback().Raw().After("gorm:raw").Register("metrics:after_raw", afterCallback("RAW")),
	)
}

func beforeCallback(db *gorm.DB) {
	db.InstanceSet(startTimeKey, time.Now())
}

func afterCallback(operation string) func(*gorm.DB) {
	return func(db *gorm.DB) {
		startTime, ok := db.InstanceGet(startTimeKey)
		if !ok {
			return
		}

		table := db.Statement.Table
		if table == "" {
			table = "unknown"
		}

		status := "success"
		if db.Error != nil && !errors.Is(db.Error, gorm.ErrRecordNotFound) {
			status = "error"
		}

		telemetry.DBQueryDuration.
			WithLabelValues(operation, table, status).
			Observe(time.Since(startTime.(time.Time)).Seconds())
	}
}
