package gorm

import (
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const queryStartKey = "smartmeal:query_start"

// QueryObserver receives the outcome of every statement GORM runs
type QueryObserver interface {
	ObserveQuery(operation, table string, duration time.Duration, err error)
}

// QueryMonitor times GORM statements through callbacks and reports them to
// an observer. Statements slower than the threshold are logged.
type QueryMonitor struct {
	observer      QueryObserver
	logger        *zap.Logger
	slowThreshold time.Duration
}

// NewQueryMonitor creates a new query monitor
func NewQueryMonitor(observer QueryObserver, logger *zap.Logger, slowThreshold time.Duration) *QueryMonitor {
	return &QueryMonitor{
		observer:      observer,
		logger:        logger.Named("query-monitor"),
		slowThreshold: slowThreshold,
	}
}

// Register installs before/after callbacks for queries, creates, updates and deletes
func (qm *QueryMonitor) Register(db *gorm.DB) error {
	cb := db.Callback()

	if err := cb.Query().Before("gorm:query").Register("monitor:before_query", qm.before); err != nil {
		return err
	}
	if err := cb.Query().After("gorm:query").Register("monitor:after_query", qm.after("select")); err != nil {
		return err
	}
	if err := cb.Create().Before("gorm:create").Register("monitor:before_create", qm.before); err != nil {
		return err
	}
	if err := cb.Create().After("gorm:create").Register("monitor:after_create", qm.after("insert")); err != nil {
		return err
	}
	if err := cb.Update().Before("gorm:update").Register("monitor:before_update", qm.before); err != nil {
		return err
	}
	if err := cb.Update().After("gorm:update").Register("monitor:after_update", qm.after("update")); err != nil {
		return err
	}
	if err := cb.Delete().Before("gorm:delete").Register("monitor:before_delete", qm.before); err != nil {
		return err
	}
	return cb.Delete().After("gorm:delete").Register("monitor:after_delete", qm.after("delete"))
}

func (qm *QueryMonitor) before(db *gorm.DB) {
	db.InstanceSet(queryStartKey, time.Now())
}

func (qm *QueryMonitor) after(operation string) func(*gorm.DB) {
	return func(db *gorm.DB) {
		v, ok := db.InstanceGet(queryStartKey)
		if !ok {
			return
		}
		start, ok := v.(time.Time)
		if !ok {
			return
		}

		duration := time.Since(start)
		table := ""
		if db.Statement != nil {
			table = db.Statement.Table
		}

		var err error
		if db.Error != nil && db.Error != gorm.ErrRecordNotFound {
			err = db.Error
		}

		if qm.observer != nil {
			qm.observer.ObserveQuery(operation, table, duration, err)
		}

		if qm.slowThreshold > 0 && duration > qm.slowThreshold {
			qm.logger.Warn("Slow query detected",
				zap.String("operation", operation),
				zap.String("table", table),
				zap.Duration("duration", duration),
			)
		}
	}
}
