package database

import (
	"database/sql"
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// RegisterPoolMetrics 将连接池统计（打开数、空闲数、等待次数等）注册到 Prometheus，
// 同名采集器已注册时忽略
func RegisterPoolMetrics(reg prometheus.Registerer, db *sql.DB, dbName string) error {
	err := reg.Register(collectors.NewDBStatsCollector(db, dbName))
	var already prometheus.AlreadyRegisteredError
	if errors.As(err, &already) {
		return nil
	}
	return err
}
