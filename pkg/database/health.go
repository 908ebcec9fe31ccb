package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// HealthChecker 数据库健康检查
type HealthChecker struct {
	db      *sql.DB
	timeout time.Duration
}

func NewHealthChecker(db *sql.DB) *HealthChecker {
	return &HealthChecker{db: db, timeout: 2 * time.Second}
}

// Check Ping 后执行 SELECT 1
func (h *HealthChecker) Check(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}

	var one int
	if err := h.db.QueryRowContext(ctx, "SELECT 1").Scan(&one); err != nil {
		return fmt.Errorf("select 1: %w", err)
	}
	return nil
}
