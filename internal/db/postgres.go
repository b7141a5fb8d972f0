package db

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"mboma-backend/internal/config"
)

const (
	connectAttempts = 3
	connectDelay    = time.Second
)

// Connect opens a pgx pool against the configured database. The connection is
// verified with a ping; transient failures are retried a fixed number of times
// before the process exits. There is no degraded or in-memory mode.
func Connect(cfg *config.Config) *pgxpool.Pool {
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s",
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.Name,
	)

	var lastErr error
	for attempt := 1; attempt <= connectAttempts; attempt++ {
		pool, err := pgxpool.New(context.Background(), dsn)
		if err == nil {
			err = pool.Ping(context.Background())
			if err == nil {
				log.Printf("[DB] Connected to %s:%d/%s", cfg.Database.Host, cfg.Database.Port, cfg.Database.Name)
				return pool
			}
			pool.Close()
		}
		lastErr = err
		log.Printf("[DB] Connection attempt %d/%d failed: %v", attempt, connectAttempts, err)
		if attempt < connectAttempts {
			time.Sleep(connectDelay)
		}
	}

	log.Fatalf("[DB] Could not connect after %d attempts: %v", connectAttempts, lastErr)
	return nil
}
