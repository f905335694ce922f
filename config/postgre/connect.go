package postgre

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"chat-realtime/config"

	_ "github.com/lib/pq" // PostgreSQL driver
)

const (
	defaultConnectTimeout  = 5 * time.Second
	defaultMaxIdleConns    = 5
	defaultMaxOpenConns    = 20
	defaultConnMaxLifetime = 30 * time.Minute
	defaultConnMaxIdleTime = 5 * time.Minute
)

var (
	instance *sql.DB
	mu       sync.RWMutex
)

// DSN builds the lib/pq connection string for cfg.
func DSN(cfg config.PostgresConfig) string {
	sslMode := cfg.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, sslMode)
}

// Connect opens the shared read-only pool used for participant lookups.
// Returns the existing pool if already connected.
func Connect(ctx context.Context, cfg config.PostgresConfig) (*sql.DB, error) {
	mu.Lock()
	defer mu.Unlock()

	if instance != nil {
		return instance, nil
	}

	fmt.Printf("[PostgreSQL] Attempting to connect to %s:%d/%s...\n", cfg.Host, cfg.Port, cfg.DBName)

	db, err := sql.Open("postgres", DSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to open PostgreSQL connection: %w", err)
	}

	db.SetMaxIdleConns(defaultMaxIdleConns)
	db.SetMaxOpenConns(defaultMaxOpenConns)
	db.SetConnMaxLifetime(defaultConnMaxLifetime)
	db.SetConnMaxIdleTime(defaultConnMaxIdleTime)

	connectCtx, cancel := context.WithTimeout(ctx, defaultConnectTimeout)
	defer cancel()

	if err := db.PingContext(connectCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping PostgreSQL: %w", err)
	}

	instance = db
	fmt.Printf("[PostgreSQL] Successfully connected to %s:%d/%s\n", cfg.Host, cfg.Port, cfg.DBName)
	return instance, nil
}

// Disconnect closes the shared pool so Connect can be called again.
func Disconnect() error {
	mu.Lock()
	defer mu.Unlock()

	if instance == nil {
		return nil
	}
	if err := instance.Close(); err != nil {
		return fmt.Errorf("failed to close PostgreSQL connection: %w", err)
	}
	instance = nil
	return nil
}

// HealthCheck pings the shared pool.
func HealthCheck(ctx context.Context) error {
	mu.RLock()
	defer mu.RUnlock()

	if instance == nil {
		return fmt.Errorf("PostgreSQL client not initialized")
	}
	if err := instance.PingContext(ctx); err != nil {
		return fmt.Errorf("PostgreSQL health check failed: %w", err)
	}
	return nil
}
