// Package database persists clients, monitor rules, and alert records in
// PostgreSQL. It is the configuration store behind the rule and alert
// models; all validation and lifecycle legality is decided before a value
// reaches this package.
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/lib/pq"
)

// ErrNotFound marks lookups for rows that do not exist. Callers distinguish
// it with errors.Is; for monitor rules an absent row is a normal state (the
// client simply has the defaults).
var ErrNotFound = errors.New("not found")

// Client is a broker client record.
type Client struct {
	ClientID  string    `json:"client_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DB wraps a database connection and provides client, monitor rule, and
// alert operations.
type DB struct {
	conn *sql.DB
}

// NewDB creates a new database connection using the provided DSN.
func NewDB(dsn string) (*DB, error) {
	conn, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	// Configure connection pool
	conn.SetMaxOpenConns(25)
	conn.SetMaxIdleConns(5)
	conn.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	slog.Info("Successfully connected to PostgreSQL database")

	return &DB{conn: conn}, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	if db.conn != nil {
		slog.Info("Closing database connection")
		return db.conn.Close()
	}
	return nil
}

// CreateClient creates a new client in the database.
// Returns an error if the client already exists.
func (db *DB) CreateClient(ctx context.Context, clientID, name string) error {
	query := `
		INSERT INTO clients (client_id, name, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
	`
	_, err := db.conn.ExecContext(ctx, query, clientID, name)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23505" { // unique_violation
				return fmt.Errorf("client already exists: %s", clientID)
			}
		}
		return fmt.Errorf("failed to create client: %w", err)
	}
	return nil
}

// GetClient retrieves a client by ID.
func (db *DB) GetClient(ctx context.Context, clientID string) (*Client, error) {
	query := `
		SELECT client_id, name, created_at, updated_at
		FROM clients
		WHERE client_id = $1
	`
	var client Client
	err := db.conn.QueryRowContext(ctx, query, clientID).Scan(
		&client.ClientID,
		&client.Name,
		&client.CreatedAt,
		&client.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("client %s: %w", clientID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get client: %w", err)
	}
	return &client, nil
}

// ListClients retrieves all clients.
func (db *DB) ListClients(ctx context.Context) ([]*Client, error) {
	query := `
		SELECT client_id, name, created_at, updated_at
		FROM clients
		ORDER BY name ASC
	`
	rows, err := db.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	defer rows.Close()

	var clients []*Client
	for rows.Next() {
		var client Client
		if err := rows.Scan(
			&client.ClientID,
			&client.Name,
			&client.CreatedAt,
			&client.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan client: %w", err)
		}
		clients = append(clients, &client)
	}
	return clients, rows.Err()
}
