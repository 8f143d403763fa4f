package db

import (
	"database/sql"

	"currency-bot/models"

	_ "github.com/mattn/go-sqlite3"
)

// DB is a wrapper around sql.DB
type DB struct {
	*sql.DB
}

// NewDB creates a new database connection
func NewDB(dbPath string) (*DB, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	return &DB{db}, nil
}

// InitDB initializes the database with required tables
func (db *DB) InitDB() error {
	query := `
	CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY,
		username TEXT,
		first_name TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		is_banned INTEGER DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS requests (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER,
		channel TEXT,
		query TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	`

	_, err := db.Exec(query)
	return err
}

// UpsertUser inserts a user if the ID is not known yet. An existing row
// keeps its name and ban flag untouched.
func (db *DB) UpsertUser(id int64, username, firstName string) error {
	query := `INSERT OR IGNORE INTO users (id, username, first_name) VALUES (?, ?, ?)`

	_, err := db.Exec(query, id, username, firstName)
	return err
}

// GetUser retrieves a user by ID
func (db *DB) GetUser(id int64) (*models.User, error) {
	query := `SELECT id, username, first_name, is_banned, created_at FROM users WHERE id = ?`

	var user models.User
	err := db.QueryRow(query, id).Scan(
		&user.ID, &user.Username, &user.FirstName, &user.IsBanned, &user.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// IsBanned reports whether the user is banned. Unknown users are never
// banned and no row is created for them.
func (db *DB) IsBanned(id int64) (bool, error) {
	query := `SELECT is_banned FROM users WHERE id = ?`

	var banned bool
	err := db.QueryRow(query, id).Scan(&banned)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return banned, nil
}

// SetBanned updates a user's ban flag. Unknown IDs are a silent no-op.
func (db *DB) SetBanned(id int64, banned bool) error {
	query := `UPDATE users SET is_banned = ? WHERE id = ?`
	_, err := db.Exec(query, banned, id)
	return err
}

// ListUsers returns all users in natural storage order
func (db *DB) ListUsers() ([]models.User, error) {
	query := `SELECT id, username, first_name, is_banned, created_at FROM users ORDER BY rowid`

	rows, err := db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var user models.User
		if err := rows.Scan(&user.ID, &user.Username, &user.FirstName, &user.IsBanned, &user.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	return users, rows.Err()
}

// Stats returns aggregate counters for the admin panel
func (db *DB) Stats() (*models.Stats, error) {
	var stats models.Stats

	if err := db.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&stats.TotalUsers); err != nil {
		return nil, err
	}

	if err := db.QueryRow(`SELECT COUNT(*) FROM users WHERE is_banned = 1`).Scan(&stats.BannedUsers); err != nil {
		return nil, err
	}

	if err := db.QueryRow(`SELECT COUNT(*) FROM requests`).Scan(&stats.TotalRequests); err != nil {
		return nil, err
	}

	query := `SELECT COUNT(*) FROM users WHERE created_at >= datetime('now', '-1 day')`
	if err := db.QueryRow(query).Scan(&stats.JoinedToday); err != nil {
		return nil, err
	}

	return &stats, nil
}

// LogRequest appends a lookup record to the request log
func (db *DB) LogRequest(id int64, channel, query string) error {
	stmt := `INSERT INTO requests (user_id, channel, query) VALUES (?, ?, ?)`
	_, err := db.Exec(stmt, id, channel, query)
	return err
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.DB.Close()
}
