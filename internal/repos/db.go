package repos

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// timeLayout is fixed-width so sold_at sorts lexically in time order.
const timeLayout = "2006-01-02 15:04:05.000000"

func formatTime(t time.Time) string { return t.UTC().Format(timeLayout) }

func parseTime(s string) (time.Time, error) {
	return time.ParseInLocation(timeLayout, s, time.UTC)
}

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// One connection: the engine is embedded and :memory: databases are
	// per-connection.
	db.SetMaxOpenConns(1)
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	// Seed the menu if the catalog is empty
	if err := seedIfEmpty(db); err != nil {
		return nil, err
	}
	// Ensure users exist (idempotent; safe to run every start)
	if err := seedUsers(db); err != nil {
		return nil, err
	}

	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Products (menu)
CREATE TABLE IF NOT EXISTS products(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  price TEXT NOT NULL CHECK (CAST(price AS REAL) > 0),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_products_name_nocase ON products(LOWER(name));

-- Sales: one row per cart line sold
CREATE TABLE IF NOT EXISTS sales(
  id TEXT PRIMARY KEY,
  product_name TEXT NOT NULL,
  qty INTEGER NOT NULL CHECK (qty >= 1),
  unit_price TEXT NOT NULL,
  sold_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_sales_sold_at ON sales(sold_at);

-- Users & Sessions
CREATE TABLE IF NOT EXISTS users(
  id TEXT PRIMARY KEY,
  username TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL,
  password_hash TEXT NOT NULL,
  role TEXT NOT NULL CHECK (role IN ('ADMIN','VENDEDOR')),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_username ON users(LOWER(username));

CREATE TABLE IF NOT EXISTS sessions(
  id TEXT PRIMARY KEY,               -- same value as the 'sid' cookie
  user_id TEXT NULL REFERENCES users(id) ON DELETE SET NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  last_seen  TEXT
);
CREATE INDEX IF NOT EXISTS idx_sessions_user ON sessions(user_id);
`
	_, err := db.Exec(schema)
	return err
}

func seedIfEmpty(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM products`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting default menu")

	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()
	for _, p := range []struct{ name, price string }{
		{"Espresso", "2.50"},
		{"Latte", "4.00"},
		{"Capuccino", "4.50"},
		{"Muffin de Chocolate", "3.00"},
	} {
		if _, err := tx.Exec(`INSERT INTO products(id,name,price) VALUES(?,?,?)`, uuid.NewString(), p.name, p.price); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// SeedDemoSales records two sample sales when the history is empty.
func SeedDemoSales(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM sales`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	log.Println("[seed] inserting demo sales")
	now := formatTime(time.Now())
	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()
	tx.MustExec(`INSERT INTO sales(id,product_name,qty,unit_price,sold_at) VALUES(?,?,?,?,?)`, uuid.NewString(), "Espresso", 2, "2.50", now)
	tx.MustExec(`INSERT INTO sales(id,product_name,qty,unit_price,sold_at) VALUES(?,?,?,?,?)`, uuid.NewString(), "Latte", 1, "4.00", now)
	return tx.Commit()
}

// seedUsers ensures one ADMIN and one VENDEDOR exist (idempotent).
func seedUsers(db *sqlx.DB) error {
	type u struct {
		ID, Username, Name, Role, Hash string
	}
	mk := func(id, username, name, role, raw string) (u, error) {
		h, err := bcrypt.GenerateFromPassword([]byte(raw), bcrypt.DefaultCost)
		return u{ID: id, Username: username, Name: name, Role: role, Hash: string(h)}, err
	}

	admin, err := mk("u-admin", "admin", "Administrador", "ADMIN", "Passw0rd!")
	if err != nil {
		return err
	}
	seller, err := mk("u-vendedor", "vendedor", "Vendedor", "VENDEDOR", "Passw0rd!")
	if err != nil {
		return err
	}

	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	for _, x := range []u{admin, seller} {
		if _, err := tx.Exec(`
			INSERT INTO users(id,username,name,password_hash,role)
			VALUES(?,?,?,?,?)
			ON CONFLICT(username) DO NOTHING
		`, x.ID, x.Username, x.Name, x.Hash, x.Role); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func isUniqueViolation(err error) bool {
	var se *sqlite.Error
	if errors.As(err, &se) {
		return se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
	}
	return false
}

// withTx runs fn inside a transaction and commits when fn returns nil.
func withTx(ctx context.Context, db *sqlx.DB, fn func(tx *sqlx.Tx) error) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()
	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}
