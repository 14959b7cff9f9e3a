package store

import (
	"context"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"quickbuy/internal/models"

	_ "modernc.org/sqlite"
)

// The store tests run the real SQL against an in-memory sqlite database.
// Placeholders, LIKE semantics, and unique keys behave the same as MySQL for
// everything the stores emit.
const testSchema = `
CREATE TABLE users (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	username TEXT NOT NULL,
	email TEXT NOT NULL,
	password_hash TEXT NOT NULL,
	role TEXT NOT NULL,
	shop_name TEXT,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	UNIQUE (email),
	UNIQUE (username),
	UNIQUE (shop_name)
);
CREATE TABLE products (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	price REAL NOT NULL,
	category TEXT NOT NULL DEFAULT '',
	brand TEXT NOT NULL DEFAULT '',
	image TEXT NOT NULL DEFAULT '',
	stock INTEGER NOT NULL DEFAULT 0,
	seller_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	discount_percentage REAL NOT NULL DEFAULT 0,
	rating REAL NOT NULL DEFAULT 0,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	db, err := sqlx.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	// each connection to :memory: is its own database
	db.SetMaxOpenConns(1)

	_, err = db.Exec("PRAGMA foreign_keys = ON")
	require.NoError(t, err)
	_, err = db.Exec(testSchema)
	require.NoError(t, err)
	return db
}

func insertSeller(t *testing.T, db *sqlx.DB, username, email, shopName string) int64 {
	t.Helper()
	res, err := db.Exec(
		"INSERT INTO users (username, email, password_hash, role, shop_name) VALUES (?, ?, ?, ?, ?)",
		username, email, "hash", "seller", shopName,
	)
	require.NoError(t, err)
	id, err := res.LastInsertId()
	require.NoError(t, err)
	return id
}

type testProduct struct {
	name      string
	desc      string
	price     float64
	category  string
	brand     string
	rating    float64
	createdAt time.Time
	sellerID  int64
}

func insertProduct(t *testing.T, db *sqlx.DB, p testProduct) int64 {
	t.Helper()
	if p.createdAt.IsZero() {
		p.createdAt = time.Now().UTC()
	}
	res, err := db.Exec(
		`INSERT INTO products (name, description, price, category, brand, stock, seller_id, rating, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.name, p.desc, p.price, p.category, p.brand, 1, p.sellerID, p.rating, p.createdAt, p.createdAt,
	)
	require.NoError(t, err)
	id, err := res.LastInsertId()
	require.NoError(t, err)
	return id
}

func listAll(t *testing.T, store *ProductStore, f models.ProductFilter) ([]models.Product, int) {
	t.Helper()
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 {
		f.PageSize = 100
	}
	items, total, err := store.List(context.Background(), f)
	require.NoError(t, err)
	return items, total
}
