package db

import (
	"log"

	"github.com/jmoiron/sqlx"

	_ "github.com/go-sql-driver/mysql"
)

func InitDB(dbURL string) *sqlx.DB {
	database, err := sqlx.Connect("mysql", dbURL)
	if err != nil {
		log.Fatal("Could not connect to database:", err)
	}

	return database
}

// RunMigrations creates the schema if it does not exist. The unique keys on
// users back-stop the non-transactional check-then-insert during registration:
// two concurrent registrations with the same email cannot both land. Deleting
// a seller cascades to their products.
func RunMigrations(database *sqlx.DB) {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id INT AUTO_INCREMENT PRIMARY KEY,
			username VARCHAR(100) NOT NULL,
			email VARCHAR(100) NOT NULL,
			password_hash VARCHAR(255) NOT NULL,
			role VARCHAR(50) NOT NULL,
			shop_name VARCHAR(100),
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			UNIQUE KEY uq_users_email (email),
			UNIQUE KEY uq_users_username (username),
			UNIQUE KEY uq_users_shop_name (shop_name)
		);`,
		`CREATE TABLE IF NOT EXISTS products (
			id INT AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			description TEXT,
			price DECIMAL(10,2) NOT NULL,
			category VARCHAR(100),
			brand VARCHAR(100),
			image VARCHAR(255),
			stock INT NOT NULL DEFAULT 0,
			seller_id INT NOT NULL,
			discount_percentage DECIMAL(5,2) NOT NULL DEFAULT 0,
			rating DECIMAL(3,1) NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
			INDEX idx_products_category (category),
			INDEX idx_products_seller (seller_id),
			FOREIGN KEY (seller_id) REFERENCES users(id) ON DELETE CASCADE
		);`,
	}

	for _, q := range queries {
		_, err := database.Exec(q)
		if err != nil {
			log.Fatal("Migration error:", err)
		}
	}
	log.Println("Migrations completed")
}
