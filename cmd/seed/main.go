// cmd/seed/main.go
package main

import (
	"database/sql"
	"fmt"
	"log"
	"math/rand"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/lib/pq"
	"github.com/urfave/cli/v2"
)

func newDBURLFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "db-url",
		Usage:    "Database connection string",
		Required: true,
		EnvVars:  []string{"DATABASE_URL"},
	}
}

func openDB(c *cli.Context) (*sql.DB, error) {
	db, err := sql.Open("pgx", c.String("db-url"))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
        id BIGSERIAL PRIMARY KEY,
        name TEXT NOT NULL,
        email TEXT NOT NULL UNIQUE,
        password_hash TEXT NOT NULL,
        is_admin BOOLEAN NOT NULL DEFAULT FALSE,
        created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
        updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
    )`,
	`CREATE TABLE IF NOT EXISTS products (
        id BIGSERIAL PRIMARY KEY,
        name TEXT NOT NULL,
        price NUMERIC(12,2) NOT NULL DEFAULT 0,
        category TEXT NOT NULL,
        sub_category TEXT NOT NULL,
        sizes TEXT[] NOT NULL DEFAULT '{}',
        colors TEXT[] NOT NULL DEFAULT '{}',
        image TEXT NOT NULL DEFAULT '',
        stock INT NOT NULL DEFAULT 0 CHECK (stock >= 0),
        is_trending BOOLEAN NOT NULL DEFAULT FALSE,
        created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
        updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
    )`,
	`CREATE TABLE IF NOT EXISTS orders (
        id BIGSERIAL PRIMARY KEY,
        order_number TEXT NOT NULL UNIQUE,
        user_id BIGINT NOT NULL REFERENCES users(id),
        total NUMERIC(12,2) NOT NULL DEFAULT 0,
        status INT NOT NULL DEFAULT 0,
        placed_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
        delivered_at TIMESTAMPTZ
    )`,
	`CREATE TABLE IF NOT EXISTS order_items (
        id BIGSERIAL PRIMARY KEY,
        order_id BIGINT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
        product_id BIGINT NOT NULL REFERENCES products(id),
        size TEXT NOT NULL DEFAULT '',
        color TEXT NOT NULL DEFAULT '',
        quantity INT NOT NULL CHECK (quantity >= 1),
        price NUMERIC(12,2) NOT NULL
    )`,
	`CREATE TABLE IF NOT EXISTS daily_sales (
        date DATE PRIMARY KEY,
        total_revenue NUMERIC(14,2) NOT NULL DEFAULT 0,
        top_selling_sub_category TEXT
    )`,
}

func initSchema(c *cli.Context) error {
	db, err := openDB(c)
	if err != nil {
		return err
	}
	defer db.Close()

	for _, stmt := range schema {
		if _, err := db.ExecContext(c.Context, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}

	log.Println("Schema applied")
	return nil
}

type productFixture struct {
	name        string
	price       float64
	category    string
	subCategory string
	sizes       []string
	colors      []string
	stock       int
}

var productFixtures = []productFixture{
	{"Classic White Tee", 2500, "Men", "T-Shirts", []string{"S", "M", "L", "XL"}, []string{"White"}, 120},
	{"Graphic Print Tee", 2900, "Men", "T-Shirts", []string{"M", "L"}, []string{"Black", "Grey"}, 80},
	{"Slim Fit Jeans", 7500, "Men", "Jeans", []string{"30", "32", "34"}, []string{"Indigo"}, 60},
	{"Relaxed Denim", 6900, "Men", "Jeans", []string{"32", "34", "36"}, []string{"Light Blue"}, 45},
	{"Bomber Jacket", 12500, "Men", "Jackets", []string{"M", "L", "XL"}, []string{"Olive"}, 25},
	{"Crop Top Tee", 2300, "Women", "T-Shirts", []string{"XS", "S", "M"}, []string{"Pink", "White"}, 95},
	{"High-Waist Jeans", 8200, "Women", "Jeans", []string{"26", "28", "30"}, []string{"Dark Blue"}, 55},
	{"Denim Jacket", 11000, "Women", "Jackets", []string{"S", "M", "L"}, []string{"Blue"}, 30},
	{"Summer Dress", 9500, "Women", "Dresses", []string{"S", "M", "L"}, []string{"Floral"}, 40},
	{"Evening Dress", 15500, "Women", "Dresses", []string{"S", "M"}, []string{"Black"}, 20},
}

func seedProducts(c *cli.Context) error {
	db, err := openDB(c)
	if err != nil {
		return err
	}
	defer db.Close()

	query := `
        INSERT INTO products (name, price, category, sub_category, sizes, colors, image, stock, is_trending)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, FALSE)
        ON CONFLICT DO NOTHING
    `

	for _, p := range productFixtures {
		image := fmt.Sprintf("/uploads/%s.jpg", slugify(p.name))
		if _, err := db.ExecContext(c.Context, query,
			p.name, p.price, p.category, p.subCategory,
			pq.Array(p.sizes), pq.Array(p.colors), image, p.stock,
		); err != nil {
			return fmt.Errorf("failed to seed product %q: %w", p.name, err)
		}
	}

	log.Printf("Seeded %d products", len(productFixtures))
	return nil
}

// seedRisks marks a few random products as low-stock and trending so the
// stockout dashboard has something to show.
func seedRisks(c *cli.Context) error {
	db, err := openDB(c)
	if err != nil {
		return err
	}
	defer db.Close()

	rows, err := db.QueryContext(c.Context, "SELECT id, name FROM products ORDER BY random() LIMIT 3")
	if err != nil {
		return fmt.Errorf("failed to pick products: %w", err)
	}
	defer rows.Close()

	type pick struct {
		id   int64
		name string
	}
	var picks []pick
	for rows.Next() {
		var p pick
		if err := rows.Scan(&p.id, &p.name); err != nil {
			return fmt.Errorf("failed to scan product: %w", err)
		}
		picks = append(picks, p)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate products: %w", err)
	}

	for _, p := range picks {
		stock := rand.Intn(5) + 1 // 1 to 5 items left
		if _, err := db.ExecContext(c.Context,
			"UPDATE products SET stock = $1, is_trending = TRUE, updated_at = NOW() WHERE id = $2",
			stock, p.id,
		); err != nil {
			return fmt.Errorf("failed to update product %d: %w", p.id, err)
		}
		log.Printf("UPDATED: %s -> Stock: %d, Trending: true", p.name, stock)
	}

	log.Println("Successfully simulated stock risks")
	return nil
}

func slugify(name string) string {
	out := make([]rune, 0, len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			out = append(out, r)
		case r >= 'A' && r <= 'Z':
			out = append(out, r+'a'-'A')
		case r == ' ' || r == '-':
			out = append(out, '-')
		}
	}
	return string(out)
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: could not load .env file: %v", err)
	}

	app := &cli.App{
		Name:  "seed",
		Usage: "Seed the database with initial data",
		Commands: []*cli.Command{
			{
				Name:   "init",
				Usage:  "Create the database schema",
				Flags:  []cli.Flag{newDBURLFlag()},
				Action: initSchema,
			},
			{
				Name:   "products",
				Usage:  "Seed the product catalog",
				Flags:  []cli.Flag{newDBURLFlag()},
				Action: seedProducts,
			},
			{
				Name:  "analytics",
				Usage: "Generate 30 days of orders and daily sales aggregates",
				Flags: []cli.Flag{
					newDBURLFlag(),
					&cli.IntFlag{
						Name:  "days",
						Usage: "Number of days to generate",
						Value: 30,
					},
				},
				Action: seedAnalytics,
			},
			{
				Name:   "risks",
				Usage:  "Mark a few products as low-stock and trending",
				Flags:  []cli.Flag{newDBURLFlag()},
				Action: seedRisks,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
