package store

import "context"

// schemaStatements mirrors the original Cream & Roast SQLite layout.
// products/categories/prices/sales/sale_items/user_profiles carry live
// read/write paths; ingredients, product_recipes, inventory_movements
// and receipts are schema-only extension points.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS user_profiles (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT UNIQUE,
		password_hash TEXT,
		role TEXT NOT NULL CHECK (role IN ('cajero', 'administrador', 'empleado')),
		estado TEXT DEFAULT 'activo',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS product_categories (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		slug TEXT,
		display_order INTEGER DEFAULT 0,
		color TEXT,
		icon TEXT,
		is_active INTEGER DEFAULT 1,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS product_prices (
		id TEXT PRIMARY KEY,
		product_id TEXT,
		price REAL NOT NULL,
		valid_from DATETIME DEFAULT CURRENT_TIMESTAMP,
		valid_until DATETIME,
		created_by TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		category_id TEXT,
		price_id TEXT,
		description TEXT,
		image_url TEXT,
		track_stock INTEGER DEFAULT 0,
		current_stock INTEGER DEFAULT 0,
		min_stock INTEGER DEFAULT 0,
		max_stock INTEGER DEFAULT 0,
		estado TEXT DEFAULT 'activo',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS sales (
		id TEXT PRIMARY KEY,
		sale_number TEXT UNIQUE NOT NULL,
		cashier_id TEXT,
		total REAL NOT NULL,
		payment_method TEXT CHECK (payment_method IN ('efectivo', 'tarjeta', 'yape')),
		payment_reference TEXT,
		descuento REAL DEFAULT 0,
		impuestos REAL DEFAULT 0,
		estado TEXT DEFAULT 'completada' CHECK (estado IN ('completada', 'cancelada', 'devuelta')),
		razon_cancelacion TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS sale_items (
		id TEXT PRIMARY KEY,
		sale_id TEXT NOT NULL,
		product_id TEXT,
		quantity INTEGER NOT NULL,
		unit_price REAL NOT NULL,
		subtotal REAL NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS ingredients (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		unit TEXT,
		stock_actual REAL NOT NULL DEFAULT 0,
		stock_minimo REAL DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS product_recipes (
		id TEXT PRIMARY KEY,
		product_id TEXT,
		ingredient_id TEXT,
		cantidad_requerida REAL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS inventory_movements (
		id TEXT PRIMARY KEY,
		ingredient_id TEXT,
		tipo TEXT CHECK (tipo IN ('entrada', 'salida', 'ajuste')),
		cantidad REAL,
		responsable_id TEXT,
		razon TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS receipts (
		id TEXT PRIMARY KEY,
		sale_id TEXT UNIQUE,
		receipt_type TEXT DEFAULT 'boleta',
		receipt_number TEXT UNIQUE,
		html_content TEXT,
		pdf_url TEXT,
		printed_at DATETIME,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
}

// InitSchema creates the tables for the file-backed store. MySQL
// deployments are expected to be migrated externally, so this is a
// no-op there.
func (s *Store) InitSchema(ctx context.Context) error {
	if s.driver != "sqlite" {
		return nil
	}
	for _, stmt := range schemaStatements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	s.log.Info("sqlite schema initialized")
	return nil
}
