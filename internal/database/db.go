package database

import (
	"context"
	"fmt"
	"os"

	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

// ConnectDB apre il pool di connessioni verso Postgres usando DATABASE_URL.
// Su ogni connessione viene registrato il codec decimal, così le colonne
// NUMERIC vengono lette direttamente come decimal.Decimal.
func ConnectDB(ctx context.Context) (*pgxpool.Pool, error) {
	_ = godotenv.Load()

	url := os.Getenv("DATABASE_URL")
	if url == "" {
		return nil, fmt.Errorf("variabile d'ambiente DATABASE_URL non impostata")
	}

	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("DATABASE_URL non valido: %w", err)
	}
	cfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("errore di connessione al database: %w", err)
	}
	return pool, nil
}

// CreateTables crea lo schema se non esiste. Le foreign key su transazioni
// sono ON DELETE SET NULL: eliminare una carta non tocca le transazioni.
// Le categorie referenziate sono invece protette dal vincolo RESTRICT.
func CreateTables(ctx context.Context, pool *pgxpool.Pool) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS categorie (
			id SERIAL PRIMARY KEY,
			user_id BIGINT,
			nome TEXT NOT NULL,
			UNIQUE(user_id, nome)
		)`,
		`CREATE TABLE IF NOT EXISTS carte (
			id SERIAL PRIMARY KEY,
			user_id BIGINT,
			nome TEXT NOT NULL,
			UNIQUE(user_id, nome)
		)`,
		`CREATE TABLE IF NOT EXISTS transazioni (
			id SERIAL PRIMARY KEY,
			user_id BIGINT,
			descrizione TEXT,
			importo NUMERIC,
			data TIMESTAMP DEFAULT NOW(),
			categoria_id INTEGER REFERENCES categorie(id) ON DELETE RESTRICT,
			metodopagamento INTEGER REFERENCES carte(id) ON DELETE SET NULL
		)`,
	}

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("errore nella creazione delle tabelle: %w", err)
		}
	}
	return nil
}

// KeepAlive esegue una query banale per tenere sveglia l'istanza del database.
func KeepAlive(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, "SELECT 1"); err != nil {
		return fmt.Errorf("keep-alive fallito: %w", err)
	}
	return nil
}
