package postgres

import (
	"context"
	"fmt"
)

// Schéma bootstrapé au démarrage, idempotent (IF NOT EXISTS partout).
// Les index uniques sur users.email, LOWER(categories.nom) et
// LOWER(products.nom) sont les vrais gardiens d'unicité : une course entre
// deux créations concurrentes du même nom se résout ici en 23505.
const schema = `
CREATE EXTENSION IF NOT EXISTS pg_trgm;

CREATE TABLE IF NOT EXISTS users (
	id            UUID PRIMARY KEY,
	nom           TEXT NOT NULL,
	prenom        TEXT NOT NULL,
	email         TEXT NOT NULL,
	password_hash TEXT NOT NULL,
	role          TEXT NOT NULL CHECK (role IN ('client', 'admin')),
	telephone     TEXT NOT NULL DEFAULT '',
	adresse       TEXT NOT NULL DEFAULT '',
	actif         BOOLEAN NOT NULL DEFAULT TRUE,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE UNIQUE INDEX IF NOT EXISTS users_email_key ON users (LOWER(email));
CREATE INDEX IF NOT EXISTS users_role_idx ON users (role);

CREATE TABLE IF NOT EXISTS categories (
	id                UUID PRIMARY KEY,
	nom               TEXT NOT NULL,
	description       TEXT NOT NULL DEFAULT '',
	slug              TEXT NOT NULL,
	image             TEXT NOT NULL DEFAULT 'default-category.jpg',
	date_ajout        TIMESTAMPTZ NOT NULL DEFAULT now(),
	date_modification TIMESTAMPTZ NOT NULL DEFAULT now(),
	actif             BOOLEAN NOT NULL DEFAULT TRUE
);
CREATE UNIQUE INDEX IF NOT EXISTS categories_nom_key ON categories (LOWER(nom));
CREATE UNIQUE INDEX IF NOT EXISTS categories_slug_key ON categories (slug);

CREATE TABLE IF NOT EXISTS products (
	id                UUID PRIMARY KEY,
	nom               TEXT NOT NULL,
	description       TEXT NOT NULL DEFAULT '',
	prix              NUMERIC(12,2) NOT NULL CHECK (prix >= 0),
	categorie_id      UUID NOT NULL REFERENCES categories (id),
	quantite_stock    INTEGER NOT NULL DEFAULT 0 CHECK (quantite_stock >= 0),
	images            TEXT[] NOT NULL DEFAULT '{}',
	image_principale  TEXT NOT NULL DEFAULT 'default-product.jpg',
	date_ajout        TIMESTAMPTZ NOT NULL DEFAULT now(),
	date_modification TIMESTAMPTZ NOT NULL DEFAULT now(),
	actif             BOOLEAN NOT NULL DEFAULT TRUE
);
CREATE UNIQUE INDEX IF NOT EXISTS products_nom_key ON products (LOWER(nom));
CREATE INDEX IF NOT EXISTS products_categorie_idx ON products (categorie_id);
CREATE INDEX IF NOT EXISTS products_recherche_idx ON products USING gin (nom gin_trgm_ops, description gin_trgm_ops);
`

// Migrate applique le schéma. À appeler une fois au démarrage, avant le seed admin.
func Migrate(ctx context.Context, q Querier) error {
	if _, err := q.Exec(ctx, schema); err != nil {
		return fmt.Errorf("migration du schéma: %w", err)
	}
	return nil
}
