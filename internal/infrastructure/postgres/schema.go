package postgres

import (
	"context"
	"fmt"
)

// schema tabla de productos con el kardex embebido como documento JSONB.
// stock/total_in/total_out se derivan de logs y solo se escriben junto con ellos (SaveLedger).
const schema = `
CREATE TABLE IF NOT EXISTS products (
	id         UUID PRIMARY KEY,
	name       TEXT NOT NULL,
	unit       TEXT NOT NULL DEFAULT '',
	remarks    TEXT NOT NULL DEFAULT '',
	stock      NUMERIC NOT NULL DEFAULT 0,
	total_in   NUMERIC NOT NULL DEFAULT 0,
	total_out  NUMERIC NOT NULL DEFAULT 0,
	logs       JSONB NOT NULL DEFAULT '[]'::jsonb,
	revision   BIGINT NOT NULL DEFAULT 0,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_products_updated_at ON products (updated_at DESC);
`

// EnsureSchema crea la tabla e índices si no existen.
func EnsureSchema(ctx context.Context, q Querier) error {
	if _, err := q.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}
