// Package mongodb implementa los puertos de persistencia sobre MongoDB (colección products).
package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/jhoicas/kardex-api/pkg/config"
)

// ProductsCollection nombre base de la colección; se antepone MONGO_COLLECTION_PREFIX.
const ProductsCollection = "products"

// Connect crea el cliente, verifica la conexión y devuelve la base de datos configurada.
// El llamador es dueño del cliente y debe cerrarlo con Disconnect al apagar.
func Connect(ctx context.Context, cfg config.MongoConfig) (*mongo.Client, *mongo.Database, error) {
	opts := options.Client().
		ApplyURI(cfg.URI).
		SetServerSelectionTimeout(10 * time.Second).
		SetMaxPoolSize(25)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("conectar MongoDB: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("ping MongoDB: %w", err)
	}
	return client, client.Database(cfg.Database), nil
}

// CollectionName aplica el prefijo por inquilino al nombre base.
func CollectionName(prefix, base string) string {
	return prefix + base
}
