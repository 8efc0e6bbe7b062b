package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/jhoicas/kardex-api/internal/domain"
	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/jhoicas/kardex-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre una colección MongoDB.
type ProductRepo struct {
	coll *mongo.Collection
	now  func() time.Time
}

// NewProductRepository construye el adaptador sobre db.collection.
func NewProductRepository(db *mongo.Database, collection string) *ProductRepo {
	return &ProductRepo{coll: db.Collection(collection), now: time.Now}
}

type productDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Unit      string             `bson:"unit"`
	Remarks   string             `bson:"remarks"`
	Stock     bsonDecimal        `bson:"stock"`
	TotalIn   bsonDecimal        `bson:"totalIn"`
	TotalOut  bsonDecimal        `bson:"totalOut"`
	Logs      []logDoc           `bson:"logs"`
	Revision  int64              `bson:"revision"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

type logDoc struct {
	ID       string      `bson:"id,omitempty"`
	Date     string      `bson:"date"`
	Type     string      `bson:"type"`
	Quantity bsonDecimal `bson:"quantity"`
	Remarks  string      `bson:"remarks"`
	Balance  bsonDecimal `bson:"balance"`
}

// EnsureIndexes crea el índice de listado por fecha de actualización.
func (r *ProductRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "updatedAt", Value: -1}},
	})
	if err != nil {
		return storeError("ensure indexes", err)
	}
	return nil
}

// Create inserta el producto; el ObjectID generado se asigna a product.ID.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	doc := toDoc(product)
	doc.ID = primitive.NewObjectID()
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return storeError("insert product", err)
	}
	product.ID = doc.ID.Hex()
	return nil
}

// GetByID obtiene un producto con su kardex; IDs que no son ObjectID no existen.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	var doc productDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, storeError("get product", err)
	}
	return fromDoc(&doc), nil
}

// List lista productos sin logs (proyección), más recientes primero.
func (r *ProductRepo) List(ctx context.Context, limit, offset int) ([]*entity.Product, error) {
	opts := options.Find().
		SetProjection(bson.M{"logs": 0}).
		SetSort(bson.D{{Key: "updatedAt", Value: -1}, {Key: "_id", Value: 1}}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))
	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, storeError("list products", err)
	}
	defer cur.Close(ctx)

	list := make([]*entity.Product, 0)
	for cur.Next(ctx) {
		var doc productDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode product: %w", err)
		}
		p := fromDoc(&doc)
		p.Logs = nil
		list = append(list, p)
	}
	if err := cur.Err(); err != nil {
		return nil, storeError("list products", err)
	}
	return list, nil
}

// Update actualiza name, unit, remarks y updatedAt con $set; no toca logs ni totales.
func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	oid, err := primitive.ObjectIDFromHex(product.ID)
	if err != nil {
		return fmt.Errorf("%w: producto %s", domain.ErrNotFound, product.ID)
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"name":      product.Name,
		"unit":      product.Unit,
		"remarks":   product.Remarks,
		"updatedAt": product.UpdatedAt,
	}})
	if err != nil {
		return storeError("update product", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%w: producto %s", domain.ErrNotFound, product.ID)
	}
	return nil
}

// Delete elimina el documento completo (producto y kardex).
func (r *ProductRepo) Delete(ctx context.Context, id string) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, nil
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return 0, storeError("delete product", err)
	}
	return res.DeletedCount, nil
}

// SaveLedger reemplaza logs y totales en un único UpdateOne filtrado por revisión.
// Los documentos previos sin campo revision se tratan como revisión 0.
func (r *ProductRepo) SaveLedger(ctx context.Context, id string, expectedRevision int64, snap entity.LedgerSnapshot) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: producto %s", domain.ErrNotFound, id)
	}
	filter := bson.M{"_id": oid, "revision": expectedRevision}
	if expectedRevision == 0 {
		filter = bson.M{"_id": oid, "$or": bson.A{
			bson.M{"revision": 0},
			bson.M{"revision": bson.M{"$exists": false}},
		}}
	}
	update := bson.M{
		"$set": bson.M{
			"logs":      toLogDocs(snap.Logs),
			"stock":     bsonDecimal{snap.Stock},
			"totalIn":   bsonDecimal{snap.TotalIn},
			"totalOut":  bsonDecimal{snap.TotalOut},
			"updatedAt": r.now().UTC(),
		},
		"$inc": bson.M{"revision": 1},
	}
	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return storeError("save ledger", err)
	}
	if res.MatchedCount == 1 {
		return nil
	}

	n, err := r.coll.CountDocuments(ctx, bson.M{"_id": oid})
	if err != nil {
		return storeError("save ledger", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: producto %s", domain.ErrNotFound, id)
	}
	return fmt.Errorf("%w: revisión distinta de %d", domain.ErrConflict, expectedRevision)
}

// Ping verifica la conexión con el primario.
func (r *ProductRepo) Ping(ctx context.Context) error {
	if err := r.coll.Database().Client().Ping(ctx, readpref.Primary()); err != nil {
		return storeError("ping", err)
	}
	return nil
}

func storeError(op string, err error) error {
	if mongo.IsNetworkError(err) || mongo.IsTimeout(err) || errors.Is(err, mongo.ErrClientDisconnected) {
		return fmt.Errorf("%w: %s: %w", domain.ErrStoreUnavailable, op, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func toDoc(p *entity.Product) *productDoc {
	return &productDoc{
		Name:      p.Name,
		Unit:      p.Unit,
		Remarks:   p.Remarks,
		Stock:     bsonDecimal{p.Stock},
		TotalIn:   bsonDecimal{p.TotalIn},
		TotalOut:  bsonDecimal{p.TotalOut},
		Logs:      toLogDocs(p.Logs),
		Revision:  p.Revision,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func fromDoc(doc *productDoc) *entity.Product {
	logs := make([]entity.LedgerEntry, 0, len(doc.Logs))
	for _, l := range doc.Logs {
		logs = append(logs, entity.LedgerEntry{
			ID:       l.ID,
			Date:     l.Date,
			Type:     l.Type,
			Quantity: l.Quantity.Decimal,
			Remarks:  l.Remarks,
			Balance:  l.Balance.Decimal,
		})
	}
	return &entity.Product{
		ID:        doc.ID.Hex(),
		Name:      doc.Name,
		Unit:      doc.Unit,
		Remarks:   doc.Remarks,
		Stock:     doc.Stock.Decimal,
		TotalIn:   doc.TotalIn.Decimal,
		TotalOut:  doc.TotalOut.Decimal,
		Logs:      logs,
		Revision:  doc.Revision,
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}
}

func toLogDocs(logs []entity.LedgerEntry) []logDoc {
	out := make([]logDoc, 0, len(logs))
	for _, l := range logs {
		out = append(out, logDoc{
			ID:       l.ID,
			Date:     l.Date,
			Type:     l.Type,
			Quantity: bsonDecimal{l.Quantity},
			Remarks:  l.Remarks,
			Balance:  bsonDecimal{l.Balance},
		})
	}
	return out
}
