package mongodb

import (
	"fmt"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// bsonDecimal guarda decimal.Decimal como Decimal128. Al leer acepta también los tipos
// numéricos que dejaban los documentos previos (double, int32, int64, string numérico).
type bsonDecimal struct {
	decimal.Decimal
}

func (d bsonDecimal) MarshalBSONValue() (bsontype.Type, []byte, error) {
	d128, err := primitive.ParseDecimal128(d.Decimal.String())
	if err != nil {
		return 0, nil, fmt.Errorf("decimal128 %s: %w", d.Decimal.String(), err)
	}
	return bson.MarshalValue(d128)
}

func (d *bsonDecimal) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	rv := bson.RawValue{Type: t, Value: data}
	switch t {
	case bsontype.Decimal128:
		v, err := decimal.NewFromString(rv.Decimal128().String())
		if err != nil {
			return fmt.Errorf("decimal128 inválido: %w", err)
		}
		d.Decimal = v
	case bsontype.Double:
		d.Decimal = decimal.NewFromFloat(rv.Double())
	case bsontype.Int32:
		d.Decimal = decimal.NewFromInt32(rv.Int32())
	case bsontype.Int64:
		d.Decimal = decimal.NewFromInt(rv.Int64())
	case bsontype.String:
		// Igual que Number(x) || 0: texto no numérico cuenta como cero.
		v, err := decimal.NewFromString(rv.StringValue())
		if err != nil {
			v = decimal.Zero
		}
		d.Decimal = v
	case bsontype.Null, bsontype.Undefined:
		d.Decimal = decimal.Zero
	default:
		return fmt.Errorf("tipo BSON %s no es numérico", t)
	}
	return nil
}
