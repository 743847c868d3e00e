package mongo

import (
	"context"
	"time"

	"github.com/agrimap/market/internal/cart/app"
	"github.com/agrimap/market/internal/cart/domain"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type lineDoc struct {
	ID           string    `bson:"_id"`
	UserID       string    `bson:"user_id"`
	SessionToken string    `bson:"session_token"`
	ProductID    string    `bson:"product_id"`
	Quantity     int       `bson:"quantity"`
	CreatedAt    time.Time `bson:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at"`
}

type LedgerRepo struct {
	col *mongo.Collection
}

func NewLedgerRepo(db *mongo.Database) *LedgerRepo {
	return &LedgerRepo{col: db.Collection("cart_lines")}
}

// EnsureIndexes enforces the one-line-per-(partition, product) invariant at
// the store level.
func (r *LedgerRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "user_id", Value: 1},
			{Key: "session_token", Value: 1},
			{Key: "product_id", Value: 1},
		},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// partitionFilter keeps the two partition kinds strictly disjoint: a guest
// filter never matches authenticated lines and vice versa.
func partitionFilter(p domain.Partition) bson.M {
	if p.IsAuthenticated() {
		return bson.M{"user_id": p.UserID}
	}
	return bson.M{"user_id": "", "session_token": p.SessionToken}
}

func lineFilter(p domain.Partition, productID string) bson.M {
	f := partitionFilter(p)
	f["product_id"] = productID
	return f
}

// AddQuantity is a single atomic increment-or-insert, so concurrent identical
// adds cannot lose an update. Two racing first-inserts can still collide on
// the unique index; the loser retries once and lands as an increment.
func (r *LedgerRepo) AddQuantity(ctx context.Context, p domain.Partition, productID string, qty int) (domain.CartLine, error) {
	return withDupKeyRetry(func() (domain.CartLine, error) {
		return r.addQuantity(ctx, p, productID, qty)
	})
}

func withDupKeyRetry(fn func() (domain.CartLine, error)) (domain.CartLine, error) {
	line, err := fn()
	if mongo.IsDuplicateKeyError(err) {
		line, err = fn()
	}
	return line, err
}

func (r *LedgerRepo) addQuantity(ctx context.Context, p domain.Partition, productID string, qty int) (domain.CartLine, error) {
	now := time.Now().UTC()

	update := bson.M{
		"$inc": bson.M{"quantity": qty},
		"$set": bson.M{"updated_at": now},
		"$setOnInsert": bson.M{
			"_id":           uuid.NewString(),
			"user_id":       p.UserID,
			"session_token": p.SessionToken,
			"product_id":    productID,
			"created_at":    now,
		},
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var doc lineDoc
	if err := r.col.FindOneAndUpdate(ctx, lineFilter(p, productID), update, opts).Decode(&doc); err != nil {
		return domain.CartLine{}, err
	}
	return toDomain(doc), nil
}

func (r *LedgerRepo) SetQuantity(ctx context.Context, p domain.Partition, productID string, qty int) error {
	res, err := r.col.UpdateOne(ctx, lineFilter(p, productID), bson.M{
		"$set": bson.M{"quantity": qty, "updated_at": time.Now().UTC()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return app.ErrNotFound
	}
	return nil
}

func (r *LedgerRepo) DeleteLine(ctx context.Context, p domain.Partition, productID string) (int64, error) {
	res, err := r.col.DeleteOne(ctx, lineFilter(p, productID))
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (r *LedgerRepo) ListLines(ctx context.Context, p domain.Partition) ([]domain.CartLine, error) {
	cur, err := r.col.Find(ctx, partitionFilter(p), options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []lineDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	out := make([]domain.CartLine, 0, len(docs))
	for _, doc := range docs {
		out = append(out, toDomain(doc))
	}
	return out, nil
}

func (r *LedgerRepo) DeletePartition(ctx context.Context, p domain.Partition) error {
	_, err := r.col.DeleteMany(ctx, partitionFilter(p))
	return err
}

func toDomain(doc lineDoc) domain.CartLine {
	return domain.CartLine{
		ID:        doc.ID,
		Partition: domain.Partition{UserID: doc.UserID, SessionToken: doc.SessionToken},
		ProductID: doc.ProductID,
		Quantity:  doc.Quantity,
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}
}
