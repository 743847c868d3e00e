package mongo

import (
	"context"
	"errors"
	"time"

	"github.com/agrimap/market/internal/checkout/app"
	"github.com/agrimap/market/internal/checkout/domain"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type transactionDoc struct {
	ID               string    `bson:"_id"`
	GatewaySessionID string    `bson:"gateway_session_id"`
	UserID           string    `bson:"user_id"`
	SessionToken     string    `bson:"session_token"`
	Amount           float64   `bson:"amount"`
	Currency         string    `bson:"currency"`
	Status           string    `bson:"status"`
	CreatedAt        time.Time `bson:"created_at"`
	UpdatedAt        time.Time `bson:"updated_at"`
}

type TransactionRepo struct {
	col *mongo.Collection
}

func NewTransactionRepo(db *mongo.Database) *TransactionRepo {
	return &TransactionRepo{col: db.Collection("payment_transactions")}
}

func (r *TransactionRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "gateway_session_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (r *TransactionRepo) Create(ctx context.Context, tx domain.PaymentTransaction) (domain.PaymentTransaction, error) {
	now := time.Now().UTC()
	doc := transactionDoc{
		ID:               uuid.NewString(),
		GatewaySessionID: tx.GatewaySessionID,
		UserID:           tx.Owner.UserID,
		SessionToken:     tx.Owner.SessionToken,
		Amount:           tx.Amount,
		Currency:         tx.Currency,
		Status:           string(tx.Status),
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return domain.PaymentTransaction{}, err
	}
	return toDomain(doc), nil
}

func (r *TransactionRepo) GetBySessionID(ctx context.Context, sessionID string) (domain.PaymentTransaction, error) {
	var doc transactionDoc
	err := r.col.FindOne(ctx, bson.M{"gateway_session_id": sessionID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.PaymentTransaction{}, app.ErrNotFound
	}
	if err != nil {
		return domain.PaymentTransaction{}, err
	}
	return toDomain(doc), nil
}

func (r *TransactionRepo) UpdateStatus(ctx context.Context, sessionID string, status domain.TransactionStatus) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"gateway_session_id": sessionID}, bson.M{
		"$set": bson.M{"status": string(status), "updated_at": time.Now().UTC()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return app.ErrNotFound
	}
	return nil
}

// MarkPaid is a single conditional update, so only one caller ever observes
// the pending-to-paid transition.
func (r *TransactionRepo) MarkPaid(ctx context.Context, sessionID string) (bool, error) {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"gateway_session_id": sessionID, "status": bson.M{"$ne": string(domain.StatusPaid)}},
		bson.M{"$set": bson.M{"status": string(domain.StatusPaid), "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount == 1, nil
}

func toDomain(doc transactionDoc) domain.PaymentTransaction {
	return domain.PaymentTransaction{
		ID:               doc.ID,
		GatewaySessionID: doc.GatewaySessionID,
		Owner: domain.Owner{
			UserID:       doc.UserID,
			SessionToken: doc.SessionToken,
		},
		Amount:    doc.Amount,
		Currency:  doc.Currency,
		Status:    domain.TransactionStatus(doc.Status),
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}
}
