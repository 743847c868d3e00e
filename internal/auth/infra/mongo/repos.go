package mongo

import (
	"context"
	"errors"
	"time"

	"github.com/agrimap/market/internal/auth/app"
	"github.com/agrimap/market/internal/auth/domain"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type userDoc struct {
	ID        string    `bson:"_id"`
	Email     string    `bson:"email"`
	Name      string    `bson:"name"`
	Picture   string    `bson:"picture"`
	CreatedAt time.Time `bson:"created_at"`
}

type UserRepo struct {
	col *mongo.Collection
}

func NewUserRepo(db *mongo.Database) *UserRepo {
	return &UserRepo{col: db.Collection("users")}
}

func (r *UserRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (r *UserRepo) UpsertByEmail(ctx context.Context, u domain.User) (domain.User, error) {
	now := time.Now().UTC()

	update := bson.M{
		"$set": bson.M{"name": u.Name, "picture": u.Picture},
		"$setOnInsert": bson.M{
			"_id":        uuid.NewString(),
			"email":      u.Email,
			"created_at": now,
		},
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var doc userDoc
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"email": u.Email}, update, opts).Decode(&doc); err != nil {
		return domain.User{}, err
	}
	return userToDomain(doc), nil
}

func (r *UserRepo) Get(ctx context.Context, id string) (domain.User, error) {
	var doc userDoc
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.User{}, app.ErrUnauthenticated
	}
	if err != nil {
		return domain.User{}, err
	}
	return userToDomain(doc), nil
}

func userToDomain(doc userDoc) domain.User {
	return domain.User{
		ID:        doc.ID,
		Email:     doc.Email,
		Name:      doc.Name,
		Picture:   doc.Picture,
		CreatedAt: doc.CreatedAt,
	}
}

// sessionDoc stores expires_at as a BSON datetime, written exactly once at
// this boundary. Nothing downstream ever sees a string-typed expiry.
type sessionDoc struct {
	Token     string    `bson:"_id"`
	UserID    string    `bson:"user_id"`
	ExpiresAt time.Time `bson:"expires_at"`
	CreatedAt time.Time `bson:"created_at"`
}

type SessionRepo struct {
	col *mongo.Collection
}

func NewSessionRepo(db *mongo.Database) *SessionRepo {
	return &SessionRepo{col: db.Collection("sessions")}
}

// EnsureIndexes sets a TTL index so the store reaps expired sessions; the
// service still checks expiry itself, the index is cleanup only.
func (r *SessionRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "expires_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0),
	})
	return err
}

func (r *SessionRepo) Create(ctx context.Context, s domain.Session) error {
	_, err := r.col.InsertOne(ctx, sessionDoc{
		Token:     s.Token,
		UserID:    s.UserID,
		ExpiresAt: s.ExpiresAt.UTC(),
		CreatedAt: s.CreatedAt.UTC(),
	})
	return err
}

func (r *SessionRepo) Get(ctx context.Context, token string) (domain.Session, error) {
	var doc sessionDoc
	err := r.col.FindOne(ctx, bson.M{"_id": token}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.Session{}, app.ErrUnauthenticated
	}
	if err != nil {
		return domain.Session{}, err
	}

	return domain.Session{
		Token:     doc.Token,
		UserID:    doc.UserID,
		ExpiresAt: doc.ExpiresAt,
		CreatedAt: doc.CreatedAt,
	}, nil
}

func (r *SessionRepo) Delete(ctx context.Context, token string) error {
	_, err := r.col.DeleteOne(ctx, bson.M{"_id": token})
	return err
}
