package mongo

import (
	"context"
	"errors"
	"time"

	"github.com/agrimap/market/internal/catalog/app"
	"github.com/agrimap/market/internal/catalog/domain"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type productDoc struct {
	ID                string    `bson:"_id"`
	Name              string    `bson:"name"`
	Description       string    `bson:"description"`
	Price             float64   `bson:"price"`
	ImageURL          string    `bson:"image_url"`
	Region            string    `bson:"region"`
	Category          string    `bson:"category"`
	ProducerName      string    `bson:"producer_name"`
	QuantityAvailable int       `bson:"quantity_available"`
	Unit              string    `bson:"unit"`
	CreatedAt         time.Time `bson:"created_at"`
	UpdatedAt         time.Time `bson:"updated_at"`
}

type ProductRepo struct {
	col *mongo.Collection
}

func NewProductRepo(db *mongo.Database) *ProductRepo {
	return &ProductRepo{col: db.Collection("products")}
}

func (r *ProductRepo) Create(ctx context.Context, p domain.Product) (domain.Product, error) {
	now := time.Now().UTC()
	doc := productDoc{
		ID:                uuid.NewString(),
		Name:              p.Name,
		Description:       p.Description,
		Price:             p.Price,
		ImageURL:          p.ImageURL,
		Region:            p.Region,
		Category:          p.Category,
		ProducerName:      p.ProducerName,
		QuantityAvailable: p.QuantityAvailable,
		Unit:              p.Unit,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return domain.Product{}, err
	}
	return toDomain(doc), nil
}

func (r *ProductRepo) Get(ctx context.Context, id string) (domain.Product, error) {
	var doc productDoc
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.Product{}, app.ErrNotFound
	}
	if err != nil {
		return domain.Product{}, err
	}
	return toDomain(doc), nil
}

func (r *ProductRepo) List(ctx context.Context, filter domain.Filter) ([]domain.Product, error) {
	query := bson.M{}
	if filter.Region != "" {
		query["region"] = filter.Region
	}
	if filter.Category != "" {
		query["category"] = filter.Category
	}

	cur, err := r.col.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []productDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	out := make([]domain.Product, 0, len(docs))
	for _, doc := range docs {
		out = append(out, toDomain(doc))
	}
	return out, nil
}

func (r *ProductRepo) Count(ctx context.Context) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{})
}

func toDomain(doc productDoc) domain.Product {
	return domain.Product{
		ID:                doc.ID,
		Name:              doc.Name,
		Description:       doc.Description,
		Price:             doc.Price,
		ImageURL:          doc.ImageURL,
		Region:            doc.Region,
		Category:          doc.Category,
		ProducerName:      doc.ProducerName,
		QuantityAvailable: doc.QuantityAvailable,
		Unit:              doc.Unit,
		CreatedAt:         doc.CreatedAt,
		UpdatedAt:         doc.UpdatedAt,
	}
}
