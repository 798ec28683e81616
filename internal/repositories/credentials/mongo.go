package credentials

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/vaultkeeper/internal/common"
	"github.com/dmitrijs2005/vaultkeeper/internal/models"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// CollectionName is the MongoDB collection holding credential documents.
const CollectionName = "credentials"

type credentialDocument struct {
	ID         string    `bson:"_id"`
	Owner      string    `bson:"owner"`
	Service    string    `bson:"service"`
	Account    string    `bson:"account"`
	Ciphertext string    `bson:"ciphertext"`
	Nonce      string    `bson:"nonce"`
	CreatedAt  time.Time `bson:"created_at"`
	UpdatedAt  time.Time `bson:"updated_at"`
}

func toDocument(rec *models.CredentialRecord) credentialDocument {
	ciphertext, nonce := rec.Envelope.Hex()
	return credentialDocument{
		ID:         rec.ID,
		Owner:      rec.Owner,
		Service:    rec.Service,
		Account:    rec.Account,
		Ciphertext: ciphertext,
		Nonce:      nonce,
		CreatedAt:  rec.CreatedAt,
		UpdatedAt:  rec.UpdatedAt,
	}
}

func (d credentialDocument) record() *models.CredentialRecord {
	return &models.CredentialRecord{
		ID:        d.ID,
		Owner:     d.Owner,
		Service:   d.Service,
		Account:   d.Account,
		Envelope:  envelopeFromColumns(d.Ciphertext, d.Nonce),
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func keyFilter(key models.IdentityKey) bson.D {
	return bson.D{
		{Key: "owner", Value: key.Owner},
		{Key: "service", Value: key.Service},
		{Key: "account", Value: key.Account},
	}
}

// MongoRepository implements Repository over a MongoDB collection. Call
// EnsureIndexes once before use so duplicate keys are rejected server-side.
type MongoRepository struct {
	coll *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{coll: db.Collection(CollectionName)}
}

// EnsureIndexes creates the unique identity-key index.
func (r *MongoRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "owner", Value: 1},
			{Key: "service", Value: 1},
			{Key: "account", Value: 1},
		},
		Options: options.Index().SetUnique(true).SetName("credentials_identity_key"),
	})
	if err != nil {
		return fmt.Errorf("create credentials index: %w", err)
	}
	return nil
}

func (r *MongoRepository) FindByKey(ctx context.Context, key models.IdentityKey) (*models.CredentialRecord, error) {
	var doc credentialDocument
	if err := r.coll.FindOne(ctx, keyFilter(key)).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("mongo error: %w", err)
	}
	return doc.record(), nil
}

func (r *MongoRepository) Insert(ctx context.Context, rec *models.CredentialRecord) error {
	if _, err := r.coll.InsertOne(ctx, toDocument(rec)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return common.ErrConflict
		}
		return fmt.Errorf("failed to insert credential: %w", err)
	}
	return nil
}

func (r *MongoRepository) Replace(ctx context.Context, rec *models.CredentialRecord) error {
	ciphertext, nonce := rec.Envelope.Hex()
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "ciphertext", Value: ciphertext},
		{Key: "nonce", Value: nonce},
		{Key: "updated_at", Value: rec.UpdatedAt},
	}}}

	res, err := r.coll.UpdateOne(ctx, keyFilter(rec.Key()), update)
	if err != nil {
		return fmt.Errorf("failed to replace credential: %w", err)
	}
	if res.MatchedCount == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *MongoRepository) DeleteByKey(ctx context.Context, key models.IdentityKey) (bool, error) {
	res, err := r.coll.DeleteOne(ctx, keyFilter(key))
	if err != nil {
		return false, fmt.Errorf("failed to delete credential: %w", err)
	}
	return res.DeletedCount > 0, nil
}

func (r *MongoRepository) ListByOwner(ctx context.Context, owner string) ([]models.CredentialRef, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "service", Value: 1}, {Key: "account", Value: 1}}).
		SetProjection(bson.D{{Key: "service", Value: 1}, {Key: "account", Value: 1}})

	cur, err := r.coll.Find(ctx, bson.D{{Key: "owner", Value: owner}}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to select credentials: %w", err)
	}

	var docs []credentialDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode credentials: %w", err)
	}

	result := make([]models.CredentialRef, 0, len(docs))
	for _, d := range docs {
		result = append(result, models.CredentialRef{Service: d.Service, Account: d.Account})
	}
	return result, nil
}
