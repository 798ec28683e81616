package credentials

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func TestMongoDocument_RoundTrip(t *testing.T) {
	rec := sampleRecord("john", "Gmail", "john@x.com", 0x3C)

	doc := toDocument(rec)
	assert.Equal(t, rec.ID, doc.ID)
	assert.Equal(t, "3c3c3c", doc.Ciphertext)
	assert.Equal(t, "a03c", doc.Nonce)

	back := doc.record()
	assert.Equal(t, rec.Key(), back.Key())
	assert.Equal(t, rec.Envelope, back.Envelope)
}

func TestMongoDocument_BSON(t *testing.T) {
	doc := toDocument(sampleRecord("john", "Gmail", "john@x.com", 1))

	raw, err := bson.Marshal(doc)
	assert.NoError(t, err)

	var decoded credentialDocument
	assert.NoError(t, bson.Unmarshal(raw, &decoded))
	assert.Equal(t, doc.ID, decoded.ID)
	assert.Equal(t, doc.Ciphertext, decoded.Ciphertext)
	assert.True(t, doc.CreatedAt.Equal(decoded.CreatedAt) || doc.CreatedAt.Sub(decoded.CreatedAt) < 1e6)
}

func TestMongoKeyFilter(t *testing.T) {
	f := keyFilter(pgKey)
	assert.Equal(t, bson.D{
		{Key: "owner", Value: "john"},
		{Key: "service", Value: "Gmail"},
		{Key: "account", Value: "john@x.com"},
	}, f)
}
