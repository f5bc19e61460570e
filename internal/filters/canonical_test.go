package filters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCanonicalSortsKeys(t *testing.T) {
	a := bson.M{"price": bson.M{"$lte": 100.0, "$gte": 10.0}, "name": "tv"}
	b := bson.M{"name": "tv", "price": bson.M{"$gte": 10.0, "$lte": 100.0}}

	assert.Equal(t, Canonical(a), Canonical(b))
	assert.Equal(t, `{"name":"tv","price":{"$gte":10,"$lte":100}}`, Canonical(a))
}

func TestCanonicalEmptyFilter(t *testing.T) {
	assert.Equal(t, "{}", Canonical(bson.M{}))
}

func TestCanonicalObjectIDsAsHex(t *testing.T) {
	id, _ := primitive.ObjectIDFromHex("665f1f77bcf86cd799439011")
	got := Canonical(bson.M{"brand": bson.M{"$in": []primitive.ObjectID{id}}})
	assert.Equal(t, `{"brand":{"$in":["665f1f77bcf86cd799439011"]}}`, got)
}

func TestCanonicalEmptyIn(t *testing.T) {
	got := Canonical(bson.M{"category": bson.M{"$in": []primitive.ObjectID{}}})
	assert.Equal(t, `{"category":{"$in":[]}}`, got)
}

func TestCanonicalRegexOperator(t *testing.T) {
	got := Canonical(bson.M{"name": bson.M{"$regex": "tv", "$options": "i"}})
	assert.Equal(t, `{"name":{"$options":"i","$regex":"tv"}}`, got)
}

func TestCanonicalPrimitiveRegex(t *testing.T) {
	got := Canonical(bson.M{"name": primitive.Regex{Pattern: "tv", Options: "i"}})
	assert.Equal(t, `{"name":{"$options":"i","$regex":"tv"}}`, got)
}

func TestCanonicalNestedArrays(t *testing.T) {
	got := Canonical(bson.M{"$or": bson.A{bson.M{"b": 1}, bson.M{"a": 2}}})
	assert.Equal(t, `{"$or":[{"b":1},{"a":2}]}`, got)
}
