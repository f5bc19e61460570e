package filters

import (
	"encoding/json"
	"sort"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Canonical serializes a filter predicate into deterministic JSON: map keys
// are emitted in sorted order at every nesting level and ObjectIDs as their
// hex form. Two logically identical filters always produce the same string,
// which is what makes it usable inside a cache key. encoding/json alone is
// not enough because bson.M nests maps and driver types arbitrarily.
func Canonical(filter bson.M) string {
	var sb strings.Builder
	writeCanonical(&sb, filter)
	return sb.String()
}

func writeCanonical(sb *strings.Builder, v interface{}) {
	switch t := v.(type) {
	case bson.M:
		writeCanonicalMap(sb, t)
	case map[string]interface{}:
		writeCanonicalMap(sb, t)
	case bson.A:
		writeCanonicalSlice(sb, t)
	case []interface{}:
		writeCanonicalSlice(sb, t)
	case []primitive.ObjectID:
		sb.WriteByte('[')
		for i, id := range t {
			if i > 0 {
				sb.WriteByte(',')
			}
			writeCanonical(sb, id)
		}
		sb.WriteByte(']')
	case primitive.ObjectID:
		b, _ := json.Marshal(t.Hex())
		sb.Write(b)
	case primitive.Regex:
		writeCanonicalMap(sb, map[string]interface{}{"$options": t.Options, "$regex": t.Pattern})
	default:
		b, err := json.Marshal(t)
		if err != nil {
			sb.WriteString("null")
			return
		}
		sb.Write(b)
	}
}

func writeCanonicalMap(sb *strings.Builder, m map[string]interface{}) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	sb.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			sb.WriteByte(',')
		}
		b, _ := json.Marshal(k)
		sb.Write(b)
		sb.WriteByte(':')
		writeCanonical(sb, m[k])
	}
	sb.WriteByte('}')
}

func writeCanonicalSlice(sb *strings.Builder, s []interface{}) {
	sb.WriteByte('[')
	for i, v := range s {
		if i > 0 {
			sb.WriteByte(',')
		}
		writeCanonical(sb, v)
	}
	sb.WriteByte(']')
}
