package mongo

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/scrapeapi/accounts-api/internal/core/domain"
)

func TestUserDocument_BSONRoundTrip(t *testing.T) {
	created := time.Date(2026, 2, 3, 4, 5, 6, 0, time.FixedZone("X", 7200))
	in := &domain.User{Name: "alice", Email: "a@example.com", PasswordHash: "$2a$10$hash", CreatedAt: created}

	raw, err := bson.Marshal(toDocument(in))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var fields bson.M
	if err := bson.Unmarshal(raw, &fields); err != nil {
		t.Fatalf("unmarshal map: %v", err)
	}
	for _, key := range []string{"name", "password", "email", "created_at"} {
		if _, ok := fields[key]; !ok {
			t.Fatalf("missing field %q in %v", key, fields)
		}
	}

	var doc userDocument
	if err := bson.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	out := doc.toDomain()
	if out.Name != in.Name || out.Email != in.Email || out.PasswordHash != in.PasswordHash {
		t.Fatalf("unexpected user %+v", out)
	}
	if !out.CreatedAt.Equal(created) || out.CreatedAt.Location() != time.UTC {
		t.Fatalf("unexpected created_at %v", out.CreatedAt)
	}
}
