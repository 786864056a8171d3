package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"edu-backoffice/internal/model"
)

type userDocument struct {
	ID        primitive.ObjectID `bson:"_id"`
	Username  string             `bson:"username"`
	Email     string             `bson:"email"`
	Name      string             `bson:"name"`
	Role      string             `bson:"role"`
	Status    string             `bson:"status"`
	Password  string             `bson:"password"`
	CreatedAt time.Time          `bson:"createdAt"`
}

// MongoCredentialStore authenticates against the platform's users collection.
type MongoCredentialStore struct {
	users *mongo.Collection
}

func NewMongoCredentialStore(users *mongo.Collection) *MongoCredentialStore {
	return &MongoCredentialStore{users: users}
}

func (r *MongoCredentialStore) FindByUsername(ctx context.Context, username string, role model.Role) (model.Credential, error) {
	return r.findOne(ctx, bson.M{
		"username": caseInsensitiveEquals(username),
		"role":     string(role),
	})
}

func (r *MongoCredentialStore) FindByEmail(ctx context.Context, email string, role model.Role) (model.Credential, error) {
	return r.findOne(ctx, bson.M{
		"email": caseInsensitiveEquals(email),
		"role":  string(role),
	})
}

func (r *MongoCredentialStore) findOne(ctx context.Context, filter bson.M) (model.Credential, error) {
	var doc userDocument
	err := r.users.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.Credential{}, model.ErrCredentialNotFound
	}
	if err != nil {
		return model.Credential{}, fmt.Errorf("find credential: %w", err)
	}

	role, ok := model.ParseRole(doc.Role)
	if !ok {
		return model.Credential{}, model.ErrCredentialNotFound
	}

	name := doc.Name
	if name == "" {
		name = doc.Username
	}

	return model.Credential{
		Principal: model.Principal{
			ID:       doc.ID.Hex(),
			Role:     role,
			Name:     name,
			Email:    doc.Email,
			Username: doc.Username,
		},
		PasswordHash: doc.Password,
		CreatedAt:    doc.CreatedAt,
	}, nil
}

func caseInsensitiveEquals(value string) primitive.Regex {
	return primitive.Regex{
		Pattern: "^" + regexp.QuoteMeta(strings.TrimSpace(value)) + "$",
		Options: "i",
	}
}
