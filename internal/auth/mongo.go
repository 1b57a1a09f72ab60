package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"newsdesk/internal/core"
)

// UsersCollection is the document-store collection holding users
const UsersCollection = "users"

// MongoUserModel stores users in MongoDB
type MongoUserModel struct {
	connector *core.Connector
	logger    *core.Logger
}

// NewMongoUserModel creates a user model backed by the connector
func NewMongoUserModel(connector *core.Connector, logger *core.Logger) *MongoUserModel {
	return &MongoUserModel{
		connector: connector,
		logger:    logger,
	}
}

type userDocument struct {
	ID           bson.ObjectID `bson:"_id,omitempty"`
	Name         string        `bson:"name,omitempty"`
	Email        string        `bson:"email"`
	PasswordHash []byte        `bson:"password"`
	Role         string        `bson:"role"`
	CreatedAt    time.Time     `bson:"createdAt"`
}

func (d userDocument) toUser() *User {
	return &User{
		ID:        d.ID.Hex(),
		Name:      d.Name,
		Email:     d.Email,
		Password:  Password{hash: d.PasswordHash},
		Role:      d.Role,
		CreatedAt: d.CreatedAt.UTC(),
	}
}

func (m *MongoUserModel) collection(ctx context.Context) (*mongo.Collection, error) {
	db, err := m.connector.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	return db.Collection(UsersCollection), nil
}

// EnsureIndexes creates the unique email index
func (m *MongoUserModel) EnsureIndexes(ctx context.Context) error {
	coll, err := m.collection(ctx)
	if err != nil {
		return err
	}

	_, err = coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create users email index: %w", err)
	}
	return nil
}

// Insert creates a new user and fills in its id and creation time
func (m *MongoUserModel) Insert(ctx context.Context, user *User) error {
	coll, err := m.collection(ctx)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	doc := userDocument{
		ID:           bson.NewObjectID(),
		Name:         user.Name,
		Email:        user.Email,
		PasswordHash: user.Password.hash,
		Role:         user.Role,
		CreatedAt:    time.Now().UTC().Truncate(time.Millisecond),
	}

	if _, err := coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateEmail
		}
		return err
	}

	user.ID = doc.ID.Hex()
	user.CreatedAt = doc.CreatedAt
	return nil
}

// GetByEmail retrieves a user by email
func (m *MongoUserModel) GetByEmail(ctx context.Context, email string) (*User, error) {
	return m.findOne(ctx, bson.D{{Key: "email", Value: email}})
}

// GetByID retrieves a user by its ObjectID hex
func (m *MongoUserModel) GetByID(ctx context.Context, id string) (*User, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid user id %q: %w", id, err)
	}
	return m.findOne(ctx, bson.D{{Key: "_id", Value: oid}})
}

// SetRole changes the role of the user with the given email
func (m *MongoUserModel) SetRole(ctx context.Context, email, role string) error {
	coll, err := m.collection(ctx)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := coll.UpdateOne(ctx,
		bson.D{{Key: "email", Value: email}},
		bson.D{{Key: "$set", Value: bson.D{{Key: "role", Value: role}}}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func (m *MongoUserModel) findOne(ctx context.Context, filter bson.D) (*User, error) {
	coll, err := m.collection(ctx)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var doc userDocument
	if err := coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}

	return doc.toUser(), nil
}
