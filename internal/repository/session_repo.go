package repository

import (
	"context"
	"time"

	"paircode/internal/model"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SessionRepo is the persistence boundary for session records. All lookups
// are keyed by the public session code. Missing records are reported as
// (nil, nil), not as an error.
type SessionRepo interface {
	Create(ctx context.Context, session *model.Session) error
	GetByCode(ctx context.Context, code string) (*model.Session, error)
	UpdateContent(ctx context.Context, code, content string) (*model.Session, error)
	UpdateLanguage(ctx context.Context, code, language string) (*model.Session, error)
	UpdateTitle(ctx context.Context, code, title string) (*model.Session, error)
	Delete(ctx context.Context, code string) (bool, error)
	List(ctx context.Context) ([]*model.Session, error)
}

type sessionRepo struct {
	collection *mongo.Collection
}

// NewSessionRepo creates a MongoDB-backed session repository.
func NewSessionRepo(db *mongo.Database) SessionRepo {
	return &sessionRepo{
		collection: db.Collection("sessions"),
	}
}

func (r *sessionRepo) Create(ctx context.Context, session *model.Session) error {
	if session.ID == "" {
		session.ID = primitive.NewObjectID().Hex()
	}

	_, err := r.collection.InsertOne(ctx, session)
	return err
}

func (r *sessionRepo) GetByCode(ctx context.Context, code string) (*model.Session, error) {
	var session model.Session
	err := r.collection.FindOne(ctx, map[string]interface{}{"code": code}).Decode(&session)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil // Session not found
		}
		return nil, err
	}

	return &session, nil
}

func (r *sessionRepo) UpdateContent(ctx context.Context, code, content string) (*model.Session, error) {
	return r.setField(ctx, code, "content", content)
}

func (r *sessionRepo) UpdateLanguage(ctx context.Context, code, language string) (*model.Session, error) {
	return r.setField(ctx, code, "language", language)
}

func (r *sessionRepo) UpdateTitle(ctx context.Context, code, title string) (*model.Session, error) {
	return r.setField(ctx, code, "title", title)
}

// setField overwrites a single field plus updatedAt in one atomic write.
// Last writer wins; there is no concurrency check.
func (r *sessionRepo) setField(ctx context.Context, code, field, value string) (*model.Session, error) {
	update := map[string]interface{}{
		"$set": map[string]interface{}{
			field:       value,
			"updatedAt": time.Now().UTC(),
		},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var session model.Session
	err := r.collection.FindOneAndUpdate(ctx, map[string]interface{}{"code": code}, update, opts).Decode(&session)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}

	return &session, nil
}

func (r *sessionRepo) Delete(ctx context.Context, code string) (bool, error) {
	res, err := r.collection.DeleteOne(ctx, map[string]interface{}{"code": code})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

func (r *sessionRepo) List(ctx context.Context) ([]*model.Session, error) {
	cursor, err := r.collection.Find(ctx, map[string]interface{}{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var sessions []*model.Session
	if err := cursor.All(ctx, &sessions); err != nil {
		return nil, err
	}

	return sessions, nil
}
