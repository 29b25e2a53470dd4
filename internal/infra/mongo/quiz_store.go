package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"classquiz/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const quizCollection = "quizzes"

// QuizStore reads and writes quiz documents in MongoDB, the document store
// the surrounding REST layer persists to. It satisfies the loader interfaces
// used by the caching repositories.
type QuizStore struct {
	collection *mongo.Collection
}

type quizDocument struct {
	ID        string      `bson:"_id"`
	Data      domain.Quiz `bson:"data"`
	CreatedAt time.Time   `bson:"createdAt"`
	UpdatedAt time.Time   `bson:"updatedAt"`
}

func NewQuizStore(db *mongo.Database) *QuizStore {
	return &QuizStore{collection: db.Collection(quizCollection)}
}

// Connect dials MongoDB and verifies the connection.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return client, nil
}

func (s *QuizStore) LoadQuiz(ctx context.Context, quizID string) (domain.Quiz, error) {
	var doc quizDocument
	err := s.collection.FindOne(ctx, bson.M{"_id": quizID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.Quiz{}, domain.ErrQuizNotFound
	}
	if err != nil {
		return domain.Quiz{}, fmt.Errorf("load quiz: %w", err)
	}
	doc.Data.ID = quizID
	return doc.Data, nil
}

// SaveQuiz upserts a quiz document, keyed by quiz ID.
func (s *QuizStore) SaveQuiz(ctx context.Context, quiz domain.Quiz) error {
	now := time.Now()
	_, err := s.collection.UpdateOne(ctx,
		bson.M{"_id": quiz.ID},
		bson.M{
			"$set":         bson.M{"data": quiz, "updatedAt": now},
			"$setOnInsert": bson.M{"createdAt": now},
		},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("save quiz: %w", err)
	}
	return nil
}

// DeleteQuiz removes a quiz document; absent documents are not an error.
func (s *QuizStore) DeleteQuiz(ctx context.Context, quizID string) error {
	if _, err := s.collection.DeleteOne(ctx, bson.M{"_id": quizID}); err != nil {
		return fmt.Errorf("delete quiz: %w", err)
	}
	return nil
}
