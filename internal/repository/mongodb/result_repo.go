package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/yourusername/quiz-api/internal/domain/entity"
)

type resultDocument struct {
	ID         primitive.ObjectID       `bson:"_id,omitempty"`
	UserID     primitive.ObjectID       `bson:"userId"`
	Score      int                      `bson:"score"`
	Total      int                      `bson:"total"`
	Percentage int                      `bson:"percentage"`
	Answers    []entity.SubmittedAnswer `bson:"answers"`
	Timestamp  time.Time                `bson:"timestamp"`
}

func (d resultDocument) toEntity() entity.Result {
	answers := entity.AnswerList(d.Answers)
	if answers == nil {
		answers = entity.AnswerList{}
	}
	return entity.Result{
		ID:         d.ID.Hex(),
		UserID:     d.UserID.Hex(),
		Score:      d.Score,
		Total:      d.Total,
		Percentage: d.Percentage,
		Answers:    answers,
		Timestamp:  d.Timestamp,
	}
}

// ResultRepo реализует repository.ResultRepository поверх коллекции results
type ResultRepo struct {
	base
}

// NewResultRepo создает новый репозиторий результатов
func NewResultRepo(db *mongo.Database, timeout time.Duration) *ResultRepo {
	return &ResultRepo{base: newBase(db, resultsCollection, timeout)}
}

// Create сохраняет результат попытки
func (r *ResultRepo) Create(ctx context.Context, result *entity.Result) error {
	userID, err := parseID(result.UserID)
	if err != nil {
		return err
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	doc := resultDocument{
		ID:         primitive.NewObjectID(),
		UserID:     userID,
		Score:      result.Score,
		Total:      result.Total,
		Percentage: result.Percentage,
		Answers:    []entity.SubmittedAnswer(result.Answers),
		Timestamp:  result.Timestamp,
	}
	if doc.Answers == nil {
		doc.Answers = []entity.SubmittedAnswer{}
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return translateError(err)
	}
	result.ID = doc.ID.Hex()
	return nil
}

// ListByUser возвращает результаты пользователя, новые первыми
func (r *ResultRepo) ListByUser(ctx context.Context, userID string) ([]entity.Result, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return []entity.Result{}, nil
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{"userId": oid},
		options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}, {Key: "_id", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	results := make([]entity.Result, 0)
	for cur.Next(ctx) {
		var doc resultDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		results = append(results, doc.toEntity())
	}
	return results, cur.Err()
}
