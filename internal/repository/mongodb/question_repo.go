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

type questionDocument struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Question      string             `bson:"question"`
	OptionA       string             `bson:"optionA"`
	OptionB       string             `bson:"optionB"`
	OptionC       string             `bson:"optionC"`
	OptionD       string             `bson:"optionD"`
	CorrectAnswer string             `bson:"correctAnswer"`
	CreatedAt     time.Time          `bson:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt"`
}

func newQuestionDocument(q *entity.Question) questionDocument {
	return questionDocument{
		ID:            primitive.NewObjectID(),
		Question:      q.Question,
		OptionA:       q.OptionA,
		OptionB:       q.OptionB,
		OptionC:       q.OptionC,
		OptionD:       q.OptionD,
		CorrectAnswer: q.CorrectAnswer,
		CreatedAt:     q.CreatedAt,
		UpdatedAt:     q.UpdatedAt,
	}
}

func (d questionDocument) toEntity() entity.Question {
	return entity.Question{
		ID:            d.ID.Hex(),
		Question:      d.Question,
		OptionA:       d.OptionA,
		OptionB:       d.OptionB,
		OptionC:       d.OptionC,
		OptionD:       d.OptionD,
		CorrectAnswer: d.CorrectAnswer,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

// QuestionRepo реализует repository.QuestionRepository поверх коллекции questions
type QuestionRepo struct {
	base
}

// NewQuestionRepo создает новый репозиторий вопросов
func NewQuestionRepo(db *mongo.Database, timeout time.Duration) *QuestionRepo {
	return &QuestionRepo{base: newBase(db, questionsCollection, timeout)}
}

// Create сохраняет вопрос и заполняет его ID
func (r *QuestionRepo) Create(ctx context.Context, question *entity.Question) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	doc := newQuestionDocument(question)
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return translateError(err)
	}
	question.ID = doc.ID.Hex()
	return nil
}

// CreateBatch сохраняет несколько вопросов одним запросом
func (r *QuestionRepo) CreateBatch(ctx context.Context, questions []entity.Question) error {
	if len(questions) == 0 {
		return nil
	}
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	docs := make([]interface{}, 0, len(questions))
	for i := range questions {
		doc := newQuestionDocument(&questions[i])
		questions[i].ID = doc.ID.Hex()
		docs = append(docs, doc)
	}
	_, err := r.col.InsertMany(ctx, docs)
	return translateError(err)
}

// List возвращает все вопросы в порядке создания
func (r *QuestionRepo) List(ctx context.Context) ([]entity.Question, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	return decodeQuestions(ctx, cur)
}

// FindByIDs загружает вопросы одним запросом $in. Некорректные id пропускаются.
func (r *QuestionRepo) FindByIDs(ctx context.Context, ids []string) ([]entity.Question, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			oids = append(oids, oid)
		}
	}
	if len(oids) == 0 {
		return []entity.Question{}, nil
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return nil, err
	}
	return decodeQuestions(ctx, cur)
}

// Sample возвращает до limit случайных вопросов через $sample
func (r *QuestionRepo) Sample(ctx context.Context, limit int) ([]entity.Question, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$sample", Value: bson.D{{Key: "size", Value: limit}}}},
	}
	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	return decodeQuestions(ctx, cur)
}

// Update применяет частичное обновление и возвращает новую версию вопроса
func (r *QuestionRepo) Update(ctx context.Context, id string, update entity.QuestionUpdate) (*entity.Question, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	set := bson.M{"updatedAt": time.Now().UTC()}
	for field, value := range update.Fields() {
		set[field] = value
	}

	var doc questionDocument
	err = r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return nil, translateError(err)
	}

	question := doc.toEntity()
	return &question, nil
}

// Delete удаляет вопрос по ID
func (r *QuestionRepo) Delete(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return translateError(mongo.ErrNoDocuments)
	}
	return nil
}

func decodeQuestions(ctx context.Context, cur *mongo.Cursor) ([]entity.Question, error) {
	defer cur.Close(ctx)

	questions := make([]entity.Question, 0)
	for cur.Next(ctx) {
		var doc questionDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		questions = append(questions, doc.toEntity())
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return questions, nil
}
