package mongo

import (
	"context"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"exprCalc/internal/domain"
	"exprCalc/internal/ports"
)

var _ ports.IOperationRepository = (*OperationRepo)(nil)

// operationDoc — документ в коллекции operations. _id совпадает с ID операции.
type operationDoc struct {
	ID         string    `bson:"_id"`
	UserID     string    `bson:"user_id"`
	Expression string    `bson:"expression"`
	Result     string    `bson:"result"`
	Kind       string    `bson:"kind"`
	CreatedAt  time.Time `bson:"created_at"`
}

func toDoc(op domain.Operation) operationDoc {
	return operationDoc{
		ID:         op.ID,
		UserID:     op.UserID,
		Expression: op.Expression,
		Result:     op.Result,
		Kind:       string(op.Kind),
		CreatedAt:  op.Timestamp,
	}
}

func (d operationDoc) toDomain() domain.Operation {
	return domain.Operation{
		ID:         d.ID,
		UserID:     d.UserID,
		Expression: d.Expression,
		Result:     d.Result,
		Kind:       domain.OperationKind(d.Kind),
		Timestamp:  d.CreatedAt.UTC(),
	}
}

// OperationRepo реализует ports.IOperationRepository для MongoDB.
type OperationRepo struct {
	client *Client
	log    *slog.Logger
}

// NewOperationRepo возвращает репозиторий операций.
func NewOperationRepo(client *Client, log *slog.Logger) *OperationRepo {
	return &OperationRepo{client: client, log: log}
}

// SaveOperation сохраняет операцию в коллекцию.
func (r *OperationRepo) SaveOperation(ctx context.Context, op domain.Operation) error {
	if _, err := r.client.Coll().InsertOne(ctx, toDoc(op)); err != nil {
		r.log.Debug("SaveOperation failed", "error", err)
		return err
	}
	return nil
}

// GetHistory возвращает историю операций пользователя (последние сначала).
func (r *OperationRepo) GetHistory(ctx context.Context, userID string) ([]domain.Operation, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}})
	cursor, err := r.client.Coll().Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		r.log.Debug("GetHistory failed", "error", err)
		return nil, err
	}
	defer cursor.Close(ctx)
	var docs []operationDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	list := make([]domain.Operation, 0, len(docs))
	for _, d := range docs {
		list = append(list, d.toDomain())
	}
	return list, nil
}

// ClearHistory удаляет все операции пользователя.
func (r *OperationRepo) ClearHistory(ctx context.Context, userID string) (int64, error) {
	res, err := r.client.Coll().DeleteMany(ctx, bson.M{"user_id": userID})
	if err != nil {
		r.log.Debug("ClearHistory failed", "error", err)
		return 0, err
	}
	return res.DeletedCount, nil
}

type countRow struct {
	N int64 `bson:"n"`
}

type kindRow struct {
	Kind  string `bson:"_id"`
	Count int64  `bson:"count"`
}

type statsRow struct {
	Total  []countRow `bson:"total"`
	Today  []countRow `bson:"today"`
	Week   []countRow `bson:"week"`
	ByKind []kindRow  `bson:"by_kind"`
}

func first(rows []countRow) int64 {
	if len(rows) == 0 {
		return 0
	}
	return rows[0].N
}

// statsPipeline считает все агрегаты одним $facet по операциям пользователя.
func statsPipeline(userID string, today, weekAgo time.Time) mongo.Pipeline {
	since := func(t time.Time) bson.A {
		return bson.A{
			bson.D{{Key: "$match", Value: bson.M{"created_at": bson.M{"$gte": t}}}},
			bson.D{{Key: "$count", Value: "n"}},
		}
	}
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"user_id": userID}}},
		{{Key: "$facet", Value: bson.D{
			{Key: "total", Value: bson.A{bson.D{{Key: "$count", Value: "n"}}}},
			{Key: "today", Value: since(today)},
			{Key: "week", Value: since(weekAgo)},
			{Key: "by_kind", Value: bson.A{
				bson.D{{Key: "$group", Value: bson.D{{Key: "_id", Value: "$kind"}, {Key: "count", Value: bson.M{"$sum": 1}}}}},
				bson.D{{Key: "$sort", Value: bson.M{"_id": 1}}},
			}},
		}}},
	}
}

// Stats — агрегаты по истории пользователя.
func (r *OperationRepo) Stats(ctx context.Context, userID string, today, weekAgo time.Time) (domain.Stats, error) {
	cursor, err := r.client.Coll().Aggregate(ctx, statsPipeline(userID, today, weekAgo))
	if err != nil {
		r.log.Debug("Stats failed", "error", err)
		return domain.Stats{}, err
	}
	defer cursor.Close(ctx)
	var rows []statsRow
	if err := cursor.All(ctx, &rows); err != nil {
		return domain.Stats{}, err
	}
	if len(rows) == 0 {
		return domain.Stats{}, nil
	}
	row := rows[0]
	st := domain.Stats{
		Total: first(row.Total),
		Today: first(row.Today),
		Week:  first(row.Week),
	}
	for _, k := range row.ByKind {
		st.ByKind = append(st.ByKind, domain.KindCount{Kind: domain.OperationKind(k.Kind), Count: k.Count})
	}
	return st, nil
}

// Ping проверяет доступность БД.
func (r *OperationRepo) Ping(ctx context.Context) error {
	return r.client.Ping(ctx, nil)
}
