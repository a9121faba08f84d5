package dbmongo

import (
	"context"
	"errors"
	"time"

	"skillnaav/internal/common"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type savedJobDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    primitive.ObjectID `bson:"userId"`
	JobID     primitive.ObjectID `bson:"jobId"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

func (d *savedJobDoc) toDomain() *common.SavedJob {
	return &common.SavedJob{
		ID:        d.ID.Hex(),
		UserID:    d.UserID.Hex(),
		JobID:     d.JobID.Hex(),
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

type savedJobRepository struct {
	coll *mongo.Collection
}

func NewSavedJobRepository(db *mongo.Database) common.SavedJobRepository {
	return &savedJobRepository{coll: db.Collection(SavedJobsCollection)}
}

// Create relies on the userId_jobId_unique index; a duplicate insert is
// reported as AlreadyExists.
func (r *savedJobRepository) Create(ctx context.Context, sj *common.SavedJob) error {
	userID, err := objectID("userId", sj.UserID)
	if err != nil {
		return err
	}
	jobID, err := objectID("jobId", sj.JobID)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	doc := savedJobDoc{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		JobID:     jobID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return common.WrapError(common.KindAlreadyExists, "Job already saved", err)
		}
		return storeError("insert saved job", err)
	}

	*sj = *doc.toDomain()
	return nil
}

func (r *savedJobRepository) ByUserID(ctx context.Context, userID string) ([]*common.SavedJob, error) {
	oid, err := objectID("userId", userID)
	if err != nil {
		return nil, err
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"userId": oid}, opts)
	if err != nil {
		return nil, storeError("list saved jobs", err)
	}
	defer cursor.Close(ctx)

	var docs []savedJobDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, storeError("decode saved jobs", err)
	}

	out := make([]*common.SavedJob, len(docs))
	for i := range docs {
		out[i] = docs[i].toDomain()
	}
	return out, nil
}

func (r *savedJobRepository) DeleteByPair(ctx context.Context, userID, jobID string) (*common.SavedJob, error) {
	uid, err := objectID("userId", userID)
	if err != nil {
		return nil, err
	}
	jid, err := objectID("jobId", jobID)
	if err != nil {
		return nil, err
	}

	var doc savedJobDoc
	if err := r.coll.FindOneAndDelete(ctx, bson.M{"userId": uid, "jobId": jid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.NotFound("Saved job not found")
		}
		return nil, storeError("delete saved job", err)
	}
	return doc.toDomain(), nil
}
