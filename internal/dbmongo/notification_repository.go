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

type notificationDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	StudentID primitive.ObjectID `bson:"studentId"`
	Title     string             `bson:"title"`
	Message   string             `bson:"message"`
	Link      *string            `bson:"link,omitempty"`
	IsRead    bool               `bson:"isRead"`
	CreatedAt time.Time          `bson:"createdAt"`
	DeletedAt *time.Time         `bson:"deletedAt"`
}

func (d *notificationDoc) toDomain() *common.Notification {
	return &common.Notification{
		ID:        d.ID.Hex(),
		StudentID: d.StudentID.Hex(),
		Title:     d.Title,
		Message:   d.Message,
		Link:      d.Link,
		IsRead:    d.IsRead,
		CreatedAt: d.CreatedAt,
		DeletedAt: d.DeletedAt,
	}
}

type notificationRepository struct {
	coll *mongo.Collection
}

func NewNotificationRepository(db *mongo.Database) common.NotificationRepository {
	return &notificationRepository{coll: db.Collection(NotificationsCollection)}
}

func (r *notificationRepository) Create(ctx context.Context, n *common.Notification) error {
	studentID, err := objectID("studentId", n.StudentID)
	if err != nil {
		return err
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}

	doc := notificationDoc{
		ID:        primitive.NewObjectID(),
		StudentID: studentID,
		Title:     n.Title,
		Message:   n.Message,
		Link:      n.Link,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return storeError("insert notification", err)
	}
	n.ID = doc.ID.Hex()
	return nil
}

func (r *notificationRepository) ByID(ctx context.Context, id string) (*common.Notification, error) {
	oid, err := objectID("notificationId", id)
	if err != nil {
		return nil, err
	}

	var doc notificationDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.NotFound("Notification not found")
		}
		return nil, storeError("find notification", err)
	}
	return doc.toDomain(), nil
}

func (r *notificationRepository) ByStudentID(ctx context.Context, studentID string) ([]*common.Notification, error) {
	oid, err := objectID("studentId", studentID)
	if err != nil {
		return nil, err
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"studentId": oid}, opts)
	if err != nil {
		return nil, storeError("list notifications", err)
	}
	defer cursor.Close(ctx)

	out := make([]*common.Notification, 0)
	for cursor.Next(ctx) {
		var doc notificationDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, storeError("decode notification", err)
		}
		out = append(out, doc.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, storeError("list notifications", err)
	}
	return out, nil
}

func (r *notificationRepository) MarkAsRead(ctx context.Context, id string) (*common.Notification, error) {
	oid, err := objectID("notificationId", id)
	if err != nil {
		return nil, err
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc notificationDoc
	err = r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"isRead": true}}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.NotFound("Notification not found")
		}
		return nil, storeError("mark notification read", err)
	}
	return doc.toDomain(), nil
}

func (r *notificationRepository) Delete(ctx context.Context, id string) error {
	oid, err := objectID("notificationId", id)
	if err != nil {
		return err
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return storeError("delete notification", err)
	}
	if res.DeletedCount == 0 {
		return common.NotFound("Notification not found")
	}
	return nil
}

func (r *notificationRepository) UnreadCount(ctx context.Context, studentID string) (int64, error) {
	oid, err := objectID("studentId", studentID)
	if err != nil {
		return 0, err
	}

	count, err := r.coll.CountDocuments(ctx, bson.M{"studentId": oid, "isRead": false})
	if err != nil {
		return 0, storeError("count unread notifications", err)
	}
	return count, nil
}
