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

type compensationDoc struct {
	Type      string   `bson:"type,omitempty"`
	Amount    float64  `bson:"amount,omitempty"`
	Currency  string   `bson:"currency,omitempty"`
	Frequency string   `bson:"frequency,omitempty"`
	Benefits  []string `bson:"benefits,omitempty"`
}

type contactDoc struct {
	Name  string `bson:"name"`
	Email string `bson:"email"`
	Phone string `bson:"phone"`
}

func compensationFrom(c common.Compensation) compensationDoc {
	return compensationDoc(c)
}

func (c compensationDoc) toDomain() common.Compensation {
	return common.Compensation(c)
}

type offerDoc struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	StudentID      primitive.ObjectID `bson:"studentId"`
	InternshipID   primitive.ObjectID `bson:"internshipId"`
	PartnerID      primitive.ObjectID `bson:"partnerId,omitempty"`
	Name           string             `bson:"name"`
	Email          string             `bson:"email"`
	Position       string             `bson:"position"`
	StartDate      time.Time          `bson:"startDate"`
	CompanyName    string             `bson:"companyName"`
	Location       string             `bson:"location"`
	Duration       string             `bson:"duration"`
	JobDescription string             `bson:"jobDescription"`
	Stipend        compensationDoc    `bson:"stipend"`
	Qualifications []string           `bson:"qualifications"`
	ContactInfo    contactDoc         `bson:"contactInfo"`
	Status         string             `bson:"status"`
	SentDate       time.Time          `bson:"sentDate"`
	RespondedAt    *time.Time         `bson:"respondedAt,omitempty"`
	S3URL          string             `bson:"s3Url,omitempty"`
}

func (d *offerDoc) toDomain() *common.Offer {
	return &common.Offer{
		ID:             d.ID.Hex(),
		StudentID:      d.StudentID.Hex(),
		InternshipID:   d.InternshipID.Hex(),
		PartnerID:      hexOrEmpty(d.PartnerID),
		Name:           d.Name,
		Email:          d.Email,
		Position:       d.Position,
		StartDate:      d.StartDate,
		CompanyName:    d.CompanyName,
		Location:       d.Location,
		Duration:       d.Duration,
		JobDescription: d.JobDescription,
		Stipend:        d.Stipend.toDomain(),
		Qualifications: d.Qualifications,
		Contact:        common.ContactInfo(d.ContactInfo),
		Status:         common.OfferStatus(d.Status),
		SentDate:       d.SentDate,
		RespondedAt:    d.RespondedAt,
		DocumentURL:    d.S3URL,
	}
}

type offerRepository struct {
	coll *mongo.Collection
}

func NewOfferRepository(db *mongo.Database) common.OfferRepository {
	return &offerRepository{coll: db.Collection(OffersCollection)}
}

func (r *offerRepository) Create(ctx context.Context, o *common.Offer) error {
	studentID, err := objectID("studentId", o.StudentID)
	if err != nil {
		return err
	}
	internshipID, err := objectID("internshipId", o.InternshipID)
	if err != nil {
		return err
	}
	if o.SentDate.IsZero() {
		o.SentDate = time.Now().UTC()
	}

	doc := offerDoc{
		ID:             primitive.NewObjectID(),
		StudentID:      studentID,
		InternshipID:   internshipID,
		PartnerID:      optionalID(o.PartnerID),
		Name:           o.Name,
		Email:          o.Email,
		Position:       o.Position,
		StartDate:      o.StartDate,
		CompanyName:    o.CompanyName,
		Location:       o.Location,
		Duration:       o.Duration,
		JobDescription: o.JobDescription,
		Stipend:        compensationFrom(o.Stipend),
		Qualifications: o.Qualifications,
		ContactInfo:    contactDoc(o.Contact),
		Status:         string(o.Status),
		SentDate:       o.SentDate,
		S3URL:          o.DocumentURL,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return storeError("insert offer letter", err)
	}
	o.ID = doc.ID.Hex()
	return nil
}

func (r *offerRepository) ByID(ctx context.Context, id string) (*common.Offer, error) {
	oid, err := objectID("offerId", id)
	if err != nil {
		return nil, err
	}

	var doc offerDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.NotFound("Offer letter not found")
		}
		return nil, storeError("find offer letter", err)
	}
	return doc.toDomain(), nil
}

func (r *offerRepository) ByStudentID(ctx context.Context, studentID string) ([]*common.Offer, error) {
	oid, err := objectID("studentId", studentID)
	if err != nil {
		return nil, err
	}

	opts := options.Find().SetSort(bson.D{{Key: "sentDate", Value: -1}, {Key: "_id", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"studentId": oid}, opts)
	if err != nil {
		return nil, storeError("list offer letters", err)
	}
	defer cursor.Close(ctx)

	var docs []offerDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, storeError("decode offer letters", err)
	}

	out := make([]*common.Offer, len(docs))
	for i := range docs {
		out[i] = docs[i].toDomain()
	}
	return out, nil
}

// TransitionStatus is a single conditional FindOneAndUpdate. When nothing
// matches, a follow-up read tells a missing offer from one that already
// left the from state.
func (r *offerRepository) TransitionStatus(ctx context.Context, id string, from, to common.OfferStatus, at time.Time) (*common.Offer, error) {
	oid, err := objectID("offerId", id)
	if err != nil {
		return nil, err
	}

	filter := bson.M{"_id": oid, "status": string(from)}
	update := bson.M{"$set": bson.M{"status": string(to), "respondedAt": at}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc offerDoc
	err = r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc)
	if err == nil {
		return doc.toDomain(), nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, storeError("update offer status", err)
	}

	var current struct {
		Status string `bson:"status"`
	}
	findOpts := options.FindOne().SetProjection(bson.M{"status": 1})
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}, findOpts).Decode(&current); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.NotFound("Offer letter not found")
		}
		return nil, storeError("find offer letter", err)
	}
	return nil, common.InvalidTransition("offer is already %s", current.Status)
}
