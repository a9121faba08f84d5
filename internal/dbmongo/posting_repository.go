package dbmongo

import (
	"context"
	"errors"
	"time"

	"skillnaav/internal/common"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type postingDoc struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty"`
	PartnerID           primitive.ObjectID `bson:"partnerId,omitempty"`
	JobTitle            string             `bson:"jobTitle"`
	CompanyName         string             `bson:"companyName"`
	Location            string             `bson:"location"`
	JobDescription      string             `bson:"jobDescription"`
	StartDate           time.Time          `bson:"startDate"`
	Duration            string             `bson:"duration"`
	InternshipType      string             `bson:"internshipType"`
	CompensationDetails compensationDoc    `bson:"compensationDetails"`
	Qualifications      []string           `bson:"qualifications"`
	ContactInfo         contactDoc         `bson:"contactInfo"`
	ImgURL              string             `bson:"imgUrl,omitempty"`
	AdminApproved       bool               `bson:"adminApproved"`
	Deleted             bool               `bson:"deleted"`
	CreatedAt           time.Time          `bson:"createdAt"`
	UpdatedAt           time.Time          `bson:"updatedAt"`
}

func (d *postingDoc) toDomain() *common.Posting {
	return &common.Posting{
		ID:             d.ID.Hex(),
		PartnerID:      hexOrEmpty(d.PartnerID),
		JobTitle:       d.JobTitle,
		CompanyName:    d.CompanyName,
		Location:       d.Location,
		JobDescription: d.JobDescription,
		StartDate:      d.StartDate,
		Duration:       d.Duration,
		InternshipType: d.InternshipType,
		Compensation:   d.CompensationDetails.toDomain(),
		Qualifications: d.Qualifications,
		Contact:        common.ContactInfo(d.ContactInfo),
		ImgURL:         d.ImgURL,
		AdminApproved:  d.AdminApproved,
		Deleted:        d.Deleted,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}

// postingRepository reads the posting collection owned by the partner
// portal. Create exists for seeding and tests.
type postingRepository struct {
	coll *mongo.Collection
}

func NewPostingRepository(db *mongo.Database) common.PostingRepository {
	return &postingRepository{coll: db.Collection(PostingsCollection)}
}

func (r *postingRepository) Create(ctx context.Context, p *common.Posting) error {
	now := time.Now().UTC()
	doc := postingDoc{
		ID:                  primitive.NewObjectID(),
		PartnerID:           optionalID(p.PartnerID),
		JobTitle:            p.JobTitle,
		CompanyName:         p.CompanyName,
		Location:            p.Location,
		JobDescription:      p.JobDescription,
		StartDate:           p.StartDate,
		Duration:            p.Duration,
		InternshipType:      p.InternshipType,
		CompensationDetails: compensationFrom(p.Compensation),
		Qualifications:      p.Qualifications,
		ContactInfo:         contactDoc(p.Contact),
		ImgURL:              p.ImgURL,
		AdminApproved:       p.AdminApproved,
		Deleted:             p.Deleted,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return storeError("insert posting", err)
	}
	p.ID = doc.ID.Hex()
	p.CreatedAt, p.UpdatedAt = now, now
	return nil
}

func (r *postingRepository) ByID(ctx context.Context, id string) (*common.Posting, error) {
	oid, err := objectID("internshipId", id)
	if err != nil {
		return nil, err
	}

	var doc postingDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.NotFound("Internship posting not found")
		}
		return nil, storeError("find posting", err)
	}
	return doc.toDomain(), nil
}

func (r *postingRepository) ByIDs(ctx context.Context, ids []string) (map[string]*common.Posting, error) {
	out := make(map[string]*common.Posting, len(ids))
	oids := objectIDs(ids)
	if len(oids) == 0 {
		return out, nil
	}

	cursor, err := r.coll.Find(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return nil, storeError("list postings", err)
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var doc postingDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, storeError("decode posting", err)
		}
		p := doc.toDomain()
		out[p.ID] = p
	}
	if err := cursor.Err(); err != nil {
		return nil, storeError("list postings", err)
	}
	return out, nil
}
