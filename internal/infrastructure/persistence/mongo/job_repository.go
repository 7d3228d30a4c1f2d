package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"job-board/internal/domain/job"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type jobDocument struct {
	ID           bson.ObjectID `bson:"_id,omitempty"`
	Title        string        `bson:"title"`
	Description  string        `bson:"description"`
	Remote       string        `bson:"remote"`
	Type         string        `bson:"type"`
	Salary       int64         `bson:"salary"`
	Country      string        `bson:"country"`
	State        string        `bson:"state"`
	City         string        `bson:"city"`
	CountryID    string        `bson:"countryId"`
	StateID      string        `bson:"stateId"`
	CityID       string        `bson:"cityId"`
	JobIcon      string        `bson:"jobIcon,omitempty"`
	ContactPhoto string        `bson:"contactPhoto,omitempty"`
	ContactName  string        `bson:"contactName"`
	ContactPhone string        `bson:"contactPhone"`
	ContactEmail string        `bson:"contactEmail"`
	OrgID        string        `bson:"orgId"`
	CreatedAt    time.Time     `bson:"createdAt"`
	UpdatedAt    time.Time     `bson:"updatedAt"`
}

type JobRepository struct {
	coll *mongo.Collection
	now  func() time.Time
}

func NewJobRepository(c *Client) *JobRepository {
	return &JobRepository{coll: c.db.Collection(jobsCollection), now: time.Now}
}

func (r *JobRepository) Find(ctx context.Context, f job.Filter) ([]job.Job, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := r.coll.Find(ctx, findFilter(f), opts)
	if err != nil {
		return nil, fmt.Errorf("find jobs: %w", err)
	}
	defer cur.Close(ctx)

	var docs []jobDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("find jobs decode: %w", err)
	}

	out := make([]job.Job, 0, len(docs))
	for _, d := range docs {
		out = append(out, fromDocument(d))
	}
	return out, nil
}

func (r *JobRepository) FindByID(ctx context.Context, id string) (job.Job, error) {
	oid, err := bson.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return job.Job{}, job.ErrNotFound
	}
	var d jobDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return job.Job{}, job.ErrNotFound
		}
		return job.Job{}, fmt.Errorf("find job by id: %w", err)
	}
	return fromDocument(d), nil
}

func (r *JobRepository) Create(ctx context.Context, j job.Job) (job.Job, error) {
	now := r.now().UTC()
	d := toDocument(j)
	d.ID = bson.NewObjectID()
	d.CreatedAt = now
	d.UpdatedAt = now
	if _, err := r.coll.InsertOne(ctx, d); err != nil {
		return job.Job{}, fmt.Errorf("create job: %w", err)
	}
	return fromDocument(d), nil
}

// Update applies the change only if the document still belongs to the
// organization apply saw.
func (r *JobRepository) Update(ctx context.Context, id string, apply job.UpdateFunc) (job.Job, error) {
	oid, err := bson.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return job.Job{}, job.ErrNotFound
	}

	var current jobDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&current); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return job.Job{}, job.ErrNotFound
		}
		return job.Job{}, fmt.Errorf("update job read: %w", err)
	}

	j, err := apply(fromDocument(current))
	if err != nil {
		return job.Job{}, err
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated jobDocument
	err = r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid, "orgId": current.OrgID},
		bson.M{"$set": updateSet(toDocument(j), r.now().UTC())},
		opts,
	).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return job.Job{}, job.ErrNotFound
		}
		return job.Job{}, fmt.Errorf("update job: %w", err)
	}
	return fromDocument(updated), nil
}

func (r *JobRepository) Delete(ctx context.Context, id string) (bool, error) {
	oid, err := bson.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return false, nil
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, fmt.Errorf("delete job: %w", err)
	}
	return res.DeletedCount > 0, nil
}

func updateSet(d jobDocument, now time.Time) bson.M {
	return bson.M{
		"title":        d.Title,
		"description":  d.Description,
		"remote":       d.Remote,
		"type":         d.Type,
		"salary":       d.Salary,
		"country":      d.Country,
		"state":        d.State,
		"city":         d.City,
		"countryId":    d.CountryID,
		"stateId":      d.StateID,
		"cityId":       d.CityID,
		"jobIcon":      d.JobIcon,
		"contactPhoto": d.ContactPhoto,
		"contactName":  d.ContactName,
		"contactPhone": d.ContactPhone,
		"contactEmail": d.ContactEmail,
		"orgId":        d.OrgID,
		"updatedAt":    now,
	}
}

func findFilter(f job.Filter) bson.M {
	filter := bson.M{}
	if orgID := strings.TrimSpace(f.OrgID); orgID != "" {
		filter["orgId"] = orgID
	}
	if q := strings.TrimSpace(f.Query); q != "" {
		re := bson.Regex{Pattern: regexp.QuoteMeta(q), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"title": re},
			bson.M{"description": re},
		}
	}
	return filter
}

func toDocument(j job.Job) jobDocument {
	return jobDocument{
		Title:        j.Title,
		Description:  j.Description,
		Remote:       j.Remote,
		Type:         j.Type,
		Salary:       j.Salary,
		Country:      j.Country,
		State:        j.State,
		City:         j.City,
		CountryID:    j.CountryID,
		StateID:      j.StateID,
		CityID:       j.CityID,
		JobIcon:      j.JobIcon,
		ContactPhoto: j.ContactPhoto,
		ContactName:  j.ContactName,
		ContactPhone: j.ContactPhone,
		ContactEmail: j.ContactEmail,
		OrgID:        j.OrgID,
		CreatedAt:    j.CreatedAt,
		UpdatedAt:    j.UpdatedAt,
	}
}

func fromDocument(d jobDocument) job.Job {
	return job.Job{
		ID:           d.ID.Hex(),
		Title:        d.Title,
		Description:  d.Description,
		Remote:       d.Remote,
		Type:         d.Type,
		Salary:       d.Salary,
		Country:      d.Country,
		State:        d.State,
		City:         d.City,
		CountryID:    d.CountryID,
		StateID:      d.StateID,
		CityID:       d.CityID,
		JobIcon:      d.JobIcon,
		ContactPhoto: d.ContactPhoto,
		ContactName:  d.ContactName,
		ContactPhone: d.ContactPhone,
		ContactEmail: d.ContactEmail,
		OrgID:        d.OrgID,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

var _ job.Repository = (*JobRepository)(nil)
