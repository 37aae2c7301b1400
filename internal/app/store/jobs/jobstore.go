// internal/app/store/jobs/jobstore.go
package jobstore

import (
	"context"
	"errors"
	"time"

	"github.com/joblane/joblane/internal/app/system/apperr"
	"github.com/joblane/joblane/internal/app/system/geocode"
	"github.com/joblane/joblane/internal/app/system/slugify"
	"github.com/joblane/joblane/internal/domain/models"
	"github.com/microcosm-cc/bluemonday"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EarthRadiusMiles converts a linear distance in miles to the angular
// radius used by $centerSphere.
const EarthRadiusMiles = 3963.0

// Store is the job collection abstraction. Writes run the full pipeline:
// sanitize, validate, slug, geocode, persist — a job is never stored
// without a resolved location.
type Store struct {
	c        *mongo.Collection
	geo      geocode.Geocoder
	sanitize *bluemonday.Policy
}

func New(db *mongo.Database, geo geocode.Geocoder) *Store {
	return &Store{
		c:        db.Collection("jobs"),
		geo:      geo,
		sanitize: bluemonday.StrictPolicy(),
	}
}

// Create runs the write pipeline and inserts the job. Geocoding failure
// aborts the write before anything touches the collection.
func (s *Store) Create(ctx context.Context, job models.Job) (models.Job, error) {
	job.Title = s.sanitize.Sanitize(job.Title)
	job.Description = s.sanitize.Sanitize(job.Description)
	job.Company = s.sanitize.Sanitize(job.Company)

	now := time.Now().UTC()
	if job.PostingDate.IsZero() {
		job.PostingDate = now
	}
	if job.LastDate.IsZero() {
		job.LastDate = job.PostingDate.AddDate(0, 0, models.DefaultListingDays)
	}
	if job.Positions == 0 {
		job.Positions = 1
	}

	if err := job.Validate(); err != nil {
		return models.Job{}, apperr.New(apperr.Validation, "%s", err.Error())
	}

	job.Slug = slugify.Make(job.Title)

	loc, err := s.locate(ctx, job.Address)
	if err != nil {
		return models.Job{}, err
	}
	job.Location = loc

	job.ID = primitive.NewObjectID()
	job.ApplicationsApplied = nil
	if _, err := s.c.InsertOne(ctx, job); err != nil {
		return models.Job{}, err
	}
	return job, nil
}

// Update holds the fields a client may change. Nil pointers leave the
// stored value untouched.
type Update struct {
	Title        *string
	Description  *string
	Email        *string
	Address      *string
	Company      *string
	Industry     *[]string
	JobType      *string
	MinEducation *string
	Experience   *string
	Positions    *int
	Salary       *float64
	LastDate     *time.Time
}

// ApplyUpdate loads the job, applies changes, and persists. The slug is
// recomputed whenever the title changes; the address is re-geocoded only
// when it changes, never otherwise.
func (s *Store) ApplyUpdate(ctx context.Context, id primitive.ObjectID, upd Update) (models.Job, error) {
	job, err := s.getByID(ctx, id)
	if err != nil {
		return models.Job{}, err
	}

	titleChanged := false
	addressChanged := false

	if upd.Title != nil {
		t := s.sanitize.Sanitize(*upd.Title)
		if t != job.Title {
			job.Title = t
			titleChanged = true
		}
	}
	if upd.Description != nil {
		job.Description = s.sanitize.Sanitize(*upd.Description)
	}
	if upd.Email != nil {
		job.Email = *upd.Email
	}
	if upd.Address != nil && *upd.Address != job.Address {
		job.Address = *upd.Address
		addressChanged = true
	}
	if upd.Company != nil {
		job.Company = s.sanitize.Sanitize(*upd.Company)
	}
	if upd.Industry != nil {
		job.Industry = *upd.Industry
	}
	if upd.JobType != nil {
		job.JobType = *upd.JobType
	}
	if upd.MinEducation != nil {
		job.MinEducation = *upd.MinEducation
	}
	if upd.Experience != nil {
		job.Experience = *upd.Experience
	}
	if upd.Positions != nil {
		job.Positions = *upd.Positions
	}
	if upd.Salary != nil {
		job.Salary = *upd.Salary
	}
	if upd.LastDate != nil {
		job.LastDate = *upd.LastDate
	}

	if err := job.Validate(); err != nil {
		return models.Job{}, apperr.New(apperr.Validation, "%s", err.Error())
	}

	if titleChanged {
		job.Slug = slugify.Make(job.Title)
	}
	if addressChanged {
		loc, err := s.locate(ctx, job.Address)
		if err != nil {
			return models.Job{}, err
		}
		job.Location = loc
	}

	if _, err := s.c.ReplaceOne(ctx, bson.M{"_id": id}, job); err != nil {
		return models.Job{}, err
	}
	return *job, nil
}

// Delete removes a job. A missing id is a NotFound error, not a no-op.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return apperr.New(apperr.NotFound, "job not found")
	}
	return nil
}

// GetByIDSlug fetches one job matching both the id and the slug.
func (s *Store) GetByIDSlug(ctx context.Context, id primitive.ObjectID, slug string) (*models.Job, error) {
	var job models.Job
	err := s.c.FindOne(ctx, bson.M{"_id": id, "slug": slug}).Decode(&job)
	if err == mongo.ErrNoDocuments {
		return nil, apperr.New(apperr.NotFound, "job not found")
	}
	if err != nil {
		return nil, err
	}
	return &job, nil
}

// List executes a compiled list query.
func (s *Store) List(ctx context.Context, q ListQuery) ([]models.Job, error) {
	filter, opts := q.compile()

	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	jobs := []models.Job{}
	if err := cur.All(ctx, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

// WithinRadius returns every job whose location lies within
// distanceMiles of (longitude, latitude), unpaginated.
func (s *Store) WithinRadius(ctx context.Context, longitude, latitude, distanceMiles float64) ([]models.Job, error) {
	radius := distanceMiles / EarthRadiusMiles
	filter := bson.M{
		"location": bson.M{
			"$geoWithin": bson.M{
				"$centerSphere": bson.A{bson.A{longitude, latitude}, radius},
			},
		},
	}

	opts := options.Find().SetProjection(bson.M{"applications_applied": 0})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	jobs := []models.Job{}
	if err := cur.All(ctx, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

// ExperienceStats is one aggregation group keyed by uppercased
// experience level.
type ExperienceStats struct {
	Experience   string  `bson:"_id" json:"experience"`
	TotalJobs    int     `bson:"total_jobs" json:"totalJobs"`
	AvgPositions float64 `bson:"avg_positions" json:"avgPositions"`
	AvgSalary    float64 `bson:"avg_salary" json:"avgSalary"`
	MinSalary    float64 `bson:"min_salary" json:"minSalary"`
	MaxSalary    float64 `bson:"max_salary" json:"maxSalary"`
}

// Stats groups jobs matching the exact-phrase text search for topic by
// experience level. Zero matching groups is a NotFound result rather
// than an empty success.
func (s *Store) Stats(ctx context.Context, topic string) ([]ExperienceStats, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"$text": bson.M{"$search": `"` + topic + `"`},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":           bson.M{"$toUpper": "$experience"},
			"total_jobs":    bson.M{"$sum": 1},
			"avg_positions": bson.M{"$avg": "$positions"},
			"avg_salary":    bson.M{"$avg": "$salary"},
			"min_salary":    bson.M{"$min": "$salary"},
			"max_salary":    bson.M{"$max": "$salary"},
		}}},
	}

	cur, err := s.c.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	var stats []ExperienceStats
	if err := cur.All(ctx, &stats); err != nil {
		return nil, err
	}
	if len(stats) == 0 {
		return nil, apperr.New(apperr.NotFound, "no stats found for %s", topic)
	}
	return stats, nil
}

func (s *Store) getByID(ctx context.Context, id primitive.ObjectID) (*models.Job, error) {
	var job models.Job
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&job)
	if err == mongo.ErrNoDocuments {
		return nil, apperr.New(apperr.NotFound, "job not found")
	}
	if err != nil {
		return nil, err
	}
	return &job, nil
}

// locate geocodes an address and shapes the first candidate into the
// stored location structure.
func (s *Store) locate(ctx context.Context, address string) (*models.Location, error) {
	locs, err := s.geo.Geocode(ctx, address)
	if err != nil {
		if errors.Is(err, geocode.ErrNoResults) {
			return nil, apperr.Wrap(apperr.Geocoding, err, "could not resolve address: %s", address)
		}
		return nil, apperr.Wrap(apperr.Geocoding, err, "address lookup failed")
	}

	first := locs[0]
	return &models.Location{
		Type:             "Point",
		Coordinates:      []float64{first.Longitude, first.Latitude},
		FormattedAddress: first.FormattedAddress,
		Street:           first.Street,
		City:             first.City,
		State:            first.State,
		Zipcode:          first.Zipcode,
		Country:          first.Country,
	}, nil
}
