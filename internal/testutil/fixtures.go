// internal/testutil/fixtures.go
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/joblane/joblane/internal/app/system/slugify"
	"github.com/joblane/joblane/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// JobParams are the knobs tests commonly vary; everything else gets a
// valid default.
type JobParams struct {
	Title      string
	Company    string
	Salary     float64
	Positions  int
	Experience string
	Longitude  float64
	Latitude   float64
}

// CreateJob inserts a fully valid job directly into the collection,
// bypassing the write pipeline. Returns the inserted document.
func (f *Fixtures) CreateJob(ctx context.Context, p JobParams) models.Job {
	f.t.Helper()

	if p.Title == "" {
		p.Title = "Test Job"
	}
	if p.Company == "" {
		p.Company = "Test Co"
	}
	if p.Salary == 0 {
		p.Salary = 50000
	}
	if p.Positions == 0 {
		p.Positions = 1
	}
	if p.Experience == "" {
		p.Experience = "No Experience"
	}

	now := time.Now().UTC()
	job := models.Job{
		ID:          primitive.NewObjectID(),
		Title:       p.Title,
		Slug:        slugify.Make(p.Title),
		Description: "A test posting",
		Address:     "123 Test St, Testville",
		Company:     p.Company,
		Location: &models.Location{
			Type:        "Point",
			Coordinates: []float64{p.Longitude, p.Latitude},
			City:        "Testville",
		},
		Industry:     []string{"Information Technology"},
		JobType:      "Permanent",
		MinEducation: "Bachelors",
		Experience:   p.Experience,
		Positions:    p.Positions,
		Salary:       p.Salary,
		PostingDate:  now,
		LastDate:     now.AddDate(0, 0, models.DefaultListingDays),
	}

	if _, err := f.db.Collection("jobs").InsertOne(ctx, job); err != nil {
		f.t.Fatalf("failed to create test job: %v", err)
	}
	return job
}

// CreateUser inserts a user with a bcrypt-hashed password.
func (f *Fixtures) CreateUser(ctx context.Context, name, email, role, password string) models.User {
	f.t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		f.t.Fatalf("failed to hash test password: %v", err)
	}

	user := models.User{
		ID:        primitive.NewObjectID(),
		Name:      name,
		Email:     email,
		Role:      role,
		Password:  string(hash),
		CreatedAt: time.Now().UTC(),
	}

	if _, err := f.db.Collection("users").InsertOne(ctx, user); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateEmployer creates a user with the employer role.
func (f *Fixtures) CreateEmployer(ctx context.Context, name, email string) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, name, email, models.RoleEmployer, "password123")
}
