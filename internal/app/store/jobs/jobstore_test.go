package jobstore_test

import (
	"context"
	"net/url"
	"testing"

	jobstore "github.com/joblane/joblane/internal/app/store/jobs"
	"github.com/joblane/joblane/internal/app/system/apperr"
	"github.com/joblane/joblane/internal/app/system/geocode"
	"github.com/joblane/joblane/internal/app/system/indexes"
	"github.com/joblane/joblane/internal/domain/models"
	"github.com/joblane/joblane/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// stubGeocoder resolves every address to a fixed point, or fails when
// told to.
type stubGeocoder struct {
	lat, lng float64
	fail     bool
	calls    int
}

func (g *stubGeocoder) Geocode(_ context.Context, address string) ([]geocode.Location, error) {
	g.calls++
	if g.fail {
		return nil, geocode.ErrNoResults
	}
	return []geocode.Location{{
		Latitude:         g.lat,
		Longitude:        g.lng,
		FormattedAddress: address,
		City:             "Boston",
		State:            "MA",
		Zipcode:          "02108",
		Country:          "US",
	}}, nil
}

func validJob(title string) models.Job {
	return models.Job{
		Title:        title,
		Description:  "Build and run backend services",
		Address:      "1 Main St, Boston MA",
		Company:      "Acme",
		Industry:     []string{"Information Technology"},
		JobType:      "Permanent",
		MinEducation: "Bachelors",
		Experience:   "2-5 Years",
		Salary:       90000,
	}
}

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	geo := &stubGeocoder{lat: 42.36, lng: -71.06}
	store := jobstore.New(db, geo)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, validJob("Senior Backend Engineer"))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if created.Slug != "senior-backend-engineer" {
		t.Errorf("slug: got %q, want %q", created.Slug, "senior-backend-engineer")
	}
	if created.Location == nil {
		t.Fatal("expected location to be set")
	}
	if got := created.Location.Coordinates; len(got) != 2 || got[0] != -71.06 || got[1] != 42.36 {
		t.Errorf("coordinates: got %v, want [-71.06 42.36]", got)
	}
	if created.Location.Type != "Point" {
		t.Errorf("location type: got %q", created.Location.Type)
	}
	if created.Positions != 1 {
		t.Errorf("positions default: got %d, want 1", created.Positions)
	}
	if created.PostingDate.IsZero() || created.LastDate.IsZero() {
		t.Error("expected posting/last dates to default")
	}
	if want := created.PostingDate.AddDate(0, 0, 7); !created.LastDate.Equal(want) {
		t.Errorf("last date: got %v, want %v", created.LastDate, want)
	}
}

func TestStore_Create_GeocodeFailureAbortsWrite(t *testing.T) {
	db := testutil.SetupTestDB(t)
	geo := &stubGeocoder{fail: true}
	store := jobstore.New(db, geo)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := store.Create(ctx, validJob("Ghost Job"))
	if err == nil {
		t.Fatal("expected geocode failure to abort the write")
	}
	if apperr.KindOf(err) != apperr.Geocoding {
		t.Errorf("error kind: got %v, want Geocoding", apperr.KindOf(err))
	}

	count, err := db.Collection("jobs").CountDocuments(ctx, bson.M{})
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 0 {
		t.Errorf("expected no persisted documents, found %d", count)
	}
}

func TestStore_Create_InvalidEnumRejected(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := jobstore.New(db, &stubGeocoder{})
	ctx, cancel := testutil.TestContext()
	defer cancel()

	job := validJob("Bad Enum Job")
	job.JobType = "Gig"
	_, err := store.Create(ctx, job)
	if apperr.KindOf(err) != apperr.Validation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestStore_ApplyUpdate_TitleRecomputesSlug(t *testing.T) {
	db := testutil.SetupTestDB(t)
	geo := &stubGeocoder{lat: 42.36, lng: -71.06}
	store := jobstore.New(db, geo)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, validJob("Old Title"))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	callsAfterCreate := geo.calls

	newTitle := "Brand New Title"
	updated, err := store.ApplyUpdate(ctx, created.ID, jobstore.Update{Title: &newTitle})
	if err != nil {
		t.Fatalf("ApplyUpdate failed: %v", err)
	}

	if updated.Slug != "brand-new-title" {
		t.Errorf("slug: got %q, want %q", updated.Slug, "brand-new-title")
	}
	if geo.calls != callsAfterCreate {
		t.Errorf("title-only update should not re-geocode (calls %d -> %d)", callsAfterCreate, geo.calls)
	}
}

func TestStore_ApplyUpdate_AddressRegeocodes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	geo := &stubGeocoder{lat: 42.36, lng: -71.06}
	store := jobstore.New(db, geo)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, validJob("Relocating Job Posting"))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	geo.lat, geo.lng = 40.71, -74.0
	newAddr := "1 Broadway, New York NY"
	updated, err := store.ApplyUpdate(ctx, created.ID, jobstore.Update{Address: &newAddr})
	if err != nil {
		t.Fatalf("ApplyUpdate failed: %v", err)
	}

	if got := updated.Location.Coordinates; got[0] != -74.0 || got[1] != 40.71 {
		t.Errorf("expected re-geocoded coordinates, got %v", got)
	}
}

func TestStore_ApplyUpdate_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := jobstore.New(db, &stubGeocoder{})
	ctx, cancel := testutil.TestContext()
	defer cancel()

	title := "whatever"
	_, err := store.ApplyUpdate(ctx, primitive.NewObjectID(), jobstore.Update{Title: &title})
	if apperr.KindOf(err) != apperr.NotFound {
		t.Fatalf("expected NotFound, got %v", err)
	}
}

func TestStore_Delete_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := jobstore.New(db, &stubGeocoder{})
	ctx, cancel := testutil.TestContext()
	defer cancel()

	err := store.Delete(ctx, primitive.NewObjectID())
	if apperr.KindOf(err) != apperr.NotFound {
		t.Fatalf("expected NotFound, got %v", err)
	}
}

func TestStore_GetByIDSlug(t *testing.T) {
	db := testutil.SetupTestDB(t)
	geo := &stubGeocoder{lat: 42.36, lng: -71.06}
	store := jobstore.New(db, geo)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, validJob("Findable Job"))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := store.GetByIDSlug(ctx, created.ID, "findable-job")
	if err != nil {
		t.Fatalf("GetByIDSlug failed: %v", err)
	}
	if got.ID != created.ID {
		t.Errorf("id: got %v, want %v", got.ID, created.ID)
	}

	// Right id, wrong slug must not match.
	if _, err := store.GetByIDSlug(ctx, created.ID, "wrong-slug"); apperr.KindOf(err) != apperr.NotFound {
		t.Errorf("expected NotFound for mismatched slug, got %v", err)
	}
}

func TestStore_List_FilterSortPaginate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := jobstore.New(db, &stubGeocoder{})
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	for i, salary := range []float64{40000, 55000, 70000, 85000} {
		fixtures.CreateJob(ctx, testutil.JobParams{
			Title:  "Job " + string(rune('A'+i)),
			Salary: salary,
		})
	}

	values, _ := url.ParseQuery("salary[gte]=50000&salary[lte]=80000&sort=-salary")
	jobs, err := store.List(ctx, jobstore.ParseListQuery(values))
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	if len(jobs) != 2 {
		t.Fatalf("expected 2 jobs in range, got %d", len(jobs))
	}
	if jobs[0].Salary != 70000 || jobs[1].Salary != 55000 {
		t.Errorf("sort order wrong: got %v then %v", jobs[0].Salary, jobs[1].Salary)
	}
}

func TestStore_List_Pagination(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := jobstore.New(db, &stubGeocoder{})
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	for i := 0; i < 12; i++ {
		fixtures.CreateJob(ctx, testutil.JobParams{
			Title:  "Job",
			Salary: float64(10000 + i),
		})
	}

	values, _ := url.ParseQuery("page=2&limit=5&sort=salary")
	jobs, err := store.List(ctx, jobstore.ParseListQuery(values))
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	if len(jobs) != 5 {
		t.Fatalf("expected 5 jobs on page 2, got %d", len(jobs))
	}
	// Items 6-10 of the salary-sorted set.
	if jobs[0].Salary != 10005 || jobs[4].Salary != 10009 {
		t.Errorf("page window wrong: got %v..%v", jobs[0].Salary, jobs[4].Salary)
	}
}

func TestStore_WithinRadius(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := jobstore.New(db, &stubGeocoder{})
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	// Boston city center, a nearby job, and one on the west coast.
	near := fixtures.CreateJob(ctx, testutil.JobParams{Title: "Near", Longitude: -71.06, Latitude: 42.36})
	fixtures.CreateJob(ctx, testutil.JobParams{Title: "Far", Longitude: -122.42, Latitude: 37.77})

	jobs, err := store.WithinRadius(ctx, -71.05, 42.35, 50)
	if err != nil {
		t.Fatalf("WithinRadius failed: %v", err)
	}

	if len(jobs) != 1 {
		t.Fatalf("expected exactly the nearby job, got %d", len(jobs))
	}
	if jobs[0].ID != near.ID {
		t.Errorf("got job %v, want %v", jobs[0].ID, near.ID)
	}
}

func TestStore_Stats(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := jobstore.New(db, &stubGeocoder{})
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	fixtures.CreateJob(ctx, testutil.JobParams{Title: "Node Developer", Salary: 60000, Experience: "No Experience"})
	fixtures.CreateJob(ctx, testutil.JobParams{Title: "Node Developer", Salary: 80000, Experience: "No Experience"})
	fixtures.CreateJob(ctx, testutil.JobParams{Title: "Rust Developer", Salary: 120000, Experience: "5+ Years"})

	stats, err := store.Stats(ctx, "Node Developer")
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}

	if len(stats) != 1 {
		t.Fatalf("expected one experience group, got %d", len(stats))
	}
	g := stats[0]
	if g.Experience != "NO EXPERIENCE" {
		t.Errorf("group key: got %q", g.Experience)
	}
	if g.TotalJobs != 2 {
		t.Errorf("total jobs: got %d, want 2", g.TotalJobs)
	}
	if g.AvgSalary != 70000 {
		t.Errorf("avg salary: got %v, want 70000", g.AvgSalary)
	}
	if g.MinSalary != 60000 || g.MaxSalary != 80000 {
		t.Errorf("min/max salary: got %v/%v", g.MinSalary, g.MaxSalary)
	}
}

func TestStore_Stats_NoMatchesIsNotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := jobstore.New(db, &stubGeocoder{})
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	_, err := store.Stats(ctx, "underwater basket weaving")
	if apperr.KindOf(err) != apperr.NotFound {
		t.Fatalf("expected NotFound for zero groups, got %v", err)
	}
}
