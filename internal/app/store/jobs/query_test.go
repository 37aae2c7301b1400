package jobstore

import (
	"net/url"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
)

func compileValues(t *testing.T, raw string) (bson.M, filterOpts) {
	t.Helper()
	values, err := url.ParseQuery(raw)
	if err != nil {
		t.Fatalf("bad query string %q: %v", raw, err)
	}
	q := ParseListQuery(values)
	filter, opts := q.compile()
	return filter, filterOpts{
		sort:       opts.Sort.(bson.D),
		projection: opts.Projection.(bson.M),
		skip:       *opts.Skip,
		limit:      *opts.Limit,
	}
}

// filterOpts unwraps the parts of FindOptions the tests care about.
type filterOpts struct {
	sort       bson.D
	projection bson.M
	skip       int64
	limit      int64
}

func TestParseListQuery_ReservedKeysNeverFilter(t *testing.T) {
	filter, _ := compileValues(t, "sort=salary&fields=title&q=node&page=2&limit=5&jobType=Permanent")

	for _, key := range []string{"sort", "fields", "q", "page", "limit"} {
		if _, ok := filter[key]; ok {
			t.Errorf("reserved key %q leaked into the filter: %v", key, filter)
		}
	}
	if got := filter["job_type"]; got != "Permanent" {
		t.Errorf("job_type filter: got %v, want Permanent", got)
	}
}

func TestParseListQuery_ComparatorSuffixes(t *testing.T) {
	filter, _ := compileValues(t, "salary[gte]=50000&salary[lte]=90000")

	sub, ok := filter["salary"].(bson.M)
	if !ok {
		t.Fatalf("expected salary sub-document, got %v", filter["salary"])
	}
	if sub["$gte"] != float64(50000) {
		t.Errorf("$gte: got %v, want 50000", sub["$gte"])
	}
	if sub["$lte"] != float64(90000) {
		t.Errorf("$lte: got %v, want 90000", sub["$lte"])
	}
}

func TestParseListQuery_UnknownFieldsIgnored(t *testing.T) {
	filter, _ := compileValues(t, "bogus=1&$where=evil&location.type=Point&salary=60000")

	if len(filter) != 1 {
		t.Errorf("expected only the salary predicate, got %v", filter)
	}
	if filter["salary"] != float64(60000) {
		t.Errorf("salary: got %v", filter["salary"])
	}
}

func TestParseListQuery_BadNumericValueDropped(t *testing.T) {
	filter, _ := compileValues(t, "salary[gte]=lots")

	if len(filter) != 0 {
		t.Errorf("expected empty filter for unparsable number, got %v", filter)
	}
}

func TestParseListQuery_DefaultSort(t *testing.T) {
	_, opts := compileValues(t, "")

	want := bson.D{{Key: "posting_date", Value: -1}}
	if len(opts.sort) != 1 || opts.sort[0] != want[0] {
		t.Errorf("default sort: got %v, want %v", opts.sort, want)
	}
}

func TestParseListQuery_SortOrderAndDirection(t *testing.T) {
	_, opts := compileValues(t, "sort=-salary,positions")

	want := bson.D{
		{Key: "salary", Value: -1},
		{Key: "positions", Value: 1},
	}
	if len(opts.sort) != len(want) {
		t.Fatalf("sort keys: got %v, want %v", opts.sort, want)
	}
	for i := range want {
		if opts.sort[i] != want[i] {
			t.Errorf("sort[%d]: got %v, want %v", i, opts.sort[i], want[i])
		}
	}
}

func TestParseListQuery_FieldProjection(t *testing.T) {
	_, opts := compileValues(t, "fields=title,company")

	if len(opts.projection) != 2 {
		t.Fatalf("projection: got %v", opts.projection)
	}
	if opts.projection["title"] != 1 || opts.projection["company"] != 1 {
		t.Errorf("projection: got %v, want title and company included", opts.projection)
	}
}

func TestParseListQuery_DefaultProjectionHidesApplications(t *testing.T) {
	_, opts := compileValues(t, "")

	if opts.projection["applications_applied"] != 0 {
		t.Errorf("expected applications_applied excluded by default, got %v", opts.projection)
	}
}

func TestParseListQuery_PaginationMath(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantSkip  int64
		wantLimit int64
	}{
		{"defaults", "", 0, 10},
		{"second page of five", "page=2&limit=5", 5, 5},
		{"non-numeric falls back", "page=abc&limit=xyz", 0, 10},
		{"zero and negative fall back", "page=0&limit=-3", 0, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, opts := compileValues(t, tt.raw)
			if opts.skip != tt.wantSkip {
				t.Errorf("skip: got %d, want %d", opts.skip, tt.wantSkip)
			}
			if opts.limit != tt.wantLimit {
				t.Errorf("limit: got %d, want %d", opts.limit, tt.wantLimit)
			}
		})
	}
}

func TestParseListQuery_SearchPhrase(t *testing.T) {
	filter, _ := compileValues(t, "q=node-js-developer")

	text, ok := filter["$text"].(bson.M)
	if !ok {
		t.Fatalf("expected $text predicate, got %v", filter)
	}
	if text["$search"] != `"node js developer"` {
		t.Errorf("$search: got %v", text["$search"])
	}
}

func TestParseListQuery_SearchAndFilterCombine(t *testing.T) {
	filter, _ := compileValues(t, "q=node&jobType=Permanent")

	if _, ok := filter["$text"]; !ok {
		t.Error("expected $text predicate")
	}
	if filter["job_type"] != "Permanent" {
		t.Errorf("job_type: got %v", filter["job_type"])
	}
}

func TestParseListQuery_DateRange(t *testing.T) {
	filter, _ := compileValues(t, "postingDate[gte]=2026-01-01")

	sub, ok := filter["posting_date"].(bson.M)
	if !ok {
		t.Fatalf("expected posting_date sub-document, got %v", filter)
	}
	if _, ok := sub["$gte"]; !ok {
		t.Errorf("expected $gte date predicate, got %v", sub)
	}
}
