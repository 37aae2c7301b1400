// internal/app/store/jobs/query.go
//
// List-query compilation: raw URL query parameters in, one Mongo filter +
// find options out. A ListQuery is an immutable value built once by
// ParseListQuery; nothing mutates shared state between stages, so stage
// order cannot introduce hidden bugs.
package jobstore

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	defaultPage  = 1
	defaultLimit = 10
)

// Parameters consumed by non-filter stages. These never become equality
// filters no matter what a client sends.
var reservedParams = map[string]struct{}{
	"sort":   {},
	"fields": {},
	"q":      {},
	"page":   {},
	"limit":  {},
}

type fieldKind int

const (
	kindString fieldKind = iota
	kindNumber
	kindDate
)

type fieldSpec struct {
	bsonName string
	kind     fieldKind
}

// queryFields is the allow-list of externally filterable/sortable/
// projectable fields, mapping API parameter names to stored field names.
// Anything not listed here is silently ignored, which closes the
// operator-injection surface of passing arbitrary keys into the store.
var queryFields = map[string]fieldSpec{
	"title":        {"title", kindString},
	"slug":         {"slug", kindString},
	"company":      {"company", kindString},
	"industry":     {"industry", kindString},
	"jobType":      {"job_type", kindString},
	"minEducation": {"min_education", kindString},
	"experience":   {"experience", kindString},
	"positions":    {"positions", kindNumber},
	"salary":       {"salary", kindNumber},
	"postingDate":  {"posting_date", kindDate},
	"lastDate":     {"last_date", kindDate},
}

// comparatorRe matches field[op] parameter names, e.g. salary[gte].
var comparatorRe = regexp.MustCompile(`^([a-zA-Z]+)\[(gt|gte|lt|lte)\]$`)

// condition is one typed predicate. An empty op means equality; otherwise
// op is a Mongo comparison operator ($gt, $gte, $lt, $lte).
type condition struct {
	field string
	op    string
	value any
}

type sortKey struct {
	field string
	desc  bool
}

// ListQuery is the compiled-once specification for a job list read.
type ListQuery struct {
	conds  []condition
	sorts  []sortKey
	fields []string
	search string
	page   int
	limit  int
}

// ParseListQuery builds a ListQuery from raw URL query parameters.
// The canonical stage order is filter, sort, fields, search, pagination;
// every stage reads only its own parameters, so the order is fixed here
// once instead of being the caller's problem.
func ParseListQuery(values url.Values) ListQuery {
	return ListQuery{
		conds:  parseFilter(values),
		sorts:  parseSort(values.Get("sort")),
		fields: parseFields(values.Get("fields")),
		search: parseSearch(values.Get("q")),
		page:   parsePositiveInt(values.Get("page"), defaultPage),
		limit:  parsePositiveInt(values.Get("limit"), defaultLimit),
	}
}

// Page returns the 1-based page this query selects.
func (q ListQuery) Page() int { return q.page }

// Limit returns the page size this query selects.
func (q ListQuery) Limit() int { return q.limit }

func parseFilter(values url.Values) []condition {
	var conds []condition

	for key, vals := range values {
		if _, reserved := reservedParams[key]; reserved {
			continue
		}
		if len(vals) == 0 || vals[0] == "" {
			continue
		}
		raw := vals[0]

		name, op := key, ""
		if m := comparatorRe.FindStringSubmatch(key); m != nil {
			name, op = m[1], "$"+m[2]
		}

		spec, ok := queryFields[name]
		if !ok {
			continue
		}

		val, ok := coerce(raw, spec.kind)
		if !ok {
			continue
		}
		conds = append(conds, condition{field: spec.bsonName, op: op, value: val})
	}

	return conds
}

func coerce(raw string, kind fieldKind) (any, bool) {
	switch kind {
	case kindNumber:
		n, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, false
		}
		return n, true
	case kindDate:
		for _, layout := range []string{time.RFC3339, "2006-01-02"} {
			if ts, err := time.Parse(layout, raw); err == nil {
				return ts, true
			}
		}
		return nil, false
	default:
		return raw, true
	}
}

func parseSort(raw string) []sortKey {
	var keys []sortKey
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		desc := strings.HasPrefix(part, "-")
		part = strings.TrimPrefix(part, "-")

		spec, ok := queryFields[part]
		if !ok {
			continue
		}
		keys = append(keys, sortKey{field: spec.bsonName, desc: desc})
	}

	if len(keys) == 0 {
		// Newest postings first by default.
		keys = []sortKey{{field: "posting_date", desc: true}}
	}
	return keys
}

func parseFields(raw string) []string {
	var fields []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if spec, ok := queryFields[part]; ok {
			fields = append(fields, spec.bsonName)
		}
	}
	return fields
}

func parseSearch(raw string) string {
	// Hyphenated topics arrive like "node-js"; the text index wants the
	// spaced phrase.
	return strings.TrimSpace(strings.ReplaceAll(raw, "-", " "))
}

func parsePositiveInt(raw string, fallback int) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

// compile materializes the filter document and find options. Filter and
// search predicates combine with logical AND; skip/limit always apply to
// the filtered result.
func (q ListQuery) compile() (bson.M, *options.FindOptions) {
	filter := bson.M{}
	for _, c := range q.conds {
		if c.op == "" {
			filter[c.field] = c.value
			continue
		}
		sub, ok := filter[c.field].(bson.M)
		if !ok {
			sub = bson.M{}
			filter[c.field] = sub
		}
		sub[c.op] = c.value
	}

	if q.search != "" {
		filter["$text"] = bson.M{"$search": `"` + q.search + `"`}
	}

	sort := make(bson.D, 0, len(q.sorts))
	for _, s := range q.sorts {
		order := 1
		if s.desc {
			order = -1
		}
		sort = append(sort, bson.E{Key: s.field, Value: order})
	}

	projection := bson.M{}
	if len(q.fields) > 0 {
		for _, f := range q.fields {
			projection[f] = 1
		}
	} else {
		// Applications are opt-in; default reads never carry them.
		projection["applications_applied"] = 0
	}

	opts := options.Find().
		SetSort(sort).
		SetProjection(projection).
		SetSkip(int64((q.page - 1) * q.limit)).
		SetLimit(int64(q.limit))

	return filter, opts
}
