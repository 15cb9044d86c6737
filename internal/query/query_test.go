package query

import (
	"encoding/json"
	"testing"
	"time"

	"analytics-srv/internal/model"
	"analytics-srv/internal/scoring"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var today = time.Date(2025, time.April, 10, 0, 0, 0, 0, time.UTC) // Thursday

func day(s string) time.Time {
	t, _ := time.Parse(model.DateLayout, s)
	return t
}

func TestResolveDateRange(t *testing.T) {
	tcs := []struct {
		filter, start, end string
		custom             [2]string
	}{
		{model.DateYesterday, "2025-04-09", "2025-04-09", [2]string{}},
		{model.DateThisWeek, "2025-04-07", "2025-04-10", [2]string{}},
		{model.DateLast7Days, "2025-04-03", "2025-04-10", [2]string{}},
		{model.DateLast14Days, "2025-03-27", "2025-04-10", [2]string{}},
		{model.DateLast30Days, "2025-03-11", "2025-04-10", [2]string{}},
		{model.DateLast3Months, "2025-01-10", "2025-04-10", [2]string{}},
		{model.DateThisYear, "2025-01-01", "2025-04-10", [2]string{}},
		{model.DateLastYear, "2024-01-01", "2024-12-31", [2]string{}},
		{model.DateCustom, "2025-02-01", "2025-02-10", [2]string{"2025-02-01", "2025-02-10"}},
		{model.DateCustom, "2000-01-01", "2025-04-10", [2]string{"2025-02-01", ""}},
		{model.DateAllTime, "2000-01-01", "2025-04-10", [2]string{}},
		{"next decade", "2000-01-01", "2025-04-10", [2]string{}},
	}
	for _, tc := range tcs {
		t.Run(tc.filter, func(t *testing.T) {
			r := ResolveDateRange(tc.filter, tc.custom[0], tc.custom[1], today)
			assert.Equal(t, tc.start, r.StartString())
			assert.Equal(t, tc.end, r.EndString())
		})
	}
}

func TestThisWeekOnMondayAndSunday(t *testing.T) {
	r := ResolveDateRange(model.DateThisWeek, "", "", day("2025-04-07"))
	assert.Equal(t, "2025-04-07", r.StartString())
	r = ResolveDateRange(model.DateThisWeek, "", "", day("2025-04-13"))
	assert.Equal(t, "2025-04-07", r.StartString())
}

func TestClockUsesLocation(t *testing.T) {
	jakarta := time.FixedZone("WIB", 7*3600)
	c := Clock{Now: func() time.Time { return time.Date(2025, 4, 9, 20, 0, 0, 0, time.UTC) }, Location: jakarta}
	assert.Equal(t, day("2025-04-10"), c.Today())
	assert.Equal(t, day("2025-04-09"), Clock{Now: c.Now}.Today())
}

func newCompiler() *Compiler {
	return NewCompiler(scoring.New([]string{"detik.com"}), Clock{Now: func() time.Time { return today }}, Config{ImportanceThreshold: 50})
}

// roundTrip renders the body as the store would receive it.
func roundTrip(t *testing.T, body M) map[string]any {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func mustClauses(t *testing.T, body map[string]any) []any {
	t.Helper()
	q := body["query"].(map[string]any)["bool"].(map[string]any)
	return q["must"].([]any)
}

func filterClauses(body map[string]any) []any {
	q := body["query"].(map[string]any)["bool"].(map[string]any)
	f, _ := q["filter"].([]any)
	return f
}

func TestCompileHasExactlyOneRange(t *testing.T) {
	filters := []model.Filter{
		{},
		{DateFilter: model.DateLast7Days, Keywords: model.StringList{"a", "b"}, SearchKeyword: model.StringList{"c"}},
		{DateFilter: model.DateCustom, CustomStartDate: "2025-01-01", CustomEndDate: "2025-01-31", SearchExactPhrases: true},
		{DateFilter: model.DateThisYear, CaseSensitive: true, Keywords: model.StringList{"X"}},
	}
	c := newCompiler()
	for i, f := range filters {
		f = f.Normalize()
		compiled := c.Compile(f, Options{})
		want := ResolveDateRange(string(f.DateFilter), string(f.CustomStartDate), string(f.CustomEndDate), today)
		body := roundTrip(t, compiled.Body)

		ranges := 0
		for _, clause := range mustClauses(t, body) {
			r, ok := clause.(map[string]any)["range"]
			if !ok {
				continue
			}
			ranges++
			bounds := r.(map[string]any)[FieldCreatedAt].(map[string]any)
			assert.Equal(t, want.StartString(), bounds["gte"], "filter %d", i)
			assert.Equal(t, want.EndString(), bounds["lte"], "filter %d", i)
		}
		assert.Equal(t, 1, ranges, "filter %d", i)
		assert.Equal(t, want, compiled.Range)
	}
}

func TestEmptyChannelsTargetEveryIndex(t *testing.T) {
	compiled := newCompiler().Compile(model.Filter{}.Normalize(), Options{})
	assert.Len(t, compiled.Indices, 9)
	assert.Contains(t, compiled.Indices, "news_data")
	assert.Contains(t, compiled.Indices, "twitter_data")

	noNews := Indices(nil, true)
	assert.Len(t, noNews, 8)
	assert.NotContains(t, noNews, "news_data")

	assert.Equal(t, []string{"news_data", "tiktok_data"}, Indices([]string{"media", "tiktok", "news"}, false))
}

func TestKeywordBlocks(t *testing.T) {
	c := newCompiler()
	f := model.Filter{Keywords: model.StringList{"a", "b"}, SearchKeyword: model.StringList{"c"}}.Normalize()
	must := mustClauses(t, roundTrip(t, c.Compile(f, Options{}).Body))
	require.Len(t, must, 3)

	kw := must[1].(map[string]any)["bool"].(map[string]any)
	assert.Len(t, kw["should"], 4)
	first := kw["should"].([]any)[0].(map[string]any)
	assert.Equal(t, "and", first["match"].(map[string]any)[FieldCaption].(map[string]any)["operator"])

	f.SearchExactPhrases = true
	must = mustClauses(t, roundTrip(t, c.Compile(f, Options{}).Body))
	first = must[1].(map[string]any)["bool"].(map[string]any)["should"].([]any)[1].(map[string]any)
	assert.Equal(t, "a", first["match_phrase"].(map[string]any)[FieldIssue])

	f.CaseSensitive = true
	must = mustClauses(t, roundTrip(t, c.Compile(f, Options{}).Body))
	first = must[2].(map[string]any)["bool"].(map[string]any)["should"].([]any)[0].(map[string]any)
	assert.Equal(t, "*c*", first["wildcard"].(map[string]any)["post_caption.keyword"].(map[string]any)["value"])
}

func TestCaseSensitiveKeywordModes(t *testing.T) {
	f := model.Filter{Keywords: model.StringList{"Harga BBM"}, CaseSensitive: true}

	loose := roundTrip(t, keywordClause(FieldCaption, "Harga BBM", f))
	must := loose["bool"].(map[string]any)["must"].([]any)
	require.Len(t, must, 2)
	assert.Equal(t, "*Harga*", must[0].(map[string]any)["wildcard"].(map[string]any)["post_caption.keyword"].(map[string]any)["value"])
	assert.Equal(t, "*BBM*", must[1].(map[string]any)["wildcard"].(map[string]any)["post_caption.keyword"].(map[string]any)["value"])

	f.SearchExactPhrases = true
	exact := roundTrip(t, keywordClause(FieldIssue, "Harga BBM", f))
	assert.Equal(t, "*Harga BBM*", exact["wildcard"].(map[string]any)["issue.keyword"].(map[string]any)["value"])
	_, insensitive := exact["wildcard"].(map[string]any)["issue.keyword"].(map[string]any)["case_insensitive"]
	assert.False(t, insensitive)
}

func TestWildcardValuesAreEscaped(t *testing.T) {
	assert.Equal(t, `*jawa\*barat\?\\*`, Contains(`jawa*barat?\`))

	f := model.Filter{Region: model.StringList{"a*b"}, Language: model.StringList{"id"}}.Normalize()
	filter := filterClauses(roundTrip(t, newCompiler().Compile(f, Options{}).Body))
	require.Len(t, filter, 2)

	region := filter[0].(map[string]any)["bool"].(map[string]any)["should"].([]any)[0].(map[string]any)
	w := region["wildcard"].(map[string]any)[FieldRegion].(map[string]any)
	assert.Equal(t, `*a\*b*`, w["value"])
	assert.Equal(t, true, w["case_insensitive"])

	lang := filter[1].(map[string]any)["bool"].(map[string]any)["should"].([]any)[0].(map[string]any)
	assert.Equal(t, "*indonesia*", lang["wildcard"].(map[string]any)[FieldLanguage].(map[string]any)["value"])
}

func TestImportanceAndInfluenceBounds(t *testing.T) {
	lo, hi := 20.0, 80.0
	f := model.Filter{Importance: model.ImportanceImportant, InfluenceScoreMin: &lo, InfluenceScoreMax: &hi}.Normalize()
	filter := filterClauses(roundTrip(t, newCompiler().Compile(f, Options{RequireViral: true}).Body))
	require.Len(t, filter, 3)

	floor := filter[0].(map[string]any)["script"].(map[string]any)["script"].(map[string]any)
	assert.Equal(t, 5.0, floor["params"].(map[string]any)["floor"])

	bounds := filter[1].(map[string]any)["script"].(map[string]any)["script"].(map[string]any)
	params := bounds["params"].(map[string]any)
	assert.Equal(t, 2.0, params["min"])
	assert.Equal(t, 8.0, params["max"])

	assert.Equal(t, FieldViral, filter[2].(map[string]any)["exists"].(map[string]any)["field"])
}

func TestSortShapes(t *testing.T) {
	c := newCompiler()
	f := model.Filter{}.Normalize()
	body := roundTrip(t, c.Compile(f, Options{Shape: ResultShape{Size: 10, From: 20, Sort: SortRecent, Order: "asc"}}).Body)
	assert.Equal(t, 10.0, body["size"])
	assert.Equal(t, 20.0, body["from"])
	assert.Equal(t, "asc", body["sort"].([]any)[0].(map[string]any)[FieldCreatedAt].(map[string]any)["order"])

	body = roundTrip(t, c.Compile(f, Options{Shape: ResultShape{Size: 10, Sort: SortPopular}}).Body)
	script := body["sort"].([]any)[0].(map[string]any)["_script"].(map[string]any)
	assert.Equal(t, "desc", script["order"])

	body = roundTrip(t, c.Compile(f, Options{Aggs: M{"x": Cardinality(FieldUsername)}}).Body)
	assert.Equal(t, 0.0, body["size"])
	assert.NotContains(t, body, "sort")
	assert.Contains(t, body, "aggs")
}

func TestDateRangeDays(t *testing.T) {
	assert.Equal(t, 10, DateRange{day("2025-04-01"), day("2025-04-10")}.Days())
	assert.Equal(t, 1, DateRange{day("2025-04-01"), day("2025-04-01")}.Days())
}
