package view

import (
	"testing"

	"github.com/jonathan/jobdash/internal/records"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleApps() []records.Record {
	return []records.Record{
		rec(map[string]string{"Company Name": "Acme", "Job Title": "Backend Engineer", "Location": "Remote", "Application Status": "Applied", "Stale App Flag": "STALE"}),
		rec(map[string]string{"Company Name": "Beta", "Job Title": "Data Engineer", "Location": "Austin, TX", "Application Status": "Rejected"}),
		rec(map[string]string{"Company Name": "Gamma Labs", "Job Title": "SRE", "Location": "Remote", "Application Status": "Applied"}),
		rec(map[string]string{"Company Name": "Delta", "Job Title": "Platform Engineer", "Location": "NYC", "Application Status": "Offer", "Stale App Flag": "STALE"}),
	}
}

func TestFilter_SearchIsCaseInsensitiveSubstring(t *testing.T) {
	apps := []records.Record{
		rec(map[string]string{"Company Name": "Acme", "Application Status": "Applied"}),
		rec(map[string]string{"Company Name": "Beta", "Application Status": "Rejected"}),
	}

	got := Filter(apps, Criteria{Search: "acm"})
	assert.Equal(t, []string{"Acme"}, companies(got))
}

func TestFilter_SearchFields(t *testing.T) {
	apps := sampleApps()

	assert.Equal(t, []string{"Acme", "Gamma Labs"}, companies(Filter(apps, Criteria{Search: "REMOTE"})))
	assert.Equal(t, []string{"Acme", "Beta", "Delta"}, companies(Filter(apps, Criteria{Search: "engineer"})))
	assert.Empty(t, Filter(apps, Criteria{Search: "Rejected"}), "status is not searched")
}

func TestFilter_EmptyCriteriaMatchesAll(t *testing.T) {
	apps := sampleApps()
	assert.Len(t, Filter(apps, Criteria{}), len(apps))
}

func TestFilter_StatusExactMatch(t *testing.T) {
	apps := sampleApps()
	assert.Equal(t, []string{"Acme", "Gamma Labs"}, companies(Filter(apps, Criteria{Status: "Applied"})))
	assert.Empty(t, Filter(apps, Criteria{Status: "applied"}))
}

func TestFilter_Staleness(t *testing.T) {
	apps := []records.Record{
		rec(map[string]string{"Company Name": "A", "Stale App Flag": "STALE"}),
		rec(map[string]string{"Company Name": "B", "Stale App Flag": ""}),
		rec(map[string]string{"Company Name": "C", "Stale App Flag": "STALE"}),
	}

	assert.Equal(t, []string{"B"}, companies(Filter(apps, Criteria{Staleness: StalenessActive})))
	assert.Equal(t, []string{"A", "C"}, companies(Filter(apps, Criteria{Staleness: StalenessStale})))
	assert.Len(t, Filter(apps, Criteria{}), 3)
}

func TestFilter_PredicatesCommute(t *testing.T) {
	apps := sampleApps()
	search := Criteria{Search: "e"}
	status := Criteria{Status: "Applied"}
	stale := Criteria{Staleness: StalenessActive}

	orders := [][]Criteria{
		{search, status, stale},
		{search, stale, status},
		{status, search, stale},
		{status, stale, search},
		{stale, search, status},
		{stale, status, search},
	}

	combined := companies(Filter(apps, Criteria{Search: "e", Status: "Applied", Staleness: StalenessActive}))
	require.Equal(t, []string{"Gamma Labs"}, combined)

	for _, order := range orders {
		got := apps
		for _, c := range order {
			got = Filter(got, c)
		}
		assert.Equal(t, combined, companies(got))
	}
}

func TestFilter_DoesNotModifyInput(t *testing.T) {
	apps := sampleApps()
	before := companies(apps)
	_ = Filter(apps, Criteria{Status: "Offer"})
	assert.Equal(t, before, companies(apps))
}

func TestParseStaleness(t *testing.T) {
	for in, want := range map[string]Staleness{"": StalenessAny, "stale": StalenessStale, "ACTIVE": StalenessActive} {
		got, err := ParseStaleness(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseStaleness("maybe")
	var optErr *OptionError
	require.ErrorAs(t, err, &optErr)
	assert.Equal(t, `invalid staleness filter: "maybe"`, err.Error())
}
