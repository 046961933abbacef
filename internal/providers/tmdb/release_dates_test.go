package tmdb

import (
	"context"
	"net/http"
	"testing"
	"time"
)

func releaseDatesTestClient(t *testing.T, body string) *Client {
	t.Helper()
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		if req.URL.Path != "/movie/7/release_dates" {
			t.Fatalf("expected release_dates path, got %s", req.URL.Path)
		}
		return jsonResponse(http.StatusOK, body), nil
	})
	return newTestClient(t, rt)
}

func TestResolveRunStartDatePrefersLatestPastTheatrical(t *testing.T) {
	today := time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)

	// Type 3 in the future must be dropped, leaving the past type 2 entry.
	body := `{
		"id": 7,
		"results": [
			{
				"iso_3166_1": "US",
				"release_dates": [
					{"release_date": "2024-08-01T00:00:00.000Z", "type": 3},
					{"release_date": "2024-04-15T00:00:00.000Z", "type": 2},
					{"release_date": "2024-03-01T00:00:00.000Z", "type": 3},
					{"release_date": "2024-05-20T00:00:00.000Z", "type": 4}
				]
			}
		]
	}`

	client := releaseDatesTestClient(t, body)

	date, ok, err := client.ResolveRunStartDate(context.Background(), 7, "US", today)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !ok {
		t.Fatal("expected a run start date")
	}
	want := time.Date(2024, time.April, 15, 0, 0, 0, 0, time.UTC)
	if !date.Equal(want) {
		t.Fatalf("expected %s, got %s", want, date)
	}
}

func TestResolveRunStartDateFallsBackToOtherRegions(t *testing.T) {
	today := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)

	body := `{
		"id": 7,
		"results": [
			{
				"iso_3166_1": "US",
				"release_dates": [
					{"release_date": "2024-05-01T00:00:00.000Z", "type": 4}
				]
			},
			{
				"iso_3166_1": "FR",
				"release_dates": [
					{"release_date": "2024-02-14T00:00:00.000Z", "type": 3}
				]
			}
		]
	}`

	client := releaseDatesTestClient(t, body)

	date, ok, err := client.ResolveRunStartDate(context.Background(), 7, "US", today)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !ok {
		t.Fatal("expected fallback to the FR theatrical date")
	}
	want := time.Date(2024, time.February, 14, 0, 0, 0, 0, time.UTC)
	if !date.Equal(want) {
		t.Fatalf("expected %s, got %s", want, date)
	}
}

func TestResolveRunStartDateSkipsMalformedEntries(t *testing.T) {
	today := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)

	body := `{
		"id": 7,
		"results": [
			{
				"iso_3166_1": "US",
				"release_dates": [
					{"release_date": "not-a-date", "type": 3},
					{"release_date": "2024-03-08", "type": 3}
				]
			}
		]
	}`

	client := releaseDatesTestClient(t, body)

	date, ok, err := client.ResolveRunStartDate(context.Background(), 7, "US", today)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !ok {
		t.Fatal("expected the well-formed entry to survive")
	}
	want := time.Date(2024, time.March, 8, 0, 0, 0, 0, time.UTC)
	if !date.Equal(want) {
		t.Fatalf("expected %s, got %s", want, date)
	}
}

func TestResolveRunStartDateNoQualifyingDates(t *testing.T) {
	today := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)

	body := `{
		"id": 7,
		"results": [
			{
				"iso_3166_1": "US",
				"release_dates": [
					{"release_date": "2024-09-01T00:00:00.000Z", "type": 3}
				]
			}
		]
	}`

	client := releaseDatesTestClient(t, body)

	_, ok, err := client.ResolveRunStartDate(context.Background(), 7, "US", today)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if ok {
		t.Fatal("expected no run start when every date is in the future")
	}
}

func TestParseReleaseTimestamp(t *testing.T) {
	cases := []struct {
		raw  string
		want time.Time
		ok   bool
	}{
		{"2024-01-05T00:00:00.000Z", time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC), true},
		{"2024-01-05T08:30:00Z", time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC), true},
		{"2024-01-05", time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC), true},
		{"2024-01-05T08:30", time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC), true},
		{"garbage", time.Time{}, false},
		{"", time.Time{}, false},
	}

	for _, tc := range cases {
		got, ok := parseReleaseTimestamp(tc.raw)
		if ok != tc.ok {
			t.Fatalf("%q: expected ok=%v, got %v", tc.raw, tc.ok, ok)
		}
		if ok && !got.Equal(tc.want) {
			t.Fatalf("%q: expected %s, got %s", tc.raw, tc.want, got)
		}
	}
}
