package charts

import (
	"math"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/jonathan/jobdash/internal/records"
	"github.com/jonathan/jobdash/internal/store"
)

// Count is one labelled value of a bar or doughnut chart.
type Count struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// DayCount is one point of the timeline.
type DayCount struct {
	Date  string `json:"date"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Ratio is a two-slice doughnut with its headline rate.
type Ratio struct {
	Hit  int     `json:"hit"`
	Miss int     `json:"miss"`
	Rate float64 `json:"rate"`
}

// Data is every chart series for one range.
type Data struct {
	Range            Range       `json:"range"`
	Stats            store.Stats `json:"stats"`
	Timeline         []DayCount  `json:"timeline"`
	Status           []Count     `json:"status"`
	Funnel           []Count     `json:"funnel"`
	Response         Ratio       `json:"response"`
	InterviewSuccess Ratio       `json:"interview_success"`
	OfferConversion  Ratio       `json:"offer_conversion"`
	ResponseTime     []Count     `json:"response_time"`
}

// Build computes all series for the applications inside r.
func Build(apps []records.Record, r Range, now time.Time) Data {
	in := FilterByRange(apps, r, now)
	return Data{
		Range:            r,
		Stats:            store.StatsFor(in),
		Timeline:         Timeline(in),
		Status:           StatusDistribution(in),
		Funnel:           Funnel(in),
		Response:         ResponseRate(in),
		InterviewSuccess: InterviewSuccess(in),
		OfferConversion:  OfferConversion(in),
		ResponseTime:     ResponseTime(in),
	}
}

// Timeline counts applications per calendar day, oldest first.
// Rows without a parseable date are skipped.
func Timeline(apps []records.Record) []DayCount {
	counts := make(map[time.Time]int)
	for _, app := range apps {
		v := app.Value(records.FieldDateApplied)
		if v.Kind != records.KindDate {
			continue
		}
		counts[v.Time]++
	}

	days := make([]time.Time, 0, len(counts))
	for d := range counts {
		days = append(days, d)
	}
	slices.SortFunc(days, time.Time.Compare)

	out := make([]DayCount, len(days))
	for i, d := range days {
		out[i] = DayCount{Date: d.Format(InputDate), Label: d.Format("Jan 2, 2006"), Count: counts[d]}
	}
	return out
}

// StatusDistribution counts applications per status in first-appearance
// order; blank statuses count as "Unknown".
func StatusDistribution(apps []records.Record) []Count {
	index := make(map[string]int)
	out := []Count{}
	for _, app := range apps {
		status := app.Get(records.FieldApplicationStatus)
		if status == "" {
			status = "Unknown"
		}
		i, ok := index[status]
		if !ok {
			i = len(out)
			index[status] = i
			out = append(out, Count{Label: status})
		}
		out[i].Count++
	}
	return out
}

// Funnel returns the stage counts total, applied, screening, interviews, offers.
func Funnel(apps []records.Record) []Count {
	var applied, screening, interviews, offers int
	for _, app := range apps {
		status := app.Get(records.FieldApplicationStatus)
		lower := strings.ToLower(status)
		if status == "Applied" {
			applied++
		}
		if strings.Contains(lower, "screening") || strings.Contains(lower, "recruiter screen") {
			screening++
		}
		if hadInterview(app) {
			interviews++
		}
		if status == "Offer" {
			offers++
		}
	}
	return []Count{
		{Label: "Total Applications", Count: len(apps)},
		{Label: "Applied", Count: applied},
		{Label: "Screening", Count: screening},
		{Label: "Interviews", Count: interviews},
		{Label: "Offers", Count: offers},
	}
}

// ResponseRate splits applications into responded (any status other than
// blank, "applied" or "unknown") and no response.
func ResponseRate(apps []records.Record) Ratio {
	responded := 0
	for _, app := range apps {
		switch strings.ToLower(app.Get(records.FieldApplicationStatus)) {
		case "", "applied", "unknown":
		default:
			responded++
		}
	}
	return ratio(responded, len(apps))
}

// InterviewSuccess is the share of applications that reached an interview or
// recruiter screen.
func InterviewSuccess(apps []records.Record) Ratio {
	got := 0
	for _, app := range apps {
		if store.IsInterviewLike(app) {
			got++
		}
	}
	return ratio(got, len(apps))
}

// OfferConversion is offers over applications that reached an interview.
func OfferConversion(apps []records.Record) Ratio {
	interviews, offers := 0, 0
	for _, app := range apps {
		if hadInterview(app) {
			interviews++
		}
		if app.Get(records.FieldApplicationStatus) == "Offer" {
			offers++
		}
	}
	r := ratio(offers, interviews)
	// offers without a recorded interview would push Miss negative
	r.Miss = max(r.Miss, 0)
	return r
}

// ResponseTime buckets "Days Since Applied" for applications past the
// applied stage.
func ResponseTime(apps []records.Record) []Count {
	buckets := []Count{
		{Label: "0-7 days"},
		{Label: "8-14 days"},
		{Label: "15-30 days"},
		{Label: "30+ days"},
	}
	for _, app := range apps {
		if strings.ToLower(app.Get(records.FieldApplicationStatus)) == "applied" {
			continue
		}
		days, ok := leadingInt(app.Get(records.FieldDaysSinceApplied))
		if !ok {
			continue
		}
		switch {
		case days <= 7:
			buckets[0].Count++
		case days <= 14:
			buckets[1].Count++
		case days <= 30:
			buckets[2].Count++
		default:
			buckets[3].Count++
		}
	}
	return buckets
}

func hadInterview(app records.Record) bool {
	return strings.Contains(strings.ToLower(app.Get(records.FieldApplicationStatus)), "interview") ||
		app.Get(records.FieldInterviewStage) != ""
}

func ratio(hit, total int) Ratio {
	r := Ratio{Hit: hit, Miss: total - hit}
	if total > 0 {
		r.Rate = math.Round(float64(hit)/float64(total)*1000) / 10
	}
	return r
}

// leadingInt parses the integer prefix of s ("12 days" -> 12).
func leadingInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && (s[end] >= '0' && s[end] <= '9' || end == 0 && (s[end] == '-' || s[end] == '+')) {
		end++
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}
