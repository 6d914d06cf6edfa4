package view

import (
	"strconv"

	"github.com/jonathan/jobdash/internal/records"
)

func rec(fields map[string]string) records.Record {
	return records.FromMap(fields)
}

func companies(recs []records.Record) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.Get(records.FieldCompanyName)
	}
	return out
}

func numbered(n int) []records.Record {
	out := make([]records.Record, n)
	for i := range out {
		out[i] = rec(map[string]string{"Company Name": "c" + strconv.Itoa(i)})
	}
	return out
}
