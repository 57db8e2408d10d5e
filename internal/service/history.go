package service

import (
	"fmt"
	"time"

	"blueeyes-backoffice/internal/domain"
)

// Period is a history grouping granularity.
type Period string

const (
	PeriodDay   Period = "day"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
)

func ParsePeriod(s string) (Period, error) {
	switch Period(s) {
	case PeriodDay, PeriodWeek, PeriodMonth:
		return Period(s), nil
	}
	return "", fmt.Errorf("unknown period %q", s)
}

// HistoryGroup is one bucket of ledger entries sharing a period key.
type HistoryGroup struct {
	Key     string               `json:"key"`
	Entries []domain.Transaction `json:"entries"`
}

// GroupByPeriod buckets entries by their effective time. Groups preserve the
// input order and appear in order of first occurrence; undated entries share
// an empty key.
func GroupByPeriod(txs []domain.Transaction, period Period) []HistoryGroup {
	var groups []HistoryGroup
	index := make(map[string]int)

	for _, t := range txs {
		key := periodKey(t.EffectiveTime(), period)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, HistoryGroup{Key: key})
		}
		groups[i].Entries = append(groups[i].Entries, t)
	}
	return groups
}

// FilterToday keeps entries whose effective time falls on the same calendar
// day as now, in now's location.
func FilterToday(txs []domain.Transaction, now time.Time) []domain.Transaction {
	y, m, d := now.Date()
	var out []domain.Transaction
	for _, t := range txs {
		ts := t.EffectiveTime()
		if ts.IsZero() {
			continue
		}
		ty, tm, td := ts.In(now.Location()).Date()
		if ty == y && tm == m && td == d {
			out = append(out, t)
		}
	}
	return out
}

func periodKey(ts time.Time, period Period) string {
	if ts.IsZero() {
		return ""
	}
	switch period {
	case PeriodWeek:
		year, week := ts.ISOWeek()
		return fmt.Sprintf("%04d-W%02d", year, week)
	case PeriodMonth:
		return ts.Format("2006-01")
	default:
		return ts.Format("2006-01-02")
	}
}
