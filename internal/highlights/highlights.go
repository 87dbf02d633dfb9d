// Package highlights derives dashboard follow-ups from the ledger: an
// action inbox of transactions that have sat unreconciled too long and
// the scheduled inflows/outflows landing in the next couple of weeks.
package highlights

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finpulse-dev/finpulse/internal/model"
)

const (
	// DefaultMaxActions caps the action inbox.
	DefaultMaxActions = 4
	// DefaultMaxEvents caps the upcoming-events list.
	DefaultMaxEvents = 6
	// DefaultUpcomingWindowDays is how far ahead upcoming events look.
	DefaultUpcomingWindowDays = 14

	// staleDays is how long a transaction may sit unreconciled before
	// it lands in the inbox.
	staleDays = 3
)

// DueStatus renders a deadline relative to today: "Due in 3 days",
// "Due today", "2 days overdue", or "No due date".
func DueStatus(due *time.Time, today time.Time) string {
	if due == nil {
		return "No due date"
	}
	delta := daysBetween(today, *due)
	switch {
	case delta > 0:
		return fmt.Sprintf("Due in %d day%s", delta, plural(delta))
	case delta == 0:
		return "Due today"
	}
	return fmt.Sprintf("%d day%s overdue", -delta, plural(-delta))
}

// RelativeLabel renders a date relative to today: "Today", "3 days
// ago", "In 5 days", or "No date".
func RelativeLabel(target *time.Time, today time.Time) string {
	if target == nil {
		return "No date"
	}
	delta := daysBetween(*target, today)
	switch {
	case delta == 0:
		return "Today"
	case delta > 0:
		return fmt.Sprintf("%d day%s ago", delta, plural(delta))
	}
	return fmt.Sprintf("In %d day%s", -delta, plural(-delta))
}

// Action is one inbox entry asking for a follow-up.
type Action struct {
	TxnID    string
	Title    string
	Category string
	Urgency  string
	Amount   decimal.Decimal
}

// ActionInbox lists transactions that still need reconciling and have
// been sitting for at least three days, newest first. limit <= 0 uses
// the default cap.
func ActionInbox(txns []model.Transaction, now time.Time, limit int) []Action {
	if limit <= 0 {
		limit = DefaultMaxActions
	}
	cutoff := startOfDay(now).AddDate(0, 0, -staleDays)

	type staleTxn struct {
		txn  model.Transaction
		date time.Time
	}
	var stale []staleTxn
	for _, txn := range txns {
		if txn.Status == model.StatusCleared {
			continue
		}
		date, err := txn.ParsedDate()
		if err != nil {
			continue
		}
		if startOfDay(date).After(cutoff) {
			continue
		}
		stale = append(stale, staleTxn{txn: txn, date: date})
	}

	sort.SliceStable(stale, func(i, j int) bool {
		return stale[i].date.After(stale[j].date)
	})
	if len(stale) > limit {
		stale = stale[:limit]
	}

	actions := make([]Action, 0, len(stale))
	for _, st := range stale {
		date := st.date
		actions = append(actions, Action{
			TxnID:    st.txn.ID,
			Title:    actionTitle(st.txn),
			Category: titleCase(string(st.txn.Status)),
			Urgency:  RelativeLabel(&date, now),
			Amount:   st.txn.Amount,
		})
	}
	return actions
}

// EventType tags an upcoming event by cash direction.
type EventType string

const (
	EventInflow  EventType = "inflow"
	EventOutflow EventType = "outflow"
)

// Event is one scheduled transaction inside the upcoming window.
type Event struct {
	TxnID  string
	Title  string
	Date   time.Time
	Amount decimal.Decimal
	Type   EventType
}

// UpcomingEvents lists the scheduled transactions landing between
// today and today+windowDays inclusive, soonest first. windowDays and
// limit <= 0 use the defaults.
func UpcomingEvents(txns []model.Transaction, now time.Time, windowDays, limit int) []Event {
	if windowDays <= 0 {
		windowDays = DefaultUpcomingWindowDays
	}
	if limit <= 0 {
		limit = DefaultMaxEvents
	}

	today := startOfDay(now)
	end := today.AddDate(0, 0, windowDays)

	var events []Event
	for _, txn := range txns {
		if txn.ScheduledFor == nil {
			continue
		}
		when := startOfDay(*txn.ScheduledFor)
		if when.Before(today) || when.After(end) {
			continue
		}

		typ := EventOutflow
		if txn.Type == model.TypeIncome {
			typ = EventInflow
		}
		events = append(events, Event{
			TxnID:  txn.ID,
			Title:  eventTitle(txn),
			Date:   *txn.ScheduledFor,
			Amount: txn.Amount,
			Type:   typ,
		})
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Date.Before(events[j].Date)
	})
	if len(events) > limit {
		events = events[:limit]
	}
	return events
}

func actionTitle(txn model.Transaction) string {
	if txn.Description != "" {
		return txn.Description
	}
	if txn.Category != "" {
		return txn.Category
	}
	return "Transaction follow-up"
}

func eventTitle(txn model.Transaction) string {
	if txn.Description != "" {
		return txn.Description
	}
	if txn.Category != "" {
		return txn.Category
	}
	return "Transaction"
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func daysBetween(from, to time.Time) int {
	return int(math.Round(startOfDay(to).Sub(startOfDay(from)).Hours() / 24))
}
