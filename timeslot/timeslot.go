// Package timeslot holds the school's fixed class-period table and the pure
// calendar helpers the ledger validates against.
package timeslot

import (
	"fmt"
	"strings"
	"time"
)

// Slots is the class-period table, "start-end" pairs in day order.
var Slots = []string{
	"07:30-08:20", "08:20-09:10", "09:10-10:00", "10:20-11:10", "11:10-12:00",
	"13:00-13:50", "13:50-14:40", "14:40-15:30", "15:50-16:40", "16:40-17:30",
}

const dayLayout = "2006-01-02"

// Minutes converts "HH:MM" to minutes since midnight. Only the canonical
// zero-padded form is accepted: stored times must compare lexicographically
// in chronological order, so "9:30" or trailing garbage cannot get through.
func Minutes(hhmm string) (int, error) {
	if len(hhmm) != 5 || hhmm[2] != ':' ||
		!isDigit(hhmm[0]) || !isDigit(hhmm[1]) || !isDigit(hhmm[3]) || !isDigit(hhmm[4]) {
		return 0, fmt.Errorf("bad time %q", hhmm)
	}
	h := int(hhmm[0]-'0')*10 + int(hhmm[1]-'0')
	m := int(hhmm[3]-'0')*10 + int(hhmm[4]-'0')
	if h > 23 || m > 59 {
		return 0, fmt.Errorf("bad time %q", hhmm)
	}
	return h*60 + m, nil
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// ValidDay reports whether day is a real calendar date in the stored
// "2006-01-02" form.
func ValidDay(day string) bool {
	t, err := time.Parse(dayLayout, day)
	return err == nil && t.Format(dayLayout) == day
}

// Today formats now's calendar date the way days are stored.
func Today(now time.Time) string { return now.Format(dayLayout) }

func nowMinutes(now time.Time) int { return now.Hour()*60 + now.Minute() }

// slotEnd takes the end of a "start-end" range, or the time itself when not
// a range.
func slotEnd(slot string) string {
	if i := strings.IndexByte(slot, '-'); i >= 0 {
		return slot[i+1:]
	}
	return slot
}

// IsPast reports whether the slot (or single time) on day is already over.
// Days before today are past, days after are not; today compares the current
// time against the slot end, strictly.
func IsPast(day, slot string, now time.Time) bool {
	today := Today(now)
	if day < today {
		return true
	}
	if day > today {
		return false
	}
	if slot == "" {
		return false
	}
	end, err := Minutes(slotEnd(slot))
	if err != nil {
		return false
	}
	return nowMinutes(now) > end
}

// Current returns the slot containing now, else the first upcoming slot,
// else ok=false once every slot's end has passed.
func Current(slots []string, now time.Time) (string, bool) {
	cur := nowMinutes(now)
	for _, slot := range slots {
		parts := strings.SplitN(slot, "-", 2)
		if len(parts) != 2 {
			continue
		}
		start, err1 := Minutes(parts[0])
		end, err2 := Minutes(parts[1])
		if err1 != nil || err2 != nil {
			continue
		}
		if cur >= start && cur < end {
			return slot, true
		}
		if cur < start {
			return slot, true
		}
	}
	return "", false
}

// SlotsInRange returns the contiguous run of Slots from start to end
// inclusive, or nil when either is unknown or out of order.
func SlotsInRange(start, end string) []string {
	si, ei := -1, -1
	for i, s := range Slots {
		if s == start {
			si = i
		}
		if s == end {
			ei = i
		}
	}
	if si < 0 || ei < 0 || si > ei {
		return nil
	}
	out := make([]string, 0, ei-si+1)
	out = append(out, Slots[si:ei+1]...)
	return out
}

// FormatDate renders "2006-01-02" as "02/01/2006" for reports.
func FormatDate(day string) string {
	t, err := time.Parse(dayLayout, day)
	if err != nil {
		return day
	}
	return t.Format("02/01/2006")
}
