// Package notify turns ledger changes into best-effort admin push
// notifications.
package notify

import (
	"fmt"

	"school_booking_tool/models"
)

// Event is one human-readable notification.
type Event struct {
	Title string
	Body  string
}

// Bridge diffs successive snapshots of the watched collections against the
// previously observed id sets. The first snapshot after (re)subscription is
// baseline-only and produces no events, so a fresh start does not flood
// admins with notifications for existing rows.
type Bridge struct {
	loanIDs   map[string]struct{}
	roomIDs   map[string]struct{}
	loansSeen bool
	roomsSeen bool
}

func NewBridge() *Bridge {
	return &Bridge{
		loanIDs: map[string]struct{}{},
		roomIDs: map[string]struct{}{},
	}
}

// ObserveLoans emits "created" events for loans that appeared and "ended"
// events for loans that vanished since the last snapshot.
func (b *Bridge) ObserveLoans(loans []models.Loan) []Event {
	current := make(map[string]struct{}, len(loans))
	var events []Event
	for _, l := range loans {
		current[l.ID] = struct{}{}
		if !b.loansSeen {
			continue
		}
		if _, ok := b.loanIDs[l.ID]; !ok {
			events = append(events, Event{
				Title: "Nova Reserva!",
				Body:  fmt.Sprintf("Professor(a) %s reservou Chromebooks.", l.TeacherName),
			})
		}
	}
	if b.loansSeen {
		for id := range b.loanIDs {
			if _, ok := current[id]; !ok {
				events = append(events, Event{
					Title: "Devolução Realizada",
					Body:  "Um empréstimo de Chromebooks foi finalizado.",
				})
			}
		}
	}
	b.loanIDs = current
	b.loansSeen = true
	return events
}

// ObserveRoomBookings emits events for new bookings only; cancellations pass
// silently.
func (b *Bridge) ObserveRoomBookings(bookings []models.RoomBooking) []Event {
	current := make(map[string]struct{}, len(bookings))
	var events []Event
	for _, bk := range bookings {
		current[bk.ID] = struct{}{}
		if !b.roomsSeen {
			continue
		}
		if _, ok := b.roomIDs[bk.ID]; !ok {
			events = append(events, Event{
				Title: "Reserva Sala Lets",
				Body:  fmt.Sprintf("Nova reserva para %s às %s.", bk.Day, bk.StartTime),
			})
		}
	}
	b.roomIDs = current
	b.roomsSeen = true
	return events
}

// Reset drops the baselines; the next snapshots produce no events.
func (b *Bridge) Reset() {
	b.loanIDs = map[string]struct{}{}
	b.roomIDs = map[string]struct{}{}
	b.loansSeen = false
	b.roomsSeen = false
}
