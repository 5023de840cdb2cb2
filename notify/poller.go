package notify

import (
	"context"
	"errors"
	"log"
	"time"

	"school_booking_tool/models"
	"school_booking_tool/timeslot"
)

const maxAttempts = 3

// Snapshotter is the slice of the repo the poller reads.
type Snapshotter interface {
	ListActiveLoans(ctx context.Context) ([]models.Loan, error)
	ListUpcomingRoomBookings(ctx context.Context, fromDay string) ([]models.RoomBooking, error)
}

// Poller periodically snapshots the watched collections and feeds the
// bridge. Delivery failures go to the retry queue; snapshot failures only
// log and the bridge keeps its last observed view.
type Poller struct {
	Repo     Snapshotter
	Bridge   *Bridge
	Notifier Notifier
	Queue    *RetryQueue
	Interval time.Duration
}

func NewPoller(repo Snapshotter, notifier Notifier, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &Poller{
		Repo:     repo,
		Bridge:   NewBridge(),
		Notifier: notifier,
		Queue:    NewRetryQueue(),
		Interval: interval,
	}
}

// Run ticks until ctx is done.
func (p *Poller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.Tick(ctx)
		}
	}
}

// Tick takes one snapshot round and drains due retries.
func (p *Poller) Tick(ctx context.Context) {
	if loans, err := p.Repo.ListActiveLoans(ctx); err != nil {
		log.Printf("notify: loan snapshot failed: %v", err)
	} else {
		for _, ev := range p.Bridge.ObserveLoans(loans) {
			p.deliver(ctx, ev, 0)
		}
	}

	fromDay := timeslot.Today(time.Now())
	if bookings, err := p.Repo.ListUpcomingRoomBookings(ctx, fromDay); err != nil {
		log.Printf("notify: room snapshot failed: %v", err)
	} else {
		for _, ev := range p.Bridge.ObserveRoomBookings(bookings) {
			p.deliver(ctx, ev, 0)
		}
	}

	for item := p.Queue.Dequeue(); item != nil; item = p.Queue.Dequeue() {
		p.deliver(ctx, item.Event, item.Attempts)
	}
}

func (p *Poller) deliver(ctx context.Context, ev Event, attempts int) {
	err := p.Notifier.Send(ctx, ev.Title, ev.Body)
	if err == nil {
		return
	}
	log.Printf("notify: send %q failed: %v", ev.Title, err)
	if errors.Is(err, ErrNotConfigured) || attempts+1 >= maxAttempts {
		return
	}
	p.Queue.Enqueue(&RetryItem{
		Event:    ev,
		RetryAt:  time.Now().Add(p.Interval),
		Attempts: attempts + 1,
	})
}
