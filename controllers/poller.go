package controllers

import (
	"school_booking_tool/app"
	"school_booking_tool/notify"
)

// NewLedgerPoller wires the notification bridge to the repo and the admin
// broadcast sender.
func NewLedgerPoller(a *app.App) *notify.Poller {
	s := GetSrv(a)
	return notify.NewPoller(s.Repo, s.Broadcast, a.Config.PollInterval)
}
