package controller

import (
	"context"
	"sync"

	"github.com/azizbekh/staffdesk/internal/model"
)

// Detail backs the single-person screen: one person's record, with
// their embedded tasks, re-fetched by id through the gateway matching
// the person's type.
type Detail struct {
	people   func(model.PersonType) PeoplePort
	notifier Notifier

	mu      sync.Mutex
	id      int64
	ptype   model.PersonType
	person  model.Person
	loading bool
	seq     uint64
}

func NewDetail(people func(model.PersonType) PeoplePort, notifier Notifier) *Detail {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &Detail{people: people, notifier: notifier}
}

// Show seeds the view from an already-listed person so the screen is
// not blank while Refresh fetches the backend's copy.
func (d *Detail) Show(p model.Person) {
	d.mu.Lock()
	d.id, d.ptype, d.person = p.ID, p.Type, p
	d.mu.Unlock()
}

// Target reports which person the view currently addresses.
func (d *Detail) Target() (int64, model.PersonType) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.id, d.ptype
}

// Refresh re-fetches the shown person. Loading clears on every exit
// path, a failure keeps the previously shown record, and a reply that is
// no longer the latest issued one is discarded, like List.Refresh.
func (d *Detail) Refresh(ctx context.Context) error {
	d.mu.Lock()
	d.loading = true
	d.seq++
	seq := d.seq
	id, ptype := d.id, d.ptype
	d.mu.Unlock()

	person, err := d.people(ptype).Get(ctx, id)

	d.mu.Lock()
	defer d.mu.Unlock()
	if seq != d.seq {
		// A newer refresh owns the state now.
		return nil
	}
	d.loading = false
	if err != nil {
		d.notifier.Error("failed to load user details")
		return err
	}
	d.person = person
	return nil
}

// Snapshot returns the shown person and the loading flag.
func (d *Detail) Snapshot() (model.Person, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.person, d.loading
}
