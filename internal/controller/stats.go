package controller

import (
	"context"

	"github.com/azizbekh/staffdesk/internal/model"
)

// Stats computes the overview counters. They are derived on every call
// from full manager+employee lists and never cached. Pending and Blocked
// both count inactive users; the overview shows the same number under
// both cards.
type Stats struct {
	managers  PeoplePort
	employees PeoplePort
}

func NewStats(managers, employees PeoplePort) *Stats {
	return &Stats{managers: managers, employees: employees}
}

func (s *Stats) Collect(ctx context.Context) (model.Statistics, error) {
	managers, err := s.managers.ListAll(ctx)
	if err != nil {
		return model.Statistics{}, err
	}
	employees, err := s.employees.ListAll(ctx)
	if err != nil {
		return model.Statistics{}, err
	}

	var stats model.Statistics
	for _, u := range append(managers, employees...) {
		stats.Total++
		if u.IsActive {
			stats.Active++
		} else {
			stats.Pending++
			stats.Blocked++
		}
	}
	return stats, nil
}
