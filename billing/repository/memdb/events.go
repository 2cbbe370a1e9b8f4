package memdb

import (
	"cmp"
	"context"
	"slices"

	"github.com/jackc/pgx/v5"

	"trm.app/billing/repository/events"
)

type eventStore struct {
	*conn
}

var _ events.Querier = (*eventStore)(nil)

func (s *eventStore) InsertEvent(ctx context.Context, arg events.InsertEventParams) (events.BillableEvent, error) {
	if err := s.begin(ctx, "InsertEvent"); err != nil {
		return events.BillableEvent{}, err
	}
	st, done := s.write()
	defer done()

	key := eventKey{kind: arg.Kind, sourceRef: arg.SourceRef}
	if _, exists := st.eventKeys[key]; exists {
		return events.BillableEvent{}, pgx.ErrNoRows
	}
	st.nextEventID++
	ts := now()
	ev := events.BillableEvent{
		ID:          st.nextEventID,
		Kind:        arg.Kind,
		PartyID:     arg.PartyID,
		Amount:      arg.Amount,
		Currency:    arg.Currency,
		SourceRef:   arg.SourceRef,
		Description: arg.Description,
		OccurredAt:  arg.OccurredAt,
		State:       "pending",
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}
	st.events[ev.ID] = ev
	st.eventKeys[key] = ev.ID
	return ev, nil
}

func (s *eventStore) GetEvent(ctx context.Context, id int64) (events.BillableEvent, error) {
	if err := s.begin(ctx, "GetEvent"); err != nil {
		return events.BillableEvent{}, err
	}
	st, done := s.read()
	defer done()
	ev, ok := st.events[id]
	if !ok {
		return events.BillableEvent{}, pgx.ErrNoRows
	}
	return ev, nil
}

func (s *eventStore) GetEventForUpdate(ctx context.Context, id int64) (events.BillableEvent, error) {
	if err := s.begin(ctx, "GetEventForUpdate"); err != nil {
		return events.BillableEvent{}, err
	}
	st, done := s.read()
	defer done()
	ev, ok := st.events[id]
	if !ok {
		return events.BillableEvent{}, pgx.ErrNoRows
	}
	return ev, nil
}

func (s *eventStore) GetEventBySourceRef(ctx context.Context, arg events.GetEventBySourceRefParams) (events.BillableEvent, error) {
	if err := s.begin(ctx, "GetEventBySourceRef"); err != nil {
		return events.BillableEvent{}, err
	}
	st, done := s.read()
	defer done()
	id, ok := st.eventKeys[eventKey{kind: arg.Kind, sourceRef: arg.SourceRef}]
	if !ok {
		return events.BillableEvent{}, pgx.ErrNoRows
	}
	return st.events[id], nil
}

func (s *eventStore) UpdateEventState(ctx context.Context, arg events.UpdateEventStateParams) (int64, error) {
	if err := s.begin(ctx, "UpdateEventState"); err != nil {
		return 0, err
	}
	st, done := s.write()
	defer done()
	ev, ok := st.events[arg.ID]
	if !ok || ev.State != arg.FromState {
		return 0, nil
	}
	ev.State = arg.ToState
	ev.UpdatedAt = now()
	st.events[arg.ID] = ev
	return 1, nil
}

func (s *eventStore) filterByParty(st *state, arg events.CountEventsByPartyParams) []events.BillableEvent {
	var items []events.BillableEvent
	for _, ev := range st.events {
		if ev.PartyID != arg.PartyID {
			continue
		}
		if arg.State.Valid && ev.State != arg.State.String {
			continue
		}
		if !within(ev.OccurredAt.Time, arg.From, arg.To) {
			continue
		}
		items = append(items, ev)
	}
	slices.SortFunc(items, func(a, b events.BillableEvent) int {
		if c := b.OccurredAt.Time.Compare(a.OccurredAt.Time); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})
	return items
}

func (s *eventStore) ListEventsByParty(ctx context.Context, arg events.ListEventsByPartyParams) ([]events.BillableEvent, error) {
	if err := s.begin(ctx, "ListEventsByParty"); err != nil {
		return nil, err
	}
	st, done := s.read()
	defer done()
	items := s.filterByParty(st, events.CountEventsByPartyParams{
		PartyID: arg.PartyID,
		State:   arg.State,
		From:    arg.From,
		To:      arg.To,
	})
	return page(items, arg.Limit, arg.Offset), nil
}

func (s *eventStore) CountEventsByParty(ctx context.Context, arg events.CountEventsByPartyParams) (int64, error) {
	if err := s.begin(ctx, "CountEventsByParty"); err != nil {
		return 0, err
	}
	st, done := s.read()
	defer done()
	return int64(len(s.filterByParty(st, arg))), nil
}

func (s *eventStore) ListPendingEventIDs(ctx context.Context, arg events.ListPendingEventIDsParams) ([]int64, error) {
	if err := s.begin(ctx, "ListPendingEventIDs"); err != nil {
		return nil, err
	}
	st, done := s.read()
	defer done()
	var ids []int64
	for _, ev := range st.events {
		if ev.Kind != arg.Kind || ev.State != "pending" {
			continue
		}
		if ev.OccurredAt.Time.After(arg.OccurredBefore.Time) {
			continue
		}
		ids = append(ids, ev.ID)
	}
	slices.Sort(ids)
	return page(ids, arg.Limit, 0), nil
}
