package memdb

import (
	"context"

	"github.com/jackc/pgx/v5"

	"trm.app/billing/repository/parties"
)

type partyStore struct {
	*conn
}

var _ parties.Querier = (*partyStore)(nil)

func (s *partyStore) GetRateOverride(ctx context.Context, partyID string) (parties.PartyRateOverride, error) {
	if err := s.begin(ctx, "GetRateOverride"); err != nil {
		return parties.PartyRateOverride{}, err
	}
	st, done := s.read()
	defer done()
	o, ok := st.overrides[partyID]
	if !ok {
		return parties.PartyRateOverride{}, pgx.ErrNoRows
	}
	return o, nil
}

func (s *partyStore) UpsertRateOverride(ctx context.Context, arg parties.UpsertRateOverrideParams) (parties.PartyRateOverride, error) {
	if err := s.begin(ctx, "UpsertRateOverride"); err != nil {
		return parties.PartyRateOverride{}, err
	}
	st, done := s.write()
	defer done()
	ts := now()
	o, ok := st.overrides[arg.PartyID]
	if !ok {
		o = parties.PartyRateOverride{PartyID: arg.PartyID, CreatedAt: ts}
	}
	o.RateBps = arg.RateBps
	o.UpdatedAt = ts
	st.overrides[arg.PartyID] = o
	return o, nil
}

func (s *partyStore) DeleteRateOverride(ctx context.Context, partyID string) (int64, error) {
	if err := s.begin(ctx, "DeleteRateOverride"); err != nil {
		return 0, err
	}
	st, done := s.write()
	defer done()
	if _, ok := st.overrides[partyID]; !ok {
		return 0, nil
	}
	delete(st.overrides, partyID)
	return 1, nil
}
