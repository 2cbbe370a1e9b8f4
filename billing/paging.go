package billing

import (
	"time"

	"encore.dev/beta/errs"

	"trm.app/billing/model"
)

const (
	defaultLimit = 10
	maxLimit     = 100
)

// PageRequest holds the paging and filter query parameters shared by the
// list endpoints. The window start is given by at most one of Offset, Skip or
// the 1-based Page. From and To are RFC 3339 timestamps; From is inclusive and
// To exclusive.
type PageRequest struct {
	Limit  int    `query:"limit"`
	Offset int    `query:"offset"`
	Skip   int    `query:"skip"`
	Page   int    `query:"page"`
	Status string `query:"status"`
	From   string `query:"from"`
	To     string `query:"to"`
}

// window normalizes the limit and resolves the offset, then rewrites Offset,
// Skip and Page so responses echo the window actually served.
func (r *PageRequest) window() error {
	if r.Limit <= 0 {
		r.Limit = defaultLimit
	}
	if r.Limit > maxLimit {
		r.Limit = maxLimit
	}
	if r.Offset < 0 || r.Skip < 0 || r.Page < 0 {
		return &errs.Error{Code: errs.InvalidArgument, Message: "offset, skip and page must not be negative"}
	}

	given := 0
	for _, v := range []int{r.Offset, r.Skip, r.Page} {
		if v != 0 {
			given++
		}
	}
	if given > 1 {
		return &errs.Error{Code: errs.InvalidArgument, Message: "only one of offset, skip or page may be set"}
	}

	offset := r.Offset + r.Skip
	if r.Page > 0 {
		offset = (r.Page - 1) * r.Limit
	}
	r.Offset = offset
	r.Skip = offset
	r.Page = offset/r.Limit + 1
	return nil
}

func (r *PageRequest) filter(partyID string) (model.ListFilter, error) {
	if err := r.window(); err != nil {
		return model.ListFilter{}, err
	}

	from, err := parseTime("from", r.From)
	if err != nil {
		return model.ListFilter{}, err
	}
	to, err := parseTime("to", r.To)
	if err != nil {
		return model.ListFilter{}, err
	}
	if from != nil && to != nil && !to.After(*from) {
		return model.ListFilter{}, &errs.Error{Code: errs.InvalidArgument, Message: "to must be after from"}
	}

	return model.ListFilter{
		PartyID: partyID,
		Status:  r.Status,
		From:    from,
		To:      to,
		Limit:   int32(r.Limit),
		Offset:  int32(r.Offset),
	}, nil
}

func parseTime(field, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil, &errs.Error{Code: errs.InvalidArgument, Message: field + " must be an RFC 3339 timestamp"}
	}
	t = t.UTC()
	return &t, nil
}
