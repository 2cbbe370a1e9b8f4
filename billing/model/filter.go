package model

import (
	"time"
)

// ListFilter narrows a party's transactions or invoices. Status matches the
// event state or invoice status; From is inclusive and To exclusive.
type ListFilter struct {
	PartyID string
	Status  string
	From    *time.Time
	To      *time.Time
	Limit   int32
	Offset  int32
}
