package assignment

import (
	"context"

	"parcelhub/internal/domain"
)

// parcelAssigner is the slice of the parcel store the coordinator writes.
type parcelAssigner interface {
	AssignRider(ctx context.Context, id string, a domain.RiderAssignment) (bool, error)
}

// riderWorkStatus is the slice of the rider store the coordinator writes.
type riderWorkStatus interface {
	SetWorkStatus(ctx context.Context, id string, ws domain.WorkStatus) (bool, error)
}

type counter interface {
	Inc()
}
