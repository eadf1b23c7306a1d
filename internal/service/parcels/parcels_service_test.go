package parcels

import (
	"context"
	"errors"
	"testing"
	"time"

	"parcelhub/internal/apperr"
	"parcelhub/internal/domain"
	"parcelhub/internal/logx"
)

type mockParcelRepo struct {
	insertFn       func(ctx context.Context, p *domain.Parcel) (string, error)
	listFn         func(ctx context.Context, f domain.ParcelFilter) ([]domain.Parcel, error)
	listForRiderFn func(ctx context.Context, email string) ([]domain.Parcel, error)
	getFn          func(ctx context.Context, id string) (*domain.Parcel, error)
	setStatusFn    func(ctx context.Context, id string, status domain.DeliveryStatus, pickedAt, deliveredAt *time.Time) (bool, error)
	deleteFn       func(ctx context.Context, id string) (bool, error)
}

func (m *mockParcelRepo) Insert(ctx context.Context, p *domain.Parcel) (string, error) {
	return m.insertFn(ctx, p)
}

func (m *mockParcelRepo) List(ctx context.Context, f domain.ParcelFilter) ([]domain.Parcel, error) {
	return m.listFn(ctx, f)
}

func (m *mockParcelRepo) ListForRider(ctx context.Context, email string) ([]domain.Parcel, error) {
	return m.listForRiderFn(ctx, email)
}

func (m *mockParcelRepo) Get(ctx context.Context, id string) (*domain.Parcel, error) {
	return m.getFn(ctx, id)
}

func (m *mockParcelRepo) SetDeliveryStatus(ctx context.Context, id string, status domain.DeliveryStatus, pickedAt, deliveredAt *time.Time) (bool, error) {
	return m.setStatusFn(ctx, id, status, pickedAt, deliveredAt)
}

func (m *mockParcelRepo) Delete(ctx context.Context, id string) (bool, error) {
	return m.deleteFn(ctx, id)
}

type mockTrackingRepo struct {
	insertFn func(ctx context.Context, t *domain.TrackingUpdate) (string, error)
	listFn   func(ctx context.Context, trackingID string) ([]domain.TrackingUpdate, error)
}

func (m *mockTrackingRepo) Insert(ctx context.Context, t *domain.TrackingUpdate) (string, error) {
	return m.insertFn(ctx, t)
}

func (m *mockTrackingRepo) ListByTrackingID(ctx context.Context, trackingID string) ([]domain.TrackingUpdate, error) {
	return m.listFn(ctx, trackingID)
}

func newService(repo *mockParcelRepo, tracking *mockTrackingRepo) *Service {
	return NewService(repo, tracking, time.Second, logx.Nop())
}

func TestService_Create_Defaults(t *testing.T) {
	t.Parallel()

	var inserted *domain.Parcel
	repo := &mockParcelRepo{
		insertFn: func(_ context.Context, p *domain.Parcel) (string, error) {
			inserted = p
			return "6650a0b1c2d3e4f5a6b7c8d9", nil
		},
	}
	svc := newService(repo, &mockTrackingRepo{})

	id, err := svc.Create(context.Background(), &domain.Parcel{CreatedBy: "a@b.com", Title: "books"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "6650a0b1c2d3e4f5a6b7c8d9" {
		t.Fatalf("id = %q", id)
	}
	if inserted.DeliveryStatus != domain.DeliveryCreated {
		t.Fatalf("delivery status = %q, want created", inserted.DeliveryStatus)
	}
	if inserted.PaymentStatus != domain.PaymentUnpaid {
		t.Fatalf("payment status = %q, want unpaid", inserted.PaymentStatus)
	}
	if inserted.CreatedAt.IsZero() {
		t.Fatal("createdAt not stamped")
	}
}

func TestService_Create_RequiresCreator(t *testing.T) {
	t.Parallel()

	svc := newService(&mockParcelRepo{}, &mockTrackingRepo{})
	_, err := svc.Create(context.Background(), &domain.Parcel{Title: "no creator"})
	if !errors.Is(err, apperr.ErrInvalid) {
		t.Fatalf("want ErrInvalid, got %v", err)
	}
}

func TestService_List_RejectsUnknownStatus(t *testing.T) {
	t.Parallel()

	svc := newService(&mockParcelRepo{}, &mockTrackingRepo{})
	_, err := svc.List(context.Background(), domain.ParcelFilter{DeliveryStatus: "teleported"})
	if !errors.Is(err, apperr.ErrInvalid) {
		t.Fatalf("want ErrInvalid, got %v", err)
	}
}

func TestService_List_PassesFilter(t *testing.T) {
	t.Parallel()

	repo := &mockParcelRepo{
		listFn: func(_ context.Context, f domain.ParcelFilter) ([]domain.Parcel, error) {
			if f.CreatedBy != "a@b.com" || f.PaymentStatus != domain.PaymentUnpaid {
				t.Fatalf("unexpected filter %+v", f)
			}
			return []domain.Parcel{{CreatedBy: "a@b.com"}}, nil
		},
	}
	svc := newService(repo, &mockTrackingRepo{})
	out, err := svc.List(context.Background(), domain.ParcelFilter{
		CreatedBy:     "a@b.com",
		PaymentStatus: domain.PaymentUnpaid,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("got %d parcels", len(out))
	}
}

func TestService_GetByID_NotFound(t *testing.T) {
	t.Parallel()

	repo := &mockParcelRepo{
		getFn: func(context.Context, string) (*domain.Parcel, error) { return nil, nil },
	}
	svc := newService(repo, &mockTrackingRepo{})
	_, err := svc.GetByID(context.Background(), "6650a0b1c2d3e4f5a6b7c8d9")
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestService_SetStatus_StampsPickedAt(t *testing.T) {
	t.Parallel()

	repo := &mockParcelRepo{
		setStatusFn: func(_ context.Context, _ string, status domain.DeliveryStatus, pickedAt, deliveredAt *time.Time) (bool, error) {
			if status != domain.DeliveryInTransit {
				t.Fatalf("status = %q", status)
			}
			if pickedAt == nil || pickedAt.IsZero() {
				t.Fatal("picked_at not stamped on in_transit")
			}
			if deliveredAt != nil {
				t.Fatal("delivered_at must not be stamped on in_transit")
			}
			return true, nil
		},
	}
	svc := newService(repo, &mockTrackingRepo{})
	if err := svc.SetStatus(context.Background(), "6650a0b1c2d3e4f5a6b7c8d9", domain.DeliveryInTransit); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestService_SetStatus_StampsDeliveredAt(t *testing.T) {
	t.Parallel()

	repo := &mockParcelRepo{
		setStatusFn: func(_ context.Context, _ string, status domain.DeliveryStatus, pickedAt, deliveredAt *time.Time) (bool, error) {
			if deliveredAt == nil || deliveredAt.IsZero() {
				t.Fatal("delivered_at not stamped on delivered")
			}
			if pickedAt != nil {
				t.Fatal("picked_at must not be re-stamped on delivered")
			}
			return true, nil
		},
	}
	svc := newService(repo, &mockTrackingRepo{})
	if err := svc.SetStatus(context.Background(), "6650a0b1c2d3e4f5a6b7c8d9", domain.DeliveryDelivered); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestService_SetStatus_UnknownValue(t *testing.T) {
	t.Parallel()

	svc := newService(&mockParcelRepo{}, &mockTrackingRepo{})
	err := svc.SetStatus(context.Background(), "6650a0b1c2d3e4f5a6b7c8d9", "lost")
	if !errors.Is(err, apperr.ErrInvalid) {
		t.Fatalf("want ErrInvalid, got %v", err)
	}
}

func TestService_SetStatus_NotFound(t *testing.T) {
	t.Parallel()

	repo := &mockParcelRepo{
		setStatusFn: func(context.Context, string, domain.DeliveryStatus, *time.Time, *time.Time) (bool, error) {
			return false, nil
		},
	}
	svc := newService(repo, &mockTrackingRepo{})
	err := svc.SetStatus(context.Background(), "6650a0b1c2d3e4f5a6b7c8d9", domain.DeliveryDelivered)
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestService_Delete_NotFound(t *testing.T) {
	t.Parallel()

	repo := &mockParcelRepo{
		deleteFn: func(context.Context, string) (bool, error) { return false, nil },
	}
	svc := newService(repo, &mockTrackingRepo{})
	err := svc.Delete(context.Background(), "6650a0b1c2d3e4f5a6b7c8d9")
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestService_ListForRider_RequiresEmail(t *testing.T) {
	t.Parallel()

	svc := newService(&mockParcelRepo{}, &mockTrackingRepo{})
	_, err := svc.ListForRider(context.Background(), "  ")
	if !errors.Is(err, apperr.ErrInvalid) {
		t.Fatalf("want ErrInvalid, got %v", err)
	}
}

func TestService_AddTracking_DefaultsTimestamp(t *testing.T) {
	t.Parallel()

	tracking := &mockTrackingRepo{
		insertFn: func(_ context.Context, u *domain.TrackingUpdate) (string, error) {
			if u.Timestamp.IsZero() {
				t.Fatal("timestamp not defaulted")
			}
			return "6650a0b1c2d3e4f5a6b7c8d9", nil
		},
	}
	svc := newService(&mockParcelRepo{}, tracking)
	_, err := svc.AddTracking(context.Background(), &domain.TrackingUpdate{
		TrackingID: "TRK-1",
		Status:     "picked up",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestService_AddTracking_RequiresFields(t *testing.T) {
	t.Parallel()

	svc := newService(&mockParcelRepo{}, &mockTrackingRepo{})
	_, err := svc.AddTracking(context.Background(), &domain.TrackingUpdate{TrackingID: "TRK-1"})
	if !errors.Is(err, apperr.ErrInvalid) {
		t.Fatalf("want ErrInvalid, got %v", err)
	}
}

func TestService_StoreFailureIsUpstream(t *testing.T) {
	t.Parallel()

	repo := &mockParcelRepo{
		listFn: func(context.Context, domain.ParcelFilter) ([]domain.Parcel, error) {
			return nil, errors.New("no reachable servers")
		},
	}
	svc := newService(repo, &mockTrackingRepo{})
	_, err := svc.List(context.Background(), domain.ParcelFilter{})
	if !errors.Is(err, apperr.ErrUpstream) {
		t.Fatalf("want ErrUpstream, got %v", err)
	}
}
