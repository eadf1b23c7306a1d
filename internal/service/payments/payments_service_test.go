package payments

import (
	"context"
	"errors"
	"testing"
	"time"

	"parcelhub/internal/apperr"
	"parcelhub/internal/auth"
	"parcelhub/internal/domain"
	"parcelhub/internal/logx"
)

type mockPaymentRepo struct {
	insertFn      func(ctx context.Context, p *domain.Payment) (string, error)
	listByEmailFn func(ctx context.Context, email string) ([]domain.Payment, error)
}

func (m *mockPaymentRepo) Insert(ctx context.Context, p *domain.Payment) (string, error) {
	return m.insertFn(ctx, p)
}

func (m *mockPaymentRepo) ListByEmail(ctx context.Context, email string) ([]domain.Payment, error) {
	return m.listByEmailFn(ctx, email)
}

type mockParcelPayments struct {
	setFn func(ctx context.Context, id string, status domain.PaymentStatus) (bool, error)
}

func (m *mockParcelPayments) SetPaymentStatus(ctx context.Context, id string, status domain.PaymentStatus) (bool, error) {
	return m.setFn(ctx, id, status)
}

type mockGateway struct {
	createFn func(ctx context.Context, amountInCents int64) (string, error)
}

func (m *mockGateway) CreateIntent(ctx context.Context, amountInCents int64) (string, error) {
	return m.createFn(ctx, amountInCents)
}

type countingCounter struct{ n int }

func (c *countingCounter) Inc() { c.n++ }

func validPayment() *domain.Payment {
	return &domain.Payment{
		TransactionID: "pi_3OabcDEF",
		Email:         "karim@b.com",
		ParcelID:      "6650a0b1c2d3e4f5a6b7c8d9",
		Amount:        1500,
		Method:        "card",
	}
}

func TestService_Record_InsertsAndFlipsParcel(t *testing.T) {
	t.Parallel()

	var inserted *domain.Payment
	repo := &mockPaymentRepo{
		insertFn: func(_ context.Context, p *domain.Payment) (string, error) {
			inserted = p
			return "6650ffffc2d3e4f5a6b7c8d9", nil
		},
	}
	var flippedID string
	var flippedTo domain.PaymentStatus
	parcels := &mockParcelPayments{
		setFn: func(_ context.Context, id string, status domain.PaymentStatus) (bool, error) {
			flippedID, flippedTo = id, status
			return true, nil
		},
	}
	recorded := &countingCounter{}
	svc := NewService(repo, parcels, nil, recorded, nil, time.Second, logx.Nop())

	out, err := svc.Record(context.Background(), validPayment())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.PaymentID == "" || !out.ParcelUpdated {
		t.Fatalf("result = %+v", out)
	}
	if inserted.PaidAt.IsZero() {
		t.Fatal("paid_at not stamped")
	}
	if inserted.Status != "paid" {
		t.Fatalf("status = %q", inserted.Status)
	}
	if flippedID != "6650a0b1c2d3e4f5a6b7c8d9" || flippedTo != domain.PaymentPaid {
		t.Fatalf("parcel flip = %q %q", flippedID, flippedTo)
	}
	if recorded.n != 1 {
		t.Fatalf("recorded counter = %d", recorded.n)
	}
}

func TestService_Record_Validation(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		mutate func(*domain.Payment)
	}{
		{"missing parcel id", func(p *domain.Payment) { p.ParcelID = "" }},
		{"missing email", func(p *domain.Payment) { p.Email = "" }},
		{"missing transaction id", func(p *domain.Payment) { p.TransactionID = "" }},
		{"zero amount", func(p *domain.Payment) { p.Amount = 0 }},
		{"negative amount", func(p *domain.Payment) { p.Amount = -5 }},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			repo := &mockPaymentRepo{
				insertFn: func(context.Context, *domain.Payment) (string, error) {
					t.Fatal("insert must not happen on invalid input")
					return "", nil
				},
			}
			svc := NewService(repo, &mockParcelPayments{}, nil, nil, nil, time.Second, logx.Nop())
			p := validPayment()
			tc.mutate(p)
			_, err := svc.Record(context.Background(), p)
			if !errors.Is(err, apperr.ErrInvalid) {
				t.Fatalf("want ErrInvalid, got %v", err)
			}
		})
	}
}

func TestService_Record_ParcelFlipFailureIsPartial(t *testing.T) {
	t.Parallel()

	repo := &mockPaymentRepo{
		insertFn: func(context.Context, *domain.Payment) (string, error) {
			return "6650ffffc2d3e4f5a6b7c8d9", nil
		},
	}
	parcels := &mockParcelPayments{
		setFn: func(context.Context, string, domain.PaymentStatus) (bool, error) {
			return false, errors.New("no reachable servers")
		},
	}
	partials := &countingCounter{}
	svc := NewService(repo, parcels, nil, nil, partials, time.Second, logx.Nop())

	out, err := svc.Record(context.Background(), validPayment())
	pe := apperr.AsPartial(err)
	if pe == nil {
		t.Fatalf("want PartialError, got %v", err)
	}
	if pe.First.Step != "payment" || !pe.First.Done {
		t.Fatalf("first outcome = %+v", pe.First)
	}
	if pe.Last.Step != "parcel" || pe.Last.Done {
		t.Fatalf("last outcome = %+v", pe.Last)
	}
	if out == nil || out.PaymentID == "" || out.ParcelUpdated {
		t.Fatalf("result = %+v", out)
	}
	if partials.n != 1 {
		t.Fatalf("partial failure counter = %d", partials.n)
	}
}

func TestService_Record_ParcelMissingIsPartialNotFound(t *testing.T) {
	t.Parallel()

	repo := &mockPaymentRepo{
		insertFn: func(context.Context, *domain.Payment) (string, error) {
			return "6650ffffc2d3e4f5a6b7c8d9", nil
		},
	}
	parcels := &mockParcelPayments{
		setFn: func(context.Context, string, domain.PaymentStatus) (bool, error) {
			return false, nil
		},
	}
	svc := NewService(repo, parcels, nil, nil, nil, time.Second, logx.Nop())

	_, err := svc.Record(context.Background(), validPayment())
	if !apperr.IsPartial(err) {
		t.Fatalf("want PartialError, got %v", err)
	}
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("cause should be ErrNotFound, got %v", err)
	}
}

func TestService_List_OwnHistory(t *testing.T) {
	t.Parallel()

	repo := &mockPaymentRepo{
		listByEmailFn: func(_ context.Context, email string) ([]domain.Payment, error) {
			if email != "karim@b.com" {
				t.Fatalf("email = %q", email)
			}
			return []domain.Payment{{Email: email}}, nil
		},
	}
	svc := NewService(repo, &mockParcelPayments{}, nil, nil, nil, time.Second, logx.Nop())
	out, err := svc.List(context.Background(), "karim@b.com", auth.Principal{Email: "karim@b.com"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("got %d payments", len(out))
	}
}

func TestService_List_DefaultsToPrincipal(t *testing.T) {
	t.Parallel()

	repo := &mockPaymentRepo{
		listByEmailFn: func(_ context.Context, email string) ([]domain.Payment, error) {
			if email != "karim@b.com" {
				t.Fatalf("email = %q", email)
			}
			return nil, nil
		},
	}
	svc := NewService(repo, &mockParcelPayments{}, nil, nil, nil, time.Second, logx.Nop())
	if _, err := svc.List(context.Background(), "", auth.Principal{Email: "karim@b.com"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestService_List_ForeignHistoryForbidden(t *testing.T) {
	t.Parallel()

	repo := &mockPaymentRepo{
		listByEmailFn: func(context.Context, string) ([]domain.Payment, error) {
			t.Fatal("store must not be read when identity does not match")
			return nil, nil
		},
	}
	svc := NewService(repo, &mockParcelPayments{}, nil, nil, nil, time.Second, logx.Nop())
	_, err := svc.List(context.Background(), "other@b.com", auth.Principal{Email: "karim@b.com"})
	if !errors.Is(err, apperr.ErrForbidden) {
		t.Fatalf("want ErrForbidden, got %v", err)
	}
}

func TestService_CreateIntent_PassesAmountThrough(t *testing.T) {
	t.Parallel()

	gw := &mockGateway{
		createFn: func(_ context.Context, amountInCents int64) (string, error) {
			if amountInCents != 2500 {
				t.Fatalf("amount = %d", amountInCents)
			}
			return "pi_secret_abc", nil
		},
	}
	svc := NewService(&mockPaymentRepo{}, &mockParcelPayments{}, gw, nil, nil, time.Second, logx.Nop())
	secret, err := svc.CreateIntent(context.Background(), 2500)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if secret != "pi_secret_abc" {
		t.Fatalf("secret = %q", secret)
	}
}

func TestService_CreateIntent_InvalidAmount(t *testing.T) {
	t.Parallel()

	svc := NewService(&mockPaymentRepo{}, &mockParcelPayments{}, &mockGateway{}, nil, nil, time.Second, logx.Nop())
	if _, err := svc.CreateIntent(context.Background(), 0); !errors.Is(err, apperr.ErrInvalid) {
		t.Fatalf("want ErrInvalid, got %v", err)
	}
}

func TestService_CreateIntent_GatewayUnconfigured(t *testing.T) {
	t.Parallel()

	svc := NewService(&mockPaymentRepo{}, &mockParcelPayments{}, nil, nil, nil, time.Second, logx.Nop())
	_, err := svc.CreateIntent(context.Background(), 2500)
	if !errors.Is(err, apperr.ErrUpstream) {
		t.Fatalf("want ErrUpstream, got %v", err)
	}
}

func TestService_CreateIntent_GatewayFailure(t *testing.T) {
	t.Parallel()

	gw := &mockGateway{
		createFn: func(context.Context, int64) (string, error) {
			return "", errors.New("stripe: api_connection_error")
		},
	}
	svc := NewService(&mockPaymentRepo{}, &mockParcelPayments{}, gw, nil, nil, time.Second, logx.Nop())
	_, err := svc.CreateIntent(context.Background(), 2500)
	if !errors.Is(err, apperr.ErrUpstream) {
		t.Fatalf("want ErrUpstream, got %v", err)
	}
}
