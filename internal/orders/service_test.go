package orders

import (
	"context"
	"testing"

	pkgerrors "github.com/libertycherie/storefront-backend/pkg/errors"
)

func TestLookupBySessionID(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	ctx := context.Background()

	order := buildTestOrder("cs_test_lookup", nil)
	if err := repo.Create(ctx, order); err != nil {
		t.Fatalf("Create: %v", err)
	}

	dto, err := svc.LookupBySessionID(ctx, "cs_test_lookup")
	if err != nil {
		t.Fatalf("LookupBySessionID: %v", err)
	}
	if dto.ID != order.ID || dto.TotalCents != 6374 || len(dto.Items) != 1 {
		t.Fatalf("unexpected dto %+v", dto)
	}
}

func TestLookupBySessionIDNotFound(t *testing.T) {
	svc, err := NewService(NewRepository(setupOrdersTestDB(t)))
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	_, err = svc.LookupBySessionID(context.Background(), "cs_test_nope")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestLookupBySessionIDBlank(t *testing.T) {
	svc, err := NewService(NewRepository(setupOrdersTestDB(t)))
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	_, err = svc.LookupBySessionID(context.Background(), "   ")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}
}
