package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/shareish/shareish/internal/models"
)

func shareableRowValues(id, ownerID uuid.UUID) []any {
	now := time.Now()
	return []any{id, ownerID, "Ladder", models.ShareableTypeGiving, false, nil, now, now}
}

func TestShareableService_Create_Invalid(t *testing.T) {
	svc := NewShareableService(&fakeDB{})

	_, err := svc.Create(context.Background(), uuid.New(), models.CreateShareableParams{
		Description: "   ",
		Type:        models.ShareableTypeGiving,
	})
	if !errors.Is(err, ErrInvalidShareable) {
		t.Fatalf("expected ErrInvalidShareable for blank description, got %v", err)
	}

	_, err = svc.Create(context.Background(), uuid.New(), models.CreateShareableParams{
		Description: "Ladder",
		Type:        "borrowing",
	})
	if !errors.Is(err, ErrInvalidShareable) {
		t.Fatalf("expected ErrInvalidShareable for bad type, got %v", err)
	}
}

func TestShareableService_Create_Success(t *testing.T) {
	ownerID := uuid.New()
	itemID := uuid.New()
	db := &fakeDB{
		QueryRowFunc: func(ctx context.Context, sql string, args ...any) Row {
			if args[0] != ownerID {
				t.Fatalf("expected owner %v, got %v", ownerID, args[0])
			}
			return rowFromValues(shareableRowValues(itemID, ownerID)...)
		},
	}

	svc := NewShareableService(db)
	item, err := svc.Create(context.Background(), ownerID, models.CreateShareableParams{
		Description: "Ladder",
		Type:        models.ShareableTypeGiving,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if item.ID != itemID || item.OwnerID != ownerID {
		t.Fatalf("unexpected shareable: %+v", item)
	}
}

func TestShareableService_Update_NotOwned(t *testing.T) {
	db := &fakeDB{
		QueryRowFunc: func(ctx context.Context, sql string, args ...any) Row {
			return rowFromValues()
		},
	}

	urgent := true
	svc := NewShareableService(db)
	_, err := svc.Update(context.Background(), uuid.New(), uuid.New(), models.UpdateShareableParams{Urgent: &urgent})
	if !errors.Is(err, ErrShareableNotOwned) {
		t.Fatalf("expected ErrShareableNotOwned, got %v", err)
	}
}

func TestShareableService_Update_ScopesToOwner(t *testing.T) {
	ownerID := uuid.New()
	itemID := uuid.New()
	var gotSQL string
	db := &fakeDB{
		QueryRowFunc: func(ctx context.Context, sql string, args ...any) Row {
			gotSQL = sql
			return rowFromValues(shareableRowValues(itemID, ownerID)...)
		},
	}

	urgent := true
	svc := NewShareableService(db)
	if _, err := svc.Update(context.Background(), ownerID, itemID, models.UpdateShareableParams{Urgent: &urgent}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(gotSQL, "owner_id = $") {
		t.Fatalf("update must filter by owner, got %q", gotSQL)
	}
}

func TestShareableService_Update_EmptyPatchReloads(t *testing.T) {
	ownerID := uuid.New()
	itemID := uuid.New()
	var gotSQL string
	db := &fakeDB{
		QueryRowFunc: func(ctx context.Context, sql string, args ...any) Row {
			gotSQL = sql
			return rowFromValues(shareableRowValues(itemID, ownerID)...)
		},
	}

	svc := NewShareableService(db)
	item, err := svc.Update(context.Background(), ownerID, itemID, models.UpdateShareableParams{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(strings.TrimSpace(gotSQL), "SELECT") {
		t.Fatalf("expected plain reload for empty patch, got %q", gotSQL)
	}
	if item.ID != itemID {
		t.Fatalf("unexpected shareable: %+v", item)
	}
}

func TestShareableService_Update_InvalidPatch(t *testing.T) {
	svc := NewShareableService(&fakeDB{})

	blank := "  "
	_, err := svc.Update(context.Background(), uuid.New(), uuid.New(), models.UpdateShareableParams{Description: &blank})
	if !errors.Is(err, ErrInvalidShareable) {
		t.Fatalf("expected ErrInvalidShareable for blank description, got %v", err)
	}

	bad := models.ShareableType("lending")
	_, err = svc.Update(context.Background(), uuid.New(), uuid.New(), models.UpdateShareableParams{Type: &bad})
	if !errors.Is(err, ErrInvalidShareable) {
		t.Fatalf("expected ErrInvalidShareable for bad type, got %v", err)
	}
}

func TestShareableService_Delete_NotOwned(t *testing.T) {
	db := &fakeDB{
		ExecFunc: func(ctx context.Context, sql string, args ...any) (Result, error) {
			return fakeResult{rowsAffected: 0}, nil
		},
	}

	svc := NewShareableService(db)
	err := svc.Delete(context.Background(), uuid.New(), uuid.New())
	if !errors.Is(err, ErrShareableNotOwned) {
		t.Fatalf("expected ErrShareableNotOwned, got %v", err)
	}
}

func TestShareableService_Feed(t *testing.T) {
	itemID := uuid.New()
	db := &fakeDB{
		QueryFunc: func(ctx context.Context, sql string, args ...any) (Rows, error) {
			return &fakeRows{rows: [][]any{
				{itemID, models.ShareableTypeRequesting, true, nil, "Bea"},
			}}, nil
		},
	}

	svc := NewShareableService(db)
	items, err := svc.Feed(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 feed item, got %d", len(items))
	}
	if items[0].ID != itemID || items[0].Owner.FirstName != "Bea" {
		t.Fatalf("unexpected feed item: %+v", items[0])
	}
	if !items[0].Urgent {
		t.Fatal("expected urgent flag to survive the projection")
	}
}

func TestShareableService_ListByOwner_Empty(t *testing.T) {
	svc := NewShareableService(&fakeDB{})
	items, err := svc.ListByOwner(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if items == nil || len(items) != 0 {
		t.Fatalf("expected empty non-nil slice, got %v", items)
	}
}
