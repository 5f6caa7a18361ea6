package postgres

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/vladislavdragonenkov/reseller-orders/internal/domain"
)

func buildOrderForIntegrationTest(fixture catalogFixture, statusID uuid.UUID, quantity int32, createdAt time.Time) domain.Order {
	orderID := uuid.New()
	return domain.Order{
		ID:         orderID,
		ResellerID: uuid.New(),
		CustomerID: uuid.New(),
		StatusID:   statusID,
		CreatedAt:  createdAt,
		Items: []domain.OrderItem{
			{
				ID:        uuid.New(),
				OrderID:   orderID,
				ProductID: fixture.ProductID,
				ServiceID: fixture.ServiceID,
				Quantity:  quantity,
			},
		},
	}
}

func TestOrderRepository_CreateAndGetDetail(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)
	fixture := insertCatalogFixtureForIntegrationTest(t, store)
	createdID := statusIDByNameForIntegrationTest(t, store, domain.StatusNameCreated)

	repo := NewOrderRepository(store)

	order := buildOrderForIntegrationTest(fixture, createdID, 2, time.Now().UTC())
	persisted, err := repo.Create(order)
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	if !persisted {
		t.Fatal("expected order to be persisted")
	}

	detail, err := repo.GetDetail(order.ID)
	if err != nil {
		t.Fatalf("get detail: %v", err)
	}
	if detail.StatusName != domain.StatusNameCreated {
		t.Errorf("expected status %q, got %q", domain.StatusNameCreated, detail.StatusName)
	}
	if len(detail.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(detail.Items))
	}
	if detail.Items[0].ProductName != "100GB Mailbox" {
		t.Errorf("expected hydrated product name, got %q", detail.Items[0].ProductName)
	}
	if got, want := detail.TotalCost, fixture.UnitCost*2; got < want-1e-9 || got > want+1e-9 {
		t.Errorf("expected total cost %v, got %v", want, got)
	}
	if got, want := detail.TotalPrice, fixture.UnitPrice*2; got < want-1e-9 || got > want+1e-9 {
		t.Errorf("expected total price %v, got %v", want, got)
	}
}

func TestOrderRepository_CreateDuplicateID(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)
	fixture := insertCatalogFixtureForIntegrationTest(t, store)
	createdID := statusIDByNameForIntegrationTest(t, store, domain.StatusNameCreated)

	repo := NewOrderRepository(store)

	order := buildOrderForIntegrationTest(fixture, createdID, 1, time.Now().UTC())
	if _, err := repo.Create(order); err != nil {
		t.Fatalf("first create: %v", err)
	}

	persisted, err := repo.Create(order)
	if err != nil {
		t.Fatalf("duplicate create should not error: %v", err)
	}
	if persisted {
		t.Error("duplicate create should report not persisted")
	}
}

func TestOrderRepository_GetDetailNotFound(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)

	_, err := NewOrderRepository(store).GetDetail(uuid.New())
	if !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}

func TestOrderRepository_ListSummariesOrdering(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)
	fixture := insertCatalogFixtureForIntegrationTest(t, store)
	createdID := statusIDByNameForIntegrationTest(t, store, domain.StatusNameCreated)

	repo := NewOrderRepository(store)

	base := time.Now().UTC().Truncate(time.Microsecond)
	newer := buildOrderForIntegrationTest(fixture, createdID, 1, base)
	older := buildOrderForIntegrationTest(fixture, createdID, 3, base.Add(-time.Hour))
	for _, order := range []domain.Order{newer, older} {
		if _, err := repo.Create(order); err != nil {
			t.Fatalf("create order: %v", err)
		}
	}

	summaries, err := repo.ListSummaries()
	if err != nil {
		t.Fatalf("list summaries: %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("expected 2 summaries, got %d", len(summaries))
	}
	if summaries[0].ID != older.ID {
		t.Error("expected oldest order first")
	}
	if got, want := summaries[1].TotalPrice, fixture.UnitPrice; got < want-1e-9 || got > want+1e-9 {
		t.Errorf("expected read-time total price %v, got %v", want, got)
	}
}

func TestStatusRepository_UpdateStatusAndListByStatus(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)
	fixture := insertCatalogFixtureForIntegrationTest(t, store)
	createdID := statusIDByNameForIntegrationTest(t, store, domain.StatusNameCreated)
	completedID := statusIDByNameForIntegrationTest(t, store, domain.StatusNameCompleted)

	orders := NewOrderRepository(store)
	statuses := NewStatusRepository(store)

	order := buildOrderForIntegrationTest(fixture, createdID, 1, time.Now().UTC())
	if _, err := orders.Create(order); err != nil {
		t.Fatalf("create order: %v", err)
	}

	persisted, err := statuses.UpdateStatus(order.ID, completedID)
	if err != nil {
		t.Fatalf("update status: %v", err)
	}
	if !persisted {
		t.Fatal("expected status update to be persisted")
	}

	details, err := statuses.ListDetailsByStatus(completedID)
	if err != nil {
		t.Fatalf("list by status: %v", err)
	}
	if len(details) != 1 || details[0].ID != order.ID {
		t.Fatalf("expected the updated order in Completed listing, got %+v", details)
	}

	empty, err := statuses.ListDetailsByStatus(createdID)
	if err != nil {
		t.Fatalf("list by old status: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("expected no orders left in Created, got %d", len(empty))
	}
}

func TestStatusRepository_UpdateStatusUnknownOrder(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)
	completedID := statusIDByNameForIntegrationTest(t, store, domain.StatusNameCompleted)

	_, err := NewStatusRepository(store).UpdateStatus(uuid.New(), completedID)
	if !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}

func TestStatusRepository_StatusIDByName(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)

	statuses := NewStatusRepository(store)

	if _, err := statuses.StatusIDByName("created"); !errors.Is(err, domain.ErrStatusNotFound) {
		t.Errorf("lookup must be case-sensitive, got %v", err)
	}
	if _, err := statuses.StatusIDByName(domain.StatusNameInProgress); err != nil {
		t.Errorf("seeded status lookup failed: %v", err)
	}
}

func TestProductRepository_GetByID(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)
	fixture := insertCatalogFixtureForIntegrationTest(t, store)

	products := NewProductRepository(store)

	product, err := products.GetByID(fixture.ProductID)
	if err != nil {
		t.Fatalf("get product: %v", err)
	}
	if product.ServiceID != fixture.ServiceID {
		t.Error("expected denormalized service id on product")
	}

	if _, err := products.GetByID(uuid.New()); !errors.Is(err, domain.ErrProductNotFound) {
		t.Errorf("expected ErrProductNotFound, got %v", err)
	}
}
