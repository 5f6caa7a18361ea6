package app

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/reseller-orders/internal/domain"
	"github.com/vladislavdragonenkov/reseller-orders/internal/storage/memory"
)

func TestCheckStatusCatalog_EmptyCatalog(t *testing.T) {
	store := memory.NewStore()

	err := checkStatusCatalog(memory.NewStatusRepository(store))
	require.ErrorIs(t, err, domain.ErrStatusCatalogMissing)
	require.Contains(t, err.Error(), domain.StatusNameCreated)
}

func TestCheckStatusCatalog_PartialCatalog(t *testing.T) {
	store := memory.NewStore()
	store.SeedStatuses(domain.OrderStatus{ID: uuid.New(), Name: domain.StatusNameCreated})

	err := checkStatusCatalog(memory.NewStatusRepository(store))
	require.ErrorIs(t, err, domain.ErrStatusCatalogMissing)
	require.Contains(t, err.Error(), domain.StatusNameCompleted)
}

func TestCheckStatusCatalog_SeededCatalog(t *testing.T) {
	store := memory.NewStore()
	store.SeedDefaultCatalog()

	require.NoError(t, checkStatusCatalog(memory.NewStatusRepository(store)))
}
