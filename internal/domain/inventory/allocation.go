package inventory

import (
	"sort"

	"github.com/google/uuid"

	"github.com/wms/backend/internal/domain/shared"
)

// AllocationLine is one balance row drained (fully or partially) by an allocation
type AllocationLine struct {
	BalanceID  int64
	LocationID uuid.UUID
	Quantity   int64
}

// PlanFIFOAllocation decides how to take the requested quantity out of the
// given balances, oldest row first. Every line in the result drains as much
// of its row as needed before moving to the next. When the balances cannot
// cover the request, it fails with INSUFFICIENT_STOCK reporting the
// shortfall, and no partial plan is returned.
func PlanFIFOAllocation(requested int64, balances []StockBalance) ([]AllocationLine, error) {
	if requested <= 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Requested quantity must be positive")
	}

	sorted := make([]StockBalance, len(balances))
	copy(sorted, balances)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].ID < sorted[j].ID
	})

	lines := make([]AllocationLine, 0, len(sorted))
	remaining := requested
	for _, b := range sorted {
		if remaining == 0 {
			break
		}
		if b.Quantity <= 0 {
			continue
		}
		take := b.Quantity
		if take > remaining {
			take = remaining
		}
		lines = append(lines, AllocationLine{
			BalanceID:  b.ID,
			LocationID: b.LocationID,
			Quantity:   take,
		})
		remaining -= take
	}

	if remaining > 0 {
		return nil, shared.ErrInsufficientStock.WithDetails(map[string]interface{}{
			"requested": requested,
			"available": requested - remaining,
			"short":     remaining,
		})
	}
	return lines, nil
}
