package booking

import (
	"context"
	"fmt"

	"slate/models"
	"slate/services/availability"
	"slate/services/events"

	"go.uber.org/zap"
)

// DefaultMatrixBuilder checks every (restaurant, slot) cell against the provider in row-major order.
type DefaultMatrixBuilder struct {
	Checker availability.Checker
	Logger  *zap.Logger
}

func NewMatrixBuilder(checker availability.Checker, logger *zap.Logger) *DefaultMatrixBuilder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultMatrixBuilder{Checker: checker, Logger: logger}
}

func (b *DefaultMatrixBuilder) BuildMatrix(
	ctx context.Context,
	restaurants []models.Restaurant,
	slots []string,
	intent models.ParsedIntent,
	em *events.Emitter,
) *models.AvailabilityMatrix {
	m := models.NewAvailabilityMatrix(restaurants, slots)
	em.Emit(models.EventMatrixUpdate,
		fmt.Sprintf("Checking %d restaurants across %d time slots", len(restaurants), len(slots)), m.Snapshot())

	for row, r := range restaurants {
		for col, slot := range slots {
			setCell(m, row, col, models.CellChecking, em)

			res, err := b.Checker.CheckAvailability(ctx, availability.SlotRequest{
				Restaurant: r,
				Location:   intent.Location,
				Date:       intent.Date,
				Time:       slot,
				PartySize:  intent.PartySize,
			})
			status := models.CellUnavailable
			if err != nil {
				b.Logger.Warn("availability check failed",
					zap.String("restaurant", r.Name), zap.String("time", slot), zap.Error(err))
			} else if res.Available {
				status = models.CellAvailable
			}
			setCell(m, row, col, status, em)
		}
	}
	return m
}

func setCell(m *models.AvailabilityMatrix, row, col int, status models.CellStatus, em *events.Emitter) {
	m.Cells[row][col].Status = status
	cell := m.Cells[row][col]
	em.Emit(models.EventCellStatusChange,
		fmt.Sprintf("%s at %s: %s", cell.RestaurantName, cell.Time, status),
		models.CellChange{Row: row, Col: col, Status: status})
}
