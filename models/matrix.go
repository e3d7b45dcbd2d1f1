package models

// CellStatus is the lifecycle of one (restaurant, time slot) cell.
type CellStatus string

const (
	CellIdle        CellStatus = "idle"
	CellChecking    CellStatus = "checking"
	CellAvailable   CellStatus = "available"
	CellUnavailable CellStatus = "unavailable"
	CellBooking     CellStatus = "booking"
	CellBooked      CellStatus = "booked"
	CellFailed      CellStatus = "failed"
)

type AvailabilityCell struct {
	RestaurantID   string     `bson:"restaurantId" json:"restaurantId"`
	RestaurantName string     `bson:"restaurantName" json:"restaurantName"`
	Time           string     `bson:"time" json:"time"`
	Status         CellStatus `bson:"status" json:"status"`
	VibeMatchScore int        `bson:"vibeMatchScore" json:"vibeMatchScore"`
}

// CellRef addresses a cell by row (restaurant) and column (time slot).
type CellRef struct {
	Row int `bson:"row" json:"row"`
	Col int `bson:"col" json:"col"`
}

// AvailabilityMatrix has one row per restaurant and one column per time slot.
type AvailabilityMatrix struct {
	Restaurants  []Restaurant         `bson:"restaurants" json:"restaurants"`
	TimeSlots    []string             `bson:"timeSlots" json:"timeSlots"`
	Cells        [][]AvailabilityCell `bson:"cells" json:"cells"`
	SelectedCell *CellRef             `bson:"selectedCell,omitempty" json:"selectedCell,omitempty"`
}

// NewAvailabilityMatrix builds a matrix with every cell idle.
func NewAvailabilityMatrix(restaurants []Restaurant, slots []string) *AvailabilityMatrix {
	cells := make([][]AvailabilityCell, len(restaurants))
	for r, rest := range restaurants {
		row := make([]AvailabilityCell, len(slots))
		for c, slot := range slots {
			row[c] = AvailabilityCell{
				RestaurantID:   rest.ID,
				RestaurantName: rest.Name,
				Time:           slot,
				Status:         CellIdle,
				VibeMatchScore: rest.VibeMatchScore,
			}
		}
		cells[r] = row
	}
	return &AvailabilityMatrix{Restaurants: restaurants, TimeSlots: slots, Cells: cells}
}

// Snapshot returns a deep copy that later cell updates do not reach.
func (m *AvailabilityMatrix) Snapshot() *AvailabilityMatrix {
	out := &AvailabilityMatrix{
		Restaurants: append([]Restaurant(nil), m.Restaurants...),
		TimeSlots:   append([]string(nil), m.TimeSlots...),
		Cells:       make([][]AvailabilityCell, len(m.Cells)),
	}
	for i, row := range m.Cells {
		out.Cells[i] = append([]AvailabilityCell(nil), row...)
	}
	if m.SelectedCell != nil {
		ref := *m.SelectedCell
		out.SelectedCell = &ref
	}
	return out
}

// CountStatus returns how many cells are in status s.
func (m *AvailabilityMatrix) CountStatus(s CellStatus) int {
	n := 0
	for _, row := range m.Cells {
		for _, c := range row {
			if c.Status == s {
				n++
			}
		}
	}
	return n
}

// CellChange is the payload of a cell_status_change event.
type CellChange struct {
	Row    int        `json:"row"`
	Col    int        `json:"col"`
	Status CellStatus `json:"status"`
}
