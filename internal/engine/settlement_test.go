package engine

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"aeroclub/logbook/internal/constants"
	"aeroclub/logbook/internal/models/entities"
)

func sumAllocations(alloc map[int64]decimal.Decimal) decimal.Decimal {
	sum := decimal.Zero
	for _, v := range alloc {
		sum = sum.Add(v)
	}
	return sum
}

func TestAllocate(t *testing.T) {
	tests := []struct {
		name  string
		total string
		roles []constants.CrewRole
		// want maps roster position (1-based pilot ID) to owed amount
		want map[int64]string
	}{
		{
			"student with instructor pays all",
			"150",
			[]constants.CrewRole{constants.CrewRoleStudent, constants.CrewRoleInstructor},
			map[int64]string{1: "150", 2: "0"},
		},
		{
			"passenger pays all, pic free",
			"200",
			[]constants.CrewRole{constants.CrewRolePIC, constants.CrewRolePassenger},
			map[int64]string{1: "0", 2: "200"},
		},
		{
			"pic and sic split evenly",
			"220",
			[]constants.CrewRole{constants.CrewRolePIC, constants.CrewRoleSIC},
			map[int64]string{1: "110", 2: "110"},
		},
		{
			"odd cent remainder goes to pic",
			"100.01",
			[]constants.CrewRole{constants.CrewRolePIC, constants.CrewRoleSIC},
			map[int64]string{1: "50.01", 2: "50"},
		},
		{
			"lone pic pays all",
			"75.50",
			[]constants.CrewRole{constants.CrewRolePIC},
			map[int64]string{1: "75.50"},
		},
		{
			"student overrides pic sic pair",
			"300",
			[]constants.CrewRole{constants.CrewRolePIC, constants.CrewRoleStudent},
			map[int64]string{1: "0", 2: "300"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			roster := crew(9, tt.roles...)
			total := decimal.RequireFromString(tt.total)

			alloc, err := Allocate(9, total, roster)
			if err != nil {
				t.Fatalf("Allocate() error: %v", err)
			}

			if len(alloc) != len(tt.want) {
				t.Fatalf("allocation count = %d, want %d", len(alloc), len(tt.want))
			}
			for pilotID, wantStr := range tt.want {
				want := decimal.RequireFromString(wantStr)
				if got := alloc[pilotID]; !got.Equal(want) {
					t.Errorf("pilot %d owes %s, want %s", pilotID, got, want)
				}
			}
			if sum := sumAllocations(alloc); !sum.Equal(total) {
				t.Errorf("allocations sum to %s, want exactly %s", sum, total)
			}
		})
	}
}

func TestAllocateNoPayer(t *testing.T) {
	roster := crew(5, constants.CrewRoleInstructor)
	_, err := Allocate(5, decimal.NewFromInt(100), roster)

	var allocErr *AllocationError
	if !errors.As(err, &allocErr) {
		t.Fatalf("expected *AllocationError, got %v", err)
	}
	if allocErr.FlightID != 5 {
		t.Errorf("flight id = %d, want 5", allocErr.FlightID)
	}

	if _, err := Allocate(5, decimal.NewFromInt(100), nil); err == nil {
		t.Error("empty roster must not silently assign cost to nobody")
	}
}

func TestAllocateMatchesComputedCost(t *testing.T) {
	// End-to-end over the full branch table: allocations of a computed cost
	// must always sum back to it exactly.
	rosters := [][]constants.CrewRole{
		{constants.CrewRolePIC},
		{constants.CrewRolePIC, constants.CrewRoleSIC},
		{constants.CrewRolePIC, constants.CrewRolePassenger},
		{constants.CrewRoleStudent, constants.CrewRoleInstructor},
	}

	for _, roles := range rosters {
		flight := testFlight(97*time.Minute, constants.LaunchWinch)
		roster := crew(flight.ID, roles...)
		total := ComputeCost(flight, rate("123.45"), roster)

		alloc, err := Allocate(flight.ID, total, roster)
		if err != nil {
			t.Fatalf("roster %v: %v", roles, err)
		}
		if sum := sumAllocations(alloc); !sum.Equal(total) {
			t.Errorf("roster %v: sum %s != total %s", roles, sum, total)
		}
	}
}

func TestAllocateDeterministicSoloPayer(t *testing.T) {
	// Two students aboard: lowest pilot ID pays, every run.
	roster := []entities.CrewAssignment{
		{FlightID: 1, PilotID: 42, Role: constants.CrewRoleStudent},
		{FlightID: 1, PilotID: 7, Role: constants.CrewRoleStudent},
	}
	total := decimal.NewFromInt(90)

	for i := 0; i < 3; i++ {
		alloc, err := Allocate(1, total, roster)
		if err != nil {
			t.Fatal(err)
		}
		if !alloc[7].Equal(total) || !alloc[42].IsZero() {
			t.Fatalf("run %d: expected pilot 7 to pay all, got %v", i, alloc)
		}
	}
}
