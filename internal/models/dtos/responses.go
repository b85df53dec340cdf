package dtos

type APIResponse struct {
	Status       string `json:"status"`
	Message      string `json:"message"`
	ResponseTime string `json:"response_time"`
	Data         any    `json:"data,omitempty"`
}

// ErrorDetail names the violated rule so clients can render the exact
// violation instead of a generic failure.
type ErrorDetail struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	FlightID int64  `json:"flight_id,omitempty"`
}

type FlightResponse struct {
	ID                int64            `json:"id"`
	AircraftID        int64            `json:"aircraft_id"`
	Registration      string           `json:"registration,omitempty"`
	FlightDate        string           `json:"flight_date"`
	Start             string           `json:"start"`
	Landing           string           `json:"landing"`
	DurationHours     string           `json:"duration_hours"`
	LaunchMethod      string           `json:"launch_method"`
	DepartureAirfield int64            `json:"departure_airfield_id"`
	ArrivalAirfield   int64            `json:"arrival_airfield_id"`
	SupervisorID      *int64           `json:"supervisor_id,omitempty"`
	Remarks           string           `json:"remarks,omitempty"`
	Settled           bool             `json:"settled"`
	Deleted           bool             `json:"deleted,omitempty"`
	Crew              []CrewMemberResp `json:"crew"`
}

type CrewMemberResp struct {
	PilotID int64  `json:"pilot_id"`
	Name    string `json:"name,omitempty"`
	Role    string `json:"role"`
}

type SettlementResponse struct {
	FlightID    int64             `json:"flight_id"`
	TotalCost   string            `json:"total_cost"`
	Allocations []AllocationEntry `json:"allocations"`
}

type AllocationEntry struct {
	PilotID int64  `json:"pilot_id"`
	Amount  string `json:"amount"`
}

type PilotAirtimeResp struct {
	PilotID int64  `json:"pilot_id"`
	Name    string `json:"name"`
	License string `json:"license,omitempty"`
	Airtime string `json:"airtime_hours"`
}

type AircraftAirtimeResp struct {
	AircraftID   int64  `json:"aircraft_id"`
	Registration string `json:"registration"`
	Type         string `json:"type"`
	LifeHours    string `json:"life_hours"`
	OpenDefects  int    `json:"open_defects"`
}

type BalancePointResp struct {
	At      string `json:"at"`
	Kind    string `json:"kind"`
	Label   string `json:"label,omitempty"`
	Amount  string `json:"amount"`
	Balance string `json:"balance"`
}

type PilotBalanceResp struct {
	PilotID int64              `json:"pilot_id"`
	Name    string             `json:"name"`
	Balance string             `json:"balance"`
	History []BalancePointResp `json:"history,omitempty"`
}

type DebtorResp struct {
	PilotID      int64  `json:"pilot_id"`
	Name         string `json:"name"`
	FlightID     int64  `json:"flight_id"`
	Registration string `json:"registration"`
	Amount       string `json:"amount"`
}

type InspectionResp struct {
	AircraftID   int64  `json:"aircraft_id"`
	Registration string `json:"registration,omitempty"`
	InspectionID int64  `json:"inspection_id"`
	Date         string `json:"date"`
	Type         string `json:"type"`
}

type AircraftResp struct {
	ID           int64  `json:"id"`
	Type         string `json:"type"`
	Registration string `json:"registration"`
	HourlyRate   string `json:"hourly_rate"`
}

type DefectResp struct {
	ID          int64  `json:"id"`
	AircraftID  int64  `json:"aircraft_id"`
	FlightID    *int64 `json:"flight_id,omitempty"`
	Description string `json:"description"`
	Status      string `json:"status"`
	ReportedAt  string `json:"reported_at"`
}

type RepairResp struct {
	ID            int64  `json:"id"`
	DefectID      int64  `json:"defect_id"`
	MechanicID    int64  `json:"mechanic_id"`
	WorkPerformed string `json:"work_performed"`
	PartsReplaced string `json:"parts_replaced,omitempty"`
}

type PilotResp struct {
	ID          int64  `json:"id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	License     string `json:"license,omitempty"`
	ShowName    bool   `json:"show_name"`
	ShowLicense bool   `json:"show_license"`
}

type AccountResp struct {
	ID      int64  `json:"id"`
	Login   string `json:"login"`
	Role    string `json:"role"`
	PilotID *int64 `json:"pilot_id,omitempty"`
}

type PaymentResp struct {
	ID      int64  `json:"id"`
	PilotID int64  `json:"pilot_id"`
	Amount  string `json:"amount"`
	Label   string `json:"label,omitempty"`
	PaidAt  string `json:"paid_at"`
}

// ReportLinkResp carries a freshly signed presigned report URL token.
type ReportLinkResp struct {
	Token     string `json:"token"`
	Report    string `json:"report"`
	ExpiresAt string `json:"expires_at"`
}

// DashboardResponse aggregates the report sections assembled concurrently
// by the stats service.
type DashboardResponse struct {
	PilotRanking  []PilotAirtimeResp    `json:"pilot_ranking"`
	Fleet         []AircraftAirtimeResp `json:"fleet"`
	Balances      []PilotBalanceResp    `json:"balances"`
	Inspections   []InspectionResp      `json:"latest_inspections"`
	TotalOutstand string                `json:"total_outstanding"`
}
