package dtos

// CrewMemberReq is one roster slot in a flight submission. Role must parse
// to one of the closed crew roles.
type CrewMemberReq struct {
	PilotID int64  `json:"pilot_id"`
	Role    string `json:"role"`
}

// FlightReq carries a flight create or edit. The crew slice is the FULL
// intended roster; the service validates it as a whole, never row by row.
type FlightReq struct {
	AircraftID        int64          `json:"aircraft_id"`
	Start             string         `json:"start"`
	Landing           string         `json:"landing"`
	LaunchMethod      string         `json:"launch_method"`
	DepartureAirfield int64          `json:"departure_airfield_id"`
	ArrivalAirfield   int64          `json:"arrival_airfield_id"`
	SupervisorID      *int64         `json:"supervisor_id,omitempty"`
	Remarks           string         `json:"remarks,omitempty"`
	Defect            string         `json:"defect,omitempty"`
	Crew              []CrewMemberReq `json:"crew"`
}

type AircraftReq struct {
	Type         string `json:"type"`
	Registration string `json:"registration"`
	HourlyRate   string `json:"hourly_rate"`
}

type DefectReq struct {
	AircraftID  int64  `json:"aircraft_id"`
	Description string `json:"description"`
}

type DefectStatusReq struct {
	Status string `json:"status"`
}

type RepairReq struct {
	MechanicID    int64  `json:"mechanic_id"`
	WorkPerformed string `json:"work_performed"`
	PartsReplaced string `json:"parts_replaced,omitempty"`
}

type InspectionReq struct {
	AircraftID int64  `json:"aircraft_id"`
	Date       string `json:"date"`
	Type       string `json:"type"`
	Remarks    string `json:"remarks,omitempty"`
}

type PaymentReq struct {
	PilotID int64  `json:"pilot_id"`
	Amount  string `json:"amount"`
	Label   string `json:"label"`
}

type AccountReq struct {
	Login    string `json:"login"`
	Password string `json:"password"`
	Role     string `json:"role"`
	PilotID  *int64 `json:"pilot_id,omitempty"`
}

type PilotReq struct {
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	License         string `json:"license,omitempty"`
	ShowName        bool   `json:"show_name"`
	ShowLicense     bool   `json:"show_license"`
	ExternalAirtime string `json:"external_airtime,omitempty"`
}
