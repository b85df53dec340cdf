package constants

// Engine rule codes, stable identifiers the API layer maps onto HTTP
// responses so clients can show the exact rule that was violated.
const (
	ErrCodeTimeOrder           = "TIME_ORDER"
	ErrCodeUnsupervisedStudent = "UNSUPERVISED_STUDENT"
	ErrCodeSicWithoutPic       = "SIC_WITHOUT_PIC"
	ErrCodeMultiplePic         = "MULTIPLE_PIC"
	ErrCodeNoPayer             = "NO_PAYER"
	ErrCodeUnknownRole         = "UNKNOWN_ROLE"
)

var errorMessages = map[string]string{
	ErrCodeTimeOrder:           "Landing time must be later than start time",
	ErrCodeUnsupervisedStudent: "A student flying without an instructor aboard requires a supervising instructor on the ground",
	ErrCodeSicWithoutPic:       "A second-in-command requires a pilot-in-command on the same flight",
	ErrCodeMultiplePic:         "A flight can have at most one pilot-in-command",
	ErrCodeNoPayer:             "No crew member is eligible to be billed for this flight",
	ErrCodeUnknownRole:         "Unknown crew role",
}

// GetErrorMessage returns the user-facing message for a rule code.
func GetErrorMessage(code string) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}
	return "Unknown error"
}
