package constants

type (
	APIStatus   string
	CachePrefix string
)

const (
	APIStatusOk    APIStatus = "ok"
	APIStatusError APIStatus = "error"

	CachePrefixPilotList    CachePrefix = "PILOT_LIST_"
	CachePrefixFleetList    CachePrefix = "FLEET_LIST_"
	CachePrefixAirfieldList CachePrefix = "AIRFIELD_LIST_"
)

// LedgerEntry kinds for the financial ledger. Payments credit a pilot's
// balance, settlement debits charge settled flight costs against it.
type LedgerEntryKind string

const (
	LedgerPayment LedgerEntryKind = "PAYMENT"
	LedgerDebit   LedgerEntryKind = "DEBIT"
)
