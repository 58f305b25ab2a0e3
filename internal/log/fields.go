package log

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldClientIP   = "client_ip"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldQuery      = "query"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldError      = "error"
	FieldOperation  = "operation"

	FieldCandidateID   = "candidate_id"
	FieldCandidateName = "candidate_name"
	FieldCommitteeID   = "committee_id"
	FieldCycle         = "cycle"
	FieldPage          = "page"
	FieldReceiptCount  = "receipt_count"
	FieldBigMoneyPct   = "big_money_percentage"
	FieldSheetRef      = "sheet_ref"
)

// Components defines standard component names
const (
	ComponentApp       = "app"
	ComponentHTTP      = "http"
	ComponentFEC       = "fec"
	ComponentAnalyzer  = "analyzer"
	ComponentStorage   = "storage"
	ComponentAMQP      = "amqp"
	ComponentWorker    = "worker"
	ComponentSheets    = "sheets"
	ComponentCache     = "cache"
	ComponentRateLimit = "rate_limit"
)
