package domain

import "time"

// RecordedOccurrence is the outcome of recording one template occurrence:
// the ledger entry that was created, the compensating action that can reverse
// it, and the template's advanced schedule date.
type RecordedOccurrence struct {
	Entry                  LedgerEntry        `json:"entry"`
	Action                 CompensatingAction `json:"action"`
	NextOccurrenceDate     time.Time          `json:"nextOccurrenceDate"`
	PreviousOccurrenceDate time.Time          `json:"previousOccurrenceDate"`
}
