package loan

// Status is the delinquency label shown next to a record.
type Status string

const (
	StatusOnTime Status = "on_time"
	StatusLate   Status = "late"
)

func StatusOf(lateInstallments int) Status {
	if lateInstallments > 0 {
		return StatusLate
	}
	return StatusOnTime
}

// Label is the operator-facing text of a status.
func (s Status) Label() string {
	if s == StatusLate {
		return "Late"
	}
	return "On time"
}
