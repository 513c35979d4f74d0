package monitor

import (
	"strings"
	"time"

	"ratewatch/internal/domain"
)

// Subjects, bodies and audit messages all timestamp in the recipient's
// fixed UTC+8 zone, independent of where the process runs.
var reportZone = time.FixedZone("UTC+8", 8*60*60)

const timestampLayout = "2006-01-02 15:04:05"

func formatTimestamp(t time.Time) string {
	return t.In(reportZone).Format(timestampLayout)
}

func alertSubject(t time.Time) string {
	return "Exchange Rate Alert - " + formatTimestamp(t)
}

func confirmationSubject(t time.Time) string {
	return "Setpoint Adjustments Applied - " + formatTimestamp(t)
}

const replyExamples = `You can adjust setpoints by replying to this email, for example:

ADJUST USD spot_buying_rate max 740
SET JPY spot_selling_rate min 4.80 max 5.20
REMOVE USD spot_buying_rate min`

func alertBody(violations []domain.Violation) string {
	var b strings.Builder
	for _, v := range violations {
		b.WriteString(v.String())
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
	b.WriteString(replyExamples)
	return b.String()
}

func confirmationBody(changes []domain.AppliedChange) string {
	var b strings.Builder
	b.WriteString("The following setpoint adjustments were applied:\n\n")
	for _, c := range changes {
		b.WriteString("- ")
		b.WriteString(c.String())
		b.WriteByte('\n')
	}
	return b.String()
}

func auditMessage(t time.Time, changes []domain.AppliedChange) string {
	var b strings.Builder
	b.WriteString("Auto-update setpoints - ")
	b.WriteString(formatTimestamp(t))
	b.WriteString("\n\nApplied adjustments:\n")
	for _, c := range changes {
		b.WriteString("- ")
		b.WriteString(c.String())
		b.WriteByte('\n')
	}
	return b.String()
}
