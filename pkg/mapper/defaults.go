// pkg/mapper/defaults.go
package mapper

import (
	"time"

	"github.com/retailops/warehouse-ingress/pkg/model"
)

// Clock supplies the wall-clock timestamp used for temporal defaults.
type Clock func() time.Time

func systemClock() time.Time { return time.Now() }

// defaultValue synthesizes the value for an unmatched canonical field. The
// policy comes from the schema's per-field default kind; rowIndex is the
// record's zero-based position in the current batch.
func defaultValue(field model.Field, rowIndex int, now time.Time) interface{} {
	switch field.Default {
	case model.DefaultNow:
		return now
	case model.DefaultRowID:
		return rowIndex + 1
	case model.DefaultZero:
		return 0.0
	case model.DefaultOne:
		return 1
	default:
		return "Unknown"
	}
}
