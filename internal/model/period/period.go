// Package period resolves the report period names accepted on the expense
// and analytics endpoints into a cut-off instant.
package period

import (
	"time"

	"github.com/jinzhu/now"
	"max.ks1230/spending-nav/internal/model/customerr"
)

var starts = map[string]func() time.Time{
	"":      func() time.Time { return time.Time{} },
	"week":  now.BeginningOfWeek,
	"month": now.BeginningOfMonth,
	"year":  now.BeginningOfYear,
}

// Start returns the beginning of the named period, the zero time for the
// empty (all-time) period, and ErrUnknownPeriod for anything else.
func Start(name string) (time.Time, error) {
	start, ok := starts[name]
	if !ok {
		return time.Time{}, customerr.ErrUnknownPeriod
	}
	return start(), nil
}

// Names lists every supported period, the all-time one included.
func Names() []string {
	res := make([]string, 0, len(starts))
	for k := range starts {
		res = append(res, k)
	}
	return res
}
