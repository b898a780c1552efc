package diagnose

import (
	"sort"

	"github.com/revivatech/diagnose/engine/domain"
	"github.com/revivatech/diagnose/pkg/fn"
)

// resultKey identifies a logical diagnosis for deduplication.
type resultKey struct {
	category string
	issue    string
}

// finalize deduplicates and orders the synthesized results. The first result
// seen for a (category, issue) pair wins; ordering is confidence descending,
// then severity rank descending, and is stable beyond that.
func finalize(s state) state {
	deduped := fn.UniqueBy(s.results, func(r domain.DiagnosticResult) resultKey {
		return resultKey{category: r.Category, issue: r.Issue}
	})

	sort.SliceStable(deduped, func(i, j int) bool {
		if deduped[i].Confidence != deduped[j].Confidence {
			return deduped[i].Confidence > deduped[j].Confidence
		}
		return domain.SeverityRank[deduped[i].Severity] > domain.SeverityRank[deduped[j].Severity]
	})

	s.results = deduped
	return s
}
