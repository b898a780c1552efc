// Package costing maps issue categories and device classes to symbolic cost
// ranges. Currency formatting and storefront display are external.
package costing

import (
	"math"

	"github.com/revivatech/diagnose/engine/domain"
	"github.com/revivatech/diagnose/engine/knowledge"
)

// Estimator produces cost estimates from the knowledge base tables.
// Stateless and safe for concurrent use.
type Estimator struct {
	kb *knowledge.Base
}

// New creates an Estimator over the given knowledge base.
func New(kb *knowledge.Base) *Estimator {
	return &Estimator{kb: kb}
}

// Estimate returns the parts/labor/total cost range for a category on a
// device class. Unknown categories fall back to the hardware base table and
// unknown device classes to a 1.0 multiplier; it never fails.
//
// Each of the four scaled figures is rounded independently before the totals
// are summed, so parts, labor, and total stay internally consistent.
func (e *Estimator) Estimate(category string, device domain.DeviceCategory) domain.CostEstimate {
	base := e.kb.CostFor(category)
	mult := e.kb.MultiplierFor(device)
	cur := e.kb.Currency

	partsMin := scale(base.PartsMin, mult)
	partsMax := scale(base.PartsMax, mult)
	laborMin := scale(base.LaborMin, mult)
	laborMax := scale(base.LaborMax, mult)

	return domain.CostEstimate{
		Parts: domain.CostRange{Min: partsMin, Max: partsMax, Currency: cur},
		Labor: domain.CostRange{Min: laborMin, Max: laborMax, Currency: cur},
		Total: domain.CostRange{Min: partsMin + laborMin, Max: partsMax + laborMax, Currency: cur},
	}
}

func scale(v int, mult float64) int {
	return int(math.Round(float64(v) * mult))
}
