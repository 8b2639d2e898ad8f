package analytics

import (
	"regexp"
	"strings"
)

// Catalog holds the metric classification tables. It is immutable after
// construction so classification can run concurrently without locks;
// callers that need different rules build their own catalog instead of
// mutating the default.
type Catalog struct {
	flow        map[string]struct{}
	pointInTime map[string]struct{}
	summable    map[string]struct{}
	heuristics  []heuristic
}

// heuristic is a regex fallback used only for advisory confidence
// scoring, never for the binding sum/latest decision.
type heuristic struct {
	pattern     *regexp.Regexp
	temporality Temporality
	reason      string
}

// NewCatalog builds an immutable catalog from canonical lowercase
// metric names. Input slices are copied.
func NewCatalog(flow, pointInTime, summable []string) *Catalog {
	c := &Catalog{
		flow:        make(map[string]struct{}, len(flow)),
		pointInTime: make(map[string]struct{}, len(pointInTime)),
		summable:    make(map[string]struct{}, len(summable)),
	}
	for _, name := range flow {
		c.flow[canonical(name)] = struct{}{}
	}
	for _, name := range pointInTime {
		c.pointInTime[canonical(name)] = struct{}{}
	}
	for _, name := range summable {
		c.summable[canonical(name)] = struct{}{}
	}
	c.heuristics = defaultHeuristics
	return c
}

// IsFlow reports whether the metric accumulates over a period and is
// therefore summed across periods.
func (c *Catalog) IsFlow(name string) bool {
	_, ok := c.flow[canonical(name)]
	return ok
}

// IsPointInTime reports whether the metric is a known snapshot quantity.
// Unknown metrics are treated as point-in-time too, but without the
// exact-match confidence.
func (c *Catalog) IsPointInTime(name string) bool {
	_, ok := c.pointInTime[canonical(name)]
	return ok
}

// IsSummable reports whether the metric may be summed across companies.
// This is distinct from the flow/point-in-time question: headcount is a
// snapshot per company yet sums meaningfully across the portfolio,
// while a margin never does.
func (c *Catalog) IsSummable(name string) bool {
	_, ok := c.summable[canonical(name)]
	return ok
}

func canonical(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

var defaultHeuristics = []heuristic{
	{
		pattern:     regexp.MustCompile(`revenue|sales|income|expense|spend|cost|volume|transactions|bookings`),
		temporality: TemporalitySum,
		reason:      "name matches flow-style pattern",
	},
	{
		pattern:     regexp.MustCompile(`rate|ratio|margin|count|users|customers|score|nps|churn|retention|conversion|balance|runway`),
		temporality: TemporalityLatest,
		reason:      "name matches snapshot-style pattern",
	},
}

var defaultCatalog = NewCatalog(
	// Flow metrics: activity accumulated over the reporting period.
	[]string{
		"revenue",
		"gmv",
		"gross merchandise value",
		"operating expenses",
		"opex",
		"cogs",
		"cost of goods sold",
		"r&d spend",
		"marketing spend",
		"sales spend",
		"api calls",
		"transaction volume",
		"new customers",
		"cash collected",
	},
	// Point-in-time metrics: snapshots at period end. Anything not in
	// the flow set classifies as latest anyway; listing a name here
	// only upgrades the advisory confidence to high.
	[]string{
		"arr",
		"mrr",
		"burn rate",
		"headcount",
		"active users",
		"monthly active users",
		"daily active users",
		"gross margin",
		"net margin",
		"churn rate",
		"retention rate",
		"conversion rate",
		"ltv",
		"cac",
		"ltv/cac",
		"nps",
		"cash balance",
		"runway",
	},
	// Summable across companies. Percentages and per-unit ratios stay
	// out regardless of temporal classification.
	[]string{
		"revenue",
		"arr",
		"mrr",
		"burn rate",
		"headcount",
		"gmv",
		"gross merchandise value",
		"transaction volume",
		"operating expenses",
		"customers",
		"new customers",
		"active users",
		"monthly active users",
		"daily active users",
		"api calls",
		"data volume",
	},
)

// DefaultCatalog returns the built-in classification tables.
func DefaultCatalog() *Catalog {
	return defaultCatalog
}
