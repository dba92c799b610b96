package sketch

import "strings"

// Kind is one of a fixed closed set of semantic categories used to
// color-code nodes.
type Kind string

// The full category set. KindDefault is the fallback for names that match
// no classification rule.
const (
	KindUI      Kind = "ui"
	KindAPI     Kind = "api"
	KindDB      Kind = "db"
	KindAuth    Kind = "auth"
	KindQueue   Kind = "queue"
	KindCache   Kind = "cache"
	KindAI      Kind = "ai"
	KindDefault Kind = "default"
)

// Kinds lists all categories in classification precedence order
// (KindDefault last).
var Kinds = []Kind{KindUI, KindAPI, KindDB, KindAuth, KindQueue, KindCache, KindAI, KindDefault}

// Valid reports whether k is a member of the closed category set.
func (k Kind) Valid() bool {
	for _, known := range Kinds {
		if k == known {
			return true
		}
	}
	return false
}

// kindColors maps each category to its fill color for rendering.
var kindColors = map[Kind]string{
	KindUI:      "#4f9cf9",
	KindAPI:     "#8b5cf6",
	KindDB:      "#10b981",
	KindAuth:    "#f59e0b",
	KindQueue:   "#ef4444",
	KindCache:   "#ec4899",
	KindAI:      "#06b6d4",
	KindDefault: "#64748b",
}

// Color returns the fill color for the category. Unknown kinds get the
// default color rather than an error.
func (k Kind) Color() string {
	if c, ok := kindColors[k]; ok {
		return c
	}
	return kindColors[KindDefault]
}

// classifyRule pairs a category with the keywords that select it.
type classifyRule struct {
	kind     Kind
	keywords []string
}

// classifyRules is evaluated in order; the first rule with a keyword
// contained anywhere in the lowercased name wins. Order matters: a name
// holding both "ui" and "db" classifies as ui.
var classifyRules = []classifyRule{
	{KindUI, []string{"ui", "frontend", "client", "app", "dashboard"}},
	{KindAPI, []string{"api", "gateway", "service", "svc", "backend"}},
	{KindDB, []string{"db", "database", "store", "storage", "postgres", "mysql", "mongo"}},
	{KindAuth, []string{"auth", "oauth", "identity", "login"}},
	{KindQueue, []string{"queue", "event", "kafka", "bus", "pubsub"}},
	{KindCache, []string{"cache", "redis", "memcached"}},
	{KindAI, []string{"ai", "model", "ml", "inference", "embedding"}},
}

// Classify maps a component name to its semantic category.
// The match is a plain substring test against an ordered keyword list;
// no rule matching yields KindDefault. Pure and total: every input
// produces a category.
func Classify(name string) Kind {
	lower := strings.ToLower(name)
	for _, rule := range classifyRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.kind
			}
		}
	}
	return KindDefault
}
