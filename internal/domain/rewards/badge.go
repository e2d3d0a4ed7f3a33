package rewards

type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

// Metrics is the derived state badge predicates evaluate against. All fields
// are recomputed from the ledger and exchange history at evaluation time.
type Metrics struct {
	CompletedExchanges int
	ExchangesThisMonth int
	CO2SavedGrams      int64
	Balance            int64
	MonthsActive       int
}

// Badge is a catalog definition. Earned status is per-user and derived; the
// catalog itself is global.
type Badge struct {
	Slug        string
	Name        string
	Description string
	Rarity      Rarity
	Earned      func(m Metrics) bool
}

// Catalog is the global badge catalog. Predicates are pure functions of
// current metrics, so re-evaluating them is always safe.
func Catalog() []Badge {
	return []Badge{
		{
			Slug:        "first-exchange",
			Name:        "First Exchange",
			Description: "Complete your first book exchange",
			Rarity:      RarityCommon,
			Earned:      func(m Metrics) bool { return m.CompletedExchanges >= 1 },
		},
		{
			Slug:        "eco-warrior",
			Name:        "Eco Warrior",
			Description: "Save 10kg of CO2",
			Rarity:      RarityRare,
			Earned:      func(m Metrics) bool { return m.CO2SavedGrams >= 10_000 },
		},
		{
			Slug:        "community-helper",
			Name:        "Community Helper",
			Description: "Help 5 fellow readers",
			Rarity:      RarityEpic,
			Earned:      func(m Metrics) bool { return m.CompletedExchanges >= 5 },
		},
		{
			Slug:        "book-collector",
			Name:        "Book Collector",
			Description: "Exchange 50 books",
			Rarity:      RarityLegendary,
			Earned:      func(m Metrics) bool { return m.CompletedExchanges >= 50 },
		},
		{
			Slug:        "speed-reader",
			Name:        "Speed Reader",
			Description: "Complete 10 exchanges in a month",
			Rarity:      RarityRare,
			Earned:      func(m Metrics) bool { return m.ExchangesThisMonth >= 10 },
		},
		{
			Slug:        "green-champion",
			Name:        "Green Champion",
			Description: "Save 50kg of CO2",
			Rarity:      RarityEpic,
			Earned:      func(m Metrics) bool { return m.CO2SavedGrams >= 50_000 },
		},
	}
}

// NewlySatisfied returns catalog badges whose predicate holds for m and whose
// slug is not already in earned. Grants are monotonic: a badge already earned
// is never returned again, even if the underlying metric later decreases.
func NewlySatisfied(m Metrics, earned map[string]bool) []Badge {
	var out []Badge
	for _, b := range Catalog() {
		if earned[b.Slug] {
			continue
		}
		if b.Earned(m) {
			out = append(out, b)
		}
	}
	return out
}
