package rewards

// Level maps a cumulative balance onto a named tier. Thresholds are ascending;
// level n is unlocked at balance >= Threshold.
type Level struct {
	Number    int
	Name      string
	Threshold int64
}

var levelTable = []Level{
	{Number: 1, Name: "Book Browser", Threshold: 0},
	{Number: 2, Name: "Page Turner", Threshold: 500},
	{Number: 3, Name: "Green Reader", Threshold: 1000},
	{Number: 4, Name: "Eco Bookworm", Threshold: 1500},
	{Number: 5, Name: "Library Legend", Threshold: 2500},
}

// LevelFor returns the highest level unlocked at balance and the point gap to
// the next threshold. The gap is zero at the top level.
func LevelFor(balance int64) (Level, int64) {
	current := levelTable[0]
	for _, l := range levelTable {
		if balance >= l.Threshold {
			current = l
		}
	}
	if current.Number == len(levelTable) {
		return current, 0
	}
	next := levelTable[current.Number]
	return current, next.Threshold - balance
}
