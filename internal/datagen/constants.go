package datagen

// HTTP status code constants.
const (
	StatusOK = 200
)

// Output file names inside the configured directory.
const (
	matchesFileName    = "matches.csv"
	deliveriesFileName = "deliveries.csv"
)

// Match shape constants.
const (
	ballsPerOver      = 6
	inningsPerMatch   = 2
	battersPerSide    = 7
	bowlersPerSide    = 5
	wicketsPerInnings = 10
)

// Season calendar constants. Fixtures are spread across a spring window.
const (
	seasonStartMonth = 3
	seasonStartDay   = 20
	seasonSpanDays   = 75
)

// ground pairs a venue with its host city.
type ground struct {
	venue string
	city  string
}

// teamNames lists the franchises fixtures are drawn from. Each team's home
// ground sits at the same index in homeGrounds.
var teamNames = []string{
	"Northern Knights",
	"Harbour Heat",
	"Capital Kings",
	"Coastal Chargers",
	"Metro Mavericks",
	"River Royals",
	"Summit Strikers",
	"Valley Vipers",
}

var homeGrounds = []ground{
	{venue: "Northside Oval", city: "Lakewood"},
	{venue: "Harbourfront Ground", city: "Port Ellis"},
	{venue: "Capital Park", city: "New Delhi"},
	{venue: "Seaview Stadium", city: "Visakhapatnam"},
	{venue: "Metro Bowl", city: "Mumbai"},
	{venue: "Riverside Gardens", city: "Kolkata"},
	{venue: "Summit Arena", city: "Pune"},
	{venue: "Green Valley Ground", city: "Dharamsala"},
}

// playerSurnames seeds the rosters. Each team draws its players from this
// pool with a distinct initial, so names never collide across teams.
var playerSurnames = []string{
	"Sharma", "Patel", "Khan", "Singh", "Kumar", "Nair",
	"Fernandes", "Iyer", "Reddy", "Menon", "Joshi", "Das",
}

var playerInitials = []string{"A", "B", "C", "D", "E", "F", "G", "H"}

// Delivery outcome weights. Entries pair a value with its relative weight;
// draws are proportional to weight over the total.
var batRunWeights = []weightedRuns{
	{runs: 0, weight: 32},
	{runs: 1, weight: 30},
	{runs: 2, weight: 12},
	{runs: 3, weight: 2},
	{runs: 4, weight: 14},
	{runs: 6, weight: 10},
}

var dismissalWeights = []weighted{
	{value: "caught", weight: 45},
	{value: "bowled", weight: 20},
	{value: "lbw", weight: 12},
	{value: "run out", weight: 10},
	{value: "stumped", weight: 8},
	{value: "caught and bowled", weight: 5},
}

var extraTypeWeights = []weighted{
	{value: "wides", weight: 50},
	{value: "legbyes", weight: 25},
	{value: "byes", weight: 15},
	{value: "noballs", weight: 10},
}

// Per-delivery event probabilities, in percent.
const (
	wicketPercent = 5
	extraPercent  = 6
	percentTotal  = 100
)

type weighted struct {
	value  string
	weight int
}

type weightedRuns struct {
	runs   int
	weight int
}
