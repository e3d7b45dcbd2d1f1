package intent

// Cuisines recognised in a request, matched as whole words.
var Cuisines = []string{
	"sushi", "japanese", "italian", "thai", "chinese", "mexican", "indian",
	"french", "korean", "vietnamese", "mediterranean", "american", "seafood",
	"steakhouse", "steak", "pizza", "ramen", "tapas", "greek", "spanish",
	"peruvian", "brazilian", "bbq", "barbecue", "southern", "cajun", "creole",
	"ethiopian", "middle eastern", "turkish", "lebanese", "moroccan", "cuban",
	"puerto rican", "caribbean", "hawaiian", "dim sum", "dumplings", "noodles",
	"pho", "tacos", "burritos", "sashimi", "omakase", "izakaya", "teppanyaki",
	"fine dining", "farm to table", "brunch", "breakfast", "lunch", "dinner",
}

var Vibes = []string{
	"romantic", "casual", "upscale", "trendy", "quiet", "lively", "intimate",
	"cozy", "modern", "traditional", "hip", "fancy", "relaxed", "chill",
	"sophisticated", "elegant", "fun", "vibrant", "low-key", "high-end",
	"classy", "chic", "laid-back", "energetic", "buzzy", "swanky",
}

var VibePhrases = []string{
	"not too loud", "good for conversation", "date night", "special occasion",
	"good for groups", "outdoor seating", "rooftop", "great view",
	"people watching", "hidden gem", "hole in the wall", "neighborhood spot",
}

var Dietary = []string{
	"vegetarian", "vegan", "gluten-free", "gluten free", "dairy-free", "dairy free",
	"kosher", "halal", "pescatarian", "keto", "paleo", "nut-free", "nut free",
}

var Occasions = []string{
	"date night", "birthday", "anniversary", "celebration", "business dinner",
	"first date", "proposal", "engagement", "graduation", "promotion",
	"girls night", "guys night", "family dinner", "catch up", "reunion",
}

// BudgetKeywords maps vibe words to a provider price filter.
var BudgetKeywords = map[string]string{
	"cheap":       "1",
	"budget":      "1",
	"affordable":  "1,2",
	"inexpensive": "1,2",
	"casual":      "1,2",
	"moderate":    "2",
	"mid-range":   "2",
	"midrange":    "2",
	"nice":        "2,3",
	"upscale":     "3,4",
	"fancy":       "3,4",
	"fine dining": "4",
	"expensive":   "3,4",
	"splurge":     "4",
	"high-end":    "4",
	"luxury":      "4",
}

var wordNumbers = []struct {
	word string
	n    int
}{
	{"two", 2}, {"three", 3}, {"four", 4}, {"five", 5}, {"six", 6},
	{"seven", 7}, {"eight", 8}, {"nine", 9}, {"ten", 10}, {"twelve", 12},
}

var nonLocations = map[string]bool{
	"mood": true, "evening": true, "night": true, "morning": true, "afternoon": true,
	"vibe": true, "style": true, "a": true, "the": true, "my": true, "our": true,
}

// KnownCities are recognised anywhere in a request when no explicit location phrase is found.
var KnownCities = []string{
	"new york", "nyc", "manhattan", "brooklyn", "queens", "bronx",
	"los angeles", "la", "hollywood", "santa monica", "beverly hills",
	"san francisco", "sf", "oakland", "berkeley",
	"chicago", "wicker park", "lincoln park", "river north",
	"miami", "miami beach", "south beach", "wynwood", "brickell",
	"austin", "houston", "dallas", "san antonio", "fort worth",
	"seattle", "capitol hill", "fremont", "ballard",
	"boston", "cambridge", "back bay", "beacon hill",
	"denver", "boulder", "lodo", "rino",
	"portland", "pearl district",
	"philadelphia", "philly", "old city", "rittenhouse",
	"washington dc", "dc", "georgetown", "dupont circle",
	"atlanta", "midtown", "buckhead", "decatur",
	"nashville", "the gulch", "east nashville",
	"new orleans", "nola", "french quarter", "garden district",
	"san diego", "gaslamp", "la jolla",
	"las vegas", "the strip",
	"phoenix", "scottsdale", "tempe",
	"minneapolis", "st paul",
	"detroit", "downtown detroit",
	"cleveland", "cincinnati", "columbus", "ohio city",
	"pittsburgh", "baltimore", "tampa", "orlando",
	"charlotte", "raleigh", "durham", "chapel hill",
	"salt lake city", "park city",
	"sacramento", "san jose", "fresno",
	"kansas city", "st louis", "indianapolis",
	"milwaukee", "madison",
	"memphis", "louisville", "lexington",
	"albuquerque", "tucson", "el paso",
	"omaha", "des moines", "oklahoma city", "tulsa",
	"richmond", "virginia beach", "norfolk",
	"providence", "hartford", "new haven",
	"buffalo", "rochester", "albany", "syracuse",
	"jacksonville", "fort lauderdale", "west palm beach",
	"anchorage", "honolulu",
}
