package config

// Default returns the shipped configuration, including the full keyword
// dictionaries. Dictionaries live in config rather than package-level tables
// so tests and deployments can inject fixture sets.
func Default() Config {
	var cfg Config

	cfg.App.Port = 38472
	cfg.App.DataDir = "."
	cfg.App.LogLevel = "info"
	cfg.App.LogFormat = "json"

	cfg.Scoring.MinRatingsThreshold = 30
	cfg.Scoring.BayesConfidence = 20
	cfg.Scoring.SentimentWeight = 0.2
	cfg.Scoring.KeywordBonusPerHit = 0.03
	cfg.Scoring.KeywordBonusCap = 0.15
	cfg.Scoring.TopN = 5
	cfg.Scoring.DefaultMinRating = 3.5
	cfg.Scoring.DefaultMinReviews = 10

	cfg.Tagging.FallbackCuisine = "General Cuisine"
	cfg.Tagging.CuisineRules = defaultCuisineRules()
	cfg.Tagging.AspectRules = defaultAspectRules()

	cfg.Parser.CuisineTable = defaultParserCuisines()
	cfg.Parser.MoodTable = defaultMoods()
	cfg.Parser.PriorityTable = defaultPriorities()
	cfg.Parser.Areas = defaultAreas()

	cfg.Salience.MaxTermsPerDoc = 10
	cfg.Salience.VocabularyCap = 1000

	cfg.Geocoder.Enabled = true
	cfg.Geocoder.BaseURL = "https://maps.googleapis.com/maps/api/geocode/json"
	cfg.Geocoder.APIKeyEnv = "GEOCODER_API_KEY"
	cfg.Geocoder.KeyringAccount = ""
	cfg.Geocoder.TimeoutSeconds = 5
	cfg.Geocoder.ReqPerSec = 5
	cfg.Geocoder.Burst = 2
	cfg.Geocoder.MaxRetries = 5

	cfg.Ingest.Dir = "reviews"
	cfg.Ingest.RescanSeconds = 300

	return cfg
}

func defaultCuisineRules() []TagRule {
	return []TagRule{
		{Tag: "Italian", Any: []string{"pasta", "pizza", "italian food", "risotto", "lasagna", "tiramisu", "gelato", "calzone", "antipasto"}},
		{Tag: "Chinese", Any: []string{"noodles", "dumplings", "fried rice", "sichuan", "cantonese", "chinese food", "dim sum", "wonton", "chow mein", "sweet and sour", "spring rolls", "braised chicken", "hand pulled noodles"}},
		{Tag: "Korean", Any: []string{"korean", "kimchi", "bibimbap", "bulgogi", "korean barbecue", "tteokbokki", "army stew", "korean food", "kbbq"}},
		{Tag: "Indian", Any: []string{"curry", "naan", "tikka", "masala", "indian food", "bhaji", "samosa", "biryani", "rogan josh", "tandoori", "dosa", "puri", "south indian food"}},
		{Tag: "Japanese", Any: []string{"sushi", "ramen", "sashimi", "tempura", "japanese food", "udon", "teriyaki", "miso", "nigiri", "sake"}},
		{Tag: "Mexican", Any: []string{"taco", "burrito", "nachos", "mexican food", "quesadilla", "guacamole", "salsa", "enchilada", "fajita"}},
		{Tag: "Burger", Any: []string{"burger", "fries", "cheeseburger", "patty", "bun", "sliders"}},
		{Tag: "Cafe", Any: []string{"coffee", "latte", "cappuccino", "bakery", "cake", "cafe", "espresso", "pastry", "sandwich", "brunch", "breakfast", "frappe", "bagel", "chai"}},
		{Tag: "Bar/Pub", Any: []string{"beer", "cocktail", "pub", "drinks", "bar", "ale", "lager", "wine", "spirits", "pint", "happy hour", "gin", "club", "night out"}},
		{Tag: "Fast Food", Any: []string{"fast food", "takeaway", "quick bite", "drive-thru", "delivery", "fried chicken", "chips", "subs"}},
		{Tag: "Vegetarian/Vegan", Any: []string{"vegetarian", "vegan", "plant-based", "meat-free", "veggie", "quorn"}},
		{Tag: "Thai", Any: []string{"thai food", "pad thai", "green curry", "red curry", "tom yum", "thai tofu"}},
		{Tag: "Mediterranean", Any: []string{"mediterranean", "hummus", "falafel", "kebab", "pita", "greek food", "turkish food"}},
		{Tag: "Dessert", Any: []string{"dessert", "ice cream", "chocolate", "pudding", "sweet", "lemon posset", "tiramisu"}},
		{Tag: "Seafood", Any: []string{"seafood", "fish", "prawns", "lobster", "oysters", "mussels", "crab", "salmon"}},
		{Tag: "Vietnamese", Any: []string{"vietnamese", "pho", "duck dumplings", "spring roll", "lemongrass chicken"}},
		{Tag: "Ethiopian", Any: []string{"ethiopian food", "wot", "tej", "tilapia fish", "platter"}},
		{Tag: "Spanish", Any: []string{"spanish food", "tapas", "paella", "meatballs", "cannelloni"}},
		{Tag: "Indian Street Food", Any: []string{"dosa", "puri", "samosa", "bhaji", "chaat"}},
		{Tag: "Breakfast", Any: []string{"breakfast", "full english", "omelette", "bacon bap"}},
		{Tag: "Steakhouse", Any: []string{"steak", "sirloin", "ribeye", "t-bone"}},
		{Tag: "Middle Eastern", Any: []string{"middle eastern", "shawarma", "kebab", "baba ganoush"}},
	}
}

func defaultAspectRules() []TagRule {
	return []TagRule{
		{Tag: "Service", Any: []string{"service", "staff", "waiter", "waitress", "friendly", "rude", "slow", "attentive", "polite", "helpful", "unresponsive", "customer service", "courtesy", "served", "team"}},
		{Tag: "Food Quality", Any: []string{"food", "taste", "delicious", "tasty", "flavour", "quality", "cold", "bland", "fresh", "hot", "portion", "menu", "dishes", "ingredients", "overcooked", "undercooked", "authentic", "dry", "flavourful", "succulent", "inedible", "filling", "seasoning"}},
		{Tag: "Atmosphere", Any: []string{"atmosphere", "ambiance", "cozy", "loud", "noisy", "decor", "vibe", "lighting", "music", "comfortable", "crowded", "spacious", "romantic", "chilled", "traditional", "modern", "private"}},
		{Tag: "Value", Any: []string{"price", "expensive", "cheap", "value for money", "affordable", "cost", "bill", "overpriced", "bargain"}},
		{Tag: "Cleanliness", Any: []string{"clean", "dirty", "hygiene", "toilet", "restroom", "utensils"}},
		{Tag: "Location", Any: []string{"location", "convenient", "easy to find", "parking", "accessible", "central", "hidden", "proximity", "situated"}},
		{Tag: "Waiting Time", Any: []string{"wait", "waiting", "queue", "slow service", "fast service", "quick service", "rapid service"}},
		{Tag: "Drinks", Any: []string{"drinks", "cocktails", "wine list", "beer selection", "coffee", "tea", "mocktails", "ale", "lager", "frappe", "flat white"}},
		{Tag: "Experience", Any: []string{"experience", "enjoyed", "disappointed", "loved", "hated", "overall", "memorable", "fun", "uncomfortable", "dreadful"}},
		{Tag: "Portion Size", Any: []string{"portion", "size", "generous", "small", "big", "filling"}},
		{Tag: "Dietary Options", Any: []string{"vegan options", "vegetarian options", "gluten-free", "allergies", "halal", "non halal"}},
		{Tag: "Seating/Comfort", Any: []string{"uncomfortable", "chairs", "booth", "sitting area", "garden"}},
		{Tag: "Booking/Entry", Any: []string{"booked", "entry", "bouncers", "queue"}},
		{Tag: "Communication", Any: []string{"email", "response", "unresponsive", "complaint"}},
		{Tag: "Sound/Noise", Any: []string{"music", "loud", "noisy", "acoustics"}},
		{Tag: "Ventilation", Any: []string{"air conditioning", "air circulation", "fan", "ventilation"}},
		{Tag: "Emotional Tone", Any: []string{"love", "hate", "amazing", "terrible", "fantastic", "worst", "best", "incredible", "unforgettable", "boring", "awesome", "mediocre", "enjoyable", "delightful", "regret", "satisfying"}},
		{Tag: "Recommendation Tendency", Any: []string{"recommend", "not recommend", "must try", "worth it", "would come again", "never again", "highly recommend", "avoid", "suggest"}},
		{Tag: "Special Occasion", Any: []string{"birthday", "anniversary", "celebration", "family dinner", "date night", "business meeting", "solo dining", "group gathering"}},
	}
}

// Parser tables are smaller than the tagging dictionaries: they map
// user-facing names to the words people actually type in a request.
func defaultParserCuisines() []TagRule {
	return []TagRule{
		{Tag: "Italian", Any: []string{"italian", "pasta", "pizza"}},
		{Tag: "Chinese", Any: []string{"chinese", "noodles", "dumplings"}},
		{Tag: "Korean", Any: []string{"korean", "kimchi", "kbbq"}},
		{Tag: "Indian", Any: []string{"indian", "curry", "naan"}},
		{Tag: "Japanese", Any: []string{"japanese", "sushi", "ramen"}},
		{Tag: "Mexican", Any: []string{"mexican", "taco", "burrito"}},
		{Tag: "Burger", Any: []string{"burger", "fries"}},
		{Tag: "Cafe", Any: []string{"cafe", "coffee", "cappuccino"}},
		{Tag: "Bar/Pub", Any: []string{"bar", "pub", "beer"}},
		{Tag: "Fast Food", Any: []string{"fast food", "takeaway"}},
		{Tag: "Vegetarian/Vegan", Any: []string{"vegetarian", "vegan", "plant-based"}},
		{Tag: "Thai", Any: []string{"thai", "pad thai"}},
		{Tag: "Mediterranean", Any: []string{"mediterranean", "hummus"}},
		{Tag: "Dessert", Any: []string{"dessert", "cake"}},
		{Tag: "Seafood", Any: []string{"seafood", "fish", "prawns"}},
		{Tag: "Vietnamese", Any: []string{"vietnamese", "pho"}},
		{Tag: "Ethiopian", Any: []string{"ethiopian"}},
		{Tag: "Spanish", Any: []string{"spanish", "tapas"}},
		{Tag: "Steakhouse", Any: []string{"steak", "steakhouse"}},
		{Tag: "Breakfast", Any: []string{"breakfast", "brunch"}},
	}
}

func defaultMoods() []TagRule {
	return []TagRule{
		{Tag: "quiet", Any: []string{"quiet", "peaceful", "calm", "relaxing"}},
		{Tag: "lively", Any: []string{"lively", "noisy", "busy", "energetic", "vibrant"}},
		{Tag: "romantic", Any: []string{"romantic", "intimate", "date"}},
		{Tag: "cozy", Any: []string{"cozy", "warm", "comfortable", "homely"}},
	}
}

func defaultPriorities() []TagRule {
	return []TagRule{
		{Tag: "Service", Any: []string{"service", "staff", "friendly", "attentive"}},
		{Tag: "Food Quality", Any: []string{"food quality", "taste", "delicious", "tasty", "flavour"}},
		{Tag: "Atmosphere", Any: []string{"atmosphere", "ambiance", "vibe", "decor"}},
		{Tag: "Value", Any: []string{"value", "price", "cheap", "expensive", "affordable"}},
		{Tag: "Cleanliness", Any: []string{"clean", "dirty", "hygiene"}},
		{Tag: "Waiting Time", Any: []string{"wait", "queue", "slow", "fast"}},
		{Tag: "Drinks", Any: []string{"drinks", "cocktails", "wine", "beer"}},
		{Tag: "Location", Any: []string{"location", "convenient", "easy to find"}},
		{Tag: "Dietary Options", Any: []string{"vegan", "vegetarian", "gluten-free", "halal", "allergies"}},
	}
}

func defaultAreas() []string {
	return []string{
		"birmingham city centre", "jewellery quarter", "chinatown",
		"brindleyplace", "digbeth", "mailbox", "new street station",
		"bull ring", "university of birmingham", "selly oak", "edgbaston",
	}
}
