// ABOUTME: Fixed reference tables and name vocabularies for fixture generation.
// ABOUTME: Products, sales reps and commission rules are identical on every run.

package seed

var incomeBands = []string{"<20k", "20k-35k", "35k-50k", "50k-75k", "75k-100k", "100k-150k", "150k+"}

var cities = []string{"Munich", "Berlin", "Hamburg", "Frankfurt", "Cologne", "Stuttgart", "Düsseldorf", "Leipzig", "Dortmund", "Essen"}

var staticFirstNames = []string{
	"Emma", "Liam", "Olivia", "Noah", "Ava", "Ethan", "Sophia", "Mason", "Isabella", "William",
	"Mia", "James", "Charlotte", "Benjamin", "Amelia", "Lucas", "Harper", "Henry", "Evelyn", "Alexander",
	"Abigail", "Michael", "Emily", "Daniel", "Elizabeth", "Matthew", "Sofia", "Jackson", "Avery", "Sebastian",
}

var staticLastNames = []string{
	"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller", "Davis", "Rodriguez", "Martinez",
	"Hernandez", "Lopez", "Gonzalez", "Wilson", "Anderson", "Thomas", "Taylor", "Moore", "Jackson", "Martin",
}

// edgeCaseAges is the pool for edge-case rows past the fixed boundary tuples.
var edgeCaseAges = []int{18, 25, 45, 54, 55, 64, 65, 80, 90}

// edgeCaseClients are the boundary tuples used for the first rows in edge-case mode.
var edgeCaseClients = []struct {
	age        int
	incomeBand string
	policies   int
}{
	{18, "<20k", 0},       // very young, low income
	{85, "150k+", 12},     // very old, high income
	{65, "50k-75k", 5},    // retirement age boundary
	{45, "100k-150k", 3},  // 100k income threshold
	{35, "75k-100k", 0},   // no policies
	{50, "100k-150k", 15}, // many policies
	{55, "50k-75k", 7},    // pre-retiree boundary
	{30, "50k-75k", 2},    // growing family
	{45, "75k-100k", 6},   // established household
	{40, "150k+", 8},      // high net worth
}

var productCatalog = []Product{
	{Code: "HEALTH-001", Name: "Basic Health Plan", Category: "Health", PremiumMin: 1200, PremiumMax: 1800},
	{Code: "HEALTH-002", Name: "Premium Health Plan", Category: "Health", PremiumMin: 2400, PremiumMax: 3600},
	{Code: "HEALTH-003", Name: "Family Health Plan", Category: "Health", PremiumMin: 3000, PremiumMax: 4500},

	{Code: "LIFE-001", Name: "Term Life 20-Year", Category: "Life", PremiumMin: 600, PremiumMax: 1200},
	{Code: "LIFE-002", Name: "Whole Life Premium", Category: "Life", PremiumMin: 2000, PremiumMax: 4000},
	{Code: "LIFE-003", Name: "Universal Life Flex", Category: "Life", PremiumMin: 1500, PremiumMax: 3000},

	{Code: "RETIRE-001", Name: "Basic Retirement Plan", Category: "Retirement", PremiumMin: 1800, PremiumMax: 3000},
	{Code: "RETIRE-002", Name: "Premium Retirement Plan", Category: "Retirement", PremiumMin: 3600, PremiumMax: 6000},

	{Code: "HOME-001", Name: "Homeowners Standard", Category: "Home", PremiumMin: 800, PremiumMax: 1400},
	{Code: "HOME-002", Name: "Homeowners Premium", Category: "Home", PremiumMin: 1400, PremiumMax: 2400},

	{Code: "CAR-001", Name: "Auto Basic Coverage", Category: "Car", PremiumMin: 600, PremiumMax: 1000},
	{Code: "CAR-002", Name: "Auto Full Coverage", Category: "Car", PremiumMin: 1000, PremiumMax: 1800},

	{Code: "INCOME-001", Name: "Disability Income Protection", Category: "Income", PremiumMin: 900, PremiumMax: 1800},

	{Code: "LIAB-001", Name: "Umbrella Liability €1M", Category: "Liability", PremiumMin: 400, PremiumMax: 700},
	{Code: "LIAB-002", Name: "Umbrella Liability €5M", Category: "Liability", PremiumMin: 800, PremiumMax: 1400},

	{Code: "TRAVEL-001", Name: "Annual Travel Insurance", Category: "Travel", PremiumMin: 200, PremiumMax: 400},
	{Code: "ACCIDENT-001", Name: "Personal Accident Coverage", Category: "Accident", PremiumMin: 300, PremiumMax: 600},
	{Code: "LEGAL-001", Name: "Legal Expense Insurance", Category: "Legal", PremiumMin: 250, PremiumMax: 500},
	{Code: "CYBER-001", Name: "Cyber Protection Plan", Category: "Cyber", PremiumMin: 180, PremiumMax: 360},
	{Code: "PET-001", Name: "Pet Health Insurance", Category: "Pet", PremiumMin: 300, PremiumMax: 600},
	{Code: "ELEC-001", Name: "Electronics Protection", Category: "Electronics", PremiumMin: 150, PremiumMax: 300},
}

var salesReps = []SalesRep{
	{ID: 1, Name: "Anna Schmidt", Region: "Munich", Email: "anna.schmidt@insureco.de"},
	{ID: 2, Name: "Michael Weber", Region: "Berlin", Email: "michael.weber@insureco.de"},
	{ID: 3, Name: "Sarah Müller", Region: "Hamburg", Email: "sarah.mueller@insureco.de"},
	{ID: 4, Name: "Thomas Fischer", Region: "Frankfurt", Email: "thomas.fischer@insureco.de"},
	{ID: 5, Name: "Laura Wagner", Region: "Cologne", Email: "laura.wagner@insureco.de"},
}

var commissionRules = []CommissionRule{
	{Category: "Health", RatePct: 8},
	{Category: "Life", RatePct: 12},
	{Category: "Retirement", RatePct: 10},
	{Category: "Home", RatePct: 9},
	{Category: "Car", RatePct: 7},
	{Category: "Income", RatePct: 11},
	{Category: "Liability", RatePct: 10},
	{Category: "Travel", RatePct: 15},
	{Category: "Accident", RatePct: 9},
	{Category: "Legal", RatePct: 8},
	{Category: "Cyber", RatePct: 12},
	{Category: "Pet", RatePct: 10},
	{Category: "Electronics", RatePct: 13},
}

// Products returns the fixed product catalog.
func Products() []Product {
	return append([]Product(nil), productCatalog...)
}

// SalesReps returns the fixed sales representative table.
func SalesReps() []SalesRep {
	return append([]SalesRep(nil), salesReps...)
}

// CommissionRules returns the fixed commission rate per product category.
func CommissionRules() []CommissionRule {
	return append([]CommissionRule(nil), commissionRules...)
}

// StaticNames returns the built-in name pool used when AI generation is off.
func StaticNames() NamePool {
	return NamePool{
		First: append([]string(nil), staticFirstNames...),
		Last:  append([]string(nil), staticLastNames...),
	}
}
