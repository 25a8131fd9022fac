// ABOUTME: Random fixture generator for clients and policies.
// ABOUTME: Owns its random source so runs can be seeded for reproducible output.

package seed

import (
	"math/rand/v2"
	"time"
)

// Options configures a Generator.
type Options struct {
	// Seed makes generation reproducible. Nil seeds from the runtime source.
	Seed *int64
	// Names is the pool FullName is drawn from. Empty uses StaticNames.
	Names NamePool
	// Now is the generation time contract start dates are computed from.
	Now func() time.Time
}

// Generator creates randomized client and policy tables.
// It is not safe for concurrent use.
type Generator struct {
	rng   *rand.Rand
	names NamePool
	now   func() time.Time
}

// NewGenerator creates a generator from opts.
func NewGenerator(opts Options) *Generator {
	g := &Generator{
		names: opts.Names,
		now:   opts.Now,
	}

	if opts.Seed != nil {
		s := uint64(*opts.Seed)
		g.rng = rand.New(rand.NewPCG(s, s))
	} else {
		g.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	if g.names.Empty() {
		g.names = StaticNames()
	}
	if g.now == nil {
		g.now = time.Now
	}
	return g
}

// Dataset generates n clients, their policies and the fixed tables.
func (g *Generator) Dataset(n int, edgeCases bool) *Dataset {
	clients := g.Clients(n, edgeCases)
	products := Products()
	return &Dataset{
		Clients:         clients,
		Products:        products,
		Policies:        g.Policies(clients, products),
		SalesReps:       SalesReps(),
		CommissionRules: CommissionRules(),
	}
}

// Clients generates n client rows with ids starting at 1.
//
// In edge-case mode the first rows take fixed boundary values and the rest
// draw their age from a small set of edge values instead of a uniform range.
func (g *Generator) Clients(n int, edgeCases bool) []Client {
	if n <= 0 {
		return []Client{}
	}

	clients := make([]Client, 0, n)
	for i := 1; i <= n; i++ {
		var age int
		if edgeCases {
			age = edgeCaseAges[g.rng.IntN(len(edgeCaseAges))]
		} else {
			age = g.intRange(22, 75)
		}
		incomeBand := pick(g.rng, incomeBands)
		policies := g.intRange(0, 8)

		if edgeCases && i <= len(edgeCaseClients) {
			e := edgeCaseClients[i-1]
			age, incomeBand, policies = e.age, e.incomeBand, e.policies
		}

		clients = append(clients, Client{
			ID:               i,
			FullName:         pick(g.rng, g.names.First) + " " + pick(g.rng, g.names.Last),
			Age:              age,
			IncomeBand:       incomeBand,
			City:             pick(g.rng, cities),
			NumberOfPolicies: policies,
			SalesRepID:       g.intRange(1, len(salesReps)),
			SalesRepName:     salesReps[g.rng.IntN(len(salesReps))].Name,
		})
	}
	return clients
}

// Policies issues min(NumberOfPolicies, len(products)) distinct products per
// client. Policy ids run from 1 without gaps in client-then-product order.
func (g *Generator) Policies(clients []Client, products []Product) []Policy {
	now := g.now()
	policies := []Policy{}
	policyID := 1

	for _, c := range clients {
		count := min(max(c.NumberOfPolicies, 0), len(products))

		for _, idx := range g.rng.Perm(len(products))[:count] {
			p := products[idx]
			monthsAgo := g.intRange(1, 36)

			status := StatusActive
			if g.rng.Float64() <= 0.1 {
				status = StatusExpired
			}

			policies = append(policies, Policy{
				ID:                policyID,
				ClientID:          c.ID,
				ProductCode:       p.Code,
				Category:          p.Category,
				Status:            status,
				ContractStartDate: now.AddDate(0, 0, -monthsAgo*30).Format("2006-01-02"),
				AnnualPremium:     g.intRange(p.PremiumMin, p.PremiumMax),
			})
			policyID++
		}
	}
	return policies
}

// intRange returns a random int in [lo, hi] inclusive.
func (g *Generator) intRange(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + g.rng.IntN(hi-lo+1)
}

func pick(rng *rand.Rand, values []string) string {
	return values[rng.IntN(len(values))]
}
