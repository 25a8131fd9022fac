// ABOUTME: Row types for the five fixture tables and their sheet layouts.
// ABOUTME: Column names and order are what the Insurance Sales Tool parses.

package seed

import "github.com/2389/fixturegen/internal/workbook"

// Client is one synthetic customer row.
type Client struct {
	ID         int
	FullName   string
	Age        int
	IncomeBand string
	City       string
	// NumberOfPolicies drives how many policies are issued for the client.
	NumberOfPolicies int
	// SalesRepID and SalesRepName are drawn independently and may not match
	// the SalesReps table.
	SalesRepID   int
	SalesRepName string
}

// Product is one row of the insurance catalog.
type Product struct {
	Code       string
	Name       string
	Category   string
	PremiumMin int
	PremiumMax int
}

// Policy is an issued contract for a client and product.
type Policy struct {
	ID                int
	ClientID          int
	ProductCode       string
	Category          string
	Status            string
	ContractStartDate string
	AnnualPremium     int
}

// SalesRep is a sales representative.
type SalesRep struct {
	ID     int
	Name   string
	Region string
	Email  string
}

// CommissionRule is the commission percentage paid for a product category.
type CommissionRule struct {
	Category string
	RatePct  int
}

// Policy statuses
const (
	StatusActive  = "Active"
	StatusExpired = "Expired"
)

var (
	ClientColumns         = []string{"ClientID", "FullName", "Age", "IncomeBandEUR", "City", "NumberOfPolicies", "SalesRepID", "SalesRepName"}
	ProductColumns        = []string{"ProductCode", "ProductName", "Category", "BaseAnnualPremiumMinEUR", "BaseAnnualPremiumMaxEUR"}
	PolicyColumns         = []string{"PolicyID", "ClientID", "ProductCode", "Category", "Status", "ContractStartDate", "AnnualPremiumEUR"}
	SalesRepColumns       = []string{"SalesRepID", "SalesRepName", "Region", "Email"}
	CommissionRuleColumns = []string{"Category", "CommissionRatePct"}
)

// Dataset groups the five tables written into one workbook.
type Dataset struct {
	Clients         []Client
	Products        []Product
	Policies        []Policy
	SalesReps       []SalesRep
	CommissionRules []CommissionRule
}

// Sheets lays out all five tables in workbook order.
func (d *Dataset) Sheets() []workbook.Sheet {
	return []workbook.Sheet{
		ClientsSheet(d.Clients),
		ProductsSheet(d.Products),
		PoliciesSheet(d.Policies),
		SalesRepsSheet(d.SalesReps),
		CommissionRulesSheet(d.CommissionRules),
	}
}

func ClientsSheet(clients []Client) workbook.Sheet {
	rows := make([][]any, len(clients))
	for i, c := range clients {
		rows[i] = []any{c.ID, c.FullName, c.Age, c.IncomeBand, c.City, c.NumberOfPolicies, c.SalesRepID, c.SalesRepName}
	}
	return workbook.Sheet{Name: workbook.SheetClients, Columns: ClientColumns, Rows: rows}
}

func ProductsSheet(products []Product) workbook.Sheet {
	rows := make([][]any, len(products))
	for i, p := range products {
		rows[i] = []any{p.Code, p.Name, p.Category, p.PremiumMin, p.PremiumMax}
	}
	return workbook.Sheet{Name: workbook.SheetProducts, Columns: ProductColumns, Rows: rows}
}

func PoliciesSheet(policies []Policy) workbook.Sheet {
	rows := make([][]any, len(policies))
	for i, p := range policies {
		rows[i] = []any{p.ID, p.ClientID, p.ProductCode, p.Category, p.Status, p.ContractStartDate, p.AnnualPremium}
	}
	return workbook.Sheet{Name: workbook.SheetPolicies, Columns: PolicyColumns, Rows: rows}
}

func SalesRepsSheet(reps []SalesRep) workbook.Sheet {
	rows := make([][]any, len(reps))
	for i, r := range reps {
		rows[i] = []any{r.ID, r.Name, r.Region, r.Email}
	}
	return workbook.Sheet{Name: workbook.SheetSalesReps, Columns: SalesRepColumns, Rows: rows}
}

func CommissionRulesSheet(rules []CommissionRule) workbook.Sheet {
	rows := make([][]any, len(rules))
	for i, r := range rules {
		rows[i] = []any{r.Category, r.RatePct}
	}
	return workbook.Sheet{Name: workbook.SheetCommissionRules, Columns: CommissionRuleColumns, Rows: rows}
}
