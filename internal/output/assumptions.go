package output

// DefaultAssumptions lists the withholding assumptions rendered in verbose output
var DefaultAssumptions = []string{
	"Federal income tax: progressive brackets on annualized gross pay, no standard deduction or W-4 adjustments",
	"Social Security: flat rate on annualized wages up to the wage base",
	"Medicare: flat rate on each period's gross pay plus the additional rate above the filing status threshold",
	"State income tax: flat rate where configured, zero for states without an income tax",
	"Additional deductions: withheld in full from every paycheck",
	"Federal tax is the annual figure divided evenly; Social Security and additional Medicare are spread to the cent",
}
