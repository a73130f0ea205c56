package schema

// Category groups related metrics for display.
type Category string

// All metric categories.
const (
	CategoryFinancial  Category = "Financial Performance"
	CategoryPipeline   Category = "Sales Pipeline"
	CategoryCapability Category = "Capability & Enablement"
	CategoryCustomer   Category = "Customer Success"
	CategoryStrategic  Category = "Strategic Fit"
)

// Metric is the static definition of one scorable partner attribute.
type Metric struct {
	Key         string
	Name        string
	Type        MetricType
	Unit        Unit
	Direction   Direction
	Category    Category
	Ranges      Ranges      // default bands for quantitative metrics
	Descriptors Descriptors // default descriptors for qualitative metrics
}

// bands builds the five default ranges from score 1 to score 5.
func bands(pairs ...[2]string) Ranges {
	r := make(Ranges, len(pairs))
	for i, p := range pairs {
		r[Score(i+1)] = Range{Min: p[0], Max: p[1]}
	}
	return r
}

// levels builds the five default descriptors from score 1 to score 5.
func levels(texts ...string) Descriptors {
	d := make(Descriptors, len(texts))
	for i, t := range texts {
		d[Score(i+1)] = t
	}
	return d
}

// Catalog returns every scorable metric in display order.
// A fresh slice is built on each call so callers cannot mutate the definitions.
func Catalog() []Metric {
	return []Metric{
		// --- Financial Performance ---
		{
			Key: "annual_revenues", Name: "Annual Revenues", Type: Quantitative, Unit: UnitCurrency,
			Direction: HigherIsBetter, Category: CategoryFinancial,
			Ranges: bands([2]string{"", "50000"}, [2]string{"50001", "150000"}, [2]string{"150001", "350000"},
				[2]string{"350001", "750000"}, [2]string{"750001", ""}),
		},
		{
			Key: "yoy_revenue_growth", Name: "YoY Revenue Growth", Type: Quantitative, Unit: UnitPercent,
			Direction: HigherIsBetter, Category: CategoryFinancial,
			Ranges: bands([2]string{"", "0"}, [2]string{"0", "10"}, [2]string{"10", "20"},
				[2]string{"20", "35"}, [2]string{"35", ""}),
		},
		{
			Key: "gross_margin", Name: "Gross Margin", Type: Quantitative, Unit: UnitPercent,
			Direction: HigherIsBetter, Category: CategoryFinancial,
			Ranges: bands([2]string{"", "10"}, [2]string{"10", "20"}, [2]string{"20", "30"},
				[2]string{"30", "40"}, [2]string{"40", ""}),
		},
		{
			Key: "avg_deal_size", Name: "Average Deal Size", Type: Quantitative, Unit: UnitCurrency,
			Direction: HigherIsBetter, Category: CategoryFinancial,
			Ranges: bands([2]string{"", "5000"}, [2]string{"5001", "15000"}, [2]string{"15001", "40000"},
				[2]string{"40001", "100000"}, [2]string{"100001", ""}),
		},
		{
			Key: "days_sales_outstanding", Name: "Days Sales Outstanding", Type: Quantitative, Unit: UnitDays,
			Direction: LowerIsBetter, Category: CategoryFinancial,
			Ranges: bands([2]string{"91", ""}, [2]string{"61", "90"}, [2]string{"46", "60"},
				[2]string{"31", "45"}, [2]string{"", "30"}),
		},

		// --- Sales Pipeline ---
		{
			Key: "pipeline_value", Name: "Pipeline Value", Type: Quantitative, Unit: UnitCurrency,
			Direction: HigherIsBetter, Category: CategoryPipeline,
			Ranges: bands([2]string{"", "100000"}, [2]string{"100001", "250000"}, [2]string{"250001", "500000"},
				[2]string{"500001", "1000000"}, [2]string{"1000001", ""}),
		},
		{
			Key: "win_rate", Name: "Win Rate", Type: Quantitative, Unit: UnitPercent,
			Direction: HigherIsBetter, Category: CategoryPipeline,
			Ranges: bands([2]string{"", "10"}, [2]string{"10", "20"}, [2]string{"20", "30"},
				[2]string{"30", "45"}, [2]string{"45", ""}),
		},
		{
			Key: "new_logos", Name: "New Customer Logos", Type: Quantitative, Unit: UnitCount,
			Direction: HigherIsBetter, Category: CategoryPipeline,
			Ranges: bands([2]string{"", "0"}, [2]string{"1", "2"}, [2]string{"3", "5"},
				[2]string{"6", "10"}, [2]string{"11", ""}),
		},
		{
			Key: "deal_registrations", Name: "Deal Registrations", Type: Quantitative, Unit: UnitCount,
			Direction: HigherIsBetter, Category: CategoryPipeline,
			Ranges: bands([2]string{"", "2"}, [2]string{"3", "5"}, [2]string{"6", "10"},
				[2]string{"11", "20"}, [2]string{"21", ""}),
		},
		{
			Key: "sales_cycle_days", Name: "Sales Cycle Length", Type: Quantitative, Unit: UnitDays,
			Direction: LowerIsBetter, Category: CategoryPipeline,
			Ranges: bands([2]string{"151", ""}, [2]string{"91", "150"}, [2]string{"61", "90"},
				[2]string{"31", "60"}, [2]string{"", "30"}),
		},

		// --- Capability & Enablement ---
		{
			Key: "certified_staff", Name: "Certified Staff", Type: Quantitative, Unit: UnitCerts,
			Direction: HigherIsBetter, Category: CategoryCapability,
			Ranges: bands([2]string{"", "0"}, [2]string{"1", "2"}, [2]string{"3", "5"},
				[2]string{"6", "10"}, [2]string{"11", ""}),
		},
		{
			Key: "training_completion", Name: "Training Completion", Type: Quantitative, Unit: UnitPercent,
			Direction: HigherIsBetter, Category: CategoryCapability,
			Ranges: bands([2]string{"", "20"}, [2]string{"20", "40"}, [2]string{"40", "60"},
				[2]string{"60", "80"}, [2]string{"80", ""}),
		},
		{
			Key: "technical_capability", Name: "Technical Capability", Type: Qualitative,
			Direction: HigherIsBetter, Category: CategoryCapability,
			Descriptors: levels(
				"No technical staff",
				"Basic product knowledge",
				"Can deploy with vendor support",
				"Independent deployment capability",
				"Certified center of excellence",
			),
		},

		// --- Customer Success ---
		{
			Key: "customer_retention", Name: "Customer Retention", Type: Quantitative, Unit: UnitPercent,
			Direction: HigherIsBetter, Category: CategoryCustomer,
			Ranges: bands([2]string{"", "70"}, [2]string{"70", "80"}, [2]string{"80", "88"},
				[2]string{"88", "95"}, [2]string{"95", ""}),
		},
		{
			Key: "csat_score", Name: "Customer Satisfaction", Type: Quantitative, Unit: UnitPercent,
			Direction: HigherIsBetter, Category: CategoryCustomer,
			Ranges: bands([2]string{"", "60"}, [2]string{"60", "70"}, [2]string{"70", "80"},
				[2]string{"80", "90"}, [2]string{"90", ""}),
		},
		{
			Key: "escalations", Name: "Support Escalations", Type: Quantitative, Unit: UnitCount,
			Direction: LowerIsBetter, Category: CategoryCustomer,
			Ranges: bands([2]string{"11", ""}, [2]string{"6", "10"}, [2]string{"3", "5"},
				[2]string{"1", "2"}, [2]string{"", "0"}),
		},

		// --- Strategic Fit ---
		{
			Key: "strategic_alignment", Name: "Strategic Alignment", Type: Qualitative,
			Direction: HigherIsBetter, Category: CategoryStrategic,
			Descriptors: levels(
				"Competing priorities",
				"Opportunistic",
				"Aligned on select products",
				"Aligned on core portfolio",
				"Fully committed to joint roadmap",
			),
		},
		{
			Key: "executive_sponsorship", Name: "Executive Sponsorship", Type: Qualitative,
			Direction: HigherIsBetter, Category: CategoryStrategic,
			Descriptors: levels(
				"No executive contact",
				"Occasional executive contact",
				"Named executive sponsor",
				"Active executive sponsor",
				"Joint executive business reviews",
			),
		},
		{
			Key: "marketing_engagement", Name: "Marketing Engagement", Type: Qualitative,
			Direction: HigherIsBetter, Category: CategoryStrategic,
			Descriptors: levels(
				"No joint marketing",
				"Uses vendor collateral",
				"Runs occasional campaigns",
				"Regular co-marketing campaigns",
				"Dedicated co-marketing budget",
			),
		},
		{
			Key: "market_coverage", Name: "Market Coverage", Type: Qualitative,
			Direction: HigherIsBetter, Category: CategoryStrategic,
			Descriptors: levels(
				"Single city",
				"Regional",
				"National",
				"Multi-country",
				"Global",
			),
		},
	}
}

// Categories returns the metric categories in display order.
func Categories() []Category {
	return []Category{CategoryFinancial, CategoryPipeline, CategoryCapability, CategoryCustomer, CategoryStrategic}
}

// MetricByKey looks up a catalog metric.
func MetricByKey(key string) (Metric, bool) {
	for _, m := range Catalog() {
		if m.Key == key {
			return m, true
		}
	}
	return Metric{}, false
}

// DefaultCriterion expands a catalog metric into its full default criterion.
func DefaultCriterion(m Metric) Criterion {
	c := Criterion{
		Name:      m.Name,
		Type:      m.Type,
		Unit:      m.Unit,
		Direction: m.Direction,
		Enabled:   true,
	}
	switch m.Type {
	case Quantitative:
		c.Ranges = make(Ranges, NumLevels)
		for _, s := range AllScores() {
			c.Ranges[s] = m.Ranges[s]
		}
	case Qualitative:
		c.Descriptors = make(Descriptors, NumLevels)
		for _, s := range AllScores() {
			c.Descriptors[s] = m.Descriptors[s]
		}
	}
	return c
}

// DefaultCriteria expands every catalog metric into default criteria.
func DefaultCriteria() Criteria {
	catalog := Catalog()
	c := make(Criteria, len(catalog))
	for _, m := range catalog {
		c[m.Key] = DefaultCriterion(m)
	}
	return c
}
