package config

// Default returns the stock scenario: a mid-size B2B SaaS pipeline with two
// years of history. Values are the tool's reference distributions; override
// any of them in salesline.yml.
func Default() *Config {
	return &Config{
		Accounts: AccountsConfig{
			Count:          3000,
			RecentFraction: 0.4,
			Industries: []Weight{
				{Name: "Technology", P: 0.25},
				{Name: "Professional Services", P: 0.20},
				{Name: "Manufacturing", P: 0.20},
				{Name: "Finance", P: 0.20},
				{Name: "Healthcare", P: 0.15},
			},
			RevenueBuckets: []Weight{
				{Name: "SMB", P: 0.40},
				{Name: "Mid-Market", P: 0.40},
				{Name: "Upper-Mid", P: 0.15},
				{Name: "Enterprise", P: 0.05},
			},
			RevenueLogNormal: map[string]LogNormal{
				"SMB":        {Median: 5e6, Sigma: 0.5},
				"Mid-Market": {Median: 50e6, Sigma: 0.5},
				"Upper-Mid":  {Median: 200e6, Sigma: 0.4},
				"Enterprise": {Median: 1e9, Sigma: 0.3},
			},
			Categories: []Weight{
				{Name: "prospect", P: 0.50},
				{Name: "customer", P: 0.25},
				{Name: "churned", P: 0.20},
				{Name: "expansion", P: 0.05},
			},
		},
		Leads: LeadsConfig{
			InboundPerMonth:  1800,
			OutboundPerMonth: 700,
			Months:           12,
			Sources: []Weight{
				{Name: "Website/Organic", P: 0.30},
				{Name: "Paid Ads", P: 0.20},
				{Name: "Outbound BDR", P: 0.25},
				{Name: "Events/Webinars", P: 0.08},
				{Name: "Referral/Partner", P: 0.07},
				{Name: "Other", P: 0.10},
			},
			MQLRates: map[string]Range{
				"Website/Organic":  {Low: 0.15, High: 0.25},
				"Paid Ads":         {Low: 0.08, High: 0.12},
				"Outbound BDR":     {Low: 0.20, High: 0.30},
				"Events/Webinars":  {Low: 0.10, High: 0.15},
				"Referral/Partner": {Low: 0.25, High: 0.35},
				"Other":            {Low: 0.05, High: 0.10},
			},
			// Monday..Sunday; Tue-Thu peak, quiet weekends.
			WeekdayWeights: []float64{0.10, 0.25, 0.25, 0.20, 0.10, 0.07, 0.03},
			// January..December; slower summer and winter.
			MonthMultipliers: []float64{0.9, 1.0, 1.1, 1.1, 1.0, 0.8, 0.7, 0.75, 1.1, 1.1, 1.0, 0.8},
			BDRCount:         17,
			AccountLinkProb:  0.35,
		},
		Contacts: ContactsConfig{
			PerLead: []CountWeight{
				{N: 1, P: 0.75},
				{N: 2, P: 0.20},
				{N: 3, P: 0.05},
			},
			Titles: []Weight{
				{Name: "VP/Director/C-Level", P: 0.23},
				{Name: "Manager/Team Lead", P: 0.45},
				{Name: "Individual Contributor/Specialist", P: 0.22},
				{Name: "Other", P: 0.10},
			},
			Geos: []Weight{
				{Name: "US", P: 0.50},
				{Name: "Canada", P: 0.15},
				{Name: "Europe", P: 0.18},
				{Name: "Asia Pacific", P: 0.10},
				{Name: "Rest of World", P: 0.07},
			},
			MaxLagDays: 14,
		},
		Opportunities: OpportunitiesConfig{
			AECount:      20,
			TopRepCount:  4,
			TopRepSkew:   0.15,
			TimeSpanDays: 730,
			Sources: []Weight{
				{Name: "Inbound", P: 0.35},
				{Name: "Outbound", P: 0.40},
				{Name: "Partner/Channel", P: 0.10},
				{Name: "Event/Webinar", P: 0.05},
				{Name: "Referral", P: 0.05},
				{Name: "Other", P: 0.05},
			},
			ProductLines: []Weight{
				{Name: "Core", P: 0.40},
				{Name: "Pro", P: 0.35},
				{Name: "Enterprise", P: 0.20},
				{Name: "Add-Ons", P: 0.05},
			},
			Currency: "CAD",
			OpenStages: []Weight{
				{Name: "Prospecting", P: 0.25},
				{Name: "Discovery", P: 0.31},
				{Name: "Proposal", P: 0.25},
				{Name: "Negotiation", P: 0.19},
			},
			StageProbability: map[string]Range{
				"Prospecting": {Low: 0.05, High: 0.10},
				"Discovery":   {Low: 0.10, High: 0.25},
				"Proposal":    {Low: 0.25, High: 0.45},
				"Negotiation": {Low: 0.45, High: 0.70},
			},
			CountTiers: []Tier{
				{Name: "low", Weight: 0.80, Min: 1, Max: 2},
				{Name: "medium", Weight: 0.15, Min: 3, Max: 5},
				{Name: "high", Weight: 0.05, Min: 5, Max: 5},
			},
			CycleTiers: []Tier{
				{Name: "short", Weight: 0.1, Min: 15, Max: 30},
				{Name: "medium", Weight: 0.5, Min: 60, Max: 90},
				{Name: "long", Weight: 0.3, Min: 90, Max: 180},
				{Name: "very_long", Weight: 0.1, Min: 180, Max: 360},
			},
			ClosedRatio: 0.6,
			CloseOutcomes: []Weight{
				{Name: "closed_won", P: 0.33},
				{Name: "closed_lost", P: 0.58},
				{Name: "disqualified", P: 0.09},
			},
			ACV: map[string]LogNormal{
				"Inbound":         {Median: 20000, Sigma: 0.5},
				"Outbound":        {Median: 40000, Sigma: 0.6},
				"Partner/Channel": {Median: 75000, Sigma: 0.5},
				"Event/Webinar":   {Median: 15000, Sigma: 0.4},
				"Referral":        {Median: 30000, Sigma: 0.5},
				"Other":           {Median: 25000, Sigma: 0.5},
			},
			DefaultACV: LogNormal{Median: 25000, Sigma: 0.5},
		},
		History: HistoryConfig{
			BaseStageDays: map[string]float64{
				"Discovery":   14,
				"Proposal":    21,
				"Negotiation": 18,
			},
			SmallDealThreshold: 25000,
			MidDealThreshold:   75000,
			DealSizeMultipliers: map[string]Range{
				"small": {Low: 0.6, High: 0.9},
				"mid":   {Low: 0.9, High: 1.2},
				"large": {Low: 1.2, High: 1.8},
			},
			SourceMultipliers: map[string]Range{
				"Inbound":         {Low: 0.8, High: 1.0},
				"Outbound":        {Low: 1.0, High: 1.3},
				"Partner/Channel": {Low: 0.9, High: 1.1},
				"Event/Webinar":   {Low: 0.9, High: 1.2},
				"Referral":        {Low: 0.7, High: 0.9},
				"Other":           {Low: 1.0, High: 1.2},
			},
			RepMultipliers: map[string]Range{
				"top":     {Low: 0.7, High: 0.9},
				"average": {Low: 0.9, High: 1.1},
				"low":     {Low: 1.1, High: 1.4},
			},
			StatusMultipliers: map[string]Range{
				"prospect":  {Low: 1.0, High: 1.2},
				"customer":  {Low: 0.8, High: 1.0},
				"expansion": {Low: 0.7, High: 0.9},
			},
			RepTiers:        []string{"top", "average", "low"},
			AccountStatuses: []string{"prospect", "customer", "expansion"},
			ReentryProb:     0.15,
			NoiseSigma:      0.35,
			Reps: []string{
				"Avery Collins", "Jordan Blake", "Morgan Reyes", "Riley Chen",
				"Casey Whitfield", "Drew Okafor", "Harper Lindqvist", "Quinn Abara",
			},
		},
		Activities: ActivitiesConfig{
			Types: []Weight{
				{Name: "email", P: 0.45},
				{Name: "call", P: 0.25},
				{Name: "meeting", P: 0.20},
				{Name: "demo", P: 0.10},
			},
			Outcomes: map[string][]Weight{
				"email": {
					{Name: "sent", P: 0.55},
					{Name: "replied", P: 0.30},
					{Name: "bounced", P: 0.15},
				},
				"call": {
					{Name: "connected", P: 0.40},
					{Name: "voicemail", P: 0.35},
					{Name: "no_answer", P: 0.25},
				},
				"meeting": {
					{Name: "held", P: 0.70},
					{Name: "rescheduled", P: 0.20},
					{Name: "no_show", P: 0.10},
				},
				"demo": {
					{Name: "completed", P: 0.80},
					{Name: "canceled", P: 0.20},
				},
			},
			Directions: []Weight{
				{Name: "outbound", P: 0.70},
				{Name: "inbound", P: 0.30},
			},
			// Business-hours peaks around late morning and mid-afternoon.
			HourWeights: []CountWeight{
				{N: 8, P: 0.05},
				{N: 9, P: 0.11},
				{N: 10, P: 0.15},
				{N: 11, P: 0.14},
				{N: 12, P: 0.06},
				{N: 13, P: 0.10},
				{N: 14, P: 0.14},
				{N: 15, P: 0.12},
				{N: 16, P: 0.08},
				{N: 17, P: 0.05},
			},
			CountBySize: map[string]IntRange{
				"small": {Min: 2, Max: 6},
				"mid":   {Min: 5, Max: 14},
				"large": {Min: 12, Max: 30},
			},
			ContactsBySize: map[string]IntRange{
				"small": {Min: 1, Max: 2},
				"mid":   {Min: 2, Max: 4},
				"large": {Min: 3, Max: 6},
			},
			NoiseSigma: 0.3,
		},
		Billing: BillingConfig{
			Currency: "CAD",
			OrderCountTiers: []Tier{
				{Name: "single", Weight: 0.55, Min: 1, Max: 1},
				{Name: "renewing", Weight: 0.35, Min: 2, Max: 3},
				{Name: "expanding", Weight: 0.10, Min: 3, Max: 5},
			},
			TermMonths: []CountWeight{
				{N: 6, P: 0.10},
				{N: 12, P: 0.55},
				{N: 24, P: 0.25},
				{N: 36, P: 0.10},
			},
			InitialLagDays:    IntRange{Min: 5, Max: 14},
			RenewalJitterDays: 30,
			EndOfMonthBias:    0.3,
			SeasonalBias:      0.6,
			PeakMonths:        []int{4, 5, 6, 10, 11, 12},
		},
	}
}
