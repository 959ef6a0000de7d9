package analytics

// RFMRecord holds one customer's recency/frequency/monetary metrics and their
// quintile scores. Score is R+F+M and is always in [3, 15].
type RFMRecord struct {
	CustomerUniqueID string
	RecencyDays      int
	Frequency        int
	Monetary         float64
	R                int
	F                int
	M                int
	Score            int
}
