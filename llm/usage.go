package llm

// Usage contains token accounting for one completed call.
type Usage struct {
	InputTokens      uint32 `json:"input_tokens"`
	OutputTokens     uint32 `json:"output_tokens"`
	CacheWriteTokens uint32 `json:"cache_write_tokens"`
	CacheReadTokens  uint32 `json:"cache_read_tokens"`
}

// Add returns the field-wise sum of two usage records.
func (u Usage) Add(o Usage) Usage {
	return Usage{
		InputTokens:      u.InputTokens + o.InputTokens,
		OutputTokens:     u.OutputTokens + o.OutputTokens,
		CacheWriteTokens: u.CacheWriteTokens + o.CacheWriteTokens,
		CacheReadTokens:  u.CacheReadTokens + o.CacheReadTokens,
	}
}

// Total returns the sum of all four counters.
func (u Usage) Total() uint32 {
	return u.InputTokens + u.OutputTokens + u.CacheWriteTokens + u.CacheReadTokens
}

// Pricing is cost per million tokens for each counter.
type Pricing struct {
	Input      float64
	Output     float64
	CacheWrite float64
	CacheRead  float64
}

// Cost computes the dollar cost of this usage against a price table.
// Linear in each counter.
func (u Usage) Cost(p Pricing) float64 {
	const million = 1_000_000
	return float64(u.InputTokens)*p.Input/million +
		float64(u.OutputTokens)*p.Output/million +
		float64(u.CacheWriteTokens)*p.CacheWrite/million +
		float64(u.CacheReadTokens)*p.CacheRead/million
}

// UsageLog is an append-only accumulator of per-call usage records.
// It is owned by whoever constructs it (typically one Client per invocation)
// and has a single writer; it is not safe for concurrent use.
type UsageLog struct {
	records []Usage
}

// NewUsageLog creates an empty usage log.
func NewUsageLog() *UsageLog {
	return &UsageLog{}
}

// Append records usage for one completed call.
func (l *UsageLog) Append(u Usage) {
	l.records = append(l.records, u)
}

// Records returns the recorded usage entries in append order.
func (l *UsageLog) Records() []Usage {
	return l.records
}

// Total returns the field-wise sum of all recorded entries.
func (l *UsageLog) Total() Usage {
	var total Usage
	for _, u := range l.records {
		total = total.Add(u)
	}
	return total
}

// Cost computes the total cost of all recorded entries against a price table.
func (l *UsageLog) Cost(p Pricing) float64 {
	return l.Total().Cost(p)
}
