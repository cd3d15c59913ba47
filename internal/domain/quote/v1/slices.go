package quotev1

// Quotes is a point-in-time list of quotes, ordered by key.
type Quotes []Quote

// TotalVolume returns the summed remaining volume across the quotes.
func (q Quotes) TotalVolume() int64 {
	var total int64
	for _, quote := range q {
		total += quote.Volume
	}

	return total
}

// Trades is an ordered list of executed trades.
type Trades []Trade

// TotalNetProfit returns the summed net profit across the trades.
func (t Trades) TotalNetProfit() float64 {
	var total float64
	for _, trade := range t {
		total += trade.NetProfit
	}

	return total
}

// TotalVolume returns the summed matched volume across the trades.
func (t Trades) TotalVolume() int64 {
	var total int64
	for _, trade := range t {
		total += trade.Volume
	}

	return total
}
