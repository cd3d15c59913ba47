package quotev1

import "github.com/oklog/ulid/v2"

// Trade is an immutable record of one executed match between an ask and a bid.
type Trade struct {
	ID            string  `json:"id"`
	BuyVenue      string  `json:"buy_venue"`
	SellVenue     string  `json:"sell_venue"`
	BuyFeeRate    float64 `json:"buy_fee_rate"`
	SellFeeRate   float64 `json:"sell_fee_rate"`
	BuyPrice      float64 `json:"buy_price"`
	SellPrice     float64 `json:"sell_price"`
	Volume        int64   `json:"volume"`
	ProfitPerUnit float64 `json:"profit_per_unit"`
	NetProfit     float64 `json:"net_profit"`
}

// NewTrade records the execution of a matched ask/bid pair at the given
// volume, stamping a fresh ULID for log correlation.
func NewTrade(ask, bid *Quote, volume int64, profitPerUnit float64) Trade {
	return Trade{
		ID:            ulid.Make().String(),
		BuyVenue:      ask.Venue,
		SellVenue:     bid.Venue,
		BuyFeeRate:    ask.FeeRate,
		SellFeeRate:   bid.FeeRate,
		BuyPrice:      ask.Price,
		SellPrice:     bid.Price,
		Volume:        volume,
		ProfitPerUnit: profitPerUnit,
		NetProfit:     profitPerUnit * float64(volume),
	}
}
