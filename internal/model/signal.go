package model

// SignalType is a directional trading signal.
type SignalType string

const (
	SignalBuy     SignalType = "BUY"
	SignalSell    SignalType = "SELL"
	SignalNeutral SignalType = "NEUTRAL"
	SignalHold    SignalType = "HOLD"
)

// Direction is a trend direction.
type Direction string

const (
	DirectionUp      Direction = "UP"
	DirectionDown    Direction = "DOWN"
	DirectionNeutral Direction = "NEUTRAL"
)

// IndicatorSignal is one indicator's interpreted reading. Strength 0
// marks an unavailable indicator; such signals are excluded from
// buy/sell scoring but still count their weight toward the consensus
// denominator.
type IndicatorSignal struct {
	Name        string     `json:"name"`
	Signal      SignalType `json:"signal"`
	Strength    float64    `json:"strength"`
	Weight      float64    `json:"weight"`
	Value       float64    `json:"value,omitempty"`
	Description string     `json:"description,omitempty"`
}

// Available reports whether the indicator produced a usable reading.
func (s IndicatorSignal) Available() bool { return s.Strength > 0 }

// TrendResult is the directional-movement trend read over the most
// recent candles of the request timeframe.
type TrendResult struct {
	Direction Direction `json:"direction"`
	Strength  float64   `json:"strength"`
}

// MultiTimeframeResult is the trend read of one related higher
// timeframe, derived independently from its own candle series.
type MultiTimeframeResult struct {
	Timeframe string    `json:"timeframe"`
	Direction Direction `json:"direction"`
	Strength  float64   `json:"strength"`
}
