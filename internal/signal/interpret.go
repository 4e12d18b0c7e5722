package signal

import (
	"fmt"
	"math"

	"goldpredict/internal/indicator"
	"goldpredict/internal/model"
)

// Consensus weights per indicator family. Tuned against the decision
// thresholds in the aggregator; changing one requires retuning.
const (
	WeightRSI        = 1.8
	WeightMACD       = 1.8
	WeightMA         = 1.4
	WeightBollinger  = 1.5
	WeightStochastic = 1.6
	WeightWilliams   = 1.4
	WeightCCI        = 1.3
	WeightPivot      = 1.2
	WeightPattern    = 1.2
)

// Unavailable returns a placeholder signal for an indicator that could
// not be computed. Strength 0 keeps it out of buy/sell scoring while
// its weight still dilutes the consensus denominator.
func Unavailable(name string, weight, value float64) model.IndicatorSignal {
	return model.IndicatorSignal{
		Name:        name,
		Signal:      model.SignalNeutral,
		Strength:    0,
		Weight:      weight,
		Value:       value,
		Description: "Insufficient data",
	}
}

// InterpretRSI maps an RSI reading onto a signal via ordered bands,
// most extreme first.
func InterpretRSI(rsi float64) model.IndicatorSignal {
	s := model.IndicatorSignal{Name: "RSI", Weight: WeightRSI, Value: rsi}
	switch {
	case rsi <= 20:
		s.Signal, s.Strength, s.Description = model.SignalBuy, 95, "Extreme oversold"
	case rsi <= 30:
		s.Signal, s.Strength, s.Description = model.SignalBuy, 85, "Strong oversold"
	case rsi <= 40:
		s.Signal, s.Strength, s.Description = model.SignalBuy, 70, "Oversold"
	case rsi >= 80:
		s.Signal, s.Strength, s.Description = model.SignalSell, 95, "Extreme overbought"
	case rsi >= 70:
		s.Signal, s.Strength, s.Description = model.SignalSell, 85, "Strong overbought"
	case rsi >= 60:
		s.Signal, s.Strength, s.Description = model.SignalSell, 70, "Overbought"
	default:
		s.Signal, s.Strength, s.Description = model.SignalNeutral, 50, "Neutral momentum"
	}
	return s
}

// InterpretMACD signals on histogram sign confirmed by the MACD line
// vs its signal line, scaled by histogram magnitude. A histogram wider
// than 3 points earns a divergence bonus.
func InterpretMACD(m indicator.MACDResult) model.IndicatorSignal {
	s := model.IndicatorSignal{Name: "MACD", Weight: WeightMACD, Value: m.Histogram}
	switch {
	case m.Histogram > 0 && m.MACD > m.Signal:
		s.Signal = model.SignalBuy
		s.Strength = math.Min(95, 65+math.Abs(m.Histogram)*8)
		s.Description = "Bullish crossover"
	case m.Histogram < 0 && m.MACD < m.Signal:
		s.Signal = model.SignalSell
		s.Strength = math.Min(95, 65+math.Abs(m.Histogram)*8)
		s.Description = "Bearish crossover"
	default:
		s.Signal, s.Strength, s.Description = model.SignalNeutral, 50, "No crossover"
		return s
	}
	if math.Abs(m.Histogram) > 3 {
		s.Strength = math.Min(95, s.Strength+10)
		s.Description += ", strong divergence"
	}
	return s
}

// InterpretMA signals on price position relative to the SMA and EMA.
// Full alignment (price above both with SMA above EMA) scales with the
// percent distance from the SMA.
func InterpretMA(price, sma, ema float64) model.IndicatorSignal {
	s := model.IndicatorSignal{Name: "MA", Weight: WeightMA, Value: sma}
	dist := 0.0
	if sma != 0 {
		dist = (price - sma) / sma * 100
	}
	switch {
	case price > sma && sma > ema:
		s.Signal = model.SignalBuy
		s.Strength = math.Min(90, 70+math.Abs(dist)*3)
		s.Description = "Bullish alignment"
	case price > sma && price > ema:
		s.Signal, s.Strength, s.Description = model.SignalBuy, 65, "Price above averages"
	case price < sma && sma < ema:
		s.Signal = model.SignalSell
		s.Strength = math.Min(90, 70+math.Abs(dist)*3)
		s.Description = "Bearish alignment"
	case price < sma && price < ema:
		s.Signal, s.Strength, s.Description = model.SignalSell, 65, "Price below averages"
	default:
		s.Signal, s.Strength, s.Description = model.SignalNeutral, 50, "Mixed averages"
	}
	return s
}

// InterpretBollinger signals on the price position within the bands.
// A band squeeze (width under 2% of the middle) adds a breakout bonus
// to any directional read.
func InterpretBollinger(price float64, b indicator.BollingerResult) model.IndicatorSignal {
	s := model.IndicatorSignal{Name: "Bollinger", Weight: WeightBollinger, Value: price}
	width := b.Upper - b.Lower
	pos := 0.5
	if width > 0 {
		pos = (price - b.Lower) / width
	}
	switch {
	case price <= b.Lower:
		s.Signal, s.Strength, s.Description = model.SignalBuy, 92, "Below lower band"
	case pos <= 0.15:
		s.Signal, s.Strength, s.Description = model.SignalBuy, 82, "Near lower band"
	case pos <= 0.3:
		s.Signal, s.Strength, s.Description = model.SignalBuy, 70, "Lower band zone"
	case price >= b.Upper:
		s.Signal, s.Strength, s.Description = model.SignalSell, 92, "Above upper band"
	case pos >= 0.85:
		s.Signal, s.Strength, s.Description = model.SignalSell, 82, "Near upper band"
	case pos >= 0.7:
		s.Signal, s.Strength, s.Description = model.SignalSell, 70, "Upper band zone"
	default:
		s.Signal, s.Strength, s.Description = model.SignalNeutral, 50, "Mid-band"
	}
	if s.Signal != model.SignalNeutral && b.Middle > 0 && width/b.Middle < 0.02 {
		s.Strength = math.Min(95, s.Strength+8)
		s.Description += ", squeeze"
	}
	return s
}

// InterpretStochastic signals on the %K/%D position; a confirming
// cross inside the extreme zone reads stronger than the zone alone.
func InterpretStochastic(st indicator.StochasticResult) model.IndicatorSignal {
	s := model.IndicatorSignal{Name: "Stochastic", Weight: WeightStochastic, Value: st.K}
	switch {
	case st.K <= 20 && st.D <= 20:
		s.Signal, s.Description = model.SignalBuy, "Oversold zone"
		if st.K > st.D {
			s.Strength = 95
			s.Description = "Oversold bullish cross"
		} else {
			s.Strength = 88
		}
	case st.K <= 30:
		s.Signal, s.Strength, s.Description = model.SignalBuy, 75, "Approaching oversold"
	case st.K >= 80 && st.D >= 80:
		s.Signal, s.Description = model.SignalSell, "Overbought zone"
		if st.K < st.D {
			s.Strength = 95
			s.Description = "Overbought bearish cross"
		} else {
			s.Strength = 88
		}
	case st.K >= 70:
		s.Signal, s.Strength, s.Description = model.SignalSell, 75, "Approaching overbought"
	default:
		s.Signal, s.Strength, s.Description = model.SignalNeutral, 50, "Mid-range"
	}
	return s
}

// InterpretWilliams maps a Williams %R reading (-100..0) onto a signal.
func InterpretWilliams(wr float64) model.IndicatorSignal {
	s := model.IndicatorSignal{Name: "Williams %R", Weight: WeightWilliams, Value: wr}
	switch {
	case wr <= -90:
		s.Signal, s.Strength, s.Description = model.SignalBuy, 92, "Extreme oversold"
	case wr <= -80:
		s.Signal, s.Strength, s.Description = model.SignalBuy, 80, "Oversold"
	case wr <= -60:
		s.Signal, s.Strength, s.Description = model.SignalBuy, 65, "Leaning oversold"
	case wr >= -10:
		s.Signal, s.Strength, s.Description = model.SignalSell, 92, "Extreme overbought"
	case wr >= -20:
		s.Signal, s.Strength, s.Description = model.SignalSell, 80, "Overbought"
	case wr >= -40:
		s.Signal, s.Strength, s.Description = model.SignalSell, 65, "Leaning overbought"
	default:
		s.Signal, s.Strength, s.Description = model.SignalNeutral, 50, "Mid-range"
	}
	return s
}

// InterpretCCI maps a CCI reading onto a signal.
func InterpretCCI(cci float64) model.IndicatorSignal {
	s := model.IndicatorSignal{Name: "CCI", Weight: WeightCCI, Value: cci}
	switch {
	case cci <= -200:
		s.Signal, s.Strength, s.Description = model.SignalBuy, 95, "Extreme oversold"
	case cci <= -100:
		s.Signal, s.Strength, s.Description = model.SignalBuy, 85, "Oversold"
	case cci <= -50:
		s.Signal, s.Strength, s.Description = model.SignalBuy, 70, "Below typical range"
	case cci >= 200:
		s.Signal, s.Strength, s.Description = model.SignalSell, 95, "Extreme overbought"
	case cci >= 100:
		s.Signal, s.Strength, s.Description = model.SignalSell, 85, "Overbought"
	case cci >= 50:
		s.Signal, s.Strength, s.Description = model.SignalSell, 70, "Above typical range"
	default:
		s.Signal, s.Strength, s.Description = model.SignalNeutral, 50, "Typical range"
	}
	return s
}

// InterpretPivot signals on the price position against the floor-trader
// pivot levels, deeper supports checked before shallower ones.
func InterpretPivot(price float64, pv model.PivotLevels) model.IndicatorSignal {
	s := model.IndicatorSignal{Name: "Pivot", Weight: WeightPivot, Value: price}
	switch {
	case price <= pv.S2:
		s.Signal, s.Strength = model.SignalBuy, 90
		s.Description = fmt.Sprintf("Strong buy zone below S2 %.2f", pv.S2)
	case price <= pv.S1:
		s.Signal, s.Strength = model.SignalBuy, 80
		s.Description = fmt.Sprintf("Buy zone below S1 %.2f", pv.S1)
	case price >= pv.R2:
		s.Signal, s.Strength = model.SignalSell, 90
		s.Description = fmt.Sprintf("Strong sell zone above R2 %.2f", pv.R2)
	case price >= pv.R1:
		s.Signal, s.Strength = model.SignalSell, 80
		s.Description = fmt.Sprintf("Sell zone above R1 %.2f", pv.R1)
	case price < pv.Pivot:
		s.Signal, s.Strength, s.Description = model.SignalBuy, 65, "Below pivot"
	case price > pv.Pivot:
		s.Signal, s.Strength, s.Description = model.SignalSell, 65, "Above pivot"
	default:
		s.Signal, s.Strength, s.Description = model.SignalNeutral, 50, "At pivot"
	}
	return s
}
