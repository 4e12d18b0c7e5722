package signal

import (
	"fmt"
	"math"

	"goldpredict/internal/model"
)

// DetectPattern inspects the last five candles for reversal patterns
// and same-direction runs. Engulfing and star patterns outrank single
// candle patterns; a consecutive run of three or more candles can only
// upgrade a same-direction read, never contradict an opposite one.
func DetectPattern(candles []model.Candle) model.IndicatorSignal {
	if len(candles) < 2 {
		return Unavailable("Pattern", WeightPattern, 0)
	}

	window := candles
	if len(window) > 5 {
		window = window[len(window)-5:]
	}
	last := window[len(window)-1]
	prev := window[len(window)-2]

	s := model.IndicatorSignal{
		Name:        "Pattern",
		Signal:      model.SignalNeutral,
		Strength:    50,
		Weight:      WeightPattern,
		Value:       last.Close,
		Description: "No pattern",
	}

	switch {
	case isBullishEngulfing(prev, last):
		s.Signal, s.Strength, s.Description = model.SignalBuy, 90, "Bullish engulfing"
	case isBearishEngulfing(prev, last):
		s.Signal, s.Strength, s.Description = model.SignalSell, 90, "Bearish engulfing"
	case len(window) >= 3 && isMorningStar(window[len(window)-3], prev, last):
		s.Signal, s.Strength, s.Description = model.SignalBuy, 88, "Morning star"
	case len(window) >= 3 && isEveningStar(window[len(window)-3], prev, last):
		s.Signal, s.Strength, s.Description = model.SignalSell, 88, "Evening star"
	case isHammer(last):
		s.Signal, s.Strength, s.Description = model.SignalBuy, 85, "Hammer"
	case isShootingStar(last):
		s.Signal, s.Strength, s.Description = model.SignalSell, 85, "Shooting star"
	case isDoji(last):
		s.Signal, s.Strength, s.Description = model.SignalNeutral, 50, "Doji"
	}

	// Consecutive-run override: upgrade only, never flip an assigned
	// opposite-direction pattern.
	if n, dir := consecutiveRun(window); n >= 3 {
		opposite := (dir == model.SignalBuy && s.Signal == model.SignalSell) ||
			(dir == model.SignalSell && s.Signal == model.SignalBuy)
		if !opposite {
			runStrength := math.Min(95, 70+float64(n)*5)
			if runStrength > s.Strength || s.Signal == model.SignalNeutral {
				s.Signal = dir
				s.Strength = math.Max(s.Strength, runStrength)
				word := "bullish"
				if dir == model.SignalSell {
					word = "bearish"
				}
				s.Description = fmt.Sprintf("%d consecutive %s candles", n, word)
			}
		}
	}

	return s
}

// consecutiveRun returns the length and direction of the trailing
// same-direction run within the window.
func consecutiveRun(window []model.Candle) (int, model.SignalType) {
	last := window[len(window)-1]
	var dir model.SignalType
	switch {
	case last.Bullish():
		dir = model.SignalBuy
	case last.Bearish():
		dir = model.SignalSell
	default:
		return 0, model.SignalNeutral
	}

	n := 1
	for i := len(window) - 2; i >= 0; i-- {
		c := window[i]
		if dir == model.SignalBuy && !c.Bullish() {
			break
		}
		if dir == model.SignalSell && !c.Bearish() {
			break
		}
		n++
	}
	return n, dir
}

func isBullishEngulfing(c1, c2 model.Candle) bool {
	return c1.Bearish() && c2.Bullish() && c2.Open < c1.Close && c2.Close > c1.Open
}

func isBearishEngulfing(c1, c2 model.Candle) bool {
	return c1.Bullish() && c2.Bearish() && c2.Open > c1.Close && c2.Close < c1.Open
}

func isHammer(c model.Candle) bool {
	body := c.Body()
	if body == 0 || c.Range() == 0 {
		return false
	}
	lowerWick := math.Min(c.Open, c.Close) - c.Low
	upperWick := c.High - math.Max(c.Open, c.Close)
	return lowerWick > body*2 && upperWick < body
}

func isShootingStar(c model.Candle) bool {
	body := c.Body()
	if body == 0 || c.Range() == 0 {
		return false
	}
	lowerWick := math.Min(c.Open, c.Close) - c.Low
	upperWick := c.High - math.Max(c.Open, c.Close)
	return upperWick > body*2 && lowerWick < body
}

func isDoji(c model.Candle) bool {
	r := c.Range()
	if r == 0 {
		return false
	}
	return c.Body()/r < 0.1
}

// isMorningStar checks a bearish candle, a small-bodied middle candle,
// then a bullish candle closing above the midpoint of the first body.
func isMorningStar(c1, c2, c3 model.Candle) bool {
	if !c1.Bearish() || !c3.Bullish() {
		return false
	}
	if c2.Body() >= c1.Body()*0.5 {
		return false
	}
	midpoint := (c1.Open + c1.Close) / 2
	return c3.Close > midpoint
}

// isEveningStar is the bearish mirror of the morning star.
func isEveningStar(c1, c2, c3 model.Candle) bool {
	if !c1.Bullish() || !c3.Bearish() {
		return false
	}
	if c2.Body() >= c1.Body()*0.5 {
		return false
	}
	midpoint := (c1.Open + c1.Close) / 2
	return c3.Close < midpoint
}
