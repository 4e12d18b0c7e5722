package predictor

import (
	"math"

	"goldpredict/internal/model"
)

// Aggregation constants. The trend weight and score threshold were
// tuned together with the interpreter weights; they move as a set.
const (
	trendWeight     = 2.0
	mtfBonusWeight  = 0.5
	scoreThreshold  = 0.12
	strongThreshold = 65
	priceScale      = 0.0025
)

// verdict is the outcome of the weighted vote.
type verdict struct {
	Signal          model.SignalType
	Direction       model.Direction
	Confidence      float64
	NormalizedScore float64
	BuyScore        float64
	SellScore       float64
	TotalWeight     float64
}

// consensus runs the weighted-voting decision policy over the
// interpreted signals, the trend read, and the related-timeframe
// reads. rsi and stochK are the raw oscillator values used for
// confidence shaping. Pure function, no state across calls.
func consensus(signals []model.IndicatorSignal, trend model.TrendResult, mtf []model.MultiTimeframeResult, rsi, stochK float64) verdict {
	var buyScore, sellScore, totalWeight float64
	var strongBuy, strongSell int

	// Every signal's weight dilutes the denominator; only available
	// signals contribute to a side.
	for _, s := range signals {
		totalWeight += s.Weight
		if !s.Available() {
			continue
		}
		effective := s.Weight * s.Strength / 100
		switch s.Signal {
		case model.SignalBuy:
			buyScore += effective
			if s.Strength >= strongThreshold {
				strongBuy++
			}
		case model.SignalSell:
			sellScore += effective
			if s.Strength >= strongThreshold {
				strongSell++
			}
		}
	}

	switch trend.Direction {
	case model.DirectionUp:
		buyScore += trend.Strength / 100 * trendWeight
	case model.DirectionDown:
		sellScore += trend.Strength / 100 * trendWeight
	}
	totalWeight += trendWeight

	// Confluence bonus accumulates for timeframes agreeing with the
	// base trend, and is signed by whichever side leads before the
	// decision thresholds are applied.
	var mtfBonus float64
	for _, m := range mtf {
		if m.Direction != model.DirectionNeutral && m.Direction == trend.Direction {
			mtfBonus += m.Strength / 100 * mtfBonusWeight
		}
	}

	netScore := buyScore - sellScore
	if buyScore > sellScore {
		netScore += mtfBonus
	} else if sellScore > buyScore {
		netScore -= mtfBonus
	}
	normalizedScore := netScore / totalWeight

	v := verdict{
		Signal:          model.SignalHold,
		Direction:       model.DirectionNeutral,
		NormalizedScore: normalizedScore,
		BuyScore:        buyScore,
		SellScore:       sellScore,
		TotalWeight:     totalWeight,
	}
	switch {
	case normalizedScore > 0:
		v.Direction = model.DirectionUp
	case normalizedScore < 0:
		v.Direction = model.DirectionDown
	}

	// Either the normalized score or a strong-count supermajority can
	// trigger a non-HOLD signal.
	switch {
	case normalizedScore > scoreThreshold ||
		(strongBuy >= 4 && float64(strongBuy) > float64(strongSell)*1.5):
		v.Signal = model.SignalBuy
	case normalizedScore < -scoreThreshold ||
		(strongSell >= 4 && float64(strongSell) > float64(strongBuy)*1.5):
		v.Signal = model.SignalSell
	}

	v.Confidence = shapeConfidence(v.Signal, signals, trend, mtf, rsi, stochK, strongBuy, strongSell)
	return v
}

// shapeConfidence builds the confidence score from base 50 with
// additive agreement bonuses and conflict penalties, clamped to
// [50, 95] with a HOLD cap of 55.
func shapeConfidence(chosen model.SignalType, signals []model.IndicatorSignal, trend model.TrendResult, mtf []model.MultiTimeframeResult, rsi, stochK float64, strongBuy, strongSell int) float64 {
	confidence := 50.0

	if chosen == model.SignalBuy || chosen == model.SignalSell {
		aligned := strongBuy
		opposing := model.SignalSell
		wantDir := model.DirectionUp
		if chosen == model.SignalSell {
			aligned = strongSell
			opposing = model.SignalBuy
			wantDir = model.DirectionDown
		}

		if strongBuy+strongSell > 0 {
			confidence += float64(aligned) / float64(strongBuy+strongSell) * 25
		}

		for _, s := range signals {
			if s.Signal != chosen {
				continue
			}
			if s.Strength >= 65 {
				confidence += 5
			}
			if s.Strength >= 85 {
				confidence += 6
			}
		}

		if trend.Direction == wantDir {
			confidence += trend.Strength * 0.15
		}

		for _, m := range mtf {
			if m.Direction == wantDir {
				confidence += 10
			}
		}

		// Oscillator extremes confirming the chosen side.
		switch chosen {
		case model.SignalBuy:
			if rsi <= 25 {
				confidence += 10
			} else if rsi <= 35 {
				confidence += 5
			}
			if stochK <= 20 {
				confidence += 8
			}
		case model.SignalSell:
			if rsi >= 75 {
				confidence += 10
			} else if rsi >= 65 {
				confidence += 5
			}
			if stochK >= 80 {
				confidence += 8
			}
		}

		for _, s := range signals {
			if s.Signal == opposing && s.Strength >= 70 {
				confidence -= 4
			}
		}
	}

	confidence = math.Max(50, math.Min(95, confidence))
	if chosen == model.SignalHold {
		confidence = math.Min(55, confidence)
	}
	return confidence
}
