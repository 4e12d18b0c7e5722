package alert

import (
	"fmt"
	"strings"

	"goldpredict/internal/model"
)

// FormatSignalAlert renders a prediction into a Telegram message for
// strong-signal alerts.
func FormatSignalAlert(resp *model.PredictionResponse) string {
	var b strings.Builder

	emoji := "🟢"
	if resp.Signal == model.SignalSell {
		emoji = "🔴"
	}
	b.WriteString(fmt.Sprintf("%s <b>%s %s</b> | %s\n\n", emoji, resp.Symbol, resp.Signal, resp.Timeframe))
	b.WriteString(fmt.Sprintf("Price: %.2f → %.2f (%+.1f%%)\n", resp.CurrentPrice, resp.PredictedPrice, resp.ChangePercent))
	b.WriteString(fmt.Sprintf("Direction: %s | Confidence: %.0f%%\n\n", resp.Direction, resp.Confidence))

	b.WriteString("<b>Signal breakdown:</b>\n")
	for _, s := range resp.Signals {
		if !s.Available() || s.Signal == model.SignalNeutral {
			continue
		}
		b.WriteString(fmt.Sprintf("  %s: %s %.0f (x%.1f) - %s\n",
			s.Name, s.Signal, s.Strength, s.Weight, s.Description))
	}

	b.WriteString(fmt.Sprintf("\nRSI %.1f | Stoch %%K %.1f | CCI %.0f\n",
		resp.Indicators.RSI, resp.Indicators.StochK, resp.Indicators.CCI))
	b.WriteString(fmt.Sprintf("Fit: RMSE %.3f, MAE %.3f", resp.RMSE, resp.MAE))
	return b.String()
}
