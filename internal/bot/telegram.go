package bot

import (
	"context"
	"fmt"
	"log"
	"time"

	"kaspalytics/internal/domain"
	"kaspalytics/internal/service"

	tele "gopkg.in/telebot.v3"
)

const botLookbackDays = 365

// StartTelegramBot wires the market service to a Telegram bot with a few
// read-only query commands. A missing token disables the bot; queries run at
// the pro tier since chat members are trusted operators.
func StartTelegramBot(token string, marketService *service.MarketService) {
	if token == "" {
		log.Println("TELEGRAM_BOT_TOKEN not set, skipping Telegram bot startup")
		return
	}
	pref := tele.Settings{
		Token:  token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}
	b, err := tele.NewBot(pref)
	if err != nil {
		log.Printf("failed to create Telegram bot, continuing without it: %v", err)
		return
	}

	b.Handle("/ping", func(c tele.Context) error {
		return c.Send("pong")
	})

	b.Handle("/price", func(c tele.Context) error {
		stats, err := marketService.GetMarketStats(context.Background(), botLookbackDays, domain.TierPro)
		if err != nil {
			return c.Send(fmt.Sprintf("Error fetching market stats: %v", err))
		}
		return c.Send(formatStats(stats))
	})

	b.Handle("/rsi", func(c tele.Context) error {
		set, err := marketService.GetIndicators(context.Background(), botLookbackDays, domain.TierPro)
		if err != nil {
			return c.Send(fmt.Sprintf("Error fetching indicators: %v", err))
		}
		return c.Send(formatIndicators(set.Current))
	})

	b.Handle("/powerlaw", func(c tele.Context) error {
		result, err := marketService.GetPowerLaw(context.Background(), botLookbackDays, domain.TierPro)
		if err != nil {
			return c.Send(fmt.Sprintf("Error fetching power-law overlay: %v", err))
		}
		return c.Send(formatPowerLaw(result))
	})

	log.Println("Telegram bot started")
	go b.Start()
}

func formatStats(stats domain.MarketStats) string {
	return fmt.Sprintf(
		"KAS\nPrice: $%.6f\n24h Change: %.2f%%\n7d Change: %.2f%%\n24h Volume: $%.0f\nMarket Cap: $%.0f",
		stats.CurrentPrice, stats.PriceChange24h, stats.PriceChange7d, stats.Volume24h, stats.MarketCap,
	)
}

func formatIndicators(snap domain.IndicatorSnapshot) string {
	trend := "neutral"
	switch {
	case snap.RSI >= 70:
		trend = "overbought"
	case snap.RSI <= 30:
		trend = "oversold"
	}
	return fmt.Sprintf(
		"KAS Indicators\nRSI(14): %.1f (%s)\nMACD: %.6f\nBollinger position: %.2f",
		snap.RSI, trend, snap.MACD, snap.BBPosition,
	)
}

func formatPowerLaw(result domain.PowerLawResult) string {
	return fmt.Sprintf(
		"KAS Power Law\nConservative: %+.1f%%\nBase: %+.1f%%\nAggressive: %+.1f%%\nR²: %.3f (%d points)",
		result.Conservative.Deviation, result.Base.Deviation, result.Aggressive.Deviation,
		result.Fit.RSquared, result.Fit.DataPoints,
	)
}
