package schema

import "journal-backend/internal/domain"

var tradeEntryPatchKeys = []string{
	"traderProfileId",
	"date",
	"tradingDay",
	"tradingSession",
	"assetTraded",
	"setupQuality",
	"riskPercentage",
	"riskRewardRatio",
	"pnlAmount",
	"tradeStatus",
	"strategyUsed",
	"tradingEmotion",
	"chartImage",
	"comments",
}

// ParseNewTradeEntry validates trade entry creation input. Server-assigned
// fields are not read; all four enumerations are required.
func ParseNewTradeEntry(raw map[string]any) (domain.NewTradeEntry, error) {
	r := newReader(raw)

	in := domain.NewTradeEntry{
		TraderProfileID: r.requiredInt("traderProfileId"),
		Date:            r.requiredTime("date"),
		TradingDay:      r.optionalString("tradingDay", ""),
		TradingSession:  requiredEnum(r, "tradingSession", domain.TradingSessions),
		AssetTraded:     r.requiredString("assetTraded"),
		SetupQuality:    requiredEnum(r, "setupQuality", domain.SetupQualities),
		RiskPercentage:  r.requiredFloat("riskPercentage"),
		RiskRewardRatio: r.optionalFloat("riskRewardRatio", 0),
		PnlAmount:       r.requiredDecimal("pnlAmount"),
		TradeStatus:     requiredEnum(r, "tradeStatus", domain.TradeStatuses),
		StrategyUsed:    r.requiredString("strategyUsed"),
		TradingEmotion:  requiredEnum(r, "tradingEmotion", domain.TradingEmotions),
		ChartImage:      r.optionalString("chartImage", ""),
		Comments:        r.optionalString("comments", ""),
	}

	if err := r.err(); err != nil {
		return domain.NewTradeEntry{}, err
	}
	return in, nil
}

// ParseTradeEntryForm is the draft variant of ParseNewTradeEntry: session,
// emotion and status may be omitted, but a value that is present must still
// belong to its enumeration.
func ParseTradeEntryForm(raw map[string]any) (domain.NewTradeEntry, error) {
	r := newReader(raw)

	in := domain.NewTradeEntry{
		TraderProfileID: r.requiredInt("traderProfileId"),
		Date:            r.requiredTime("date"),
		TradingDay:      r.optionalString("tradingDay", ""),
		TradingSession:  optionalEnum(r, "tradingSession", domain.TradingSessions),
		AssetTraded:     r.requiredString("assetTraded"),
		SetupQuality:    requiredEnum(r, "setupQuality", domain.SetupQualities),
		RiskPercentage:  r.requiredFloat("riskPercentage"),
		RiskRewardRatio: r.optionalFloat("riskRewardRatio", 0),
		PnlAmount:       r.requiredDecimal("pnlAmount"),
		TradeStatus:     optionalEnum(r, "tradeStatus", domain.TradeStatuses),
		StrategyUsed:    r.requiredString("strategyUsed"),
		TradingEmotion:  optionalEnum(r, "tradingEmotion", domain.TradingEmotions),
		ChartImage:      r.optionalString("chartImage", ""),
		Comments:        r.optionalString("comments", ""),
	}

	if err := r.err(); err != nil {
		return domain.NewTradeEntry{}, err
	}
	return in, nil
}

// ParseTradeEntryPatch validates a partial trade entry update.
func ParseTradeEntryPatch(raw map[string]any) (domain.TradeEntryPatch, error) {
	r := newReader(raw)
	r.rejectUnknown(tradeEntryPatchKeys, serverManagedKeys)

	patch := domain.TradeEntryPatch{
		TraderProfileID: r.patchInt("traderProfileId"),
		Date:            r.patchTime("date"),
		TradingDay:      r.patchString("tradingDay"),
		TradingSession:  patchEnum(r, "tradingSession", domain.TradingSessions),
		AssetTraded:     r.patchString("assetTraded"),
		SetupQuality:    patchEnum(r, "setupQuality", domain.SetupQualities),
		RiskPercentage:  r.patchFloat("riskPercentage"),
		RiskRewardRatio: r.patchFloat("riskRewardRatio"),
		PnlAmount:       r.patchDecimal("pnlAmount"),
		TradeStatus:     patchEnum(r, "tradeStatus", domain.TradeStatuses),
		StrategyUsed:    r.patchString("strategyUsed"),
		TradingEmotion:  patchEnum(r, "tradingEmotion", domain.TradingEmotions),
		ChartImage:      r.patchString("chartImage"),
		Comments:        r.patchString("comments"),
	}

	if err := r.err(); err != nil {
		return domain.TradeEntryPatch{}, err
	}
	return patch, nil
}
