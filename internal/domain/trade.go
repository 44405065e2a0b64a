package domain

import "time"

// TradeEntry is one journaled trade
type TradeEntry struct {
	ID              int64          `json:"id"`
	TraderProfileID int64          `json:"traderProfileId"`
	Date            time.Time      `json:"date"`
	TradingDay      string         `json:"tradingDay"`
	TradingSession  TradingSession `json:"tradingSession"`
	AssetTraded     string         `json:"assetTraded"`
	SetupQuality    SetupQuality   `json:"setupQuality"`
	RiskPercentage  float64        `json:"riskPercentage"`
	RiskRewardRatio float64        `json:"riskRewardRatio"`
	PnlAmount       string         `json:"pnlAmount"`
	TradeStatus     TradeStatus    `json:"tradeStatus"`
	StrategyUsed    string         `json:"strategyUsed"`
	TradingEmotion  TradingEmotion `json:"tradingEmotion"`
	ChartImage      string         `json:"chartImage"`
	Comments        string         `json:"comments"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
}

// NewTradeEntry is the canonical input for creating a trade entry.
// Enum fields may be empty when produced by the draft form schema.
type NewTradeEntry struct {
	TraderProfileID int64
	Date            time.Time
	TradingDay      string
	TradingSession  TradingSession
	AssetTraded     string
	SetupQuality    SetupQuality
	RiskPercentage  float64
	RiskRewardRatio float64
	PnlAmount       string
	TradeStatus     TradeStatus
	StrategyUsed    string
	TradingEmotion  TradingEmotion
	ChartImage      string
	Comments        string
}

// TradeEntryPatch holds the fields an update may change.
type TradeEntryPatch struct {
	TraderProfileID *int64
	Date            *time.Time
	TradingDay      *string
	TradingSession  *TradingSession
	AssetTraded     *string
	SetupQuality    *SetupQuality
	RiskPercentage  *float64
	RiskRewardRatio *float64
	PnlAmount       *string
	TradeStatus     *TradeStatus
	StrategyUsed    *string
	TradingEmotion  *TradingEmotion
	ChartImage      *string
	Comments        *string
}

// Apply merges the patch over e. UpdatedAt is the caller's concern.
func (p TradeEntryPatch) Apply(e *TradeEntry) {
	if p.TraderProfileID != nil {
		e.TraderProfileID = *p.TraderProfileID
	}
	if p.Date != nil {
		e.Date = *p.Date
	}
	if p.TradingDay != nil {
		e.TradingDay = *p.TradingDay
	}
	if p.TradingSession != nil {
		e.TradingSession = *p.TradingSession
	}
	if p.AssetTraded != nil {
		e.AssetTraded = *p.AssetTraded
	}
	if p.SetupQuality != nil {
		e.SetupQuality = *p.SetupQuality
	}
	if p.RiskPercentage != nil {
		e.RiskPercentage = *p.RiskPercentage
	}
	if p.RiskRewardRatio != nil {
		e.RiskRewardRatio = *p.RiskRewardRatio
	}
	if p.PnlAmount != nil {
		e.PnlAmount = *p.PnlAmount
	}
	if p.TradeStatus != nil {
		e.TradeStatus = *p.TradeStatus
	}
	if p.StrategyUsed != nil {
		e.StrategyUsed = *p.StrategyUsed
	}
	if p.TradingEmotion != nil {
		e.TradingEmotion = *p.TradingEmotion
	}
	if p.ChartImage != nil {
		e.ChartImage = *p.ChartImage
	}
	if p.Comments != nil {
		e.Comments = *p.Comments
	}
}
