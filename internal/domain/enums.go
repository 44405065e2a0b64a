package domain

// SetupQuality grades how clean a trade setup was
type SetupQuality string

const (
	SetupAPlus SetupQuality = "A+"
	SetupA     SetupQuality = "A"
	SetupB     SetupQuality = "B"
	SetupC     SetupQuality = "C"
	SetupCPlus SetupQuality = "C+"
)

// SetupQualities lists the accepted setup grades in declaration order.
var SetupQualities = []SetupQuality{SetupAPlus, SetupA, SetupB, SetupC, SetupCPlus}

// TradingSession is the market session a trade was taken in
type TradingSession string

const (
	SessionAsia        TradingSession = "Asia"
	SessionLondonOpen  TradingSession = "London Open"
	SessionNewYorkAM   TradingSession = "New York AM"
	SessionLondonClose TradingSession = "London Close"
	SessionNewYorkPM   TradingSession = "New York PM"
)

// TradingSessions lists the accepted sessions in declaration order.
var TradingSessions = []TradingSession{
	SessionAsia,
	SessionLondonOpen,
	SessionNewYorkAM,
	SessionLondonClose,
	SessionNewYorkPM,
}

// TradingEmotion is the trader's self-reported state when entering
type TradingEmotion string

const (
	EmotionConfident  TradingEmotion = "Confident"
	EmotionCalm       TradingEmotion = "Calm"
	EmotionFocused    TradingEmotion = "Focused"
	EmotionNeutral    TradingEmotion = "Neutral"
	EmotionHesitant   TradingEmotion = "Hesitant"
	EmotionAnxious    TradingEmotion = "Anxious"
	EmotionFrustrated TradingEmotion = "Frustrated"
	EmotionImpulsive  TradingEmotion = "Impulsive"
)

// TradingEmotions lists the accepted emotions in declaration order.
var TradingEmotions = []TradingEmotion{
	EmotionConfident,
	EmotionCalm,
	EmotionFocused,
	EmotionNeutral,
	EmotionHesitant,
	EmotionAnxious,
	EmotionFrustrated,
	EmotionImpulsive,
}

// TradeStatus is the outcome of a closed trade
type TradeStatus string

const (
	StatusWin       TradeStatus = "Win"
	StatusLoss      TradeStatus = "Loss"
	StatusBreakeven TradeStatus = "Breakeven"
)

// TradeStatuses lists the accepted outcomes in declaration order.
var TradeStatuses = []TradeStatus{StatusWin, StatusLoss, StatusBreakeven}

// Strings converts a closed enumeration to its literal option list.
func Strings[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}
