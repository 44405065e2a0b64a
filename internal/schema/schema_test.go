package schema

import (
	"encoding/json"
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"journal-backend/internal/domain"
)

func decode(t *testing.T, body string) map[string]any {
	t.Helper()
	raw, err := DecodeObject(strings.NewReader(body))
	require.NoError(t, err)
	return raw
}

func validTradeEntry() map[string]any {
	return map[string]any{
		"traderProfileId": json.Number("1"),
		"date":            "2024-05-01",
		"assetTraded":     "EURUSD",
		"setupQuality":    "A",
		"riskPercentage":  json.Number("1.5"),
		"pnlAmount":       "120.00",
		"strategyUsed":    "Breakout",
		"tradingSession":  "London Open",
		"tradingEmotion":  "Confident",
		"tradeStatus":     "Win",
	}
}

func asValidation(t *testing.T, err error) *ValidationError {
	t.Helper()
	var verr *ValidationError
	require.True(t, errors.As(err, &verr), "expected *ValidationError, got %v", err)
	return verr
}

func TestParseNewTradeEntryAppliesDefaults(t *testing.T) {
	t.Parallel()

	in, err := ParseNewTradeEntry(validTradeEntry())
	require.NoError(t, err)

	assert.Equal(t, int64(1), in.TraderProfileID)
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), in.Date)
	assert.Equal(t, domain.SessionLondonOpen, in.TradingSession)
	assert.Equal(t, domain.SetupA, in.SetupQuality)
	assert.Equal(t, 1.5, in.RiskPercentage)
	assert.Equal(t, 0.0, in.RiskRewardRatio)
	assert.Equal(t, "120.00", in.PnlAmount)
	assert.Equal(t, "", in.TradingDay)
	assert.Equal(t, "", in.ChartImage)
	assert.Equal(t, "", in.Comments)
}

func TestParseNewTradeEntryRejectsEnumViolations(t *testing.T) {
	t.Parallel()

	tests := []struct {
		field string
		value any
	}{
		{"setupQuality", "S"},
		{"tradingSession", "Sydney"},
		{"tradingEmotion", "Euphoric"},
		{"tradeStatus", "Draw"},
		{"tradeStatus", json.Number("1")},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			t.Parallel()

			raw := validTradeEntry()
			raw[tt.field] = tt.value

			_, err := ParseNewTradeEntry(raw)
			verr := asValidation(t, err)
			assert.True(t, verr.HasIssue(tt.field))
		})
	}
}

func TestParseNewTradeEntryEnumIssueListsOptions(t *testing.T) {
	t.Parallel()

	raw := validTradeEntry()
	raw["setupQuality"] = "S"

	_, err := ParseNewTradeEntry(raw)
	verr := asValidation(t, err)
	require.Len(t, verr.Issues, 1)
	assert.Equal(t, CodeInvalidEnumValue, verr.Issues[0].Code)
	assert.Equal(t, []string{"A+", "A", "B", "C", "C+"}, verr.Issues[0].Options)
}

func TestParseNewTradeEntryReportsEveryMissingField(t *testing.T) {
	t.Parallel()

	_, err := ParseNewTradeEntry(map[string]any{})
	verr := asValidation(t, err)

	for _, field := range []string{
		"traderProfileId", "date", "assetTraded", "setupQuality", "riskPercentage",
		"pnlAmount", "strategyUsed", "tradingSession", "tradingEmotion", "tradeStatus",
	} {
		assert.True(t, verr.HasIssue(field), field)
	}
	assert.False(t, verr.HasIssue("comments"))
}

func TestParseNewTradeEntryCoercesNumericStrings(t *testing.T) {
	t.Parallel()

	raw := validTradeEntry()
	raw["riskPercentage"] = "2.25"
	raw["riskRewardRatio"] = " 3 "
	raw["pnlAmount"] = json.Number("-40.5")

	in, err := ParseNewTradeEntry(raw)
	require.NoError(t, err)
	assert.Equal(t, 2.25, in.RiskPercentage)
	assert.Equal(t, 3.0, in.RiskRewardRatio)
	assert.Equal(t, "-40.5", in.PnlAmount)
}

func TestParseNewTradeEntryRejectsMalformedNumbers(t *testing.T) {
	t.Parallel()

	raw := validTradeEntry()
	raw["riskPercentage"] = "lots"
	raw["pnlAmount"] = "12,00"
	raw["date"] = "yesterday"

	_, err := ParseNewTradeEntry(raw)
	verr := asValidation(t, err)
	assert.True(t, verr.HasIssue("riskPercentage"))
	assert.True(t, verr.HasIssue("pnlAmount"))
	assert.True(t, verr.HasIssue("date"))
}

func TestParseNewTradeEntryIntegerRange(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		value   any
		want    int64
		wantErr bool
	}{
		{name: "plain", value: json.Number("42"), want: 42},
		{name: "exponent", value: json.Number("4e2"), want: 400},
		{name: "float64 whole", value: float64(7), want: 7},
		{name: "fraction", value: json.Number("1.5"), wantErr: true},
		{name: "above int64", value: json.Number("1e19"), wantErr: true},
		{name: "below int64", value: json.Number("-1e19"), wantErr: true},
		{name: "two to the 63", value: float64(1 << 63), wantErr: true},
		{name: "infinite", value: math.Inf(1), wantErr: true},
		{name: "not a number", value: math.NaN(), wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			raw := validTradeEntry()
			raw["traderProfileId"] = tt.value

			in, err := ParseNewTradeEntry(raw)
			if tt.wantErr {
				verr := asValidation(t, err)
				require.Len(t, verr.Issues, 1)
				assert.Equal(t, []string{"traderProfileId"}, verr.Issues[0].Path)
				assert.Equal(t, CodeInvalidType, verr.Issues[0].Code)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, in.TraderProfileID)
		})
	}
}

func TestParseNewTradeEntryIgnoresServerFields(t *testing.T) {
	t.Parallel()

	raw := validTradeEntry()
	raw["id"] = json.Number("99")
	raw["createdAt"] = "2020-01-01"

	_, err := ParseNewTradeEntry(raw)
	require.NoError(t, err)
}

func TestParseTradeEntryForm(t *testing.T) {
	t.Parallel()

	t.Run("enums may be omitted", func(t *testing.T) {
		t.Parallel()

		raw := validTradeEntry()
		delete(raw, "tradingSession")
		delete(raw, "tradingEmotion")
		delete(raw, "tradeStatus")

		in, err := ParseTradeEntryForm(raw)
		require.NoError(t, err)
		assert.Empty(t, in.TradingSession)
		assert.Empty(t, in.TradingEmotion)
		assert.Empty(t, in.TradeStatus)
	})

	t.Run("present enums are still checked", func(t *testing.T) {
		t.Parallel()

		raw := validTradeEntry()
		raw["tradingEmotion"] = "Bored"

		_, err := ParseTradeEntryForm(raw)
		verr := asValidation(t, err)
		assert.True(t, verr.HasIssue("tradingEmotion"))
	})
}

func TestParseTradeEntryPatch(t *testing.T) {
	t.Parallel()

	t.Run("only present fields are set", func(t *testing.T) {
		t.Parallel()

		patch, err := ParseTradeEntryPatch(decode(t, `{"comments":"late entry","tradeStatus":"Loss","id":7}`))
		require.NoError(t, err)
		require.NotNil(t, patch.Comments)
		assert.Equal(t, "late entry", *patch.Comments)
		require.NotNil(t, patch.TradeStatus)
		assert.Equal(t, domain.StatusLoss, *patch.TradeStatus)
		assert.Nil(t, patch.AssetTraded)
		assert.Nil(t, patch.Date)
	})

	t.Run("unknown keys are rejected", func(t *testing.T) {
		t.Parallel()

		_, err := ParseTradeEntryPatch(decode(t, `{"comments":"x","leverage":10,"broker":"y"}`))
		verr := asValidation(t, err)
		require.Len(t, verr.Issues, 1)
		assert.Equal(t, CodeUnrecognizedKeys, verr.Issues[0].Code)
		assert.Equal(t, []string{"broker", "leverage"}, verr.Issues[0].Keys)
	})

	t.Run("null on a required field is rejected", func(t *testing.T) {
		t.Parallel()

		_, err := ParseTradeEntryPatch(decode(t, `{"assetTraded":null}`))
		verr := asValidation(t, err)
		assert.True(t, verr.HasIssue("assetTraded"))
	})
}

func TestParseNewTraderProfile(t *testing.T) {
	t.Parallel()

	in, err := ParseNewTraderProfile(decode(t, `{"userId":1,"initialCapital":"1000"}`))
	require.NoError(t, err)
	assert.Equal(t, int64(1), in.UserID)
	assert.Equal(t, domain.DefaultJournalName, in.JournalName)
	assert.Equal(t, "1000", in.InitialCapital)
	assert.Equal(t, "", in.Strategy1)

	_, err = ParseNewTraderProfile(decode(t, `{"userId":"one"}`))
	verr := asValidation(t, err)
	assert.True(t, verr.HasIssue("userId"))
	assert.True(t, verr.HasIssue("initialCapital"))
}

func TestParseTraderProfilePatchClearsProSince(t *testing.T) {
	t.Parallel()

	patch, err := ParseTraderProfilePatch(decode(t, `{"isPro":false,"proSince":null,"updatedAt":"2024-01-01"}`))
	require.NoError(t, err)
	require.NotNil(t, patch.IsPro)
	assert.False(t, *patch.IsPro)
	require.NotNil(t, patch.ProSince)
	assert.Nil(t, patch.ProSince.V)

	p := domain.TraderProfile{IsPro: true, ProSince: domain.Ptr(time.Now())}
	patch.Apply(&p)
	assert.False(t, p.IsPro)
	assert.Nil(t, p.ProSince)
}

func TestParseNewUser(t *testing.T) {
	t.Parallel()

	in, err := ParseNewUser(decode(t, `{"username":"ana","email":"","firebaseId":"fb-1"}`))
	require.NoError(t, err)
	assert.Equal(t, "ana", in.Username)
	assert.Equal(t, domain.PasswordExternalAuth, in.Password)
	assert.Nil(t, in.Email)
	require.NotNil(t, in.FirebaseID)
	assert.Equal(t, "fb-1", *in.FirebaseID)
	assert.False(t, in.IsFirebaseUser)

	_, err = ParseNewUser(decode(t, `{"password":"x"}`))
	verr := asValidation(t, err)
	assert.True(t, verr.HasIssue("username"))
}

func TestParsePaymentRequest(t *testing.T) {
	t.Parallel()

	req, err := ParsePaymentRequest(decode(t, `{"amount":9.99,"description":"Pro upgrade","email":"a@b.c"}`))
	require.NoError(t, err)
	assert.Equal(t, "9.99", req.Amount.String())
	assert.Equal(t, "Pro upgrade", req.Description)
	assert.Equal(t, "a@b.c", req.Email)

	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"missing amount", `{"description":"x"}`, "amount"},
		{"zero amount", `{"amount":0,"description":"x"}`, "amount"},
		{"blank description", `{"amount":"5","description":"  "}`, "description"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := ParsePaymentRequest(decode(t, tt.body))
			verr := asValidation(t, err)
			assert.True(t, verr.HasIssue(tt.field))
		})
	}
}

func TestParseSignIn(t *testing.T) {
	t.Parallel()

	in, err := ParseSignIn(decode(t, `{"firebaseId":"fb-1","email":"a@b.c","displayName":null}`))
	require.NoError(t, err)
	assert.Equal(t, SignIn{FirebaseID: "fb-1", Email: "a@b.c"}, in)

	in, err = ParseSignIn(map[string]any{})
	require.NoError(t, err)
	assert.Equal(t, SignIn{}, in)

	_, err = ParseSignIn(decode(t, `{"firebaseId":42}`))
	verr := asValidation(t, err)
	require.Len(t, verr.Issues, 1)
	assert.Equal(t, CodeInvalidType, verr.Issues[0].Code)
	assert.True(t, verr.HasIssue("firebaseId"))
}

func TestDecodeObject(t *testing.T) {
	t.Parallel()

	raw, err := DecodeObject(strings.NewReader(`{"id":9007199254740993}`))
	require.NoError(t, err)
	assert.Equal(t, json.Number("9007199254740993"), raw["id"])

	raw, err = DecodeObject(strings.NewReader("  "))
	require.NoError(t, err)
	assert.Empty(t, raw)

	_, err = DecodeObject(strings.NewReader(`[1,2]`))
	verr := asValidation(t, err)
	assert.Equal(t, "array", verr.Issues[0].Received)

	_, err = DecodeObject(strings.NewReader(`{"a":`))
	assert.ErrorIs(t, err, ErrMalformedJSON)
}
