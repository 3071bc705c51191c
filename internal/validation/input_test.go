package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeSymbol(t *testing.T) {
	assert.Equal(t, "btc", NormalizeSymbol(" BTC "))
	assert.Equal(t, "eth", NormalizeSymbol("\teth\n"))
	assert.Equal(t, "", NormalizeSymbol("   "))
}

func TestValidateSymbol(t *testing.T) {
	assert.NoError(t, ValidateSymbol("btc"))
	assert.NoError(t, ValidateSymbol("usdc.e"))
	// необычные символы допустимы, их отсекает справочник
	assert.NoError(t, ValidateSymbol("doge!"))
	assert.NoError(t, ValidateSymbol(strings.Repeat("a", 64)))

	assert.ErrorIs(t, ValidateSymbol(""), ErrEmptySymbol)
}

func TestValidateCoinID(t *testing.T) {
	assert.NoError(t, ValidateCoinID("bitcoin"))
	assert.NoError(t, ValidateCoinID("Ethereum"))
	assert.NoError(t, ValidateCoinID("not a coin"))

	assert.ErrorIs(t, ValidateCoinID(""), ErrEmptyCoinID)
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"bitcoin", "ethereum"}, SplitList("bitcoin, ethereum"))
	assert.Equal(t, []string{"usd"}, SplitList(" usd ,,"))
	assert.Empty(t, SplitList(""))
	assert.Empty(t, SplitList(" , "))
}
