package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoney_Arithmetic(t *testing.T) {
	a := NewMoneyPKR(decimal.NewFromInt(2597))
	b := NewMoneyPKR(decimal.NewFromInt(500))

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.Equal(t, "3097.00 PKR", sum.String())

	diff, err := a.Subtract(b)
	require.NoError(t, err)
	assert.Equal(t, "2097.00 PKR", diff.String())

	settled, err := b.Subtract(b)
	require.NoError(t, err)
	assert.True(t, settled.Equals(ZeroPKR()))
}

func TestMoney_CurrencyMismatch(t *testing.T) {
	pkr := NewMoneyPKR(decimal.NewFromInt(100))
	var aed Money
	require.NoError(t, json.Unmarshal([]byte(`{"amount":"100","currency":"AED"}`), &aed))

	_, err := pkr.Add(aed)
	assert.Error(t, err)

	_, err = pkr.Subtract(aed)
	assert.Error(t, err)

	assert.False(t, pkr.Equals(aed), "same amount, different currency")
}

func TestMoney_CalculatePercentage(t *testing.T) {
	// PostEx factoring at 2.5% of 10000 = 250
	gross := NewMoneyPKR(decimal.NewFromInt(10000))
	fee := gross.CalculatePercentage(decimal.NewFromFloat(2.5))
	assert.Equal(t, "250.00 PKR", fee.String())

	net, err := gross.Subtract(fee)
	require.NoError(t, err)
	assert.Equal(t, "9750.00 PKR", net.String())
}

func TestMoney_JSONRoundTrip(t *testing.T) {
	m := NewMoneyPKR(decimal.NewFromFloat(1234.56))

	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.JSONEq(t, `{"amount":"1234.56","currency":"PKR"}`, string(data))

	var back Money
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, m.Equals(back))

	assert.Error(t, json.Unmarshal([]byte(`{"amount":"abc","currency":"PKR"}`), &back))
}
