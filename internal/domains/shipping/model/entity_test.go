package model

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShippingSettingsWireFormat(t *testing.T) {
	body, err := json.Marshal(NewDefaultSettings())
	require.NoError(t, err)

	// The admin UI and storefront both key off these names.
	assert.Contains(t, string(body), `"free_shipping_min_amount":"1500"`)
	assert.Contains(t, string(body), `"standard_shipping_cost":"100"`)
	assert.Contains(t, string(body), `"is_active":true`)
}

func TestUpdateSettingsRequestWireFormat(t *testing.T) {
	var req UpdateSettingsRequest
	err := json.Unmarshal([]byte(`{"free_shipping_min_amount":"2000","standard_shipping_cost":"80"}`), &req)
	require.NoError(t, err)

	assert.True(t, req.FreeThreshold.Equal(decimal.NewFromInt(2000)))
	assert.True(t, req.ShippingFee.Equal(decimal.NewFromInt(80)))
	assert.NoError(t, req.Validate())
}
