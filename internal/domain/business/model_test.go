package business

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidBusinessType(t *testing.T) {
	assert.True(t, IsValidBusinessType("Product"))
	assert.True(t, IsValidBusinessType("Service"))
	assert.False(t, IsValidBusinessType("product"))
	assert.False(t, IsValidBusinessType(""))
	assert.False(t, IsValidBusinessType("Hybrid"))
}

func TestCreateBusinessInputTrim(t *testing.T) {
	in := CreateBusinessInput{
		Email:        " owner@shop.in ",
		BusinessName: "  Sharma Sweets ",
		BusinessType: " Product ",
		City:         " Vadodara ",
	}
	in.Trim()
	assert.Equal(t, "owner@shop.in", in.Email)
	assert.Equal(t, "Sharma Sweets", in.BusinessName)
	assert.Equal(t, "Product", in.BusinessType)
	assert.Equal(t, "Vadodara", in.City)
}
