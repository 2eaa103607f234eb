package utils

import (
	"bytes"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeNationalID(t *testing.T) {
	assert.Equal(t, "12345678909", NormalizeNationalID("123.456.789-09"))
	assert.Equal(t, "12345678909", NormalizeNationalID(" 123 456 789 09 "))
	assert.Equal(t, "", NormalizeNationalID("abc"))
}

func TestGenerateBarcode_Unique(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		code := GenerateBarcode()
		require.True(t, strings.HasPrefix(code, "TKT-"))
		_, dup := seen[code]
		require.False(t, dup, "duplicate barcode %s", code)
		seen[code] = struct{}{}
	}
}

func TestGenerateQRCode(t *testing.T) {
	data, err := GenerateQRCode(GenerateBarcode(), 256)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 256, img.Bounds().Dx())
}

func TestValidateStruct(t *testing.T) {
	type req struct {
		NationalID string   `validate:"required,nationalid"`
		SeatCodes  []string `validate:"required,min=1,unique,dive,seatcode"`
	}

	assert.Empty(t, ValidateStruct(req{NationalID: "123.456.789-09", SeatCodes: []string{"F3-5", "B1-2"}}))

	errs := ValidateStruct(req{NationalID: "---", SeatCodes: []string{"F3-5", "F3-5"}})
	assert.Contains(t, errs, "NationalID")
	assert.Contains(t, errs, "SeatCodes")

	errs = ValidateStruct(req{NationalID: "1", SeatCodes: []string{"nope"}})
	assert.Contains(t, FormatValidationErrors(errs), "seat code")
}
