package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateParameter(t *testing.T) {
	const oracle = "0x5f4eC3Df9cbd43714FE2740f5E3616155c5b8419"

	tests := []struct {
		name       string
		param      Parameter
		wantReason string
	}{
		{name: "checksummed address", param: Parameter{Name: "oracle", Value: oracle}},
		{name: "lowercase address", param: Parameter{Name: "oracle", Value: strings.ToLower(oracle)}},
		{name: "uppercase address", param: Parameter{Name: "oracle", Value: "0x" + strings.ToUpper(oracle[2:])}},
		{name: "empty", param: Parameter{Name: "oracle", Value: ""}, wantReason: "empty"},
		{name: "whitespace", param: Parameter{Name: "oracle", Value: "  "}, wantReason: "empty"},
		{name: "no name", param: Parameter{Value: oracle}, wantReason: "parameter has no name"},
		{name: "short address", param: Parameter{Name: "oracle", Value: "0x1234"}, wantReason: "malformed address"},
		{name: "missing prefix", param: Parameter{Name: "oracle", Value: oracle[2:]}, wantReason: "malformed address"},
		{name: "zero address", param: Parameter{Name: "oracle", Value: "0x0000000000000000000000000000000000000000"}, wantReason: "zero address"},
		{name: "bad checksum", param: Parameter{Name: "oracle", Value: "0x5F4eC3Df9cbd43714FE2740f5E3616155c5b8419"}, wantReason: "bad checksum"},
		{name: "bool", param: Parameter{Name: "paused", Type: "bool", Value: "true"}},
		{name: "bad bool", param: Parameter{Name: "paused", Type: "bool", Value: "maybe"}, wantReason: "not a bool"},
		{name: "string", param: Parameter{Name: "label", Type: "string", Value: "deri"}},
		{name: "uint256", param: Parameter{Name: "fee", Type: "uint256", Value: "1000"}},
		{name: "uint hex", param: Parameter{Name: "fee", Type: "uint", Value: "0xff"}},
		{name: "uint8 overflow", param: Parameter{Name: "fee", Type: "uint8", Value: "256"}, wantReason: "overflows uint8"},
		{name: "negative uint", param: Parameter{Name: "fee", Type: "uint256", Value: "-1"}, wantReason: "not an unsigned integer"},
		{name: "odd uint width", param: Parameter{Name: "fee", Type: "uint7", Value: "1"}, wantReason: "unsupported type uint7"},
		{name: "bytes32", param: Parameter{Name: "salt", Type: "bytes32", Value: "0x" + strings.Repeat("ab", 32)}},
		{name: "short bytes32", param: Parameter{Name: "salt", Type: "bytes32", Value: "0xab"}, wantReason: "malformed bytes32"},
		{name: "unsupported", param: Parameter{Name: "x", Type: "int256", Value: "1"}, wantReason: "unsupported type int256"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateParameter("mainnet", tt.param)
			if tt.wantReason == "" {
				assert.NoError(t, err)
				return
			}

			var invalid *InvalidParameterError
			require.True(t, errors.As(err, &invalid), "expected InvalidParameterError, got %v", err)
			assert.Equal(t, "mainnet", invalid.Network)
			assert.Equal(t, tt.wantReason, invalid.Reason)
			assert.ErrorIs(t, err, ErrInvalidParameter)
		})
	}
}

func TestParameterDefaultsToAddress(t *testing.T) {
	assert.Equal(t, "address", Parameter{Name: "x"}.ParamType())
	assert.Equal(t, "uint256", Parameter{Name: "x", Type: "uint256"}.ParamType())
}

func TestParameterExpandsUintShorthand(t *testing.T) {
	p := Parameter{Name: "fee", Type: "uint", Value: "1000"}
	assert.Equal(t, "uint256", p.ParamType())

	_, err := abi.NewType(p.ParamType(), "", nil)
	require.NoError(t, err)
	require.NoError(t, ValidateParameter("mainnet", p))
}
