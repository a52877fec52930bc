package domain

import (
	"math/big"
	"regexp"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

var (
	addressPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)
	bytes32Pattern = regexp.MustCompile(`^0x[0-9a-fA-F]{64}$`)
)

// IsAddress reports whether s is a 0x-prefixed 40 hex character address.
func IsAddress(s string) bool {
	return addressPattern.MatchString(s)
}

// ValidateParameter checks a single profile parameter against its ABI type.
func ValidateParameter(network string, p Parameter) error {
	invalid := func(reason string) error {
		return &InvalidParameterError{Network: network, Field: p.Name, Value: p.Value, Reason: reason}
	}

	if p.Name == "" {
		return &InvalidParameterError{Network: network, Field: "(unnamed)", Value: p.Value, Reason: "parameter has no name"}
	}
	if strings.TrimSpace(p.Value) == "" {
		return invalid("empty")
	}

	typ := p.ParamType()
	switch {
	case typ == "address":
		return validateAddress(p.Value, invalid)
	case typ == "bool":
		if _, err := strconv.ParseBool(p.Value); err != nil {
			return invalid("not a bool")
		}
	case typ == "string":
		return nil
	case typ == "bytes32":
		if !bytes32Pattern.MatchString(p.Value) {
			return invalid("malformed bytes32")
		}
	case strings.HasPrefix(typ, "uint"):
		n, ok := new(big.Int).SetString(p.Value, 0)
		if !ok || n.Sign() < 0 {
			return invalid("not an unsigned integer")
		}
		bits, err := strconv.Atoi(strings.TrimPrefix(typ, "uint"))
		if err != nil || bits <= 0 || bits > 256 || bits%8 != 0 {
			return invalid("unsupported type " + typ)
		}
		if n.BitLen() > bits {
			return invalid("overflows " + typ)
		}
	default:
		return invalid("unsupported type " + typ)
	}
	return nil
}

func validateAddress(value string, invalid func(string) error) error {
	if !IsAddress(value) {
		return invalid("malformed address")
	}
	addr := common.HexToAddress(value)
	if addr == (common.Address{}) {
		return invalid("zero address")
	}
	hex := value[2:]
	if hex != strings.ToLower(hex) && hex != strings.ToUpper(hex) && addr.Hex() != value {
		return invalid("bad checksum")
	}
	return nil
}
