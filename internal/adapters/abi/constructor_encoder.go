package abi

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/deri-protocol/deri-deploy/internal/domain"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// ConstructorEncoder ABI encodes resolved constructor arguments.
type ConstructorEncoder struct{}

// NewConstructorEncoder creates a new encoder
func NewConstructorEncoder() *ConstructorEncoder {
	return &ConstructorEncoder{}
}

// Encode packs args in order. Values are expected to be validated already;
// a value that still fails to convert is reported against its argument name.
func (e *ConstructorEncoder) Encode(args []domain.Argument) ([]byte, error) {
	arguments := make(abi.Arguments, 0, len(args))
	values := make([]interface{}, 0, len(args))

	for _, arg := range args {
		typ, err := abi.NewType(arg.Type, "", nil)
		if err != nil {
			return nil, fmt.Errorf("argument %s: unsupported type %s: %w", arg.Name, arg.Type, err)
		}
		value, err := convertValue(typ, arg.Value)
		if err != nil {
			return nil, fmt.Errorf("argument %s: %w", arg.Name, err)
		}
		arguments = append(arguments, abi.Argument{Name: arg.Name, Type: typ})
		values = append(values, value)
	}

	packed, err := arguments.Pack(values...)
	if err != nil {
		return nil, fmt.Errorf("failed to pack constructor arguments: %w", err)
	}
	return packed, nil
}

// convertValue turns the string form of a value into the Go type abi.Pack expects.
func convertValue(typ abi.Type, raw string) (interface{}, error) {
	switch typ.T {
	case abi.AddressTy:
		if !common.IsHexAddress(raw) {
			return nil, fmt.Errorf("invalid address %q", raw)
		}
		return common.HexToAddress(raw), nil
	case abi.BoolTy:
		return strconv.ParseBool(raw)
	case abi.StringTy:
		return raw, nil
	case abi.UintTy:
		n, ok := new(big.Int).SetString(strings.TrimSpace(raw), 0)
		if !ok || n.Sign() < 0 {
			return nil, fmt.Errorf("invalid unsigned integer %q", raw)
		}
		return sizedUint(n, typ.Size)
	case abi.FixedBytesTy:
		if typ.Size != 32 {
			return nil, fmt.Errorf("unsupported type %s", typ.String())
		}
		b, err := hexutil.Decode(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid bytes%d %q: %w", typ.Size, raw, err)
		}
		if len(b) != typ.Size {
			return nil, fmt.Errorf("expected %d bytes, got %d", typ.Size, len(b))
		}
		var out [32]byte
		copy(out[:], b)
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported type %s", typ.String())
	}
}

// sizedUint returns the native Go integer for 8/16/32/64 bit types, *big.Int otherwise.
func sizedUint(n *big.Int, size int) (interface{}, error) {
	if n.BitLen() > size {
		return nil, fmt.Errorf("value %s overflows uint%d", n, size)
	}
	switch size {
	case 8:
		return uint8(n.Uint64()), nil
	case 16:
		return uint16(n.Uint64()), nil
	case 32:
		return uint32(n.Uint64()), nil
	case 64:
		return n.Uint64(), nil
	default:
		return n, nil
	}
}
