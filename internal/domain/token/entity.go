package token

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

// AssetDescriptor is the fungible token to launch: precision, Metaplex
// metadata fields, and the whole-token supply minted to the operator.
type AssetDescriptor struct {
	Name                 string
	Symbol               string
	URI                  string // off-chain metadata.json
	Decimals             uint8
	Supply               uint64 // whole tokens, not base units
	SellerFeeBasisPoints uint16
	Creators             []Creator // nil writes no creators
	IsMutable            bool
}

// Creator is a Metaplex creator entry. Shares across creators sum to 100.
type Creator struct {
	Address  string // base58
	Verified bool
	Share    uint8
}

// Errors
var (
	ErrInvalidName        = errors.New("token: invalid name")
	ErrInvalidSymbol      = errors.New("token: invalid symbol")
	ErrInvalidURI         = errors.New("token: invalid uri")
	ErrInvalidSupply      = errors.New("token: invalid supply")
	ErrInvalidSellerFee   = errors.New("token: invalid sellerFeeBasisPoints")
	ErrInvalidCreators    = errors.New("token: invalid creators")
	ErrSupplyOverflow     = errors.New("token: supply overflows u64 base units")
	ErrUnsupportedProgram = errors.New("token: unsupported token program")
)

// Policy (Metaplex Token Metadata limits)
const (
	MaxNameLength        = 32
	MaxSymbolLength      = 10
	MaxURILength         = 200
	MaxSellerFeeBasisPts = 10000
	MaxCreators          = 5
)

// Validation

func (a AssetDescriptor) Validate() error {
	name := strings.TrimSpace(a.Name)
	if name == "" || len(name) > MaxNameLength {
		return fmt.Errorf("%w: %q", ErrInvalidName, a.Name)
	}
	symbol := strings.TrimSpace(a.Symbol)
	if symbol == "" || len(symbol) > MaxSymbolLength {
		return fmt.Errorf("%w: %q", ErrInvalidSymbol, a.Symbol)
	}
	if len(strings.TrimSpace(a.URI)) > MaxURILength {
		return fmt.Errorf("%w: length %d > %d", ErrInvalidURI, len(a.URI), MaxURILength)
	}
	if a.Supply == 0 {
		return ErrInvalidSupply
	}
	if a.SellerFeeBasisPoints > MaxSellerFeeBasisPts {
		return fmt.Errorf("%w: %d", ErrInvalidSellerFee, a.SellerFeeBasisPoints)
	}
	if err := validateCreators(a.Creators); err != nil {
		return err
	}
	if _, err := a.BaseUnits(); err != nil {
		return err
	}
	return nil
}

func validateCreators(cs []Creator) error {
	if cs == nil {
		return nil
	}
	if len(cs) == 0 || len(cs) > MaxCreators {
		return fmt.Errorf("%w: count=%d", ErrInvalidCreators, len(cs))
	}
	total := 0
	for i, c := range cs {
		if strings.TrimSpace(c.Address) == "" {
			return fmt.Errorf("%w: creators[%d].address is empty", ErrInvalidCreators, i)
		}
		total += int(c.Share)
	}
	if total != 100 {
		return fmt.Errorf("%w: shares sum to %d, want 100", ErrInvalidCreators, total)
	}
	return nil
}

// Amounts

// BaseUnitsOf returns whole × 10^decimals exactly. Every decimals value
// (0..255) is representable here; callers decide whether it fits on chain.
func BaseUnitsOf(whole uint64, decimals uint8) *big.Int {
	d := decimal.NewFromBigInt(new(big.Int).SetUint64(whole), int32(decimals))
	return d.BigInt()
}

// BaseUnits is the supply in smallest units as the MintTo amount.
func (a AssetDescriptor) BaseUnits() (uint64, error) {
	n := BaseUnitsOf(a.Supply, a.Decimals)
	if !n.IsUint64() {
		return 0, fmt.Errorf("%w: supply=%d decimals=%d", ErrSupplyOverflow, a.Supply, a.Decimals)
	}
	return n.Uint64(), nil
}
