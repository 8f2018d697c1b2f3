// internal/application/mint/presenter/console.go
package presenter

import (
	"fmt"
	"io"
	"math/big"
	"os"

	"github.com/shopspring/decimal"
)

const lamportsPerSOLExp = -9

// Console prints launch progress for the operator. It is not a
// machine-readable format.
type Console struct {
	W io.Writer
}

func NewConsole(w io.Writer) *Console {
	if w == nil {
		w = os.Stdout
	}
	return &Console{W: w}
}

func (c *Console) Signer(address string) { c.printf("Signer: %s\n", address) }

func (c *Console) Balance(lamports uint64) {
	c.printf("Balance: %d lamports (%s SOL)\n", lamports, FormatSOL(lamports))
}

func (c *Console) Mint(address string)    { c.printf("Mint: %s\n", address) }
func (c *Console) MetadataURI(uri string) { c.printf("Metadata: %s\n", uri) }
func (c *Console) Warn(msg string)        { c.printf("Warning: %s\n", msg) }
func (c *Console) Explorer(link string)   { c.printf("explorer: %s\n", link) }

func (c *Console) Unconfirmed(signature, link string) {
	c.printf("unconfirmed: %s\n", signature)
	c.printf("check status: %s\n", link)
}

func (c *Console) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(c.W, format, args...)
}

// FormatSOL renders lamports as SOL without rounding.
func FormatSOL(lamports uint64) string {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(lamports), lamportsPerSOLExp).String()
}

func (c *Console) Verified(supply uint64, decimals uint8) {
	c.printf("Verified: supply %d base units, %d decimals, mint and freeze authority revoked\n", supply, decimals)
}
