package helpers

import (
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/mdp/qrterminal/v3"
)

// ContractURI returns the EIP-681 URI of a contract, pinned to a chain when
// the chain id is known.
func ContractURI(addr common.Address, chainID *big.Int) string {
	uri := "ethereum:" + addr.Hex()
	if chainID != nil && chainID.Sign() > 0 {
		uri += "@" + chainID.String()
	}
	return uri
}

// QRCode renders data as a half-block terminal QR code.
func QRCode(data string) string {
	var sb strings.Builder
	qrterminal.GenerateHalfBlock(data, qrterminal.L, &sb)
	return sb.String()
}
