package dex

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scaled(n int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(n), new(big.Int).Exp(big.NewInt(10), big.NewInt(Decimals), nil))
}

func TestParseAmountScalesByEighteenDecimals(t *testing.T) {
	v, err := ParseAmount("1000", Decimals)
	require.NoError(t, err)
	assert.Equal(t, 0, v.Cmp(scaled(1000)), "got %s", v)
}

func TestParseAmountFractions(t *testing.T) {
	cases := map[string]string{
		"0.5":                  "500000000000000000",
		"1.":                   "1000000000000000000",
		".25":                  "250000000000000000",
		"0":                    "0",
		"000.000":              "0",
		"0.000000000000000001": "1",
		" 42 ":                 "42000000000000000000",
	}
	for in, want := range cases {
		v, err := ParseAmount(in, Decimals)
		require.NoError(t, err, in)
		assert.Equal(t, want, v.String(), in)
	}
}

func TestParseAmountRejectsInvalidInput(t *testing.T) {
	for _, in := range []string{
		"", "abc", "1e18", "-5", "+5", "1,5", "0x10", ".", "1.2.3",
		"0.0000000000000000001",
		"1" + strings.Repeat("0", 80),
	} {
		_, err := ParseAmount(in, Decimals)
		require.Error(t, err, "%q", in)
		assert.True(t, errors.Is(err, ErrInvalidAmount), "%q: %v", in, err)
	}
}

func TestParseAmountsChecksArity(t *testing.T) {
	op, ok := Lookup(OpAddLiquidity)
	require.True(t, ok)

	_, err := ParseAmounts(op, []string{"1"})
	assert.ErrorIs(t, err, ErrInvalidAmount)

	vals, err := ParseAmounts(op, []string{"500", "2000"})
	require.NoError(t, err)
	require.Len(t, vals, 2)
	assert.Equal(t, 0, vals[0].Cmp(scaled(500)))
	assert.Equal(t, 0, vals[1].Cmp(scaled(2000)))

	_, err = ParseAmounts(op, []string{"500", "dos mil"})
	require.ErrorIs(t, err, ErrInvalidAmount)
	assert.Contains(t, err.Error(), "amountB")
}

func TestDescriptorMatchesContractSignatures(t *testing.T) {
	d, err := NewDescriptor("")
	require.NoError(t, err)
	assert.Equal(t, DefaultAddress, d.Address.Hex())

	sigs := map[string]string{
		OpInitializePool:  "initializePool(uint256,uint256)",
		OpAddLiquidity:    "addLiquidity(uint256,uint256)",
		OpRemoveLiquidity: "removeLiquidity(uint256,uint256)",
		OpSwapAForB:       "swapAForB(uint256)",
		OpSwapBForA:       "swapBForA(uint256)",
		OpGetReserves:     "getReserves()",
		OpGetPrice:        "getPrice()",
	}
	require.Len(t, d.ABI.Methods, len(sigs))

	for _, op := range Operations {
		m, ok := d.ABI.Methods[op.Name]
		require.True(t, ok, op.Name)
		assert.Equal(t, sigs[op.Name], m.Sig)
		assert.Len(t, m.Inputs, op.Arity(), op.Name)
		assert.Len(t, op.Defaults, op.Arity(), op.Name)
		if op.Mutating {
			assert.False(t, m.IsConstant(), op.Name)
			assert.Empty(t, m.Outputs, op.Name)
		} else {
			assert.True(t, m.IsConstant(), op.Name)
			assert.Len(t, m.Outputs, 2, op.Name)
		}
	}
}

func TestNewDescriptorRejectsBadAddress(t *testing.T) {
	_, err := NewDescriptor("0x1234")
	assert.Error(t, err)
}

func TestLookup(t *testing.T) {
	op, ok := Lookup(OpSwapAForB)
	require.True(t, ok)
	assert.Equal(t, "Swap realizado de TokenA por TokenB", op.Success)
	assert.Equal(t, "swap-a-for-b", op.Command)

	_, ok = Lookup("transferOwnership")
	assert.False(t, ok)
}

type dataError struct{ data interface{} }

func (e dataError) Error() string          { return "rpc error" }
func (e dataError) ErrorData() interface{} { return e.data }

func TestClassify(t *testing.T) {
	assert.Nil(t, Classify(nil))

	err := Classify(errors.New("execution reverted: Ownable: caller is not the owner"))
	assert.ErrorIs(t, err, ErrLedgerRejection)

	err = Classify(dataError{data: "0x08c379a0"})
	assert.ErrorIs(t, err, ErrLedgerRejection)

	cause := errors.New("dial tcp 127.0.0.1:8545: connect: connection refused")
	err = Classify(cause)
	assert.ErrorIs(t, err, ErrSubmissionFailure)
	assert.ErrorIs(t, err, cause)

	already := fmt.Errorf("%w: receipt failed", ErrLedgerRejection)
	assert.Equal(t, already, Classify(already))
}
