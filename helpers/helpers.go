package helpers

import (
	"math/big"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/gamut"
)

// ShortenAddr keeps the 0x prefix, four leading and four trailing hex
// digits of an address or hash.
func ShortenAddr(addr string) string {
	if len(addr) < 10 {
		return addr
	}
	return addr[:6] + "…" + addr[len(addr)-4:]
}

// FormatToken renders a raw amount in whole tokens with four decimals.
// Display only; amounts sent to the contract never go through here.
func FormatToken(raw *big.Int, decimals uint8, symbol string) string {
	if raw == nil {
		return "0 " + symbol
	}
	unit := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
	whole := new(big.Float).Quo(new(big.Float).SetInt(raw), new(big.Float).SetInt(unit))
	return whole.Text('f', 4) + " " + symbol
}

// CompletedAt formats the completion time of a status result.
func CompletedAt(t time.Time) string {
	if t.IsZero() {
		return "never"
	}
	return t.Format("15:04:05")
}

// FadeString colors each rune of s along a gradient from first to last.
func FadeString(s, first, last string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return ""
	}
	blends := gamut.Blends(lipgloss.Color(first), lipgloss.Color(last), len(runes))

	var b strings.Builder
	style := lipgloss.NewStyle()
	for i, r := range runes {
		c, _ := colorful.MakeColor(blends[i])
		b.WriteString(style.Foreground(lipgloss.Color(c.Hex())).Render(string(r)))
	}
	return b.String()
}
