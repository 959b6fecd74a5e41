package pool

import (
	"fmt"

	"simple-dex-tui/dex"
	"simple-dex-tui/helpers"
	"simple-dex-tui/wallet"

	"github.com/charmbracelet/huh"
)

// Form field storage (package-level to avoid pointer-to-copy issues)
var (
	TempAmounts    [2]string
	TempPassphrase string
	TempApproved   bool
)

// CreateAmountForm asks for the operation's amounts, prefilled with its
// example values. quote, if set, describes the first amount.
func CreateAmountForm(op dex.Operation, quote func(amount string) string) *huh.Form {
	TempAmounts = [2]string{}
	copy(TempAmounts[:], op.Defaults)

	fields := make([]huh.Field, 0, op.Arity())
	for i, arg := range op.Args {
		in := huh.NewInput().
			Title(arg).
			Description("Cantidad en unidades enteras (18 decimales)").
			Value(&TempAmounts[i]).
			Placeholder("0.0")
		if i == 0 && quote != nil {
			in = in.DescriptionFunc(func() string { return quote(TempAmounts[0]) }, &TempAmounts[0])
		}
		fields = append(fields, in)
	}

	form := huh.NewForm(
		huh.NewGroup(fields...).Title(op.Label),
	).WithTheme(huh.ThemeCatppuccin())

	form.Init()
	return form
}

// Amounts returns what the amount form collected for op.
func Amounts(op dex.Operation) []string {
	out := make([]string, op.Arity())
	copy(out, TempAmounts[:])
	return out
}

// CreateAuthForm asks the user to authorize account access. Keystore
// wallets also ask for the passphrase.
func CreateAuthForm(kind wallet.Kind, account string) *huh.Form {
	TempPassphrase = ""
	TempApproved = false

	confirm := huh.NewConfirm().
		Title(fmt.Sprintf("¿Autorizar acceso a %s?", helpers.ShortenAddr(account))).
		Description(account).
		Affirmative("Autorizar").
		Negative("Rechazar").
		Value(&TempApproved)

	var group *huh.Group
	if kind == wallet.KindKeystore {
		group = huh.NewGroup(
			huh.NewInput().
				Title("Passphrase").
				Description("Desbloquea la cuenta del keystore").
				EchoMode(huh.EchoModePassword).
				Value(&TempPassphrase),
			confirm,
		)
	} else {
		group = huh.NewGroup(confirm)
	}

	form := huh.NewForm(group).WithTheme(huh.ThemeCatppuccin())
	form.Init()
	return form
}

// Authorization returns what the authorization form collected.
func Authorization() wallet.Authorization {
	return wallet.Authorization{Approved: TempApproved, Passphrase: TempPassphrase}
}
