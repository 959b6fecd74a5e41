package dex

// Operation names, as they appear in the contract ABI.
const (
	OpInitializePool  = "initializePool"
	OpAddLiquidity    = "addLiquidity"
	OpRemoveLiquidity = "removeLiquidity"
	OpSwapAForB       = "swapAForB"
	OpSwapBForA       = "swapBForA"
	OpGetReserves     = "getReserves"
	OpGetPrice        = "getPrice"
)

// Operation describes one contract call and how the client presents it.
type Operation struct {
	Name     string   // ABI method name
	Label    string   // button label
	Command  string   // CLI subcommand
	Args     []string // argument names, in ABI order
	Defaults []string // example amounts prefilled in the form
	Mutating bool

	// Success is the status message for a confirmed transaction. For read
	// operations it is a format string taking the two raw values.
	Success string
	Failure string
}

// Arity returns the number of amounts the operation takes.
func (o Operation) Arity() int { return len(o.Args) }

// Operations is the declarative table driving the invoker, in the order the
// UI lists them.
var Operations = []Operation{
	{
		Name:     OpInitializePool,
		Label:    "Inicializar Pool",
		Command:  "init-pool",
		Args:     []string{"amountA", "amountB"},
		Defaults: []string{"1000", "4000"},
		Mutating: true,
		Success:  "Pool inicializado con éxito",
		Failure:  "Error al inicializar el pool",
	},
	{
		Name:     OpAddLiquidity,
		Label:    "Agregar Liquidez",
		Command:  "add-liquidity",
		Args:     []string{"amountA", "amountB"},
		Defaults: []string{"500", "2000"},
		Mutating: true,
		Success:  "Liquidez agregada con éxito",
		Failure:  "Error al agregar liquidez",
	},
	{
		Name:     OpRemoveLiquidity,
		Label:    "Retirar Liquidez",
		Command:  "remove-liquidity",
		Args:     []string{"amountA", "amountB"},
		Defaults: []string{"500", "2000"},
		Mutating: true,
		Success:  "Liquidez retirada con éxito",
		Failure:  "Error al retirar liquidez",
	},
	{
		Name:     OpSwapAForB,
		Label:    "Swap Token A por B",
		Command:  "swap-a-for-b",
		Args:     []string{"amountA"},
		Defaults: []string{"100"},
		Mutating: true,
		Success:  "Swap realizado de TokenA por TokenB",
		Failure:  "Error al hacer el swap",
	},
	{
		Name:     OpSwapBForA,
		Label:    "Swap Token B por A",
		Command:  "swap-b-for-a",
		Args:     []string{"amountB"},
		Defaults: []string{"100"},
		Mutating: true,
		Success:  "Swap realizado de TokenB por TokenA",
		Failure:  "Error al hacer el swap",
	},
	{
		Name:    OpGetReserves,
		Label:   "Obtener Reservas",
		Command: "reserves",
		Success: "Reservas del pool: %s TokenA, %s TokenB",
		Failure: "Error al obtener reservas",
	},
	{
		Name:    OpGetPrice,
		Label:   "Obtener Precio",
		Command: "price",
		Success: "Precio de los tokens: %s TokenA, %s TokenB",
		Failure: "Error al obtener precio",
	},
}

// Lookup finds an operation by ABI name.
func Lookup(name string) (Operation, bool) {
	for _, op := range Operations {
		if op.Name == name {
			return op, true
		}
	}
	return Operation{}, false
}
