package main

import (
	"math/big"
	"time"

	"simple-dex-tui/config"
	"simple-dex-tui/dex"
	"simple-dex-tui/helpers"
	"simple-dex-tui/invoker"
	"simple-dex-tui/rpc"
	"simple-dex-tui/session"
	"simple-dex-tui/styles"
	"simple-dex-tui/views/pool"
	"simple-dex-tui/views/settings"
	"simple-dex-tui/wallet"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// -------------------- MODEL --------------------

// model represents the application state following The Elm Architecture
type model struct {
	w, h int

	activePage config.Page
	cfg        config.Config
	configPath string

	// pool page
	triggers   []pool.Trigger
	selected   int
	sessions   *session.Manager
	invoker    *invoker.Invoker
	descriptor dex.ContractDescriptor
	pending    int
	spin       spinner.Model

	// last reserves read, used to quote swaps in the amount form
	reserves [2]*big.Int

	// amount / authorization forms on the pool page
	formOp     dex.Operation
	amountForm *huh.Form
	authForm   *huh.Form

	// header RPC status; rpcOverride is --rpc, never saved
	rpcOverride   string
	rpcURL        string
	rpcClient     *rpc.Client
	chainID       *big.Int
	rpcStatus     rpc.Status
	rpcConnected  bool
	rpcConnecting bool

	// clipboard feedback
	copiedMsg     string
	copiedMsgTime time.Time

	// contract QR panel
	showQR bool

	// settings state
	settingsMode               settings.Mode
	selectedRPCIdx             int
	form                       *huh.Form
	showRPCDeleteDialog        bool
	deleteRPCDialogName        string
	deleteRPCDialogIdx         int
	deleteRPCDialogYesSelected bool

	// logger panel
	logEnabled  bool
	logger      *log.Logger
	logBuffer   *helpers.LogBuffer
	logViewport viewport.Model
	logReady    bool
	logSpinner  spinner.Model
}

// -------------------- INIT --------------------

// newModel wires the session manager and invoker from cfg. A bad contract
// address falls back to the default pool so the UI still starts. A non-empty
// rpcOverride replaces the active endpoint until another one is activated.
func newModel(cfg config.Config, configPath, rpcOverride string) model {
	buf := &helpers.LogBuffer{}
	logger := newLogger(buf)

	desc, err := dex.NewDescriptor(cfg.Contract.Address)
	if err != nil {
		logger.Error("invalid contract address, using default", "address", cfg.Contract.Address, "err", err)
		desc = dex.MustDescriptor("")
	}

	rpcURL := rpcOverride
	if rpcURL == "" {
		rpcURL = cfg.ActiveRPC()
	}

	walletCfg := cfg.Wallet
	sessions := session.NewManager(session.Options{
		Descriptor: desc,
		RPCURL:     rpcURL,
		Detect:     func() (wallet.Provider, error) { return wallet.Detect(walletCfg) },
		Logger:     logger,
	})

	sp := spinner.New()
	sp.Spinner = spinner.Line
	sp.Style = lipgloss.NewStyle().Foreground(styles.CAccent2)

	vp := viewport.New(0, 10) // resized on the first WindowSizeMsg
	vp.Style = lipgloss.NewStyle().
		Foreground(styles.CText).
		Background(styles.CPanel)

	logSpin := spinner.New()
	logSpin.Spinner = spinner.Dot
	logSpin.Style = lipgloss.NewStyle().Foreground(styles.CAccent2)

	return model{
		activePage:   config.PagePool,
		cfg:          cfg,
		configPath:   configPath,
		triggers:     pool.Triggers(),
		sessions:     sessions,
		invoker:      invoker.New(sessions, invoker.NewSlot(cfg.DiscardStale), logger),
		descriptor:   desc,
		spin:         sp,
		rpcOverride:  rpcOverride,
		rpcURL:       rpcURL,
		settingsMode: settings.ModeList,
		logEnabled:   cfg.Logger,
		logger:       logger,
		logBuffer:    buf,
		logViewport:  vp,
		logSpinner:   logSpin,
	}
}

// newLogger creates the diagnostic logger behind the log panel.
func newLogger(buf *helpers.LogBuffer) *log.Logger {
	logger := log.NewWithOptions(buf, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Level:           log.DebugLevel,
	})
	logger.SetStyles(&log.Styles{
		Timestamp: lipgloss.NewStyle().Foreground(cMuted),
		Caller:    lipgloss.NewStyle().Faint(true),
		Prefix:    lipgloss.NewStyle().Bold(true).Foreground(cAccent2),
		Message:   lipgloss.NewStyle().Foreground(cText),
		Key:       lipgloss.NewStyle().Foreground(cAccent),
		Value:     lipgloss.NewStyle().Foreground(cText),
		Separator: lipgloss.NewStyle().Faint(true),
		Levels: map[log.Level]lipgloss.Style{
			log.DebugLevel: lipgloss.NewStyle().Foreground(cMuted).SetString("DEBUG"),
			log.InfoLevel:  lipgloss.NewStyle().Foreground(cAccent2).SetString("INFO"),
			log.WarnLevel:  lipgloss.NewStyle().Foreground(cWarn).SetString("WARN"),
			log.ErrorLevel: lipgloss.NewStyle().Foreground(cError).SetString("ERROR"),
		},
	})
	return logger
}

// Init implements tea.Model interface and returns initial commands
func (m *model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spin.Tick, revocationTick(m.cfg.RevocationInterval)}
	if m.logEnabled {
		cmds = append(cmds, initLogViewport(), m.logSpinner.Tick)
	}
	if m.rpcURL != "" {
		m.rpcConnecting = true
		cmds = append(cmds, connectRPC(m.rpcURL))
	}
	return tea.Batch(cmds...)
}
