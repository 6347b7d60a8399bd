package tui

import (
	"context"
	"fmt"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/ankify-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/ankify-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/ankify-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/ankify-cli/internal/adapters/driving/tui/views/resolve"
	"github.com/custodia-labs/ankify-cli/internal/adapters/driving/tui/views/settings"
	"github.com/custodia-labs/ankify-cli/internal/core/domain"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports *Ports
	ctx   context.Context

	styles *styles.Styles

	resolveView  *resolve.View
	settingsView *settings.View

	// snapshots delivers every state published by the resolution service.
	snapshots   <-chan domain.Resolution
	unsubscribe func()
	closeOnce   sync.Once

	// initial is resolved as soon as the program starts.
	initial string

	currentView messages.ViewType

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application and subscribes it to resolution
// snapshots. Call Close when the program exits.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()
	snapshots, unsubscribe := ports.Resolution.Subscribe()

	return &App{
		ports:        ports,
		ctx:          context.Background(),
		styles:       s,
		resolveView:  resolve.NewView(s, km, ports.Resolution),
		settingsView: settings.NewView(s, ports.Settings),
		snapshots:    snapshots,
		unsubscribe:  unsubscribe,
		currentView:  messages.ViewResolve,
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.resolveView.WithContext(ctx)
	return a
}

// WithSelection pre-fills the input and resolves text on start.
func (a *App) WithSelection(text string) *App {
	a.initial = text
	a.resolveView.SetSelection(text)
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.SetWindowTitle("ankify"),
		a.resolveView.Init(),
		waitForSnapshot(a.snapshots),
	}
	if a.initial != "" {
		cmds = append(cmds, a.resolve(a.initial))
	}
	return tea.Batch(cmds...)
}

// waitForSnapshot blocks until the service publishes the next snapshot.
func waitForSnapshot(ch <-chan domain.Resolution) tea.Cmd {
	return func() tea.Msg {
		snap, ok := <-ch
		if !ok {
			return messages.SubscriptionClosed{}
		}
		return messages.ResolutionUpdated{Snapshot: snap}
	}
}

func (a *App) resolve(text string) tea.Cmd {
	ctx := a.ctx
	svc := a.ports.Resolution
	return func() tea.Msg {
		_, err := svc.HandleSelection(ctx, text)
		return messages.ResolveFinished{Text: text, Err: err}
	}
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if a.currentView == messages.ViewSettings {
			a.settingsView, cmd = a.settingsView.Update(msg)
			return a, cmd
		}
		a.resolveView, cmd = a.resolveView.Update(msg)
		return a, cmd

	case messages.ResolutionUpdated:
		a.resolveView, _ = a.resolveView.Update(msg)
		return a, waitForSnapshot(a.snapshots)

	case messages.SubscriptionClosed:
		return a, nil

	case messages.ViewChanged:
		return a, a.switchView(msg.View)

	case messages.SettingsLoaded, messages.SettingSaved:
		a.settingsView, cmd = a.settingsView.Update(msg)
		return a, cmd
	}

	a.resolveView, cmd = a.resolveView.Update(msg)
	return a, cmd
}

// switchView activates a view. The settings view is unavailable without a
// settings service.
func (a *App) switchView(view messages.ViewType) tea.Cmd {
	if view == messages.ViewSettings && a.ports.Settings == nil {
		return nil
	}
	a.currentView = view
	if view == messages.ViewSettings {
		return a.settingsView.Init()
	}
	return nil
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	if a.currentView == messages.ViewSettings {
		return a.settingsView.View()
	}
	return a.resolveView.View()
}

// Run starts the TUI application and unsubscribes when it exits.
func (a *App) Run() error {
	defer a.Close()
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// Close releases the snapshot subscription. It is safe to call more than once.
func (a *App) Close() {
	a.closeOnce.Do(a.unsubscribe)
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Snapshot returns the last snapshot rendered by the resolve view.
func (a *App) Snapshot() domain.Resolution {
	return a.resolveView.Snapshot()
}

// Err returns the last error shown by the resolve view.
func (a *App) Err() error {
	return a.resolveView.Err()
}

// Ready returns whether the app has been sized.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions on every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.resolveView.SetDimensions(width, height)
	a.settingsView.SetDimensions(width, height)
}
