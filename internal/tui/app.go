package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/dafibh/fortuna/portfolio-backend/internal/handler"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/rs/zerolog"
)

const (
	pageDashboard = "dashboard"
	pageAccount   = "account"

	requestTimeout = 15 * time.Second
)

// API is the subset of the HTTP client the terminal client uses
type API interface {
	Dashboard(ctx context.Context, timeRange string) (*handler.DashboardResponse, error)
	TimeRanges(ctx context.Context) ([]handler.TimeRangeResponse, error)
	SelectTimeRange(ctx context.Context, key string) error
	DismissBanner(ctx context.Context, bannerID string) error
	Account(ctx context.Context, id string) (*handler.AccountResponse, error)
}

var fallbackRanges = []handler.TimeRangeResponse{
	{Key: "day", Days: 1},
	{Key: "week", Days: 7},
	{Key: "month", Days: 30},
	{Key: "year", Days: 365},
}

// App is the terminal dashboard
type App struct {
	api    API
	tr     Translations
	format *Formatter
	logger zerolog.Logger

	app      *tview.Application
	pages    *tview.Pages
	banner   *tview.TextView
	header   *tview.TextView
	ranges   *tview.TextView
	balance  *tview.TextView
	accounts *tview.Table
	activity *tview.TextView
	filter   *tview.InputField
	detail   *tview.TextView
	status   *tview.TextView

	dashboard  *handler.DashboardResponse
	timeRanges []handler.TimeRangeResponse
	query      string
	visible    []handler.AccountCardResponse
}

// NewApp builds the widget tree. Nothing is fetched until Run.
func NewApp(api API, tr Translations, format *Formatter, logger zerolog.Logger) *App {
	a := &App{
		api:        api,
		tr:         tr,
		format:     format,
		logger:     logger.With().Str("component", "tui").Logger(),
		timeRanges: fallbackRanges,
	}

	a.app = tview.NewApplication()

	a.banner = tview.NewTextView().SetDynamicColors(true)
	a.header = tview.NewTextView().SetDynamicColors(true)
	a.ranges = tview.NewTextView().SetDynamicColors(true).SetTextAlign(tview.AlignRight)
	a.balance = tview.NewTextView().SetDynamicColors(true)
	a.activity = tview.NewTextView().SetDynamicColors(true).SetScrollable(true)
	a.activity.SetBorder(true).SetTitle(" " + tr.T("dashboard.recentActivity") + " ")
	a.status = tview.NewTextView().SetDynamicColors(true)
	a.status.SetText("[gray]" + tr.T("help") + "[-]")

	a.accounts = tview.NewTable().SetSelectable(true, false).SetFixed(0, 1)
	a.accounts.SetBorder(true).SetTitle(" " + tr.T("dashboard.accounts") + " ")
	a.accounts.SetSelectedFunc(func(row, _ int) {
		if row < 0 || row >= len(a.visible) {
			return
		}
		id := a.visible[row].ID
		a.background(func(ctx context.Context) (func(), error) {
			account, err := a.api.Account(ctx, id)
			if err != nil {
				return nil, err
			}
			return func() { a.showAccount(account) }, nil
		})
	})

	a.filter = tview.NewInputField().SetLabel("/ ")
	a.filter.SetChangedFunc(a.setQuery)
	a.filter.SetDoneFunc(func(key tcell.Key) {
		if key == tcell.KeyEscape {
			a.filter.SetText("")
		}
		a.app.SetFocus(a.accounts)
	})

	a.detail = tview.NewTextView().SetDynamicColors(true).SetScrollable(true)
	a.detail.SetBorder(true)

	top := tview.NewFlex().
		AddItem(a.header, 0, 1, false).
		AddItem(a.ranges, 0, 1, false)

	dashboard := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(a.banner, 1, 0, false).
		AddItem(top, 2, 0, false).
		AddItem(a.balance, 2, 0, false).
		AddItem(a.filter, 1, 0, false).
		AddItem(a.accounts, 0, 2, true).
		AddItem(a.activity, 0, 1, false)

	a.pages = tview.NewPages().
		AddPage(pageDashboard, dashboard, true, true).
		AddPage(pageAccount, a.detail, true, false)

	layout := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(a.pages, 0, 1, true).
		AddItem(a.status, 1, 0, false)

	a.app.SetRoot(layout, true).SetFocus(a.accounts)
	a.app.SetInputCapture(a.capture)

	return a
}

// Run loads the dashboard and blocks until the user quits. A positive
// refresh re-fetches the dashboard on that interval.
func (a *App) Run(ctx context.Context, refresh time.Duration) error {
	if err := a.Load(ctx); err != nil {
		a.logger.Error().Err(err).Msg("Initial dashboard load failed")
		a.showError(err)
	}

	if refresh > 0 {
		go func() {
			ticker := time.NewTicker(refresh)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
					a.background(a.fetchDashboard)
				}
			}
		}()
	}

	go func() {
		<-ctx.Done()
		a.app.Stop()
	}()

	return a.app.Run()
}

// Load fetches time ranges and the dashboard and renders them. It must not
// be called while the application loop is running.
func (a *App) Load(ctx context.Context) error {
	ranges, err := a.api.TimeRanges(ctx)
	if err != nil {
		a.logger.Warn().Err(err).Msg("Failed to fetch time ranges, using defaults")
	} else if len(ranges) > 0 {
		a.timeRanges = ranges
	}

	apply, err := a.fetchDashboard(ctx)
	if err != nil {
		return err
	}
	apply()
	return nil
}

func (a *App) fetchDashboard(ctx context.Context) (func(), error) {
	d, err := a.api.Dashboard(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch dashboard: %w", err)
	}
	return func() { a.render(d) }, nil
}

// selectRange persists the range at position index and refetches
func (a *App) selectRange(index int) func(context.Context) (func(), error) {
	if index < 0 || index >= len(a.timeRanges) {
		return noop
	}
	key := a.timeRanges[index].Key
	return func(ctx context.Context) (func(), error) {
		if err := a.api.SelectTimeRange(ctx, key); err != nil {
			return nil, fmt.Errorf("failed to select time range %v: %w", key, err)
		}
		a.logger.Debug().Str("time_range", key).Msg("Time range selected")
		return a.fetchDashboard(ctx)
	}
}

// dismissBanner dismisses the visible banner if it allows it and refetches
func (a *App) dismissBanner() func(context.Context) (func(), error) {
	d := a.dashboard
	if d == nil || d.Banner == nil || !d.Banner.Dismissable {
		return noop
	}
	id := d.Banner.ID
	return func(ctx context.Context) (func(), error) {
		if err := a.api.DismissBanner(ctx, id); err != nil {
			return nil, fmt.Errorf("failed to dismiss banner %v: %w", id, err)
		}
		a.logger.Debug().Str("banner_id", id).Msg("Banner dismissed")
		return a.fetchDashboard(ctx)
	}
}

func noop(context.Context) (func(), error) {
	return func() {}, nil
}

// background runs op off the UI goroutine and applies its result on it
func (a *App) background(op func(context.Context) (func(), error)) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		apply, err := op(ctx)
		a.app.QueueUpdateDraw(func() {
			if err != nil {
				a.logger.Error().Err(err).Msg("Request failed")
				a.showError(err)
				return
			}
			apply()
		})
	}()
}

func (a *App) capture(e *tcell.EventKey) *tcell.EventKey {
	if a.app.GetFocus() == a.filter {
		return e
	}

	if name, _ := a.pages.GetFrontPage(); name == pageAccount {
		if e.Key() == tcell.KeyEscape || e.Rune() == 'q' {
			a.pages.SwitchToPage(pageDashboard)
			a.app.SetFocus(a.accounts)
			return nil
		}
		return e
	}

	switch e.Rune() {
	case 'q':
		a.app.Stop()
		return nil
	case 'r':
		a.background(a.fetchDashboard)
		return nil
	case 'x':
		a.background(a.dismissBanner())
		return nil
	case '/':
		a.app.SetFocus(a.filter)
		return nil
	case '1', '2', '3', '4', '5', '6', '7', '8', '9':
		a.background(a.selectRange(int(e.Rune() - '1')))
		return nil
	}

	return e
}

func (a *App) render(d *handler.DashboardResponse) {
	a.dashboard = d

	_, _, width, _ := a.banner.GetInnerRect()
	if width <= 0 {
		width = 80
	}

	a.banner.SetText(BannerLine(d.Banner, a.tr, width))
	a.header.SetText(HeaderLines(d, a.tr))
	a.ranges.SetText(RangePills(a.timeRanges, d.SelectedTimeRange, a.tr))
	a.balance.SetText(BalanceLines(d.Summary, a.format, a.tr, width))

	a.activity.Clear()
	if d.ShowRecentActivity {
		for _, op := range d.RecentOperations {
			fmt.Fprintln(a.activity, OperationLine(op, a.format))
		}
	}

	a.renderAccounts()
	a.status.SetText("[gray]" + a.tr.T("help") + "[-]")
}

func (a *App) setQuery(text string) {
	a.query = text
	a.renderAccounts()
}

func (a *App) renderAccounts() {
	a.accounts.Clear()
	if a.dashboard == nil {
		a.visible = nil
		return
	}

	a.visible = FilterAccounts(a.dashboard.Accounts, a.query)
	for row, card := range a.visible {
		for col, text := range AccountCells(card, a.dashboard.CounterValue, a.format) {
			cell := tview.NewTableCell(text)
			if col > 0 {
				cell.SetAlign(tview.AlignRight)
			}
			a.accounts.SetCell(row, col, cell)
		}
	}
}

func (a *App) showAccount(account *handler.AccountResponse) {
	a.detail.SetTitle(" " + account.Path + " ")
	a.detail.SetText(AccountDetail(account, a.format))
	a.pages.SwitchToPage(pageAccount)
}

func (a *App) showError(err error) {
	a.status.SetText("[red]" + tview.Escape(err.Error()) + "[-]")
}
