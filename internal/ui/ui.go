// Package ui implements the terminal dashboard: the 10-year summary pane,
// the filterable incident table, the read-only scraper listing, the AI
// output pane, and the chat pane. All AI calls run off the UI goroutine and
// publish their results through QueueUpdateDraw.
package ui

import (
	"context"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/gvawatch/gva-console/internal/dataset"
	"github.com/gvawatch/gva-console/internal/export"
	"github.com/gvawatch/gva-console/internal/gva"
	"github.com/gvawatch/gva-console/internal/llm"
)

// Gateway is the slice of the AI client the dashboard needs. It is an
// interface so tests can substitute a stub.
type Gateway interface {
	GenerateReport(ctx context.Context, table gva.Table, sample []gva.Record) (*llm.GroundedResponse, error)
	FindLocalSafetyResources(ctx context.Context, coords *gva.Coordinates) (*llm.GroundedResponse, error)
	Chat(ctx context.Context, s *llm.Session, text string) (string, error)
}

// Options configures the dashboard.
type Options struct {
	ExportDir string
	Coords    *gva.Coordinates // optional retrieval bias for resource lookups
	Logger    *log.Logger
}

// UI represents the terminal user interface
type UI struct {
	app     *tview.Application
	gateway Gateway
	logger  *log.Logger

	exportDir string
	coords    *gva.Coordinates

	// Data state
	mu         sync.Mutex
	data       *dataset.Dataset
	stateQuery string
	cityQuery  string

	// Chat state: one session for the process lifetime, one in-flight send.
	session     *llm.Session
	chatPending int32

	// Layout components
	layout        *tview.Flex
	summaryTable  *tview.Table
	incidentTable *tview.Table
	stateInput    *tview.InputField
	cityInput     *tview.InputField
	scraperView   *tview.TextView
	outputView    *tview.TextView
	chatView      *tview.TextView
	chatInput     *tview.InputField
	statusBar     *tview.TextView

	// Focus cycle order for Tab navigation
	focusOrder []tview.Primitive

	ctx    context.Context
	cancel context.CancelFunc
}

// NewUI creates the dashboard over the given dataset.
func NewUI(ctx context.Context, data *dataset.Dataset, gateway Gateway, opts Options) *UI {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, "[UI] ", log.LstdFlags)
	}
	uiCtx, cancel := context.WithCancel(ctx)

	ui := &UI{
		app:       tview.NewApplication(),
		gateway:   gateway,
		logger:    logger,
		exportDir: opts.ExportDir,
		coords:    opts.Coords,
		data:      data,
		ctx:       uiCtx,
		cancel:    cancel,
	}
	ui.buildLayout()
	ui.renderSummary()
	ui.renderIncidents()
	return ui
}

// Start runs the application event loop until quit or ctx cancellation.
func (ui *UI) Start(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		ui.app.Stop()
	}()
	defer ui.cancel()

	ui.app.SetRoot(ui.layout, true).SetFocus(ui.stateInput)
	if err := ui.app.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

// ReplaceDataset swaps in a reloaded dataset (from the file watcher) and
// re-renders. Safe to call from any goroutine while the app is running.
func (ui *UI) ReplaceDataset(d *dataset.Dataset) {
	ui.app.QueueUpdateDraw(func() {
		ui.mu.Lock()
		ui.data = d
		ui.mu.Unlock()
		ui.renderSummary()
		ui.renderIncidents()
		ui.setStatus("Dataset reloaded")
	})
}

// SetFilters updates the incident filter queries and re-renders the table.
func (ui *UI) SetFilters(stateQuery, cityQuery string) {
	ui.mu.Lock()
	ui.stateQuery = stateQuery
	ui.cityQuery = cityQuery
	ui.mu.Unlock()
	ui.renderIncidents()
}

// FilteredIncidents returns the incidents matching the current filters, in
// their original order.
func (ui *UI) FilteredIncidents() []gva.Record {
	ui.mu.Lock()
	defer ui.mu.Unlock()
	return gva.Filter(ui.data.Incidents, ui.stateQuery, ui.cityQuery)
}

// ChatPending reports whether a chat request is currently in flight.
func (ui *UI) ChatPending() bool {
	return atomic.LoadInt32(&ui.chatPending) == 1
}

// Layout

func (ui *UI) buildLayout() {
	// Summary pane
	ui.summaryTable = tview.NewTable().SetFixed(1, 1)
	ui.summaryTable.SetBorder(true).SetTitle(" 10-Year Summary ")

	// Incident pane with filter inputs
	ui.stateInput = tview.NewInputField().
		SetLabel("State: ").
		SetFieldWidth(18).
		SetChangedFunc(func(text string) {
			ui.mu.Lock()
			ui.stateQuery = text
			ui.mu.Unlock()
			ui.renderIncidents()
		})
	ui.cityInput = tview.NewInputField().
		SetLabel("City/County: ").
		SetFieldWidth(18).
		SetChangedFunc(func(text string) {
			ui.mu.Lock()
			ui.cityQuery = text
			ui.mu.Unlock()
			ui.renderIncidents()
		})

	ui.incidentTable = tview.NewTable().SetFixed(1, 0).SetSelectable(true, false)
	ui.incidentTable.SetBorder(true).SetTitle(" Incidents ")

	filterRow := tview.NewFlex().
		AddItem(ui.stateInput, 0, 1, true).
		AddItem(ui.cityInput, 0, 1, false)

	incidentPane := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(filterRow, 1, 0, true).
		AddItem(ui.incidentTable, 0, 1, false)

	// Read-only scraper listing pane
	ui.scraperView = tview.NewTextView().SetScrollable(true).SetWrap(false)
	ui.scraperView.SetBorder(true).SetTitle(" Data Collector (listing only) ")
	fmt.Fprint(ui.scraperView, dataset.ScraperListing())

	// AI output pane (reports and resource lookups)
	ui.outputView = tview.NewTextView().SetDynamicColors(true).SetScrollable(true).SetWrap(true)
	ui.outputView.SetBorder(true).SetTitle(" AI Output ")
	fmt.Fprint(ui.outputView, "Press 'r' for a report, 's' for local safety resources.")

	// Chat pane
	ui.chatView = tview.NewTextView().SetDynamicColors(true).SetScrollable(true).SetWrap(true)
	ui.chatView.SetBorder(true).SetTitle(" Chat ")
	ui.chatInput = tview.NewInputField().SetLabel("> ").SetFieldWidth(0)
	ui.chatInput.SetDoneFunc(func(key tcell.Key) {
		if key != tcell.KeyEnter {
			return
		}
		text := ui.chatInput.GetText()
		ui.chatInput.SetText("")
		ui.submitChat(text)
	})

	chatPane := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(ui.chatView, 0, 1, false).
		AddItem(ui.chatInput, 1, 0, true)

	// Status bar
	ui.statusBar = tview.NewTextView().SetDynamicColors(true)
	ui.statusBar.SetBackgroundColor(tcell.ColorDarkSlateGray)
	ui.setStatus("Tab: next pane | e/E: export summary/incidents | r: report | s: resources | q: quit")

	left := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(ui.summaryTable, 0, 2, false).
		AddItem(incidentPane, 0, 3, true)

	right := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(ui.outputView, 0, 2, false).
		AddItem(chatPane, 0, 2, false).
		AddItem(ui.scraperView, 0, 3, false)

	body := tview.NewFlex().
		AddItem(left, 0, 3, true).
		AddItem(right, 0, 2, false)

	ui.layout = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(body, 0, 1, true).
		AddItem(ui.statusBar, 1, 0, false)

	ui.focusOrder = []tview.Primitive{
		ui.stateInput, ui.cityInput, ui.incidentTable,
		ui.outputView, ui.chatInput, ui.scraperView, ui.summaryTable,
	}
	ui.app.SetInputCapture(ui.handleGlobalKey)
}

// handleGlobalKey routes global shortcuts. Plain letters are only treated
// as shortcuts when focus is not inside a text input.
func (ui *UI) handleGlobalKey(event *tcell.EventKey) *tcell.EventKey {
	if event.Key() == tcell.KeyTab {
		ui.cycleFocus()
		return nil
	}

	if _, typing := ui.app.GetFocus().(*tview.InputField); typing {
		return event
	}

	switch event.Rune() {
	case 'q':
		ui.app.Stop()
		return nil
	case 'e':
		ui.exportSummary()
		return nil
	case 'E':
		ui.exportIncidents()
		return nil
	case 'r':
		ui.generateReport()
		return nil
	case 's':
		ui.findResources()
		return nil
	}
	return event
}

func (ui *UI) cycleFocus() {
	current := ui.app.GetFocus()
	for i, p := range ui.focusOrder {
		if p == current {
			ui.app.SetFocus(ui.focusOrder[(i+1)%len(ui.focusOrder)])
			return
		}
	}
	ui.app.SetFocus(ui.focusOrder[0])
}

// Rendering

func (ui *UI) renderSummary() {
	ui.mu.Lock()
	table := ui.data.Table
	ui.mu.Unlock()

	ui.summaryTable.Clear()
	ui.summaryTable.SetCell(0, 0, tview.NewTableCell("Category").
		SetTextColor(tcell.ColorYellow).SetSelectable(false))
	for col, y := range table.Years {
		ui.summaryTable.SetCell(0, col+1, tview.NewTableCell(strconv.Itoa(y)).
			SetTextColor(tcell.ColorYellow).SetAlign(tview.AlignRight).SetSelectable(false))
	}
	for row, cat := range table.Categories {
		ui.summaryTable.SetCell(row+1, 0, tview.NewTableCell(cat.Name))
		for col, c := range cat.Cells {
			text := c.Text()
			cell := tview.NewTableCell(text).SetAlign(tview.AlignRight)
			if text == gva.PendingSentinel {
				cell.SetTextColor(tcell.ColorGray)
			}
			ui.summaryTable.SetCell(row+1, col+1, cell)
		}
	}
}

func (ui *UI) renderIncidents() {
	filtered := ui.FilteredIncidents()

	ui.incidentTable.Clear()
	headers := []string{"Date", "State", "City/County", "Address", "Killed", "Injured"}
	for col, h := range headers {
		ui.incidentTable.SetCell(0, col, tview.NewTableCell(h).
			SetTextColor(tcell.ColorYellow).SetSelectable(false))
	}
	for row, r := range filtered {
		ui.incidentTable.SetCell(row+1, 0, tview.NewTableCell(r.Date))
		ui.incidentTable.SetCell(row+1, 1, tview.NewTableCell(r.State))
		ui.incidentTable.SetCell(row+1, 2, tview.NewTableCell(r.CityCounty))
		ui.incidentTable.SetCell(row+1, 3, tview.NewTableCell(r.Address))
		ui.incidentTable.SetCell(row+1, 4, tview.NewTableCell(strconv.Itoa(r.Killed)).SetAlign(tview.AlignRight))
		ui.incidentTable.SetCell(row+1, 5, tview.NewTableCell(strconv.Itoa(r.Injured)).SetAlign(tview.AlignRight))
	}
	ui.incidentTable.SetTitle(fmt.Sprintf(" Incidents (%d) ", len(filtered)))
}

func (ui *UI) setStatus(msg string) {
	ui.statusBar.SetText(" " + msg)
}

// Exports

func (ui *UI) exportSummary() {
	ui.mu.Lock()
	table := ui.data.Table
	ui.mu.Unlock()

	path, err := export.WriteSummary(ui.exportDir, table)
	if err != nil {
		ui.logger.Printf("Summary export failed: %v", err)
		ui.setStatus("Export failed, see log")
		return
	}
	ui.setStatus("Exported " + path)
}

func (ui *UI) exportIncidents() {
	path, err := export.WriteIncidents(ui.exportDir, ui.FilteredIncidents(), time.Now())
	if err != nil {
		ui.logger.Printf("Incident export failed: %v", err)
		ui.setStatus("Export failed, see log")
		return
	}
	ui.setStatus("Exported " + path)
}

// AI operations

func (ui *UI) generateReport() {
	ui.mu.Lock()
	table := ui.data.Table
	sample := ui.data.Incidents
	ui.mu.Unlock()

	ui.setStatus("Generating report...")
	go func() {
		resp, err := ui.gateway.GenerateReport(ui.ctx, table, sample)
		if err != nil {
			ui.logger.Printf("Report generation failed: %v", err)
			resp = &llm.GroundedResponse{Text: llm.FallbackReport, Sources: []llm.SourceChunk{}}
		}
		ui.app.QueueUpdateDraw(func() {
			ui.showGrounded(resp)
			ui.setStatus("Report ready")
		})
	}()
}

func (ui *UI) findResources() {
	ui.setStatus("Looking up local safety resources...")
	coords := ui.coords
	go func() {
		resp, err := ui.gateway.FindLocalSafetyResources(ui.ctx, coords)
		if err != nil {
			ui.logger.Printf("Resource lookup failed: %v", err)
			resp = &llm.GroundedResponse{Text: llm.FallbackResources, Sources: []llm.SourceChunk{}}
		}
		ui.app.QueueUpdateDraw(func() {
			ui.showGrounded(resp)
			ui.setStatus("Resource lookup done")
		})
	}()
}

func (ui *UI) showGrounded(resp *llm.GroundedResponse) {
	ui.outputView.Clear()
	fmt.Fprintln(ui.outputView, resp.Text)
	if len(resp.Sources) > 0 {
		fmt.Fprintln(ui.outputView, "\n[yellow]Sources:[-]")
		for _, s := range resp.Sources {
			title := s.Title
			if title == "" {
				title = s.URI
			}
			fmt.Fprintf(ui.outputView, "  [%s] %s\n      %s\n", s.Type, title, s.URI)
		}
	}
	ui.outputView.ScrollToBeginning()
}

// submitChat sends one chat message. At most one request may be in flight:
// the input is disabled and further submits are dropped until the current
// one resolves.
func (ui *UI) submitChat(text string) {
	msg := strings.TrimSpace(text)
	if msg == "" {
		return
	}
	if !atomic.CompareAndSwapInt32(&ui.chatPending, 0, 1) {
		ui.setStatus("Still waiting for the previous chat reply")
		return
	}
	if ui.session == nil {
		ui.session = llm.NewSession(llm.ChatSystemInstruction)
	}

	ui.chatInput.SetDisabled(true)
	fmt.Fprintf(ui.chatView, "[yellow]You:[-] %s\n", msg)
	ui.chatView.ScrollToEnd()
	ui.setStatus("Waiting for reply...")

	go func() {
		reply, err := ui.gateway.Chat(ui.ctx, ui.session, msg)
		if err != nil {
			ui.logger.Printf("Chat failed: %v", err)
			reply = llm.FallbackChat
		}
		ui.app.QueueUpdateDraw(func() {
			atomic.StoreInt32(&ui.chatPending, 0)
			ui.chatInput.SetDisabled(false)
			fmt.Fprintf(ui.chatView, "[green]Assistant:[-] %s\n\n", reply)
			ui.chatView.ScrollToEnd()
			ui.setStatus("Ready")
			ui.app.SetFocus(ui.chatInput)
		})
	}()
}
