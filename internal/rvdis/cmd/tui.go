package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/v2/list"
	"github.com/charmbracelet/bubbles/v2/spinner"
	"github.com/charmbracelet/bubbles/v2/viewport"
	tea "github.com/charmbracelet/bubbletea/v2"

	"rvdis/internal/analysis"
	"rvdis/internal/disasm"
	"rvdis/internal/elfx"
	"rvdis/internal/riscv"
	"rvdis/internal/rvdis/styles"
)

type viewMode int

const (
	viewListing viewMode = iota
	viewSymbols
)

type symbolItem struct {
	address   uint64
	name      string // as in the symbol table, used to find the function
	demangled string
}

func (i symbolItem) Title() string       { return i.demangled }
func (i symbolItem) Description() string { return "" }
func (i symbolItem) FilterValue() string { return fmt.Sprintf("%x %s", i.address, i.demangled) }

type itemDelegate struct{}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }

func (d itemDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	i, ok := listItem.(symbolItem)
	if !ok {
		return
	}
	indicator, addrStyle := " ", styles.SymbolAddress
	if index == m.Index() {
		indicator, addrStyle = ">", styles.SelectedSymbol
	}
	fmt.Fprintf(w, " %s  %s  %s",
		indicator,
		addrStyle.Render(fmt.Sprintf("%16x", i.address)),
		styles.SymbolName.Render(i.demangled))
}

type listingMsg struct {
	region analysis.Region
	text   string
	lines  int
	err    error
}

type model struct {
	listing viewport.Model
	symbols list.Model
	spinner spinner.Model
	mode    viewMode
	im      *elfx.Image
	syms    *analysis.SymbolTable
	region  analysis.Region
	loading bool
	status  string
	width   int
	height  int
}

func newModel(im *elfx.Image, syms *analysis.SymbolTable, region analysis.Region) model {
	vp := viewport.New()
	vp.SetWidth(80)
	vp.SetHeight(24)

	fns := im.FuncSymbols()
	items := make([]list.Item, 0, len(fns))
	for _, s := range fns {
		items = append(items, symbolItem{address: s.Addr, name: s.Name, demangled: analysis.CachedDemangle(s.Name)})
	}
	symbols := list.New(items, itemDelegate{}, 80, 24)
	symbols.SetShowStatusBar(false)
	symbols.SetFilteringEnabled(true)
	symbols.Title = fmt.Sprintf("Functions (%d)", len(items))
	symbols.Styles.Title = styles.Title

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.SelectedSymbol

	return model{
		listing: vp,
		symbols: symbols,
		spinner: s,
		mode:    viewListing,
		im:      im,
		syms:    syms,
		region:  region,
		loading: true,
		width:   80,
		height:  24,
	}
}

// renderCmd disassembles r off the update loop with a fresh history.
func (m model) renderCmd(r analysis.Region) tea.Cmd {
	im, syms := m.im, m.syms
	return func() tea.Msg {
		var b strings.Builder
		sess := disasm.NewSession(&b, cfg.Options(imageLookup(im, syms), os.Stdout, im.GP, im.HasGP))
		lines := 0
		err := analysis.Walk(im, r, func(pc uint64, inst riscv.Inst) error {
			lines++
			return sess.Print(inst, pc)
		})
		return listingMsg{region: r, text: strings.TrimPrefix(b.String(), "\n"), lines: lines, err: err}
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(m.renderCmd(m.region), m.spinner.Tick)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case listingMsg:
		m.loading = false
		m.region = msg.region
		if msg.err != nil {
			m.status = msg.err.Error()
			m.listing.SetContent(msg.err.Error())
		} else {
			m.status = fmt.Sprintf("%s  0x%x  %d instructions", msg.region.Name, msg.region.Start, msg.lines)
			m.listing.SetContent(msg.text)
		}
		m.listing.GotoTop()
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.listing.SetWidth(msg.Width)
		m.listing.SetHeight(msg.Height - 2)
		m.symbols.SetWidth(msg.Width)
		m.symbols.SetHeight(msg.Height - 2)

	case tea.KeyMsg:
		if m.mode == viewSymbols && m.symbols.FilterState() == list.Filtering {
			if k := msg.String(); k == "ctrl+c" {
				return m, tea.Quit
			}
			break
		}
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "tab", "s":
			if m.mode == viewListing {
				m.mode = viewSymbols
			} else {
				m.mode = viewListing
			}
			return m, nil
		case "t":
			m.mode, m.loading = viewListing, true
			return m, tea.Batch(m.renderCmd(analysis.TextRegion(m.im)), m.spinner.Tick)
		case "enter":
			if m.mode != viewSymbols {
				break
			}
			item, ok := m.symbols.SelectedItem().(symbolItem)
			if !ok {
				return m, nil
			}
			r, err := analysis.SymbolRegion(m.im, m.syms, item.name)
			if err != nil {
				m.status = err.Error()
				return m, nil
			}
			m.mode, m.loading = viewListing, true
			return m, tea.Batch(m.renderCmd(r), m.spinner.Tick)
		}
	}

	switch m.mode {
	case viewSymbols:
		m.symbols, cmd = m.symbols.Update(msg)
	default:
		m.listing, cmd = m.listing.Update(msg)
	}
	return m, cmd
}

func (m model) View() string {
	var content string
	switch {
	case m.mode == viewSymbols:
		content = m.symbols.View()
	case m.loading:
		content = fmt.Sprintf("\n  %s Disassembling...", m.spinner.View())
	default:
		content = m.listing.View()
	}

	var menu string
	switch m.mode {
	case viewSymbols:
		menu = " Enter: disassemble • /: filter • Tab: listing • Q: quit "
	default:
		menu = " S: functions • T: whole .text • Q: quit   " + styles.Status.Render(m.status)
	}
	return content + "\n" + styles.Menu.Width(m.width).Render(menu)
}
