// Package tui is the interactive browse session: one bubbletea program
// per resolved session, owning a catalog view model and re-deriving the
// visible affordances from the access role on every render.
package tui

import (
	"context"
	"log"
	"os"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"plantsel/internal/catalog"
	"plantsel/internal/export"
	"plantsel/internal/models"
	"plantsel/internal/session"
)

type Mode int

const (
	modeLocked Mode = iota
	modeClaim
	modeBrowse
	modeDetail
	modeForm
	modeRoster
	modeConfirm
)

type Model struct {
	vm          *catalog.ViewModel
	resolver    *session.Resolver
	sess        session.Session
	exporter    *export.PDFExporter
	baseAddress string

	mode    Mode
	view    catalog.View
	filters catalog.Filters
	cursor  int
	loaded  bool
	detail  *models.Plant
	form    *plantForm
	confirm confirmDialog

	search    textinput.Model
	searching bool

	claimInput textinput.Model

	rosterCursor int
	renameInput  textinput.Model
	renaming     bool
	inviteLink   string

	status  string
	errText string
	width   int
	height  int
}

type confirmDialog struct {
	prompt string
	action tea.Cmd
	back   Mode
}

func New(vm *catalog.ViewModel, resolver *session.Resolver, sess session.Session, exporter *export.PDFExporter, baseAddress string) Model {
	search := textinput.New()
	search.Placeholder = "Search plants..."
	search.CharLimit = 80

	claim := textinput.New()
	claim.Placeholder = "Your name"
	claim.CharLimit = 60

	rename := textinput.New()
	rename.Placeholder = "Name"
	rename.CharLimit = 60

	mode := modeLocked
	if sess.Authenticated() {
		mode = modeBrowse
		if sess.NeedsClaim {
			mode = modeClaim
			claim.Focus()
		}
	}

	return Model{
		vm:          vm,
		resolver:    resolver,
		sess:        sess,
		exporter:    exporter,
		baseAddress: baseAddress,
		mode:        mode,
		search:      search,
		claimInput:  claim,
		renameInput: rename,
	}
}

func (m Model) Init() tea.Cmd {
	if !m.sess.Authenticated() {
		return nil
	}
	return m.loadCmd()
}

// Messages

type loadedMsg struct{ err error }

type toggledMsg struct {
	plantID string
	err     error
}

type plantSavedMsg struct{ err error }

type plantDeletedMsg struct{ err error }

type inviteMsg struct {
	link string
	err  error
}

type renamedMsg struct{ err error }

type ticketDeletedMsg struct{ err error }

type claimedMsg struct{ err error }

type exportedMsg struct {
	path string
	err  error
}

type copiedMsg struct{ err error }

// Commands

func (m Model) loadCmd() tea.Cmd {
	vm := m.vm
	return func() tea.Msg {
		return loadedMsg{err: vm.Load(context.Background())}
	}
}

func (m Model) toggleCmd(plantID string) tea.Cmd {
	vm := m.vm
	return func() tea.Msg {
		_, err := vm.ToggleFavourite(context.Background(), plantID)
		return toggledMsg{plantID: plantID, err: err}
	}
}

func (m Model) claimCmd(name string) tea.Cmd {
	resolver, sess := m.resolver, m.sess
	return func() tea.Msg {
		return claimedMsg{err: resolver.Claim(context.Background(), &sess, name)}
	}
}

func (m Model) deletePlantCmd(id string) tea.Cmd {
	vm := m.vm
	return func() tea.Msg {
		return plantDeletedMsg{err: vm.DeletePlant(context.Background(), id)}
	}
}

func (m Model) inviteCmd() tea.Cmd {
	vm, base := m.vm, m.baseAddress
	return func() tea.Msg {
		_, link, err := vm.GenerateInvite(context.Background(), base)
		return inviteMsg{link: link, err: err}
	}
}

func (m Model) renameCmd(id, name string) tea.Cmd {
	vm := m.vm
	return func() tea.Msg {
		return renamedMsg{err: vm.RenameRosterTicket(context.Background(), id, name)}
	}
}

func (m Model) deleteTicketCmd(id string) tea.Cmd {
	vm := m.vm
	return func() tea.Msg {
		return ticketDeletedMsg{err: vm.DeleteRosterTicket(context.Background(), id)}
	}
}

func (m Model) exportCmd() tea.Cmd {
	vm, exporter := m.vm, m.exporter
	return func() tea.Msg {
		plants := vm.FavouritePlants()
		file, err := os.Create(export.DefaultFilename)
		if err != nil {
			return exportedMsg{err: err}
		}
		defer file.Close()
		if err := exporter.Export(context.Background(), plants, file); err != nil {
			return exportedMsg{err: err}
		}
		return exportedMsg{path: export.DefaultFilename}
	}
}

func (m Model) copyCmd() tea.Cmd {
	vm := m.vm
	return func() tea.Msg {
		return copiedMsg{err: export.CopyText(export.FavouritesText(vm.FavouritePlants()))}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case loadedMsg:
		if msg.err != nil {
			m.errText = msg.err.Error()
			return m, nil
		}
		m.loaded = true
		return m, nil

	case toggledMsg:
		if msg.err != nil {
			// Non-destructive failure: log only, the local set is
			// unchanged so nothing needs repainting.
			log.Printf("favourite toggle failed plant=%s err=%v", msg.plantID, msg.err)
		}
		m.clampCursor()
		return m, nil

	case claimedMsg:
		if msg.err != nil {
			m.errText = msg.err.Error()
			return m, nil
		}
		m.sess.NeedsClaim = false
		m.mode = modeBrowse
		return m, nil

	case plantSavedMsg:
		if msg.err != nil {
			m.errText = msg.err.Error()
			return m, nil
		}
		m.mode = modeBrowse
		m.form = nil
		m.status = "Saved"
		return m, nil

	case plantDeletedMsg:
		if msg.err != nil {
			m.errText = "Delete failed: " + msg.err.Error()
			m.mode = modeBrowse
			return m, nil
		}
		m.mode = modeBrowse
		m.status = "Plant deleted"
		m.clampCursor()
		return m, nil

	case inviteMsg:
		if msg.err != nil {
			m.errText = msg.err.Error()
			return m, nil
		}
		m.inviteLink = msg.link
		m.status = "Invite ready"
		return m, nil

	case renamedMsg:
		if msg.err != nil {
			m.errText = msg.err.Error()
		}
		return m, nil

	case ticketDeletedMsg:
		if msg.err != nil {
			m.errText = "Remove failed: " + msg.err.Error()
			m.mode = modeRoster
			return m, nil
		}
		m.mode = modeRoster
		m.status = "Ticket removed"
		if m.rosterCursor >= len(m.vm.Roster()) && m.rosterCursor > 0 {
			m.rosterCursor--
		}
		return m, nil

	case exportedMsg:
		if msg.err != nil {
			m.errText = "Export failed: " + msg.err.Error()
			return m, nil
		}
		m.status = "Saved " + msg.path
		return m, nil

	case copiedMsg:
		if msg.err != nil {
			m.errText = "Copy failed: " + msg.err.Error()
			return m, nil
		}
		m.status = "Copied favourites"
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.mode {
	case modeLocked:
		if msg.String() == "q" {
			return m, tea.Quit
		}
		return m, nil
	case modeClaim:
		return m.handleClaimKey(msg)
	case modeDetail:
		return m.handleDetailKey(msg)
	case modeForm:
		return m.handleFormKey(msg)
	case modeRoster:
		return m.handleRosterKey(msg)
	case modeConfirm:
		return m.handleConfirmKey(msg)
	default:
		return m.handleBrowseKey(msg)
	}
}

func (m Model) handleClaimKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		name := m.claimInput.Value()
		if name == "" {
			return m, nil
		}
		return m, m.claimCmd(name)
	case "esc":
		// Claiming is prompted, not blocking.
		m.mode = modeBrowse
		return m, nil
	}
	var cmd tea.Cmd
	m.claimInput, cmd = m.claimInput.Update(msg)
	return m, cmd
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "enter":
		m.mode = modeBrowse
		m.detail = nil
		return m, nil
	case "f", " ":
		if m.detail != nil {
			return m, m.toggleCmd(m.detail.ID)
		}
	}
	return m, nil
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		action := m.confirm.action
		m.confirm = confirmDialog{}
		return m, action
	case "n", "N", "esc":
		m.mode = m.confirm.back
		m.confirm = confirmDialog{}
		return m, nil
	}
	return m, nil
}

func (m Model) handleBrowseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.searching {
		switch msg.String() {
		case "enter", "esc":
			m.searching = false
			m.search.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		m.filters.Search = m.search.Value()
		m.clampCursor()
		return m, cmd
	}

	role := m.vm.Role()
	key := msg.String()

	switch key {
	case "q":
		return m, tea.Quit
	case "/":
		m.searching = true
		m.search.Focus()
		return m, nil
	case "tab":
		if m.view == catalog.ViewBrowse {
			m.view = catalog.ViewFavourites
		} else {
			m.view = catalog.ViewBrowse
		}
		m.cursor = 0
		return m, nil
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case "down", "j":
		if m.cursor < len(m.visible())-1 {
			m.cursor++
		}
		return m, nil
	case "c":
		m.filters = m.filters.SelectCategory(nextCategory(m.filters.Category))
		m.clampCursor()
		return m, nil
	case "v":
		if m.filters.Category != "" {
			m.filters = m.filters.SelectSubCategory(nextSubCategory(m.filters.Category, m.filters.SubCategory))
			m.clampCursor()
		}
		return m, nil
	case "enter":
		if plant, ok := m.selectedPlant(); ok {
			m.detail = &plant
			m.mode = modeDetail
		}
		return m, nil
	case "f", " ":
		if plant, ok := m.selectedPlant(); ok {
			return m, m.toggleCmd(plant.ID)
		}
		return m, nil
	case "p":
		if m.vm.FavouriteCount() > 0 {
			m.status = "Exporting..."
			return m, m.exportCmd()
		}
		return m, nil
	case "y":
		if m.vm.FavouriteCount() > 0 {
			return m, m.copyCmd()
		}
		return m, nil
	}

	if colour, ok := colourForKey(key); ok && m.filters.Category == models.CategoryColours {
		m.filters = m.filters.ToggleColour(colour)
		m.clampCursor()
		return m, nil
	}

	// Admin affordances are live only for the roles that unlock them.
	switch key {
	case "A":
		if role.CanViewRoster() {
			m.vm.SetAdminView(!m.vm.AdminView())
		}
		return m, nil
	case "r":
		if role.CanViewRoster() {
			m.mode = modeRoster
			m.rosterCursor = 0
		}
		return m, nil
	case "a":
		if role.CanMutateCatalog() {
			m.form = newPlantForm(nil)
			m.mode = modeForm
		}
		return m, nil
	case "e":
		if role.CanMutateCatalog() {
			if plant, ok := m.selectedPlant(); ok {
				m.form = newPlantForm(&plant)
				m.mode = modeForm
			}
		}
		return m, nil
	case "d":
		if role.CanMutateCatalog() {
			if plant, ok := m.selectedPlant(); ok {
				m.confirm = confirmDialog{
					prompt: "Delete " + plant.CommonName + "? This removes it from every favourites list.",
					action: m.deletePlantCmd(plant.ID),
					back:   modeBrowse,
				}
				m.mode = modeConfirm
			}
		}
		return m, nil
	}
	return m, nil
}

func (m Model) visible() []models.Plant {
	return m.vm.Visible(m.view, m.filters)
}

func (m Model) selectedPlant() (models.Plant, bool) {
	plants := m.visible()
	if m.cursor < 0 || m.cursor >= len(plants) {
		return models.Plant{}, false
	}
	return plants[m.cursor], true
}

func (m *Model) clampCursor() {
	if n := len(m.visible()); m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func nextCategory(current string) string {
	if current == "" {
		return models.CategoryNames[0]
	}
	for i, name := range models.CategoryNames {
		if name == current {
			if i+1 < len(models.CategoryNames) {
				return models.CategoryNames[i+1]
			}
			// Selecting the current category again clears it.
			return current
		}
	}
	return models.CategoryNames[0]
}

func nextSubCategory(category, current string) string {
	subs := models.SubCategoriesFor(category)
	if len(subs) == 0 {
		return ""
	}
	if current == "" {
		return subs[0]
	}
	for i, name := range subs {
		if name == current {
			if i+1 < len(subs) {
				return subs[i+1]
			}
			return current
		}
	}
	return subs[0]
}

func colourForKey(key string) (string, bool) {
	if len(key) != 1 || key[0] < '1' || key[0] > '9' {
		return "", false
	}
	index := int(key[0] - '1')
	if index >= len(models.ColourOptions) {
		return "", false
	}
	return models.ColourOptions[index], true
}
