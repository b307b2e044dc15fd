package display

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hammamikhairi/doughcalc/internal/domain"
	"github.com/hammamikhairi/doughcalc/internal/engine"
	"github.com/hammamikhairi/doughcalc/internal/export"
	"github.com/hammamikhairi/doughcalc/internal/logger"
	"github.com/hammamikhairi/doughcalc/internal/share"
)

type fieldKind int

const (
	fieldFlour fieldKind = iota
	fieldBalls
	fieldPerBall
	fieldPercentage
)

// field identifies one editable input. index is the ingredient position for
// percentage fields.
type field struct {
	kind  fieldKind
	index int
}

// fieldsFor lists the inputs of r in focus order: the mode's scalar inputs
// first, then one percentage per ingredient.
func fieldsFor(r domain.Recipe) []field {
	var out []field
	if r.Mode == domain.ModeDoughBalls {
		out = append(out, field{kind: fieldBalls}, field{kind: fieldPerBall})
	} else {
		out = append(out, field{kind: fieldFlour})
	}
	for i := range r.Ingredients {
		out = append(out, field{kind: fieldPercentage, index: i})
	}
	return out
}

func rawText(r domain.Recipe, f field) string {
	switch f.kind {
	case fieldFlour:
		return r.FlourWeight
	case fieldBalls:
		return r.NumberOfBalls
	case fieldPerBall:
		return r.WeightPerBall
	default:
		return r.Ingredients[f.index].Percentage
	}
}

const noFocus = -1

type model struct {
	ctx       context.Context
	eng       *engine.Engine
	sessionID string
	baseURL   string
	clip      domain.Clipboard
	log       *logger.Logger

	recipe domain.Recipe
	result domain.Result

	fields []field
	inputs []textinput.Model
	focus  int

	adding    bool
	nameInput textinput.Model

	showExport bool
	showLink   bool
	status     string
	err        error

	keys  keyMap
	help  help.Model
	width int
}

func newModel(ctx context.Context, eng *engine.Engine, sessionID string, cfg uiConfig) (model, error) {
	name := textinput.New()
	name.Placeholder = "Yeast=0.2"
	name.Prompt = "name[=%]: "
	name.PromptStyle = labelStyle
	name.Cursor.Style = cursorStyle
	name.CharLimit = 64

	m := model{
		ctx:       ctx,
		eng:       eng,
		sessionID: sessionID,
		baseURL:   cfg.baseURL,
		clip:      cfg.clip,
		log:       cfg.log,
		focus:     noFocus,
		nameInput: name,
		keys:      defaultKeyMap(),
		help:      help.New(),
	}

	res, err := eng.Result(ctx, sessionID)
	if err != nil {
		return model{}, fmt.Errorf("loading result: %w", err)
	}
	m.result = *res
	m.sync()
	return m, nil
}

func newInput() textinput.Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 12
	ti.Width = 9
	ti.Cursor.Style = cursorStyle
	return ti
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		if m.adding {
			return m.updateAdding(msg)
		}
		return m.updateKey(msg)
	}

	if m.adding {
		var cmd tea.Cmd
		m.nameInput, cmd = m.nameInput.Update(msg)
		return m, cmd
	}
	return m.updateInput(msg)
}

func (m model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Next):
		cmd := m.moveFocus(1)
		return m, cmd

	case key.Matches(msg, m.keys.Prev):
		cmd := m.moveFocus(-1)
		return m, cmd

	case key.Matches(msg, m.keys.Commit):
		if m.focus == noFocus {
			cmd := m.moveFocus(1)
			return m, cmd
		}
		m.commitFocused()
		m.setFocus(noFocus)
		m.sync()
		return m, nil

	case key.Matches(msg, m.keys.Blur):
		if m.focus == noFocus {
			m.showExport, m.showLink = false, false
			return m, nil
		}
		m.commitFocused()
		m.setFocus(noFocus)
		m.sync()
		return m, nil

	case key.Matches(msg, m.keys.ToggleMode):
		m.commitFocused()
		m.setFocus(noFocus)
		next := domain.ModeDoughBalls
		if m.recipe.Mode == domain.ModeDoughBalls {
			next = domain.ModeFlourWeight
		}
		m.apply(m.eng.SwitchMode(m.ctx, m.sessionID, next))
		m.sync()
		return m, nil

	case key.Matches(msg, m.keys.Export):
		m.showExport = !m.showExport
		return m, nil

	case key.Matches(msg, m.keys.Copy):
		m.copyMarkdown()
		return m, nil

	case key.Matches(msg, m.keys.Share):
		m.showLink = !m.showLink
		return m, nil

	case key.Matches(msg, m.keys.Add):
		m.commitFocused()
		m.setFocus(noFocus)
		m.sync()
		m.adding = true
		m.nameInput.Reset()
		cmd := m.nameInput.Focus()
		return m, cmd

	case key.Matches(msg, m.keys.Remove):
		f, ok := m.focusedField()
		if !ok || f.kind != fieldPercentage {
			m.status = "focus an ingredient to remove it"
			return m, nil
		}
		name := m.recipe.Ingredients[f.index].Name
		if m.apply(m.eng.RemoveIngredient(m.ctx, m.sessionID, f.index)) {
			m.status = "removed " + name
		}
		m.sync()
		return m, nil

	case key.Matches(msg, m.keys.Reset):
		m.setFocus(noFocus)
		if m.apply(m.eng.Reset(m.ctx, m.sessionID)) {
			m.status = "recipe reset"
		}
		m.sync()
		return m, nil

	case key.Matches(msg, m.keys.Help) && m.focus == noFocus:
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	return m.updateInput(msg)
}

// updateInput feeds msg to the focused input and stores the raw text when
// it changed. In dough-ball mode the engine re-derives on every edit.
func (m model) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.focus == noFocus {
		return m, nil
	}

	before := m.inputs[m.focus].Value()
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	if after := m.inputs[m.focus].Value(); after != before {
		m.editFocused(after)
		m.sync()
	}
	return m, cmd
}

func (m model) updateAdding(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.adding = false
		m.nameInput.Blur()
		return m, nil

	case tea.KeyEnter:
		m.adding = false
		m.nameInput.Blur()
		m.addIngredient(m.nameInput.Value())
		m.sync()
		return m, nil
	}

	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return m, cmd
}

func (m *model) addIngredient(text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	ing := domain.Ingredient{Name: text, Percentage: "0"}
	if strings.Contains(text, "=") {
		parsed, err := share.ParseIngredient(text)
		if err != nil {
			m.setError(err)
			return
		}
		ing = parsed
	}
	if m.apply(m.eng.AddIngredient(m.ctx, m.sessionID, ing.Name, ing.Percentage)) {
		m.status = "added " + strings.TrimSpace(ing.Name)
	}
}

func (m *model) copyMarkdown() {
	if err := export.Copy(m.clip, export.Markdown(m.result)); err != nil {
		m.setError(err)
		return
	}
	m.err = nil
	m.status = export.CopiedMessage
}

func (m *model) focusedField() (field, bool) {
	if m.focus == noFocus || m.focus >= len(m.fields) {
		return field{}, false
	}
	return m.fields[m.focus], true
}

// moveFocus commits the focused field (a blur) and focuses the next one in
// direction dir, wrapping around.
func (m *model) moveFocus(dir int) tea.Cmd {
	if len(m.fields) == 0 {
		return nil
	}
	m.commitFocused()

	next := 0
	switch {
	case m.focus == noFocus && dir < 0:
		next = len(m.fields) - 1
	case m.focus != noFocus:
		next = (m.focus + dir + len(m.fields)) % len(m.fields)
	}

	m.sync()
	return m.setFocus(next)
}

func (m *model) setFocus(i int) tea.Cmd {
	if m.focus != noFocus && m.focus < len(m.inputs) {
		m.inputs[m.focus].Blur()
	}
	if i < 0 || i >= len(m.inputs) {
		m.focus = noFocus
		return nil
	}
	m.focus = i
	return m.inputs[i].Focus()
}

func (m *model) editFocused(text string) {
	f, ok := m.focusedField()
	if !ok {
		return
	}
	switch f.kind {
	case fieldFlour:
		m.apply(m.eng.EditFlourWeight(m.ctx, m.sessionID, text))
	case fieldBalls:
		m.apply(m.eng.EditNumberOfBalls(m.ctx, m.sessionID, text))
	case fieldPerBall:
		m.apply(m.eng.EditWeightPerBall(m.ctx, m.sessionID, text))
	case fieldPercentage:
		m.apply(m.eng.EditPercentage(m.ctx, m.sessionID, f.index, text))
	}
}

func (m *model) commitFocused() {
	f, ok := m.focusedField()
	if !ok {
		return
	}
	switch f.kind {
	case fieldFlour:
		m.apply(m.eng.CommitFlourWeight(m.ctx, m.sessionID))
	case fieldBalls, fieldPerBall:
		m.apply(m.eng.CommitDoughBalls(m.ctx, m.sessionID))
	case fieldPercentage:
		m.apply(m.eng.CommitPercentage(m.ctx, m.sessionID, f.index))
	}
}

// apply stores a fresh result. It reports false and records the error when
// the engine call failed.
func (m *model) apply(res *domain.Result, err error) bool {
	if err != nil {
		m.setError(err)
		return false
	}
	m.err = nil
	m.result = *res
	return true
}

func (m *model) setError(err error) {
	m.err = err
	m.status = ""
	m.log.Warn("session %s: %v", m.sessionID, err)
}

// sync reloads the recipe and brings the inputs in line with it. Inputs are
// rebuilt when the field layout changed; otherwise only unfocused inputs
// are overwritten so the cursor of the focused one stays put.
func (m *model) sync() {
	r, err := m.eng.Recipe(m.ctx, m.sessionID)
	if err != nil {
		m.setError(err)
		return
	}
	m.recipe = r

	fields := fieldsFor(r)
	if !sameFields(fields, m.fields) {
		focus := m.focus
		m.fields = fields
		m.inputs = make([]textinput.Model, len(fields))
		for i := range m.inputs {
			m.inputs[i] = newInput()
		}
		m.focus = noFocus
		if focus >= len(fields) {
			focus = len(fields) - 1
		}
		if focus != noFocus {
			m.setFocus(focus)
		}
	}

	for i, f := range m.fields {
		v := rawText(r, f)
		if m.inputs[i].Value() == v {
			continue
		}
		if i == m.focus {
			m.inputs[i].SetValue(v)
			m.inputs[i].CursorEnd()
			continue
		}
		m.inputs[i].SetValue(v)
	}
}

func sameFields(a, b []field) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// ── View ─────────────────────────────────────────────────────────

func (m model) View() string {
	var b strings.Builder

	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")
	b.WriteString(m.renderScalars())
	b.WriteString("\n\n")
	b.WriteString(m.renderTable())
	b.WriteString("\n")

	if m.adding {
		b.WriteString("\n")
		b.WriteString(m.nameInput.View())
		b.WriteString("\n")
	}

	if m.showExport {
		b.WriteString("\n")
		b.WriteString(panelStyle.Render(strings.TrimRight(export.Markdown(m.result), "\n")))
		b.WriteString("\n")
	}

	if m.showLink {
		b.WriteString("\n")
		b.WriteString(m.renderLink())
		b.WriteString("\n")
	}

	switch {
	case m.err != nil:
		b.WriteString("\n" + urgentStyle.Render(m.err.Error()) + "\n")
	case m.status != "":
		b.WriteString("\n" + statusStyle.Render(m.status) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m model) renderTabs() string {
	var tabs []string
	for _, mode := range []domain.Mode{domain.ModeFlourWeight, domain.ModeDoughBalls} {
		style := tabStyle
		if mode == m.recipe.Mode {
			style = activeTabStyle
		}
		tabs = append(tabs, style.Render(mode.Label()))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m model) renderScalars() string {
	var lines []string
	for i, f := range m.fields {
		var label string
		switch f.kind {
		case fieldFlour:
			label = "Flour weight (g)"
		case fieldBalls:
			label = "Number of balls"
		case fieldPerBall:
			label = "Weight per ball (g)"
		default:
			continue
		}
		lines = append(lines, labelStyle.Width(22).Render(label)+m.inputs[i].View())
	}
	if m.recipe.Mode == domain.ModeDoughBalls {
		lines = append(lines, labelStyle.Width(22).Render("Flour weight (g)")+
			primaryStyle.Render(engine.FormatGrams(m.result.FlourWeight)))
	}
	return strings.Join(lines, "\n")
}

const (
	pctWidth    = 12
	weightWidth = 12
)

func (m model) renderTable() string {
	nameWidth := len("Ingredient")
	for _, ing := range m.recipe.Ingredients {
		if w := lipgloss.Width(ing.Name); w > nameWidth {
			nameWidth = w
		}
	}
	nameWidth += 2

	nameCol := lipgloss.NewStyle().Width(nameWidth)
	pctCol := lipgloss.NewStyle().Width(pctWidth)
	weightCol := lipgloss.NewStyle().Width(weightWidth).Align(lipgloss.Right)

	row := func(name, pct, weight string) string {
		return nameCol.Render(name) + pctCol.Render(pct) + weightCol.Render(weight)
	}

	lines := []string{
		headerStyle.Render(row("Ingredient", "%", "Weight (g)")),
		row(primaryStyle.Render(domain.FlourName), secondaryStyle.Render("100"),
			primaryStyle.Render(engine.FormatGrams(m.result.FlourWeight))),
	}

	for i, ing := range m.result.Ingredients {
		name := primaryStyle.Render(ing.Name)
		if ing.PreFerment {
			name = preFermentStyle.Render(ing.Name)
		}
		pct := ing.Percentage
		if idx := m.percentageInput(i); idx != noFocus {
			pct = m.inputs[idx].View()
		}
		lines = append(lines, row(name, pct, primaryStyle.Render(engine.FormatGrams(ing.Weight))))
	}

	lines = append(lines, row(totalStyle.Render("Total"), "",
		totalStyle.Render(engine.FormatGrams(m.result.TotalWeight))))
	return strings.Join(lines, "\n")
}

// percentageInput returns the input index for ingredient i.
func (m model) percentageInput(i int) int {
	for idx, f := range m.fields {
		if f.kind == fieldPercentage && f.index == i {
			return idx
		}
	}
	return noFocus
}

func (m model) renderLink() string {
	link, err := share.Link(m.baseURL, m.recipe)
	if err != nil {
		return urgentStyle.Render(err.Error())
	}
	return labelStyle.Render("Share: ") + statusStyle.Render(link)
}
