package main

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/a-h/docchat/client"
	"github.com/a-h/docchat/models"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
)

type ChatCommand struct {
	DocchatURL string `help:"The URL of the docchat server." env:"DOCCHAT_URL" default:"http://localhost:8000"`
	DocURL     string `help:"Documentation URL to load before chatting." env:"DOC_URL" default:""`
}

func (c ChatCommand) Run(ctx context.Context) (err error) {
	dc := client.New(c.DocchatURL)

	if c.DocURL != "" {
		resp, err := dc.UploadDocURL(ctx, models.DocURLPostRequest{URL: c.DocURL})
		if err != nil {
			return fmt.Errorf("failed to upload document URL: %w", err)
		}
		if resp.Status != models.DocURLStatusSuccess {
			return fmt.Errorf("failed to load documentation, please check the URL: %s", resp.Message)
		}
	}

	p := tea.NewProgram(newModel(ctx, dc))
	if _, err = p.Run(); err != nil {
		return err
	}
	return nil
}

// Dracula color scheme.
var (
	Background  = lipgloss.Color("#282a36")
	CurrentLine = lipgloss.Color("#44475a")
	Comment     = lipgloss.Color("#6272a4")
	Cyan        = lipgloss.Color("#8be9fd")
	Pink        = lipgloss.Color("#ff79c6")
	Purple      = lipgloss.Color("#bd93f9")
	Red         = lipgloss.Color("#ff5555")
)

var headerStyle = lipgloss.NewStyle().Background(CurrentLine).Foreground(Purple).Bold(true).Margin(1).Padding(1)

const header = `API Doc Chatbot

Ask about the loaded API docs.`

// unableToGetResponse is shown in place of a reply when the server can't be reached.
const unableToGetResponse = "[Error: Unable to get response]"

type speaker string

const (
	speakerUser speaker = "user"
	speakerAI   speaker = "ai"
)

type turn struct {
	speaker speaker
	text    string
}

// toHistory converts turns to the history objects sent to the server, e.g.
// {"user": "..."} followed by {"ai": "..."}.
func toHistory(turns []turn) (history []map[string]any) {
	history = make([]map[string]any, len(turns))
	for i, t := range turns {
		history[i] = map[string]any{string(t.speaker): t.text}
	}
	return history
}

type chatPoster interface {
	ChatPost(ctx context.Context, req models.ChatPostRequest) (models.ChatPostResponse, error)
}

type chatReply struct {
	text string
	err  error
}

type model struct {
	viewport viewport.Model
	textarea textarea.Model
	ctx      context.Context
	client   chatPoster

	turns   []turn
	loading bool
	err     error
}

func newModel(ctx context.Context, client chatPoster) model {
	ta := textarea.New()
	ta.Placeholder = "Ask about the API docs..."
	ta.Focus()

	ta.Prompt = "┃ "
	ta.CharLimit = 1000

	ta.SetHeight(3)

	// Remove cursor line styling
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()

	ta.ShowLineNumbers = false

	vp := viewport.New(80, 20)
	vp.SetContent(headerStyle.Render(header))

	ta.KeyMap.InsertNewline.SetEnabled(false)

	return model{
		ctx:      ctx,
		client:   client,
		textarea: ta,
		viewport: vp,
	}
}

func (m model) Init() tea.Cmd {
	return textarea.Blink
}

// send posts the message with the turns before it as history.
func (m model) send(message string, history []turn) tea.Cmd {
	return func() tea.Msg {
		resp, err := m.client.ChatPost(m.ctx, models.ChatPostRequest{
			Message: message,
			History: toHistory(history),
		})
		if err != nil {
			return chatReply{text: unableToGetResponse, err: err}
		}
		return chatReply{text: resp.Response}
	}
}

var speakerToStyle = map[speaker]lipgloss.Style{
	speakerUser: lipgloss.NewStyle().Padding(1).Margin(1).MarginBottom(0).Background(Background).Foreground(Pink),
	speakerAI:   lipgloss.NewStyle().Padding(1).Margin(1).MarginBottom(0).Background(Background).Foreground(Cyan),
}

var speakerToLabel = map[speaker]string{
	speakerUser: "You:",
	speakerAI:   "AI:",
}

var statusStyle = lipgloss.NewStyle().Foreground(Comment).MarginLeft(1)
var errorStyle = lipgloss.NewStyle().Foreground(Red).MarginLeft(1)

func formatTurn(t turn) string {
	label, ok := speakerToLabel[t.speaker]
	if !ok {
		return t.text
	}
	wrapped := wordwrap.String(strings.TrimSpace(label+" "+t.text), 80)
	return speakerToStyle[t.speaker].Render(wrapped)
}

func (m *model) render() {
	var sb strings.Builder
	sb.WriteString(headerStyle.Render(header))
	sb.WriteString("\n")
	for _, t := range m.turns {
		sb.WriteString(formatTurn(t))
		sb.WriteString("\n")
	}
	m.viewport.SetContent(sb.String())
	m.viewport.GotoBottom()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case chatReply:
		m.loading = false
		m.err = msg.err
		m.turns = append(m.turns, turn{speaker: speakerAI, text: msg.text})
		m.render()
		return m, nil
	case tea.WindowSizeMsg:
		m.viewport.Width = msg.Width
		m.viewport.Height = msg.Height - m.textarea.Height() - 4
		m.textarea.SetWidth(msg.Width)
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "ctrl+c":
			return m, tea.Quit
		case "enter":
			v := strings.TrimSpace(m.textarea.Value())
			if v == "" || m.loading {
				return m, nil
			}
			m.textarea.Reset()
			history := slices.Clone(m.turns)
			m.turns = append(m.turns, turn{speaker: speakerUser, text: v})
			m.loading = true
			m.err = nil
			m.render()
			return m, m.send(v, history)
		default:
			var cmd tea.Cmd
			m.textarea, cmd = m.textarea.Update(msg)
			return m, cmd
		}

	case cursor.BlinkMsg:
		// Textarea should also process cursor blinks.
		var cmd tea.Cmd
		m.textarea, cmd = m.textarea.Update(msg)
		return m, cmd

	default:
		return m, nil
	}
}

func (m model) View() string {
	status := ""
	if m.loading {
		status = statusStyle.Render("AI is typing...")
	}
	if m.err != nil {
		status = errorStyle.Render(m.err.Error())
	}
	return fmt.Sprintf("%s\n%s\n%s",
		m.viewport.View(),
		status,
		m.textarea.View(),
	) + "\n\n"
}
