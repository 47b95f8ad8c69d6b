package cmd

import (
	"context"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/Rorical/RoriShell/internal/ai"
	"github.com/Rorical/RoriShell/internal/utils"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with the model interactively",
	Long:  `Simple request/response chat. Nothing said here is ever executed.`,
	Run: func(cmd *cobra.Command, args []string) {
		backend, err := resolveBackend()
		if err != nil {
			fail(err)
			os.Exit(exitFailure)
		}

		p := tea.NewProgram(newChatModel(backend))
		if _, err := p.Run(); err != nil {
			fail(err)
			os.Exit(exitFailure)
		}
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

type replyMsg struct {
	text string
	err  error
}

type chatModel struct {
	backend  ai.Backend
	messages []ai.Message
	input    string
	loading  bool
	err      error
}

func newChatModel(backend ai.Backend) chatModel {
	return chatModel{backend: backend}
}

func (m chatModel) Init() tea.Cmd {
	return nil
}

func (m chatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case replyMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.messages = append(m.messages, ai.Message{Role: ai.RoleAssistant, Content: strings.TrimSpace(msg.text)})
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			text := strings.TrimSpace(m.input)
			if m.loading || text == "" {
				return m, nil
			}
			m.messages = append(m.messages, ai.Message{Role: ai.RoleUser, Content: text})
			m.input = ""
			m.loading = true
			m.err = nil
			return m, m.send()
		case tea.KeyBackspace:
			if runes := []rune(m.input); len(runes) > 0 {
				m.input = string(runes[:len(runes)-1])
			}
			return m, nil
		case tea.KeySpace:
			m.input += " "
			return m, nil
		case tea.KeyRunes:
			m.input += string(msg.Runes)
			return m, nil
		}
	}
	return m, nil
}

// send snapshots the history so the command closure does not race the model.
func (m chatModel) send() tea.Cmd {
	history := make([]ai.Message, 0, len(m.messages)+1)
	history = append(history, ai.Message{Role: ai.RoleSystem, Content: ai.ChatPrompt})
	history = append(history, m.messages...)
	backend := m.backend

	return func() tea.Msg {
		text, err := backend.Chat(context.Background(), history)
		return replyMsg{text: text, err: err}
	}
}

func (m chatModel) View() string {
	var b strings.Builder

	b.WriteString(utils.ProgramStyle().Render("-- RORISHELL CHAT --"))
	b.WriteString("\n\n")

	for _, msg := range m.messages {
		switch msg.Role {
		case ai.RoleUser:
			b.WriteString(utils.UserStyle().Render("You: " + msg.Content))
		case ai.RoleAssistant:
			b.WriteString(utils.AssistantStyle().Render("Assistant: " + msg.Content))
		}
		b.WriteString("\n\n")
	}

	if m.err != nil {
		b.WriteString(utils.ErrorStyle().Render("Error: "+m.err.Error()) + "\n\n")
	}

	b.WriteString("> " + m.input)
	b.WriteString("\n")
	status := "Enter to send, Esc to quit"
	if m.loading {
		status = "Waiting for reply..."
	}
	b.WriteString(utils.StatusStyle().Render(status))
	b.WriteString("\n")

	return b.String()
}
