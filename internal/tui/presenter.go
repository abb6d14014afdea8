package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/IvanShishkin/printhound/internal/core"
	"github.com/IvanShishkin/printhound/pkg/models"
)

// eventBuffer bounds the session events queued between repaints
const eventBuffer = 64

type listMsg []models.FileEntry

type statusMsg string

type selectionMsg int

// channelPresenter turns session events into messages for the program.
// Session calls made from Update must not block on the event loop, so
// events are queued and drained by listen.
type channelPresenter struct {
	events chan tea.Msg
}

var _ core.Presenter = channelPresenter{}

func newChannelPresenter() channelPresenter {
	return channelPresenter{events: make(chan tea.Msg, eventBuffer)}
}

func (p channelPresenter) ListChanged(list []models.FileEntry) {
	p.events <- listMsg(list)
}

func (p channelPresenter) StatusChanged(text string) {
	p.events <- statusMsg(text)
}

func (p channelPresenter) SelectionChanged(count int) {
	p.events <- selectionMsg(count)
}

// listen waits for the next session event
func (p channelPresenter) listen() tea.Cmd {
	return func() tea.Msg {
		return <-p.events
	}
}
