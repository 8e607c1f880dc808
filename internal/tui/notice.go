package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/theirongolddev/bliss/internal/tui/components"
)

// notice is the transient notification shown under the header.
type notice struct {
	level components.NoticeLevel
	text  string
	seq   int
}

// noticeExpiredMsg fires when a notice's timer runs out. A message whose
// seq no longer matches the visible notice belongs to a superseded or
// dismissed notice and is ignored.
type noticeExpiredMsg struct{ seq int }

// notify replaces the visible notice and starts its expiry timer.
func (a *App) notify(level components.NoticeLevel, text string) tea.Cmd {
	a.noticeSeq++
	a.notice = notice{level: level, text: text, seq: a.noticeSeq}

	seq := a.noticeSeq
	return tea.Tick(a.noticeTTL, func(time.Time) tea.Msg {
		return noticeExpiredMsg{seq: seq}
	})
}

func (a *App) notifyError(err error) tea.Cmd {
	return a.notify(components.NoticeError, err.Error())
}

func (a *App) dismissNotice() {
	a.notice = notice{}
}

func (a App) hasNotice() bool {
	return a.notice.text != ""
}

func (a App) expireNotice(msg noticeExpiredMsg) App {
	if a.hasNotice() && msg.seq == a.notice.seq {
		a.dismissNotice()
	}
	return a
}
