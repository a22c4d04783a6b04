package main

import (
	"chat-sync/domain"
	"chat-sync/projection"
	"fmt"
	"io"
	"strconv"

	"github.com/google/uuid"
	"github.com/gookit/color"
	"github.com/olekukonko/tablewriter"
)

var (
	attentionStyle = color.New(color.FgYellow, color.OpBold)
	noticeStyle    = color.New(color.FgGray)
)

// Renderer prints the state of the session as a scrolling log. It only
// prints what changed since the previous state.
type Renderer struct {
	w         io.Writer
	rendered  int
	first     domain.Message
	phase     domain.Phase
	identity  domain.Identity
	typing    string
	attention bool
	announced map[uuid.UUID]struct{}
}

func NewRenderer(w io.Writer) *Renderer {
	return &Renderer{w: w, announced: make(map[uuid.UUID]struct{})}
}

func (r *Renderer) Render(state projection.State) {
	if state.Identity != r.identity {
		if r.identity.Name != "" {
			fmt.Fprintf(r.w, "* you are now %s\n", r.Name(state.Identity))
		}
		r.identity = state.Identity
	}
	if r.replaced(state) {
		fmt.Fprintln(r.w, noticeStyle.Render("--- conversation ---"))
		r.rendered = 0
	}
	for _, message := range state.Messages[r.rendered:] {
		r.message(message)
	}
	r.rendered = len(state.Messages)
	if len(state.Messages) > 0 {
		r.first = state.Messages[0]
	}
	r.phase = state.Phase

	for _, notification := range state.Notifications {
		if _, ok := r.announced[notification.ID]; ok {
			continue
		}
		r.announced[notification.ID] = struct{}{}
		fmt.Fprintf(r.w, "* %s %s\n", r.Name(domain.Identity{Name: notification.Author}), notification.Text)
	}

	if state.Typing != r.typing {
		if state.Typing != "" {
			fmt.Fprintln(r.w, noticeStyle.Render(state.Typing))
		}
		r.typing = state.Typing
	}

	if state.Attention && !r.attention {
		fmt.Fprintln(r.w, attentionStyle.Render("!!! ATTENTION !!!"))
	}
	r.attention = state.Attention
}

// replaced tells whether the log was swapped for the server history.
func (r *Renderer) replaced(state projection.State) bool {
	if state.Phase == domain.Live && r.phase != domain.Live {
		return true
	}
	if len(state.Messages) < r.rendered {
		return true
	}
	return r.rendered > 0 && state.Messages[0] != r.first
}

func (r *Renderer) message(message domain.Message) {
	line := fmt.Sprintf("[%s] %s: %s", message.Hour,
		r.Name(domain.Identity{Name: message.Name, Color: message.Color}), message.Message)
	if message.Attention {
		line = attentionStyle.Render(line)
	}
	fmt.Fprintln(r.w, line)
}

// Name renders a participant in its own color.
func (r *Renderer) Name(identity domain.Identity) string {
	if identity.Color == "" {
		return identity.Name
	}
	return color.HEX(identity.Color).Sprint(identity.Name)
}

func (r *Renderer) Notice(text string) {
	fmt.Fprintln(r.w, noticeStyle.Render(text))
}

// Notifications prints the pending presence toasts, numbered for /dismiss.
func (r *Renderer) Notifications(notifications []domain.Notification) {
	if len(notifications) == 0 {
		r.Notice("nobody joined lately")
		return
	}
	table := tablewriter.NewWriter(r.w)
	table.SetHeader([]string{"#", "Who", "What"})
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetBorder(false)
	for i, notification := range notifications {
		table.Append([]string{strconv.Itoa(i + 1), notification.Author, notification.Text})
	}
	table.Render()
}
