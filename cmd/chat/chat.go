package main

import (
	"chat-sync/domain"
	"chat-sync/repositories"
	"chat-sync/runtime"
	"context"
	"fmt"
	"strconv"
	"time"
)

const (
	settledNotice = "your name and color are settled once you have sent a message"
	syncTimeout   = time.Second
)

// chat turns the lines typed in the terminal into session intents.
type chat struct {
	session    *runtime.Session
	renderer   *Renderer
	repository repositories.IIdentityRepository // nil: nothing is remembered
}

func newChat(session *runtime.Session, renderer *Renderer, repository repositories.IIdentityRepository) *chat {
	return &chat{session: session, renderer: renderer, repository: repository}
}

// Handle runs one line and reports whether to quit.
func (c *chat) Handle(line string) bool {
	command := ParseCommand(line)
	var err error
	switch command.Name {
	case CommandQuit:
		return true
	case CommandAttention:
		err = c.session.RequestAttention()
	case CommandAway:
		err = c.session.SetVisible(false)
	case CommandBack:
		err = c.session.SetVisible(true)
	case CommandDismiss:
		index, convErr := strconv.Atoi(command.Arg)
		if convErr != nil || index < 1 {
			c.renderer.Notice("usage: /dismiss <n>")
			return false
		}
		err = c.session.DismissAt(index - 1)
	case CommandWho:
		c.renderer.Notifications(c.session.State().Notifications)
	case CommandRename:
		if command.Arg == "" {
			c.renderer.Notice("usage: /name <new name>")
			return false
		}
		err = c.changeIdentity(func(me domain.Identity) domain.Identity {
			me.Name = command.Arg
			return me
		})
	case CommandRecolor:
		err = c.changeIdentity(func(me domain.Identity) domain.Identity {
			me.Color = domain.RandomColor()
			return me
		})
	case CommandUnknown:
		c.renderer.Notice(fmt.Sprintf("unknown command %q", command.Arg))
	default:
		if err = c.session.Input(command.Arg); err == nil {
			err = c.session.Send(command.Arg)
		}
	}
	if err != nil {
		c.renderer.Notice(err.Error())
	}
	return false
}

// changeIdentity renames or recolors us, which is only allowed until the
// first message went out.
func (c *chat) changeIdentity(change func(domain.Identity) domain.Identity) error {
	ctx, cancel := context.WithTimeout(context.Background(), syncTimeout)
	defer cancel()
	if err := c.session.Sync(ctx); err != nil {
		return err
	}
	if c.session.State().HasSent {
		c.renderer.Notice(settledNotice)
		return nil
	}
	me := change(c.session.Identity())
	c.session.SetIdentity(me)
	if c.repository == nil {
		return nil
	}
	return c.repository.Save(me)
}
