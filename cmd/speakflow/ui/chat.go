package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"speakflow/internal/profile"
	"speakflow/internal/store"
	"speakflow/internal/tutor"
)

// ChatDeps wires the services the chat view talks to.
type ChatDeps struct {
	Title     string
	Profile   profile.Profile
	Profiles  *profile.Service
	Pipeline  *tutor.Pipeline
	Bookmarks *store.BookmarkStore
	History   []tutor.Turn
}

type replyMsg struct {
	reply tutor.Reply
}

type progressMsg struct {
	profile profile.Profile
}

// Chat is the interactive tutoring session model.
type Chat struct {
	deps    ChatDeps
	theme   Theme
	input   textinput.Model
	spin    spinner.Model
	turns   []tutor.Turn
	waiting bool
	status  string
}

// NewChat creates the chat model seeded with any scenario history.
func NewChat(deps ChatDeps) *Chat {
	input := textinput.New()
	input.Placeholder = "Say something in English..."
	input.Focus()
	input.CharLimit = 500

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	return &Chat{
		deps:  deps,
		theme: NewTheme(deps.Profile.Settings.DarkMode),
		input: input,
		spin:  spin,
		turns: append([]tutor.Turn(nil), deps.History...),
	}
}

// Init implements tea.Model.
func (c *Chat) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (c *Chat) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return c, tea.Quit
		case "ctrl+b":
			c.bookmarkLastReply()
			return c, nil
		case "enter":
			text := strings.TrimSpace(c.input.Value())
			if text == "" || c.waiting {
				return c, nil
			}
			c.input.Reset()
			c.turns = append(c.turns, tutor.Turn{Role: tutor.RoleUser, English: text})
			c.waiting = true
			return c, tea.Batch(c.spin.Tick, c.send(text))
		}

	case replyMsg:
		c.waiting = false
		r := msg.reply
		c.turns = append(c.turns, tutor.Turn{
			Role:        tutor.RoleAssistant,
			English:     r.English,
			Korean:      r.Korean,
			Correction:  r.Correction,
			Suggestions: r.Suggestions,
		})
		if r.Degraded {
			c.status = "offline / fallback"
		} else {
			c.status = ""
		}
		return c, c.refreshProgress()

	case progressMsg:
		c.deps.Profile = msg.profile
		return c, nil

	case spinner.TickMsg:
		if !c.waiting {
			return c, nil
		}
		var cmd tea.Cmd
		c.spin, cmd = c.spin.Update(msg)
		return c, cmd
	}

	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return c, cmd
}

// send asks the pipeline for a reply and records the speaking event. The
// history snapshot excludes the turn being sent.
func (c *Chat) send(text string) tea.Cmd {
	history := append([]tutor.Turn(nil), c.turns[:len(c.turns)-1]...)
	pipeline := c.deps.Pipeline
	profiles := c.deps.Profiles

	return func() tea.Msg {
		reply := pipeline.Reply(context.Background(), text, history)
		if profiles != nil {
			_, _ = profiles.RecordSpeakingEvent(1)
		}
		return replyMsg{reply: reply}
	}
}

// refreshProgress reloads the active profile for the status bar.
func (c *Chat) refreshProgress() tea.Cmd {
	profiles := c.deps.Profiles
	if profiles == nil {
		return nil
	}
	return func() tea.Msg {
		p, err := profiles.Active()
		if err != nil {
			return nil
		}
		return progressMsg{profile: p}
	}
}

func (c *Chat) bookmarkLastReply() {
	if c.deps.Bookmarks == nil {
		return
	}
	for i := len(c.turns) - 1; i >= 0; i-- {
		if c.turns[i].Role == tutor.RoleAssistant {
			if _, err := c.deps.Bookmarks.Add(c.turns[i].English, c.turns[i].Korean); err == nil {
				c.status = "bookmarked"
			}
			return
		}
	}
}

// View implements tea.Model.
func (c *Chat) View() string {
	var b strings.Builder

	b.WriteString(c.theme.Title.Render("SpeakFlow — "+c.deps.Title) + "\n\n")

	for _, turn := range c.turns {
		if turn.Role == tutor.RoleUser {
			b.WriteString(c.theme.UserLine.Render("You: "+turn.English) + "\n")
			continue
		}
		b.WriteString(c.theme.TutorLine.Render("Tutor: "+turn.English) + "\n")
		if turn.Korean != "" {
			b.WriteString(c.theme.Korean.Render("       "+turn.Korean) + "\n")
		}
		if turn.Correction != "" {
			b.WriteString(c.theme.Correction.Render("       ✎ "+turn.Correction) + "\n")
		}
		for i, s := range turn.Suggestions {
			line := fmt.Sprintf("       %d) %s", i+1, s.English)
			if s.Korean != "" {
				line += "  (" + s.Korean + ")"
			}
			b.WriteString(c.theme.Suggestion.Render(line) + "\n")
		}
	}

	b.WriteString("\n")
	if c.waiting {
		b.WriteString(c.spin.View() + " thinking...\n")
	} else {
		b.WriteString(c.input.View() + "\n")
	}

	p := c.deps.Profile
	status := fmt.Sprintf("lvl %d · %d/%d xp · streak %d · today %d/%d",
		p.Level, p.XP, p.NextLevelXP, p.Stats.DaysStreak, p.Daily.Count, p.Daily.Target)
	b.WriteString(c.theme.Status.Render(status))
	if c.status != "" {
		b.WriteString("  " + c.theme.Offline.Render(c.status))
	}
	b.WriteString("\n  enter: send · ctrl+b: bookmark · esc: quit\n")

	return b.String()
}
