package qa

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/theimaginaryfoundation/ask-o-bot/engine"
)

const consoleWidth = 76

// Styles collects every lipgloss style the console renders with, so color
// can be switched off wholesale.
type Styles struct {
	Banner      lipgloss.Style
	BannerTitle lipgloss.Style
	Rule        lipgloss.Style
	RuleTitle   lipgloss.Style
	Dim         lipgloss.Style
	Error       lipgloss.Style
	Prompt      lipgloss.Style

	Reasoning      lipgloss.Style
	ReasoningTitle lipgloss.Style
	ReasoningText  lipgloss.Style
	Code           lipgloss.Style
	CodeTitle      lipgloss.Style
	Answer         lipgloss.Style
	AnswerTitle    lipgloss.Style
	Sources        lipgloss.Style
	SourcesTitle   lipgloss.Style

	QLabel lipgloss.Style
	ALabel lipgloss.Style
}

func defaultStyles() Styles {
	border := func(color string) lipgloss.Style {
		return lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(color)).
			Padding(0, 1).
			Width(consoleWidth)
	}
	title := func(color string) lipgloss.Style {
		return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(color))
	}
	return Styles{
		Banner:      border("6"),
		BannerTitle: title("6"),
		Rule:        lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		RuleTitle:   title("6"),
		Dim:         lipgloss.NewStyle().Foreground(lipgloss.Color("242")),
		Error:       lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		Prompt:      title("6"),

		Reasoning:      border("3"),
		ReasoningTitle: title("3"),
		ReasoningText:  lipgloss.NewStyle().Italic(true),
		Code:           border("2"),
		CodeTitle:      title("2"),
		Answer:         border("2"),
		AnswerTitle:    title("2"),
		Sources:        border("4"),
		SourcesTitle:   title("4"),

		QLabel: title("6"),
		ALabel: title("2"),
	}
}

func plainStyles() Styles {
	box := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		Padding(0, 1).
		Width(consoleWidth)
	plain := lipgloss.NewStyle()
	return Styles{
		Banner: box, BannerTitle: plain,
		Rule: plain, RuleTitle: plain,
		Dim: plain, Error: plain, Prompt: plain,
		Reasoning: box, ReasoningTitle: plain, ReasoningText: plain,
		Code: box, CodeTitle: plain,
		Answer: box, AnswerTitle: plain,
		Sources: box, SourcesTitle: plain,
		QLabel: plain, ALabel: plain,
	}
}

// Console is the single output target for the session. It is constructed
// explicitly and passed around so nothing writes through ambient globals.
type Console struct {
	out    io.Writer
	styles Styles
	md     *glamour.TermRenderer // nil renders answers as plain text
}

// NewConsole writes styled output to w. With color disabled, rendering is
// plain and deterministic, which is also what the tests rely on.
func NewConsole(w io.Writer, color bool) *Console {
	c := &Console{out: w}
	if !color {
		c.styles = plainStyles()
		return c
	}
	c.styles = defaultStyles()
	if r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(consoleWidth-4),
	); err == nil {
		c.md = r
	}
	return c
}

func (c *Console) rule(title string) {
	if title == "" {
		fmt.Fprintln(c.out, c.styles.Rule.Render(strings.Repeat("─", consoleWidth)))
		return
	}
	label := " " + title + " "
	side := (consoleWidth - lipgloss.Width(label)) / 2
	if side < 2 {
		side = 2
	}
	rest := consoleWidth - side - lipgloss.Width(label)
	if rest < 2 {
		rest = 2
	}
	fmt.Fprintln(c.out,
		c.styles.Rule.Render(strings.Repeat("─", side))+
			c.styles.RuleTitle.Render(label)+
			c.styles.Rule.Render(strings.Repeat("─", rest)))
}

func (c *Console) panel(title string, titleStyle, box lipgloss.Style, body string) {
	fmt.Fprintln(c.out, titleStyle.Render(title))
	fmt.Fprintln(c.out, box.Render(body))
}

// Welcome prints the startup banner. reset re-renders it.
func (c *Console) Welcome(transcripts int, model, subModel string) {
	body := c.styles.BannerTitle.Render("Podcast Transcript Q&A") + "\n\n" +
		c.styles.Dim.Render(fmt.Sprintf(
			"• %d transcripts loaded\n• Models: %s / %s\n• Conversational: follow-ups use context\n• Type 'help' for commands",
			transcripts, model, subModel))
	fmt.Fprintf(c.out, "\n%s\n\n", c.styles.Banner.Render(body))
}

// Help prints the command reference.
func (c *Console) Help() {
	rows := [][2]string{
		{"quit, exit, q", "Exit"},
		{"help", "Show commands"},
		{"reset", "Clear conversation history"},
		{"history", "Show conversation history"},
	}
	var b strings.Builder
	for i, row := range rows {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%-16s %s", row[0], row[1])
	}
	fmt.Fprintf(c.out, "%s\n\n", c.styles.Banner.Render(b.String()))
}

// Prompt writes the input marker without a trailing newline.
func (c *Console) Prompt() {
	fmt.Fprint(c.out, c.styles.Prompt.Render("?")+" ")
}

// QuestionHeader separates a question's processing from the prompt.
func (c *Console) QuestionHeader(question string, priorTurns int) {
	fmt.Fprintln(c.out)
	if priorTurns > 0 {
		fmt.Fprintln(c.out, c.styles.Dim.Render(fmt.Sprintf("Context: %d previous turn(s)", priorTurns)))
	}
	c.rule(elide(question, 60))
}

// Event renders one progress event from the interpreter.
func (c *Console) Event(ev Event) {
	switch ev.Kind {
	case EventIterationStart:
		fmt.Fprintln(c.out)
		c.rule(fmt.Sprintf("Step %d", ev.Step))
	case EventReasoning:
		c.panel("Reasoning", c.styles.ReasoningTitle, c.styles.Reasoning, c.styles.ReasoningText.Render(ev.Text))
	case EventCode:
		c.panel("Code", c.styles.CodeTitle, c.styles.Code, ev.Text)
	}
}

// Answer renders the engine's result: the answer as markdown when a
// renderer is available, then any source citations.
func (c *Console) Answer(res engine.Result) {
	fmt.Fprintln(c.out)
	c.rule("Answer")
	fmt.Fprintln(c.out)

	body := res.Answer
	if c.md != nil {
		if rendered, err := c.md.Render(res.Answer); err == nil {
			body = strings.TrimRight(rendered, "\n")
		}
	}
	c.panel("Response", c.styles.AnswerTitle, c.styles.Answer, body)

	if len(res.Sources) > 0 {
		var b strings.Builder
		for i, s := range res.Sources {
			if i > 0 {
				b.WriteString("\n")
			}
			b.WriteString("• " + s)
		}
		fmt.Fprintln(c.out)
		c.panel("Sources", c.styles.SourcesTitle, c.styles.Sources, b.String())
	}
}

// HistoryList shows every recorded exchange, answers elided for display.
func (c *Console) HistoryList(history []Exchange) {
	if len(history) == 0 {
		fmt.Fprintln(c.out, c.styles.Dim.Render("No history yet."))
		fmt.Fprintln(c.out)
		return
	}
	for i, ex := range history {
		fmt.Fprintf(c.out, "\n%s %s\n", c.styles.QLabel.Render(fmt.Sprintf("Q%d:", i+1)), ex.Question)
		fmt.Fprintf(c.out, "%s %s\n", c.styles.ALabel.Render(fmt.Sprintf("A%d:", i+1)), elide(ex.Answer, 200))
	}
	fmt.Fprintln(c.out)
}

// Statusf prints a dim status line.
func (c *Console) Statusf(format string, args ...any) {
	fmt.Fprintln(c.out, c.styles.Dim.Render(fmt.Sprintf(format, args...)))
}

// Errorf prints a per-question error without terminating the session.
func (c *Console) Errorf(format string, args ...any) {
	fmt.Fprintf(c.out, "\n%s\n\n", c.styles.Error.Render(fmt.Sprintf(format, args...)))
}

// Farewell prints the exit message.
func (c *Console) Farewell() {
	fmt.Fprintf(c.out, "\n%s\n", c.styles.Dim.Render("Goodbye!"))
}
