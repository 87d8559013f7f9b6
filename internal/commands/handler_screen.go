package commands

import (
	"context"
	"errors"
	"io"
	"text/template"

	"github.com/pixil98/go-tilequest/internal/game"
)

const defaultJournalTemplate = `== {{ .GoalTitle | upper }} ==
{{ if .Active -}}
{{ .Statement | wrap 76 }}
{{- if .Collection }}
Progress: {{ .Progress }}/{{ .Required }}{{ if .Validated }} - report back!{{ end }}
{{- end }}
{{- else -}}
No quest in progress. Look for someone who needs help.
{{- end }}
{{ if .Booklet }}Type 'goals' to open your goals booklet.{{ end }}
`

const defaultGoalsTemplate = `{{ range .Cards -}}
{{ if .Current }}>{{ else }} {{ end }}{{ printf "%2d" .Index }}. {{ .Title | title }}{{ if .HasPercentage }} [{{ .Percentage }}%]{{ end }}
{{ end -}}
Type 'goals <number>' to read about a goal.
`

const defaultGoalTemplate = `== {{ .Index }}. {{ .Title | upper }} ==
{{ .Explanation | wrap 76 }}
{{ with .Advice }}
What you can do: {{ . | wrap 76 }}
{{ end }}
{{- range .Facts }}
 * {{ . | wrap 72 | indent 3 | trim }}
{{- end }}
`

func screenTemplate(config map[string]any, key, def string) (*template.Template, error) {
	str, err := configString(config, key)
	if err != nil {
		return nil, err
	}
	if str == "" {
		str = def
	}
	return parseTemplate(str)
}

func writeScreen(w io.Writer, tmpl *template.Template, data any) error {
	out, err := execTemplate(tmpl, data)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}

// JournalHandlerFactory shows the quest journal.
//
// Config:
//   - template (optional): text/template over game.Journal
type JournalHandlerFactory struct{}

func (f *JournalHandlerFactory) ValidateConfig(config map[string]any) error {
	_, err := screenTemplate(config, "template", defaultJournalTemplate)
	return err
}

func (f *JournalHandlerFactory) Create(config map[string]any) (CommandFunc, error) {
	tmpl, err := screenTemplate(config, "template", defaultJournalTemplate)
	if err != nil {
		return nil, err
	}

	return func(_ context.Context, cmdCtx *CommandContext) error {
		j, err := cmdCtx.Game.OpenJournal()
		if errors.Is(err, game.ErrLocked) {
			return NewUserError("You do not have a quest journal yet.")
		}
		if err != nil {
			return err
		}
		return writeScreen(cmdCtx.Out, tmpl, j)
	}, nil
}

// GoalsHandlerFactory shows the goals booklet, or one goal in full when a
// number is given.
//
// Config:
//   - template (optional): text/template over {Cards []game.GoalCard}
//   - detail_template (optional): text/template over game.GoalCard
type GoalsHandlerFactory struct{}

func (f *GoalsHandlerFactory) ValidateConfig(config map[string]any) error {
	if _, err := screenTemplate(config, "template", defaultGoalsTemplate); err != nil {
		return err
	}
	_, err := screenTemplate(config, "detail_template", defaultGoalTemplate)
	return err
}

func (f *GoalsHandlerFactory) Create(config map[string]any) (CommandFunc, error) {
	list, err := screenTemplate(config, "template", defaultGoalsTemplate)
	if err != nil {
		return nil, err
	}
	detail, err := screenTemplate(config, "detail_template", defaultGoalTemplate)
	if err != nil {
		return nil, err
	}

	return func(_ context.Context, cmdCtx *CommandContext) error {
		cards, err := cmdCtx.Game.OpenGoals()
		if errors.Is(err, game.ErrLocked) {
			return NewUserError("You do not have the goals booklet yet.")
		}
		if err != nil {
			return err
		}

		n := cmdCtx.Number("goal", -1)
		if n < 0 {
			return writeScreen(cmdCtx.Out, list, struct{ Cards []game.GoalCard }{cards})
		}
		for _, c := range cards {
			if c.Index == n {
				return writeScreen(cmdCtx.Out, detail, c)
			}
		}
		return userErrorf("There is no goal %d.", n)
	}, nil
}
