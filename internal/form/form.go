// Package form implements the interactive profile entry loop used by
// "barcut enter". One profile is entered per pass: its header values, then
// each cut group, then the choice to enter another profile.
package form

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/piwi3910/BarCut/internal/model"
	"github.com/piwi3910/BarCut/internal/report"
)

// ErrAborted is returned when the user quits the form.
var ErrAborted = errors.New("form aborted")

// customPreset is the select value for "type the profile by hand".
const customPreset = ""

// prompter asks the questions of one pass. The huh implementation renders
// forms on the terminal; tests script the answers.
type prompter interface {
	Profile(ctx context.Context, a *ProfileAnswers, presets []model.CatalogEntry) error
	Group(ctx context.Context, index int, g *GroupAnswers) error
	Another(ctx context.Context) (bool, error)
}

// Session collects profiles until the user stops.
type Session struct {
	Defaults model.AppConfig
	Catalog  model.Catalog
	Out      io.Writer // bar length warnings, nil discards
	Logger   *slog.Logger

	prompt prompter
}

// NewSession returns a session that prompts on the terminal. Accessible
// mode asks plain line-by-line questions, for screen readers and pipes.
func NewSession(defaults model.AppConfig, catalog model.Catalog, out io.Writer, accessible bool) *Session {
	return &Session{
		Defaults: defaults,
		Catalog:  catalog,
		Out:      out,
		Logger:   slog.Default(),
		prompt:   &huhPrompter{accessible: accessible},
	}
}

// Run loops until the user declines another profile. Profiles entered
// before an abort are returned alongside ErrAborted.
func (s *Session) Run(ctx context.Context) ([]model.Profile, error) {
	var profiles []model.Profile
	for {
		p, err := s.enterProfile(ctx)
		if err != nil {
			return profiles, err
		}
		profiles = append(profiles, p)
		s.logger().Debug("profile entered", "profile", p.Code, "cuts", len(p.Cuts))

		more, err := s.prompt.Another(ctx)
		if err != nil {
			return profiles, mapAbort(err)
		}
		if !more {
			return profiles, nil
		}
	}
}

func (s *Session) enterProfile(ctx context.Context) (model.Profile, error) {
	answers := NewProfileAnswers(s.Defaults)
	if err := s.prompt.Profile(ctx, &answers, s.Catalog.Entries); err != nil {
		return model.Profile{}, mapAbort(err)
	}
	profile, err := answers.Profile()
	if err != nil {
		return model.Profile{}, err
	}
	if warn := report.BarLengthWarning(profile); warn != "" {
		s.logger().Warn("bar length exceeds maximum", "profile", profile.Code, "bar_length_mm", profile.BarLength)
		if s.Out != nil {
			fmt.Fprintln(s.Out, warn)
		}
	}

	n, err := answers.GroupCount()
	if err != nil {
		return model.Profile{}, err
	}
	for i := 0; i < n; i++ {
		g := NewGroupAnswers()
		if err := s.prompt.Group(ctx, i, &g); err != nil {
			return model.Profile{}, mapAbort(err)
		}
		group, err := g.Group()
		if err != nil {
			return model.Profile{}, fmt.Errorf("cut #%d: %w", i+1, err)
		}
		profile.AddGroup(group)
	}
	return profile, nil
}

func (s *Session) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

func mapAbort(err error) error {
	if errors.Is(err, huh.ErrUserAborted) {
		return ErrAborted
	}
	return err
}

type huhPrompter struct {
	accessible bool
}

func (h *huhPrompter) run(ctx context.Context, groups ...*huh.Group) error {
	return huh.NewForm(groups...).
		WithTheme(createTheme()).
		WithAccessible(h.accessible).
		RunWithContext(ctx)
}

func (h *huhPrompter) Profile(ctx context.Context, a *ProfileAnswers, presets []model.CatalogEntry) error {
	if len(presets) > 0 {
		preset := customPreset
		options := []huh.Option[string]{huh.NewOption("Custom profile", customPreset)}
		for _, e := range presets {
			options = append(options, huh.NewOption(fmt.Sprintf("%s  %s", e.Code, e.Description), e.Code))
		}
		err := h.run(ctx, huh.NewGroup(
			huh.NewSelect[string]().
				Title("Start from catalog").
				Description("Use ↑/↓ to select, Enter to confirm").
				Options(options...).
				Value(&preset),
		))
		if err != nil {
			return err
		}
		for _, e := range presets {
			if e.Code == preset {
				a.FromCatalog(e)
				break
			}
		}
	}

	return h.run(ctx, huh.NewGroup(
		huh.NewInput().
			Title("Profile code").
			Placeholder("e.g., MARCO-20").
			Value(&a.Code).
			Validate(ValidateCode),
		huh.NewInput().
			Title("Profile weight (kg/m)").
			Value(&a.WeightPerMeter).
			Validate(ValidateNonNegative),
		huh.NewInput().
			Title(fmt.Sprintf("Bar length (max. %.2f m)", model.MaxBarLengthMM/1000)).
			Value(&a.BarLengthM).
			Validate(ValidatePositive),
		huh.NewInput().
			Title("Aluminum price per kg ($)").
			Value(&a.PricePerKg).
			Validate(ValidateNonNegative),
		huh.NewInput().
			Title("Number of cut types").
			CharLimit(3).
			Value(&a.CutTypes).
			Validate(ValidatePositiveInt),
	).Title("New profile"))
}

func (h *huhPrompter) Group(ctx context.Context, index int, g *GroupAnswers) error {
	n := strconv.Itoa(index + 1)
	return h.run(ctx,
		huh.NewGroup(
			huh.NewInput().
				Title("Length (mm) of cut #"+n).
				Value(&g.Length).
				Validate(ValidatePositive),
			huh.NewSelect[string]().
				Title("Adjustment on cut #"+n+"?").
				Options(
					huh.NewOption("No", string(model.AdjustNone)),
					huh.NewOption("Add", string(model.AdjustAdd)),
					huh.NewOption("Subtract", string(model.AdjustSubtract)),
				).
				Value(&g.Adjustment),
		).Title("Cut #"+n),
		huh.NewGroup(
			huh.NewInput().
				Title("Amount to adjust (mm)").
				Value(&g.AdjustBy).
				Validate(ValidateNonNegative),
		).WithHideFunc(func() bool {
			return g.Adjustment == string(model.AdjustNone)
		}),
		huh.NewGroup(
			huh.NewInput().
				Title("Quantity").
				Value(&g.Quantity).
				Validate(ValidatePositiveInt),
			huh.NewSelect[string]().
				Title("Angle of cut #"+n).
				Options(
					huh.NewOption("90°", "90"),
					huh.NewOption("45°", "45"),
				).
				Value(&g.Angle),
			huh.NewInput().
				Title("Label (optional)").
				Value(&g.Label),
		),
	)
}

func (h *huhPrompter) Another(ctx context.Context) (bool, error) {
	another := false
	err := h.run(ctx, huh.NewGroup(
		huh.NewConfirm().
			Title("Enter another profile?").
			Affirmative("Yes").
			Negative("No").
			Value(&another),
	))
	return another, err
}

// createTheme matches the huh form colors to the report palette.
func createTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Group.Title = lipgloss.NewStyle().
		Foreground(report.TitleColor).
		Bold(true).
		MarginBottom(1)

	t.Focused.Base = lipgloss.NewStyle().
		PaddingLeft(1).
		BorderStyle(lipgloss.ThickBorder()).
		BorderLeft(true).
		BorderForeground(report.TitleColor)
	t.Focused.Title = lipgloss.NewStyle().
		Foreground(report.TitleColor).
		Bold(true)
	t.Focused.Description = lipgloss.NewStyle().
		Foreground(report.MutedColor)
	t.Focused.ErrorIndicator = lipgloss.NewStyle().
		Foreground(report.ScrapColor).
		SetString(" *")
	t.Focused.ErrorMessage = lipgloss.NewStyle().
		Foreground(report.ScrapColor)
	t.Focused.SelectSelector = lipgloss.NewStyle().
		Foreground(report.TitleColor).
		SetString("> ")
	t.Focused.SelectedOption = lipgloss.NewStyle().
		Foreground(report.ReusableColor).
		Bold(true)

	t.Blurred = t.Focused
	t.Blurred.Base = lipgloss.NewStyle().
		PaddingLeft(1).
		BorderStyle(lipgloss.HiddenBorder()).
		BorderLeft(true)
	t.Blurred.Title = lipgloss.NewStyle().
		Foreground(report.MutedColor)

	return t
}
