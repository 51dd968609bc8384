package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/Veraticus/wardrobe/internal/common"
	"github.com/Veraticus/wardrobe/internal/engine"
	"github.com/Veraticus/wardrobe/internal/model"
	"github.com/schollz/progressbar/v3"
)

// Prompter implements engine.Prompter on a plain terminal.
type Prompter struct {
	startTime   time.Time
	writer      io.Writer
	reader      *NonBlockingReader
	progressBar *progressbar.ProgressBar
	mu          sync.Mutex
	plain       bool
}

var _ engine.Prompter = (*Prompter)(nil)

// NewCLIPrompter creates a new CLI prompter with the given reader and writer.
func NewCLIPrompter(reader io.Reader, writer io.Writer) *Prompter {
	if reader == nil {
		reader = os.Stdin
	}
	if writer == nil {
		writer = os.Stdout
	}

	return &Prompter{
		reader:    NewNonBlockingReader(reader),
		writer:    writer,
		startTime: time.Now(),
	}
}

// ConfirmGarment shows the proposal and lets the user accept, edit or skip it.
func (p *Prompter) ConfirmGarment(ctx context.Context, req engine.ConfirmRequest) (engine.ConfirmForm, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return engine.ConfirmForm{}, err
	}

	form := req.Form
	title := fmt.Sprintf("Image %d of %d: %s", req.Position, req.Total, req.File.Name)

	if req.Problem != nil {
		p.println(FormatError(req.Problem.Message))
		edited, err := p.editField(ctx, form, req.Problem.Field)
		if err != nil {
			return engine.ConfirmForm{}, err
		}
		form = edited
	}

	for {
		p.println("")
		p.println(RenderBox(title, FormatConfirmForm(form)))
		p.println(FormatPrompt("Options:"))
		p.println("  [A] Save as shown")
		p.println("  [E] Edit fields")
		p.println("  [S] Skip this image")
		p.println("")

		choice, err := p.promptChoice(ctx, "Choice", []string{"a", "e", "s"})
		if err != nil {
			return engine.ConfirmForm{}, err
		}

		switch choice {
		case "a":
			return form, nil
		case "s":
			return engine.ConfirmForm{}, common.ErrConfirmCancelled
		case "e":
			edited, err := p.editForm(ctx, form)
			if err != nil {
				return engine.ConfirmForm{}, err
			}
			form = edited
		}
	}
}

// SetPlain turns off the color codes of the progress bar, for output that
// is not a terminal.
func (p *Prompter) SetPlain(plain bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.plain = plain
}

// StartProgress shows a progress bar for a run over total files.
func (p *Prompter) StartProgress(total int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.startTime = time.Now()
	p.println(FormatTitle(fmt.Sprintf("Uploading %d image(s)", total)))

	description := "[magenta][bold]Uploading garments...[reset]"
	theme := progressbar.Theme{
		Saucer:        "[green]=[reset]",
		SaucerHead:    "[green]>[reset]",
		SaucerPadding: " ",
		BarStart:      "[",
		BarEnd:        "]",
	}
	if p.plain {
		description = "Uploading garments..."
		theme.Saucer, theme.SaucerHead = "=", ">"
	}

	p.progressBar = progressbar.NewOptions(total,
		progressbar.OptionSetWriter(p.writer),
		progressbar.OptionEnableColorCodes(!p.plain),
		progressbar.OptionShowCount(),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetTheme(theme),
		progressbar.OptionOnCompletion(func() {
			if _, err := fmt.Fprintln(p.writer); err != nil {
				slog.Warn("Failed to write newline after progress bar", "error", err)
			}
		}),
	)
}

// Advance moves the progress bar to cursor.
func (p *Prompter) Advance(cursor int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.progressBar == nil || cursor <= 0 {
		return
	}
	if err := p.progressBar.Set(cursor); err != nil {
		slog.Warn("Failed to update progress bar", "error", err)
	}
}

// ShowCompletion finishes the progress bar and prints the run summary.
func (p *Prompter) ShowCompletion(report engine.WorkflowReport) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.progressBar != nil {
		if err := p.progressBar.Finish(); err != nil {
			slog.Warn("Failed to finish progress bar", "error", err)
		}
		p.progressBar = nil
	}
	p.println(RenderBox("Upload Complete", FormatWorkflowReport(report, time.Since(p.startTime))))
}

// editForm walks every field. An empty answer keeps the current value.
func (p *Prompter) editForm(ctx context.Context, form engine.ConfirmForm) (engine.ConfirmForm, error) {
	p.println(SubtleStyle.Render("Press enter to keep a value. Pick options by number or name, separated by commas."))
	for _, field := range []string{
		engine.FieldCategory, fieldType, engine.FieldColors, engine.FieldStyles,
		engine.FieldSeasons, fieldOccasions, fieldMaterial, fieldThickness, fieldDescription,
	} {
		edited, err := p.editField(ctx, form, field)
		if err != nil {
			return form, err
		}
		form = edited
	}
	return form, nil
}

// Fields without validation rules.
const (
	fieldType        = "type"
	fieldOccasions   = "occasions"
	fieldMaterial    = "material"
	fieldThickness   = "thickness"
	fieldDescription = "description"
)

func (p *Prompter) editField(ctx context.Context, form engine.ConfirmForm, field string) (engine.ConfirmForm, error) {
	var err error
	switch field {
	case engine.FieldCategory:
		form.Category, err = p.promptSingle(ctx, "Category", model.Categories, form.Category)
	case engine.FieldColors:
		form.Colors, err = p.promptMulti(ctx, "Colors", model.Colors, form.Colors)
	case engine.FieldStyles:
		form.Styles, err = p.promptMulti(ctx, "Styles", model.Styles, form.Styles)
	case engine.FieldSeasons:
		form.Seasons, err = p.promptMulti(ctx, "Seasons", model.Seasons, form.Seasons)
	case fieldOccasions:
		form.Occasions, err = p.promptMulti(ctx, "Occasions", model.Occasions, form.Occasions)
	case fieldThickness:
		form.Thickness, err = p.promptSingle(ctx, "Thickness", model.Thicknesses, form.Thickness)
	case fieldType:
		form.Type, err = p.promptText(ctx, "Type", form.Type)
	case fieldMaterial:
		form.Material, err = p.promptText(ctx, "Material", form.Material)
	case fieldDescription:
		form.Description, err = p.promptText(ctx, "Description", form.Description)
	}
	return form, err
}

func (p *Prompter) promptSingle(ctx context.Context, label string, options []string, current string) (string, error) {
	p.println(formatOptions(options, []string{current}))
	for {
		input, err := p.readLine(ctx, fmt.Sprintf("%s [%s]", label, current))
		if err != nil {
			return "", err
		}
		if input == "" {
			return current, nil
		}
		values, err := parseSelection(input, options)
		if err == nil && len(values) == 1 {
			return values[0], nil
		}
		p.println(FormatError("Pick exactly one option."))
	}
}

func (p *Prompter) promptMulti(ctx context.Context, label string, options, current []string) ([]string, error) {
	p.println(formatOptions(options, current))
	for {
		input, err := p.readLine(ctx, fmt.Sprintf("%s [%s]", label, strings.Join(current, model.ColorSeparator)))
		if err != nil {
			return nil, err
		}
		if input == "" {
			return current, nil
		}
		values, err := parseSelection(input, options)
		if err == nil {
			return values, nil
		}
		p.println(FormatError(err.Error()))
	}
}

func (p *Prompter) promptText(ctx context.Context, label, current string) (string, error) {
	input, err := p.readLine(ctx, fmt.Sprintf("%s [%s]", label, current))
	if err != nil {
		return "", err
	}
	if input == "" {
		return current, nil
	}
	return input, nil
}

func (p *Prompter) promptChoice(ctx context.Context, prompt string, validChoices []string) (string, error) {
	for {
		input, err := p.readLine(ctx, prompt)
		if err != nil {
			return "", err
		}

		choice := strings.ToLower(input)
		if slices.Contains(validChoices, choice) {
			return choice, nil
		}

		p.println(FormatError("Invalid choice. Please try again."))
	}
}

func (p *Prompter) readLine(ctx context.Context, prompt string) (string, error) {
	if _, err := fmt.Fprint(p.writer, FormatPrompt(prompt)); err != nil {
		return "", fmt.Errorf("failed to write prompt: %w", err)
	}

	line, err := p.reader.ReadLine(ctx)
	if err != nil {
		if errors.Is(err, ErrInputCancelled) {
			return "", ctx.Err()
		}
		if errors.Is(err, io.EOF) {
			return "", fmt.Errorf("input terminated: %w", common.ErrConfirmCancelled)
		}
		return "", err
	}
	return line, nil
}

func (p *Prompter) println(s string) {
	if _, err := fmt.Fprintln(p.writer, s); err != nil {
		slog.Warn("Failed to write prompt output", "error", err)
	}
}

// parseSelection resolves a comma separated answer against options.
// Tokens are 1-based option numbers or literal values; literals outside the
// options are kept so the user can name something the list lacks.
func parseSelection(input string, options []string) ([]string, error) {
	tokens := strings.FieldsFunc(input, func(r rune) bool {
		return r == ',' || r == '、' || r == ' ' || r == '，'
	})

	var values []string
	for _, tok := range tokens {
		value := tok
		if n, err := strconv.Atoi(tok); err == nil {
			if n < 1 || n > len(options) {
				return nil, fmt.Errorf("option %d does not exist", n)
			}
			value = options[n-1]
		}
		if !slices.Contains(values, value) {
			values = append(values, value)
		}
	}
	if len(values) == 0 {
		return nil, errors.New("pick at least one option")
	}
	return values, nil
}

func formatOptions(options, selected []string) string {
	parts := make([]string, len(options))
	for i, opt := range options {
		label := fmt.Sprintf("%d.%s", i+1, opt)
		if slices.Contains(selected, opt) {
			label = SuccessStyle.Render(label + SuccessIcon)
		}
		parts[i] = label
	}
	return "  " + strings.Join(parts, "  ")
}
