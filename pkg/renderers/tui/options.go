package tui

// Theme captures optional formatting hints the driver can apply when printing
// messages. Kept minimal to avoid coupling step flow to ANSI specifics.
type Theme struct {
	StepPrefix  string
	ErrorPrefix string
	InfoPrefix  string
}

// Option configures the TUI renderer.
type Option func(*Renderer)

// WithPromptDriver overrides the prompt driver used by the renderer.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Renderer) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithTheme applies optional message prefixes.
func WithTheme(theme Theme) Option {
	return func(r *Renderer) {
		r.theme = theme
	}
}
