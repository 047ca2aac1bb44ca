// Package wizard provides the interactive configuration wizard behind
// valheimctl init.
//
// RunWizard asks a handful of questions with charmbracelet/huh and returns a
// WizardResult. BuildConfig turns the answers into a config.Config and
// WriteConfig writes it as commented YAML.
package wizard
