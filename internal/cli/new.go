package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// newCommand creates the new command for scaffolding manifests.
func (c *CLI) newCommand() *cobra.Command {
	var (
		pattern string
		force   bool
	)

	cmd := &cobra.Command{
		Use:   "new [file]",
		Short: "Scaffold a starter manifest",
		Long: `Scaffold a starter manifest from a pattern template.

Without --pattern an interactive picker lists the available templates
with a preview. The manifest is written to the given file, defaulting
to diagram.toml.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "diagram.toml"
			if len(args) == 1 {
				path = args[0]
			}
			return runNew(path, pattern, force)
		},
	}

	cmd.Flags().StringVarP(&pattern, "pattern", "p", "", "template: "+templateNames())
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	return cmd
}

func runNew(path, pattern string, force bool) error {
	var tpl manifestTemplate
	if pattern != "" {
		t, ok := templateByName(pattern)
		if !ok {
			return fmt.Errorf("unknown pattern: %s (must be one of: %s)", pattern, templateNames())
		}
		tpl = t
	} else {
		t, picked, err := pickTemplate()
		if err != nil {
			return err
		}
		if !picked {
			printInfo("No pattern selected")
			return nil
		}
		tpl = t
	}

	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	}

	if err := os.WriteFile(path, []byte(tpl.Body), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	printSuccess("Created %s (%s)", path, tpl.Name)
	printNextStep("Render it", "sketchflow generate "+path)
	return nil
}

func templateNames() string {
	names := make([]string, len(templates))
	for i, t := range templates {
		names[i] = t.Name
	}
	return strings.Join(names, ", ")
}
