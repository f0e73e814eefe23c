package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/devantler-tech/mssql-init/pkg/client/mssql"
	"github.com/devantler-tech/mssql-init/pkg/di"
	"github.com/devantler-tech/mssql-init/pkg/svc/provisioner"
	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"
)

// Plan output formats.
const (
	OutputText = "text"
	OutputYAML = "yaml"
)

// ErrUnsupportedOutput is returned for an unknown --output value.
var ErrUnsupportedOutput = errors.New("unsupported output format")

// planDocument is the machine readable form of a dry run.
type planDocument struct {
	Server        string             `json:"server"`
	AdminUser     string             `json:"adminUser"`
	AdminDatabase string             `json:"adminDatabase"`
	Database      string             `json:"database"`
	Steps         []provisioner.Step `json:"steps"`
}

// NewPlanCmd creates the plan command.
func NewPlanCmd(runtimeContainer *di.Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "plan",
		Short:        "Print the provisioning statements without connecting",
		Args:         cobra.NoArgs,
		RunE:         di.RunEWithRuntime(runtimeContainer, handlePlanRunE),
		SilenceUsage: true,
	}

	cmd.Flags().StringP("output", "o", OutputText, "output format: text or yaml")

	return cmd
}

func handlePlanRunE(cmd *cobra.Command, injector di.Injector) error {
	output, _ := cmd.Flags().GetString("output")
	if output != OutputText && output != OutputYAML {
		return fmt.Errorf("%w: %q", ErrUnsupportedOutput, output)
	}

	cfg, _, err := loadConfig(cmd, injector)
	if err != nil {
		return err
	}

	opts, err := provisioner.NewOptions(cfg)
	if err != nil {
		return err
	}

	admin := opts.AdminTarget()
	doc := planDocument{
		Server:        admin.Address(),
		AdminUser:     admin.User,
		AdminDatabase: admin.Database,
		Database:      opts.Database,
		Steps:         provisioner.Script(opts),
	}

	if output == OutputYAML {
		return writePlanYAML(cmd.OutOrStdout(), doc)
	}

	return writePlanText(cmd.OutOrStdout(), doc, admin)
}

func writePlanYAML(out io.Writer, doc planDocument) error {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("render plan: %w", err)
	}

	_, err = out.Write(data)
	if err != nil {
		return fmt.Errorf("write plan: %w", err)
	}

	return nil
}

func writePlanText(out io.Writer, doc planDocument, admin mssql.Target) error {
	catalogs := map[provisioner.Phase]string{
		provisioner.PhaseServer:   admin.Database,
		provisioner.PhaseDatabase: doc.Database,
	}

	var phase provisioner.Phase

	for _, step := range doc.Steps {
		if step.Phase != phase {
			phase = step.Phase

			_, err := fmt.Fprintf(out, "-- connect %s@%s/%s\n", doc.AdminUser, doc.Server, catalogs[phase])
			if err != nil {
				return fmt.Errorf("write plan: %w", err)
			}
		}

		_, err := fmt.Fprintf(out, "-- %s\n%s\nGO\n", step.Name, step.SQL)
		if err != nil {
			return fmt.Errorf("write plan: %w", err)
		}
	}

	return nil
}
