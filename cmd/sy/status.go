package main

import (
	"fmt"

	"github.com/arjunvn/sahaya/internal/complaint"
	"github.com/arjunvn/sahaya/internal/dispatch"
	"github.com/arjunvn/sahaya/internal/models"
	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Slot status commands",
	}

	cmd.AddCommand(newStatusUpdateCmd())
	return cmd
}

func newStatusUpdateCmd() *cobra.Command {
	var (
		configPath  string
		volunteerID string
		dispatchID  string
		to          string
	)

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Advance a volunteer's slot status",
		Long: `Moves the caller's role-slot forward: auto_dispatched to in_progress to
resolved (skipping straight to resolved is allowed). Each volunteer can only
touch their own slot. When a volunteer has open assignments on more than one
dispatch record, --dispatch selects which one.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(cmd, configPath, dispatch.UpdateOpts{
				VolunteerID: volunteerID,
				DispatchID:  dispatchID,
				To:          to,
			})
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "sahaya.yaml", "path to Sahaya config file")
	cmd.Flags().StringVar(&volunteerID, "volunteer", "", "acting volunteer ID (required)")
	cmd.Flags().StringVar(&dispatchID, "dispatch", "", "dispatch record ID, required only when ambiguous")
	cmd.Flags().StringVar(&to, "to", "", "target status: in_progress or resolved (required)")
	cmd.MarkFlagRequired("volunteer")
	cmd.MarkFlagRequired("to")
	return cmd
}

func runStatus(cmd *cobra.Command, configPath string, opts dispatch.UpdateOpts) error {
	_, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}

	record, err := dispatch.UpdateStatus(gormDB, opts)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Updated dispatch %s\n", record.ID)
	for _, category := range models.Categories {
		fmt.Fprintf(out, "  %-7s %s\n", category, formatSlot(record.Slot(category)))
	}

	c, err := complaint.Get(gormDB, record.ComplaintID)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Complaint %s is %s\n", c.ID, c.Status)
	return nil
}
