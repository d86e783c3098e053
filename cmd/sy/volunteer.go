package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/arjunvn/sahaya/internal/models"
	"github.com/arjunvn/sahaya/internal/volunteer"
	"github.com/spf13/cobra"
)

func newVolunteerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "volunteer",
		Short: "Volunteer directory commands",
	}

	cmd.AddCommand(newVolunteerAddCmd())
	cmd.AddCommand(newVolunteerListCmd())
	cmd.AddCommand(newVolunteerShowCmd())
	cmd.AddCommand(newVolunteerEmailSentCmd())
	cmd.AddCommand(newVolunteerActivateCmd())
	cmd.AddCommand(newVolunteerBanCmd())
	return cmd
}

func newVolunteerAddCmd() *cobra.Command {
	var (
		configPath string
		name       string
		email      string
		category   string
		location   string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a new volunteer",
		Long:  "Registers a volunteer in pending state. Volunteers only receive dispatches after activation.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVolunteerAdd(cmd, configPath, volunteer.CreateOpts{
				Name:     name,
				Email:    email,
				Category: category,
				Location: location,
			})
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "sahaya.yaml", "path to Sahaya config file")
	cmd.Flags().StringVar(&name, "name", "", "volunteer name (required)")
	cmd.Flags().StringVar(&email, "email", "", "contact email")
	cmd.Flags().StringVar(&category, "category", "", "response category: legal, police, or mental (required)")
	cmd.Flags().StringVar(&location, "location", "", "home coordinates as \"lat,lon\"")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("category")
	return cmd
}

func runVolunteerAdd(cmd *cobra.Command, configPath string, opts volunteer.CreateOpts) error {
	_, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}

	v, err := volunteer.Create(gormDB, opts)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Registered volunteer %s (%s, %s)\n", v.ID, v.Name, v.Category)
	fmt.Fprintf(out, "Status: %s\n", v.Status)
	return nil
}

func newVolunteerListCmd() *cobra.Command {
	var (
		configPath string
		category   string
		status     string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List volunteers",
		Long:  "Lists volunteers with optional filters. Output is formatted as a table.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVolunteerList(cmd, configPath, volunteer.ListFilters{
				Category: category,
				Status:   status,
			})
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "sahaya.yaml", "path to Sahaya config file")
	cmd.Flags().StringVar(&category, "category", "", "filter by category")
	cmd.Flags().StringVar(&status, "status", "", "filter by status")
	return cmd
}

func runVolunteerList(cmd *cobra.Command, configPath string, filters volunteer.ListFilters) error {
	_, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}

	vols, err := volunteer.List(gormDB, filters)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(vols) == 0 {
		fmt.Fprintln(out, "No volunteers found.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tSTATUS\tLOCATION")
	for _, v := range vols {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			v.ID, truncate(v.Name, 30), v.Category, v.Status, dash(v.Location))
	}
	w.Flush()
	return nil
}

func newVolunteerShowCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "show <volunteer-id>",
		Short: "Show volunteer details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVolunteerShow(cmd, configPath, args[0])
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "sahaya.yaml", "path to Sahaya config file")
	return cmd
}

func runVolunteerShow(cmd *cobra.Command, configPath, id string) error {
	_, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}

	v, err := volunteer.Get(gormDB, id)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "ID:       %s\n", v.ID)
	fmt.Fprintf(out, "Name:     %s\n", v.Name)
	fmt.Fprintf(out, "Email:    %s\n", dash(v.Email))
	fmt.Fprintf(out, "Category: %s\n", v.Category)
	fmt.Fprintf(out, "Status:   %s\n", v.Status)
	fmt.Fprintf(out, "Location: %s\n", dash(v.Location))
	return nil
}

func newVolunteerEmailSentCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "email-sent <volunteer-id>",
		Short: "Mark the verification email as sent",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVolunteerTransition(cmd, configPath, args[0], models.VolunteerEmailSent)
		},
		Args: cobra.ExactArgs(1),
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "sahaya.yaml", "path to Sahaya config file")
	return cmd
}

func newVolunteerActivateCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "activate <volunteer-id>",
		Short: "Activate a volunteer for dispatch eligibility",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVolunteerTransition(cmd, configPath, args[0], models.VolunteerActive)
		},
		Args: cobra.ExactArgs(1),
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "sahaya.yaml", "path to Sahaya config file")
	return cmd
}

func newVolunteerBanCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "ban <volunteer-id>",
		Short: "Ban a volunteer (terminal)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVolunteerTransition(cmd, configPath, args[0], models.VolunteerBanned)
		},
		Args: cobra.ExactArgs(1),
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "sahaya.yaml", "path to Sahaya config file")
	return cmd
}

func runVolunteerTransition(cmd *cobra.Command, configPath, id, to string) error {
	_, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}

	v, err := volunteer.Transition(gormDB, id, to)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Volunteer %s is now %s\n", v.ID, v.Status)
	return nil
}
