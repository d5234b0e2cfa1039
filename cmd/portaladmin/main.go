package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/morichal/MeetingPortal/initializers"
	service "github.com/morichal/MeetingPortal/service"
)

func newService() (*service.PortalService, error) {
	if err := initializers.LoadEnv(); err != nil {
		log.Printf("Warning: no .env file loaded: %s", err)
	}
	if err := initializers.ConnectDB(); err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}
	return service.NewPortalService(initializers.DB)
}

func main() {
	root := &cobra.Command{
		Use:           "portaladmin",
		Short:         "Administrative tasks for the meeting portal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	var onlyClient string
	setupCmd := &cobra.Command{
		Use:   "setup-clients",
		Short: "Create the initial client workspaces if they do not exist",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService()
			if err != nil {
				return err
			}

			seeds := []service.CreateClientInput{
				{Name: "Morichal", Slug: "morichal"},
				{Name: "Zidan", Slug: "zidan"},
			}
			for _, seed := range seeds {
				if onlyClient != "" && seed.Slug != onlyClient {
					continue
				}
				if _, err := svc.ClientBySlug(seed.Slug); err == nil {
					fmt.Printf("client %s already exists, skipping\n", seed.Slug)
					continue
				}
				client, err := svc.CreateClient(seed)
				if err != nil {
					return fmt.Errorf("creating client %s: %w", seed.Slug, err)
				}
				// Touching settings provisions the defaults row.
				if _, err := svc.GetSettings(client.Slug); err != nil {
					return fmt.Errorf("provisioning settings for %s: %w", seed.Slug, err)
				}
				fmt.Printf("created client %s (%s)\n", client.Name, client.Slug)
			}
			return nil
		},
	}
	setupCmd.Flags().StringVar(&onlyClient, "client", "", "seed only this client slug")

	resetUsageCmd := &cobra.Command{
		Use:   "reset-usage <client-slug>",
		Short: "Zero a client's monthly API usage counters",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService()
			if err != nil {
				return err
			}
			settings, err := svc.ResetUsage(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("usage counters reset for %s (reset date %s)\n",
				args[0], settings.UsageResetDate.Format("2006-01-02"))
			return nil
		},
	}

	root.AddCommand(setupCmd, resetUsageCmd)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
