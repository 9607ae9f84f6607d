package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/danielh/resume-optimizer/internal/db"
	"github.com/danielh/resume-optimizer/internal/profiles"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage stored candidate profiles",
	Long:  `Create, inspect, and delete candidate profiles in the PostgreSQL store, and rank a stored profile's content against a job description.`,
}

var (
	profileDatabaseURL string
	profileOut         string

	retrieveJobPath   string
	retrieveThreshold float64
	retrieveMax       int
)

var profileAddCmd = &cobra.Command{
	Use:   "add <profile.json>",
	Short: "Validate and store a candidate profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		profile, err := profiles.LoadFromFile(args[0])
		if err != nil {
			return err
		}

		store, closeStore, err := openProfileStore()
		if err != nil {
			return err
		}
		defer closeStore()

		if err := store.Save(context.Background(), profile); err != nil {
			return fmt.Errorf("failed to save profile: %w", err)
		}
		fmt.Printf("Saved profile %s\n", profile.ProfileID)
		return nil
	},
}

var profileGetCmd = &cobra.Command{
	Use:   "get <profile-id>",
	Short: "Print a stored profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		store, closeStore, err := openProfileStore()
		if err != nil {
			return err
		}
		defer closeStore()

		profile, err := store.Get(context.Background(), args[0])
		if err != nil {
			return err
		}
		return writeJSONOutput(profileOut, profile)
	},
}

var profileListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored profiles",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		store, closeStore, err := openProfileStore()
		if err != nil {
			return err
		}
		defer closeStore()

		list, err := store.List(context.Background())
		if err != nil {
			return err
		}
		for _, profile := range list {
			fmt.Printf("%s\t%s\n", profile.ProfileID, profile.Name)
		}
		fmt.Printf("%d profiles\n", len(list))
		return nil
	},
}

var profileDeleteCmd = &cobra.Command{
	Use:   "delete <profile-id>",
	Short: "Delete a stored profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		store, closeStore, err := openProfileStore()
		if err != nil {
			return err
		}
		defer closeStore()

		if err := store.Delete(context.Background(), args[0]); err != nil {
			return err
		}
		fmt.Printf("Deleted profile %s\n", args[0])
		return nil
	},
}

var profileRetrieveCmd = &cobra.Command{
	Use:   "retrieve <profile-id>",
	Short: "Rank a stored profile's content against a job description",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		job, err := loadJobJSON(retrieveJobPath)
		if err != nil {
			return err
		}

		store, closeStore, err := openProfileStore()
		if err != nil {
			return err
		}
		defer closeStore()

		profile, err := store.Get(context.Background(), args[0])
		if err != nil {
			return err
		}

		retriever := profiles.NewRetriever(retrieveThreshold, retrieveMax)
		return writeJSONOutput(profileOut, map[string]any{
			"profile_id":       profile.ProfileID,
			"fragments":        retriever.Retrieve(profile, job),
			"relevant_profile": retriever.RelevantProfile(profile, job),
		})
	},
}

func init() {
	profileCmd.PersistentFlags().StringVar(&profileDatabaseURL, "db-url", "", "PostgreSQL connection URL (defaults to DATABASE_URL env var)")
	profileCmd.PersistentFlags().StringVarP(&profileOut, "out", "o", "", "Output JSON path (defaults to stdout)")

	profileRetrieveCmd.Flags().StringVarP(&retrieveJobPath, "job", "j", "", "Path to job description JSON (from 'ingest')")
	profileRetrieveCmd.Flags().Float64Var(&retrieveThreshold, "threshold", 0, "Similarity threshold in [0,1]")
	profileRetrieveCmd.Flags().IntVar(&retrieveMax, "max-fragments", 0, "Maximum fragments returned")
	_ = profileRetrieveCmd.MarkFlagRequired("job")

	profileCmd.AddCommand(profileAddCmd, profileGetCmd, profileListCmd, profileDeleteCmd, profileRetrieveCmd)
	rootCmd.AddCommand(profileCmd)
}

// openProfileStore connects to the PostgreSQL profile store. The returned
// close func releases the underlying pool.
func openProfileStore() (profiles.Store, func(), error) {
	databaseURL := profileDatabaseURL
	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	if databaseURL == "" {
		return nil, nil, fmt.Errorf("DATABASE_URL environment variable or --db-url flag is required")
	}

	database, err := db.Connect(context.Background(), databaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return profiles.NewPostgresStore(database), database.Close, nil
}
