package cmd

import (
	"github.com/apex/log"
	"github.com/spf13/cobra"
	"github.com/wiwski/euphrosyne-tools-api/pkg/azshare"
	"github.com/wiwski/euphrosyne-tools-api/pkg/config"
	"github.com/wiwski/euphrosyne-tools-api/pkg/projdata"
)

var corsAllowedOrigins string

// setCorsCmd sets the CORS rules on the file service so browsers can use the
// shared access signature URLs directly against the share.
var setCorsCmd = &cobra.Command{
	Use:   "set-cors",
	Short: "Set the CORS policy on the file share service",
	Run: func(cmd *cobra.Command, args []string) {
		c := mustLoadConfig()
		settings := config.LoadSettings(c)

		client, err := azshare.NewRestyClient(settings.StorageAccount, settings.StorageKey, settings.FileShare)
		if err != nil {
			log.Fatalf("Unable to create file share client: %s", err)
		}

		store := projdata.NewAzureStore(client, settings.ProjectsPathPrefix)
		if err := store.SetFileShareCORSPolicy(corsAllowedOrigins); err != nil {
			log.Fatalf("Unable to set CORS policy: %s", err)
		}

		log.Infof("CORS policy set for origins: %s", corsAllowedOrigins)
	},
}

func init() {
	setCorsCmd.Flags().StringVar(&corsAllowedOrigins, "origins", "*", "Comma-separated list of allowed origins")
	rootCmd.AddCommand(setCorsCmd)
}
