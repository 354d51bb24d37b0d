/*
Copyright © 2024 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"os"

	"github.com/apex/log"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"
	"github.com/wiwski/euphrosyne-tools-api/pkg/azshare"
	"github.com/wiwski/euphrosyne-tools-api/pkg/config"
	"github.com/wiwski/euphrosyne-tools-api/pkg/projdata"
	"github.com/wiwski/euphrosyne-tools-api/pkg/projpath"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "euapid",
	Short: "Run the euphrosyne data gateway API server",
	Long:  ``,
	Run: func(cmd *cobra.Command, args []string) {
		e := echo.New()
		e.HideBanner = true
		e.HidePort = true
		e.Use(middleware.Recover())

		c := mustLoadConfig()
		settings := config.LoadSettings(c)
		log.Infof("File share: %s, projects prefix: '%s'", settings.FileShare, settings.ProjectsPathPrefix)

		client, err := azshare.NewRestyClient(settings.StorageAccount, settings.StorageKey, settings.FileShare)
		if err != nil {
			log.Fatalf("Unable to create file share client: %s", err)
		}

		setupRoutes(e, RouteOpts{
			store:     projdata.NewAzureStore(client, settings.ProjectsPathPrefix),
			validator: projpath.NewValidator(settings.ProjectsPathPrefix),
			settings:  settings,
		})

		if err := e.Start(":" + c.GetKeyWithDefault("EUAPID_PORT", "8000")); err != nil {
			log.Fatalf("Unable to start server: %v", err)
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func mustLoadConfig() config.Configer {
	c := config.NewDotenvConfig(".env")
	if err := c.Load(); err != nil {
		log.Infof("No .env file loaded: %s", err)
	}

	return c
}
