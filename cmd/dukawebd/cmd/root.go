package cmd

import (
	"os"
	"strings"

	"github.com/dukahub/dukaweb/pkg/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "dukawebd",
	Short: "Web tier for the duka business application",
	Long: `dukawebd serves entity detail pages, datalists and translations for the duka
business application. It holds user sessions and checks every view and change
against the capabilities granted by the user's role before passing it on to the
REST backend.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initViper)

	rootCmd.PersistentFlags().String("env-file", config.DefaultDotenvPath, "dotenv file holding the DUKA_* settings")
	rootCmd.PersistentFlags().String("log-level", "", "log level, overrides "+config.LogLevelKey)
	_ = viper.BindPFlag("env-file", rootCmd.PersistentFlags().Lookup("env-file"))
	_ = viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))
}

// initViper lets every flag also be given as DUKAWEB_<FLAG>, e.g. DUKAWEB_ENV_FILE.
func initViper() {
	viper.SetEnvPrefix("DUKAWEB")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

func mustLoadConfig() config.Configer {
	c := config.MustLoadFromDotenv(viper.GetString("env-file"))
	config.SetConfig(c)
	return c
}
