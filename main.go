// @title Election Web Form API
// @version 1.0
// @description Backend API for a single-election voting form and its admin console

// @securityDefinitions.apikey AdminPassword
// @in header
// @name x-admin-password
package main

import (
	"errors"

	"github.com/spf13/viper"

	"github.com/sajad-git/election/api"
	"github.com/sajad-git/election/logging"
)

func main() {
	logging.BoostrapLogger()

	// Load env
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			logging.Log.Errorf("Failed to read config file: %v", err)
			panic("Failed to read config file: " + err.Error())
		}
		logging.Log.Warn("No config.yaml found, using defaults")
	}

	// Read config
	config := api.ReadConfig()

	// Start the service
	service := api.NewServer(config)
	service.Start()
}
