// Package config loads application settings with viper.
//
// Values come from, in increasing priority: built-in defaults, config.yaml
// (searched in /etc/lapis, $HOME/.lapis, the working directory and the
// executable directory, or given with --config), and LAPIS_ environment
// variables where dots become underscores:
//
//	LAPIS_SERVER_PORT=8080 LAPIS_EMAIL_PROVIDER=mailgun lapis serve
//
// Watch re-reads the file on change and hands the fresh Config to a callback.
package config
