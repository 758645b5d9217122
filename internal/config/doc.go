// Package config loads the settings of a bulletin run.
//
// Defaults cover everything except the SMTP server. A YAML file and
// CARTA_* environment variables override them, in that order.
package config
