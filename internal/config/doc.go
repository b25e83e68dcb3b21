// Package config manages user-level settings stored at
// ~/.reactforge/config.yaml. Settings provide the defaults for the flags of
// the create command; flags given on the command line always win.
package config
