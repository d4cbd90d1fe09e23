// Package config manages user-level settings stored at ~/.maizzle/config.yaml.
// It provides functions to load, read, and write keys such as the default
// starter repository used by "new" and the update_check toggle.
package config
