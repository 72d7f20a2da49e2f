/*
Package gconf implements a configuration store intended to be used as a global,
in-database configuration.

Each extension keeps a single configuration entity, stored under the "_c:"
prefix followed by the package name. Configuration is loaded from the genesis
file using InitConfig and can be changed later by the configuration owner
with an instruction processed by UpdateConfigurationHandler.

Not being able to get a configuration value is a critical condition for the
application. Handlers that depend on a configuration must fail when it is
missing instead of falling back to defaults.
*/
package gconf
