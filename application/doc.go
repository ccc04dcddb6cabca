/*
Package application is a library for building PKD tools on top of the
protocol package.

application implements the components shared by the PKD executables:
their configuration, their logging, and the storage of encoded
actions in files.

# Config

This module implements the configuration layer of any PKD executable:
an AppConfig is loaded from and saved to a file through a ConfigLoader.
Currently this module only supports TOML encoding.

# Encoding

This module implements the encoding and decoding of action files,
holding either a single action or a batch of actions.

# Logger

This module implements a generic logging system that can be used by any
PKD application/executable.
*/
package application
