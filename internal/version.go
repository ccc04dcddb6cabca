package internal

// Version is the version of the PKD tools.
const Version = "0.1.0"
