package truemapper

// Version is the library version, following semantic versioning.
const Version = "0.4.0"
