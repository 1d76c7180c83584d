package diary

// Version is the current release of the diary tool.
const Version = "0.1.0"
