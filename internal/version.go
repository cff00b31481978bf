package internal

// Version is the current phonobridge version
const Version = "0.1.0"
